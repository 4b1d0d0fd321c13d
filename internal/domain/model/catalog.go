package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a physical item sold from stock.
type Product struct {
	ID          int64
	Name        string
	Description string
	Category    string
	ImageURL    string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category string
	Search   string
	InStock  bool
	Page     Page
}

// Service is a bookable one-on-one session.
type Service struct {
	ID              int64
	Name            string
	Description     string
	Price           decimal.Decimal
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Course is a paid program customers enroll into.
type Course struct {
	ID          int64
	Title       string
	Description string
	Instructor  string
	Price       decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch carries optional edits to a product.
type ProductPatch struct {
	Name        *string
	Description *string
	Category    *string
	ImageURL    *string
	Price       *decimal.Decimal
	Stock       *int
}

// Apply copies the set fields onto p.
func (c ProductPatch) Apply(p *Product) {
	setIf(&p.Name, c.Name)
	setIf(&p.Description, c.Description)
	setIf(&p.Category, c.Category)
	setIf(&p.ImageURL, c.ImageURL)
	setIf(&p.Price, c.Price)
	setIf(&p.Stock, c.Stock)
}

// ServicePatch carries optional edits to a service.
type ServicePatch struct {
	Name            *string
	Description     *string
	Price           *decimal.Decimal
	DurationMinutes *int
	Active          *bool
}

// Apply copies the set fields onto s.
func (c ServicePatch) Apply(s *Service) {
	setIf(&s.Name, c.Name)
	setIf(&s.Description, c.Description)
	setIf(&s.Price, c.Price)
	setIf(&s.DurationMinutes, c.DurationMinutes)
	setIf(&s.Active, c.Active)
}

// CoursePatch carries optional edits to a course.
type CoursePatch struct {
	Title       *string
	Description *string
	Instructor  *string
	Price       *decimal.Decimal
	Active      *bool
}

// Apply copies the set fields onto c.
func (p CoursePatch) Apply(c *Course) {
	setIf(&c.Title, p.Title)
	setIf(&c.Description, p.Description)
	setIf(&c.Instructor, p.Instructor)
	setIf(&c.Price, p.Price)
	setIf(&c.Active, p.Active)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
