package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest is the create/update payload for products. Absent fields are left untouched on update.
type ProductRequest struct {
	ID          ID               `json:"id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"imageUrl"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ServiceRequest is the create/update payload for services.
type ServiceRequest struct {
	ID              ID               `json:"id"`
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	DurationMinutes *int             `json:"durationMinutes"`
	Active          *bool            `json:"active"`
}

// ServiceResponse is the public view of a service.
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CourseRequest is the create/update payload for courses.
type CourseRequest struct {
	ID          ID               `json:"id"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Instructor  *string          `json:"instructor"`
	Price       *decimal.Decimal `json:"price"`
	Active      *bool            `json:"active"`
}

// CourseResponse is the public view of a course.
type CourseResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Instructor  string    `json:"instructor"`
	Price       float64   `json:"price"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IDRequest carries only a record id, used by DELETE bodies.
type IDRequest struct {
	ID ID `json:"id"`
}
