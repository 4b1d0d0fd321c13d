package repository

import (
	"context"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// ProductRepository describes persistence operations for products.
type ProductRepository interface {
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	Update(ctx context.Context, product model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ServiceRepository describes persistence operations for bookable services.
type ServiceRepository interface {
	List(ctx context.Context, activeOnly bool) ([]model.Service, error)
	Get(ctx context.Context, id int64) (*model.Service, error)
	Create(ctx context.Context, service model.Service) (*model.Service, error)
	Update(ctx context.Context, service model.Service) (*model.Service, error)
	Delete(ctx context.Context, id int64) error
}

// CourseRepository describes persistence operations for courses.
type CourseRepository interface {
	List(ctx context.Context, activeOnly bool) ([]model.Course, error)
	Get(ctx context.Context, id int64) (*model.Course, error)
	Create(ctx context.Context, course model.Course) (*model.Course, error)
	Update(ctx context.Context, course model.Course) (*model.Course, error)
	Delete(ctx context.Context, id int64) error
}
