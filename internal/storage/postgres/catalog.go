package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

type serviceRepository struct {
	storage *Storage
}

type courseRepository struct {
	storage *Storage
}

const productColumns = `id, name, description, category, image_url, price, stock, created_at, updated_at`

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.ImageURL, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products
                   WHERE ($1 = '' OR category = $1)
                     AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
                     AND (NOT $3 OR stock > 0)
                   ORDER BY created_at DESC, id DESC
                   LIMIT $4 OFFSET $5`
	rows, err := r.storage.pool.Query(ctx, query, filter.Category, filter.Search, filter.InStock, filter.Page.Limit, filter.Page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collect(rows, scanProduct)
}

func (r *productRepository) Get(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, domainErrors.ErrProductNotFound)
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (name, description, category, image_url, price, stock)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING ` + productColumns
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query,
		product.Name, product.Description, product.Category, product.ImageURL, product.Price, product.Stock))
	if err != nil {
		return nil, translate(err, domainErrors.ErrProductNotFound)
	}
	return &p, nil
}

func (r *productRepository) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `UPDATE products
                   SET name=$2, description=$3, category=$4, image_url=$5, price=$6, stock=$7, updated_at=NOW()
                   WHERE id=$1
                   RETURNING ` + productColumns
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Category, product.ImageURL, product.Price, product.Stock))
	if err != nil {
		return nil, translate(err, domainErrors.ErrProductNotFound)
	}
	return &p, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrProductNotFound, `DELETE FROM products WHERE id=$1`, id)
}

const serviceColumns = `id, name, description, price, duration_minutes, active, created_at, updated_at`

func scanService(row pgx.Row) (model.Service, error) {
	var s model.Service
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.DurationMinutes, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *serviceRepository) List(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	const query = `SELECT ` + serviceColumns + ` FROM services WHERE NOT $1 OR active ORDER BY name, id`
	rows, err := r.storage.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return collect(rows, scanService)
}

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	const query = `SELECT ` + serviceColumns + ` FROM services WHERE id=$1`
	s, err := scanService(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, domainErrors.ErrServiceNotFound)
	}
	return &s, nil
}

func (r *serviceRepository) Create(ctx context.Context, service model.Service) (*model.Service, error) {
	const query = `INSERT INTO services (name, description, price, duration_minutes, active)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING ` + serviceColumns
	s, err := scanService(r.storage.pool.QueryRow(ctx, query,
		service.Name, service.Description, service.Price, service.DurationMinutes, service.Active))
	if err != nil {
		return nil, translate(err, domainErrors.ErrServiceNotFound)
	}
	return &s, nil
}

func (r *serviceRepository) Update(ctx context.Context, service model.Service) (*model.Service, error) {
	const query = `UPDATE services
                   SET name=$2, description=$3, price=$4, duration_minutes=$5, active=$6, updated_at=NOW()
                   WHERE id=$1
                   RETURNING ` + serviceColumns
	s, err := scanService(r.storage.pool.QueryRow(ctx, query,
		service.ID, service.Name, service.Description, service.Price, service.DurationMinutes, service.Active))
	if err != nil {
		return nil, translate(err, domainErrors.ErrServiceNotFound)
	}
	return &s, nil
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrServiceNotFound, `DELETE FROM services WHERE id=$1`, id)
}

const courseColumns = `id, title, description, instructor, price, active, created_at, updated_at`

func scanCourse(row pgx.Row) (model.Course, error) {
	var c model.Course
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Instructor, &c.Price, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *courseRepository) List(ctx context.Context, activeOnly bool) ([]model.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE NOT $1 OR active ORDER BY title, id`
	rows, err := r.storage.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return collect(rows, scanCourse)
}

func (r *courseRepository) Get(ctx context.Context, id int64) (*model.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE id=$1`
	c, err := scanCourse(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, domainErrors.ErrCourseNotFound)
	}
	return &c, nil
}

func (r *courseRepository) Create(ctx context.Context, course model.Course) (*model.Course, error) {
	const query = `INSERT INTO courses (title, description, instructor, price, active)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING ` + courseColumns
	c, err := scanCourse(r.storage.pool.QueryRow(ctx, query,
		course.Title, course.Description, course.Instructor, course.Price, course.Active))
	if err != nil {
		return nil, translate(err, domainErrors.ErrCourseNotFound)
	}
	return &c, nil
}

func (r *courseRepository) Update(ctx context.Context, course model.Course) (*model.Course, error) {
	const query = `UPDATE courses
                   SET title=$2, description=$3, instructor=$4, price=$5, active=$6, updated_at=NOW()
                   WHERE id=$1
                   RETURNING ` + courseColumns
	c, err := scanCourse(r.storage.pool.QueryRow(ctx, query,
		course.ID, course.Title, course.Description, course.Instructor, course.Price, course.Active))
	if err != nil {
		return nil, translate(err, domainErrors.ErrCourseNotFound)
	}
	return &c, nil
}

func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrCourseNotFound, `DELETE FROM courses WHERE id=$1`, id)
}
