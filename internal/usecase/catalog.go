package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/mysticmart/internal/adapter/cache"
	"github.com/polkiloo/mysticmart/internal/config"
	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
)

// CatalogUseCase manages products, services and courses.
type CatalogUseCase struct {
	products repository.ProductRepository
	services repository.ServiceRepository
	courses  repository.CourseRepository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(
	products repository.ProductRepository,
	services repository.ServiceRepository,
	courses repository.CourseRepository,
	c cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		products: products,
		services: services,
		courses:  courses,
		cache:    c,
		cacheTTL: cfg.CatalogCacheTTL,
		logger:   logger,
	}
}

// Products lists products, served from cache when possible.
func (u *CatalogUseCase) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Page = model.NewPage(filter.Page.Limit, filter.Page.Offset)

	key := u.listKey(ctx, filter)
	if raw, ok, err := u.cache.Get(ctx, key); err != nil {
		u.cacheFailed("get", err)
	} else if ok {
		var cached []model.Product
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	}

	products, err := u.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(products); err == nil {
		if err := u.cache.Set(ctx, key, string(raw), u.cacheTTL); err != nil {
			u.cacheFailed("set", err)
		}
	}
	return products, nil
}

// Product returns a single product.
func (u *CatalogUseCase) Product(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	return u.products.Get(ctx, id)
}

// CreateProduct validates and stores a new product.
func (u *CatalogUseCase) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	created, err := u.products.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	u.InvalidateProducts(ctx)
	return created, nil
}

// UpdateProduct applies patch to an existing product.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	current, err := u.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(current)
	if err := validateProduct(*current); err != nil {
		return nil, err
	}
	updated, err := u.products.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	u.InvalidateProducts(ctx)
	return updated, nil
}

// DeleteProduct removes a product.
func (u *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return domainErrors.ErrInvalidID
	}
	if err := u.products.Delete(ctx, id); err != nil {
		return err
	}
	u.InvalidateProducts(ctx)
	return nil
}

// Services lists services; the storefront only sees active ones.
func (u *CatalogUseCase) Services(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	return u.services.List(ctx, activeOnly)
}

// Service returns a single service.
func (u *CatalogUseCase) Service(ctx context.Context, id int64) (*model.Service, error) {
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	return u.services.Get(ctx, id)
}

// CreateService validates and stores a new service.
func (u *CatalogUseCase) CreateService(ctx context.Context, s model.Service) (*model.Service, error) {
	if err := validateService(s); err != nil {
		return nil, err
	}
	return u.services.Create(ctx, s)
}

// UpdateService applies patch to an existing service.
func (u *CatalogUseCase) UpdateService(ctx context.Context, id int64, patch model.ServicePatch) (*model.Service, error) {
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	current, err := u.services.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(current)
	if err := validateService(*current); err != nil {
		return nil, err
	}
	return u.services.Update(ctx, *current)
}

// DeleteService removes a service.
func (u *CatalogUseCase) DeleteService(ctx context.Context, id int64) error {
	if id <= 0 {
		return domainErrors.ErrInvalidID
	}
	return u.services.Delete(ctx, id)
}

// Courses lists courses; the storefront only sees active ones.
func (u *CatalogUseCase) Courses(ctx context.Context, activeOnly bool) ([]model.Course, error) {
	return u.courses.List(ctx, activeOnly)
}

// Course returns a single course.
func (u *CatalogUseCase) Course(ctx context.Context, id int64) (*model.Course, error) {
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	return u.courses.Get(ctx, id)
}

// CreateCourse validates and stores a new course.
func (u *CatalogUseCase) CreateCourse(ctx context.Context, c model.Course) (*model.Course, error) {
	if err := validateCourse(c); err != nil {
		return nil, err
	}
	return u.courses.Create(ctx, c)
}

// UpdateCourse applies patch to an existing course.
func (u *CatalogUseCase) UpdateCourse(ctx context.Context, id int64, patch model.CoursePatch) (*model.Course, error) {
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	current, err := u.courses.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(current)
	if err := validateCourse(*current); err != nil {
		return nil, err
	}
	return u.courses.Update(ctx, *current)
}

// DeleteCourse removes a course.
func (u *CatalogUseCase) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return domainErrors.ErrInvalidID
	}
	return u.courses.Delete(ctx, id)
}

// listKey embeds the current catalog version so a write makes every cached page unreachable.
func (u *CatalogUseCase) listKey(ctx context.Context, filter model.ProductFilter) string {
	version := "0"
	if v, ok, err := u.cache.Get(ctx, u.versionKey()); err != nil {
		u.cacheFailed("get", err)
	} else if ok {
		version = v
	}
	q := url.Values{}
	q.Set("category", filter.Category)
	q.Set("search", filter.Search)
	q.Set("inStock", strconv.FormatBool(filter.InStock))
	q.Set("limit", strconv.Itoa(filter.Page.Limit))
	q.Set("offset", strconv.Itoa(filter.Page.Offset))
	return u.cache.Key("products", "v"+version, q.Encode())
}

func (u *CatalogUseCase) versionKey() string {
	return u.cache.Key("products", "version")
}

// InvalidateProducts bumps the catalog version so cached product pages are dropped.
func (u *CatalogUseCase) InvalidateProducts(ctx context.Context) {
	if _, err := u.cache.Incr(ctx, u.versionKey()); err != nil {
		u.cacheFailed("incr", err)
	}
}

func (u *CatalogUseCase) cacheFailed(op string, err error) {
	u.logger.Warn("catalog cache unavailable", slog.String("op", op), slog.String("error", err.Error()))
}

func validateProduct(p model.Product) error {
	if err := requireText(p.Name); err != nil {
		return err
	}
	if err := validatePrice(p.Price); err != nil {
		return err
	}
	if p.Stock < 0 {
		return domainErrors.ErrInvalidQuantity
	}
	return nil
}

func validateService(s model.Service) error {
	if err := requireText(s.Name); err != nil {
		return err
	}
	if s.DurationMinutes < 0 {
		return domainErrors.ErrInvalidQuantity
	}
	return validatePrice(s.Price)
}

func validateCourse(c model.Course) error {
	if err := requireText(c.Title); err != nil {
		return err
	}
	return validatePrice(c.Price)
}
