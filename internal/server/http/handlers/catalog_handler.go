package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
)

// CatalogHandler serves products, services and courses. The public and back-office routes share
// it; activeOnly hides inactive services and courses on the storefront.
type CatalogHandler struct {
	facade     CatalogFacade
	activeOnly bool
}

// NewCatalogHandler constructs the storefront catalog handler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade, activeOnly: true}
}

// NewAdminCatalogHandler constructs the back-office catalog handler, which lists inactive entries too.
func NewAdminCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Products handles GET /api/products.
func (h *CatalogHandler) Products(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok, err := queryID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if ok {
		product, err := h.facade.Product(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toProductResponse(*product))
		return
	}

	products, err := h.facade.Products(ctx, model.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		InStock:  boolQuery(c, "inStock"),
		Page:     pageQuery(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(products, toProductResponse))
}

// CreateProduct handles POST /api/products.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if req.Name == nil || req.Price == nil {
		respondError(c, domainErrors.ErrMissingFields)
		return
	}

	var p model.Product
	productPatch(req).Apply(&p)
	created, err := h.facade.CreateProduct(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*created))
}

// UpdateProduct handles PUT /api/products.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !bindJSON(c, &req, false) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.facade.UpdateProduct(c.Request.Context(), id, productPatch(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*updated))
}

// DeleteProduct handles DELETE /api/products.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	h.delete(c, h.facade.DeleteProduct)
}

// Services handles GET /api/services.
func (h *CatalogHandler) Services(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok, err := queryID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if ok {
		service, err := h.facade.Service(ctx, id)
		if err == nil && h.activeOnly && !service.Active {
			err = domainErrors.ErrServiceNotFound
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toServiceResponse(*service))
		return
	}

	services, err := h.facade.Services(ctx, h.activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(services, toServiceResponse))
}

// CreateService handles POST /api/admin/services.
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req dto.ServiceRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if req.Name == nil || req.Price == nil {
		respondError(c, domainErrors.ErrMissingFields)
		return
	}

	s := model.Service{Active: true}
	servicePatch(req).Apply(&s)
	created, err := h.facade.CreateService(c.Request.Context(), s)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toServiceResponse(*created))
}

// UpdateService handles PUT /api/admin/services.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var req dto.ServiceRequest
	if !bindJSON(c, &req, false) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.facade.UpdateService(c.Request.Context(), id, servicePatch(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toServiceResponse(*updated))
}

// DeleteService handles DELETE /api/admin/services.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	h.delete(c, h.facade.DeleteService)
}

// Courses handles GET /api/courses.
func (h *CatalogHandler) Courses(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok, err := queryID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if ok {
		course, err := h.facade.Course(ctx, id)
		if err == nil && h.activeOnly && !course.Active {
			err = domainErrors.ErrCourseNotFound
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCourseResponse(*course))
		return
	}

	courses, err := h.facade.Courses(ctx, h.activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(courses, toCourseResponse))
}

// CreateCourse handles POST /api/admin/courses.
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if req.Title == nil || req.Price == nil {
		respondError(c, domainErrors.ErrMissingFields)
		return
	}

	course := model.Course{Active: true}
	coursePatch(req).Apply(&course)
	created, err := h.facade.CreateCourse(c.Request.Context(), course)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCourseResponse(*created))
}

// UpdateCourse handles PUT /api/admin/courses.
func (h *CatalogHandler) UpdateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if !bindJSON(c, &req, false) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.facade.UpdateCourse(c.Request.Context(), id, coursePatch(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCourseResponse(*updated))
}

// DeleteCourse handles DELETE /api/admin/courses.
func (h *CatalogHandler) DeleteCourse(c *gin.Context) {
	h.delete(c, h.facade.DeleteCourse)
}

func (h *CatalogHandler) delete(c *gin.Context, remove func(ctx context.Context, id int64) error) {
	var req dto.IDRequest
	if !bindJSON(c, &req, true) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true})
}

func productPatch(req dto.ProductRequest) model.ProductPatch {
	return model.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Stock:       req.Stock,
	}
}

func servicePatch(req dto.ServiceRequest) model.ServicePatch {
	return model.ServicePatch{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          req.Active,
	}
}

func coursePatch(req dto.CourseRequest) model.CoursePatch {
	return model.CoursePatch{
		Title:       req.Title,
		Description: req.Description,
		Instructor:  req.Instructor,
		Price:       req.Price,
		Active:      req.Active,
	}
}
