package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
)

// CartHandler manages the signed-in customer's cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// List handles GET /api/cart.
func (h *CartHandler) List(c *gin.Context) {
	items, err := h.facade.Cart(c.Request.Context(), CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(items, toCartItemResponse))
}

// Add handles POST /api/cart. Quantity defaults to one.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.CartRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if !req.ProductID.Set() {
		respondError(c, domainErrors.ErrMissingFields)
		return
	}
	productID, err := parseID(req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.facade.AddToCart(c.Request.Context(), CurrentPrincipal(c), productID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCartItemResponse(*item))
}

// Update handles PUT /api/cart.
func (h *CartHandler) Update(c *gin.Context) {
	var req dto.CartRequest
	if !bindJSON(c, &req, false) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Quantity == nil {
		respondError(c, domainErrors.ErrMissingFields)
		return
	}

	item, err := h.facade.UpdateCartItem(c.Request.Context(), CurrentPrincipal(c), id, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartItemResponse(*item))
}

// Delete handles DELETE /api/cart. With clearAll the whole cart is emptied.
func (h *CartHandler) Delete(c *gin.Context) {
	var req dto.CartRequest
	if !bindJSON(c, &req, true) {
		return
	}
	ctx := c.Request.Context()
	principal := CurrentPrincipal(c)

	if req.ClearAll || boolQuery(c, "clearAll") {
		if err := h.facade.ClearCart(ctx, principal); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "cart cleared"})
		return
	}

	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.facade.RemoveCartItem(ctx, principal, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true})
}
