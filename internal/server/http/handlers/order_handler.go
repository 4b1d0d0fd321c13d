package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
)

// OrderHandler manages order history, status updates and the tracking log. Visibility follows the
// principal on the request, so the storefront and the back office share it.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders and /api/admin/orders. With ?id= a single order is returned.
func (h *OrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	principal := CurrentPrincipal(c)

	id, ok, err := queryID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if ok {
		order, err := h.facade.Order(ctx, principal, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(*order))
		return
	}

	filter := model.OrderFilter{Page: pageQuery(c)}
	if raw := c.Query("status"); raw != "" {
		status, ok := model.ParseOrderStatus(raw)
		if !ok {
			respondError(c, domainErrors.ErrInvalidStatus)
			return
		}
		filter.Status = status
	}
	if userID, ok, err := queryID(c, "userId"); err != nil {
		respondError(c, err)
		return
	} else if ok {
		filter.UserID = userID
	}

	orders, err := h.facade.Orders(ctx, principal, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(orders, toOrderResponse))
}

// UpdateStatus handles PUT /api/orders and /api/admin/orders. orderIds selects the bulk form.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.OrderStatusRequest
	if !bindJSON(c, &req, false) {
		return
	}
	ctx := c.Request.Context()
	principal := CurrentPrincipal(c)
	change := model.StatusRequest{Status: req.Status, CourierName: req.CourierName, TrackingID: req.TrackingID}

	if len(req.OrderIDs) > 0 {
		result, err := h.facade.BulkUpdateOrderStatus(ctx, principal, req.OrderIDs, change)
		if err != nil {
			respondError(c, err)
			return
		}
		missing := result.Missing
		if missing == nil {
			missing = []int64{}
		}
		c.JSON(http.StatusOK, dto.BulkStatusResponse{
			Success: true,
			Updated: mapSlice(result.Updated, toOrderResponse),
			Missing: missing,
		})
		return
	}

	id, err := recordID(c, "id", req.OrderID, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	order, err := h.facade.UpdateOrderStatus(ctx, principal, id, change)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Delete handles DELETE /api/orders and /api/admin/orders.
func (h *OrderHandler) Delete(c *gin.Context) {
	var req dto.OrderStatusRequest
	if !bindJSON(c, &req, true) {
		return
	}
	id, err := recordID(c, "id", req.ID, req.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.facade.DeleteOrder(c.Request.Context(), CurrentPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true})
}

// Tracking handles GET /api/orders/tracking?orderId=.
func (h *OrderHandler) Tracking(c *gin.Context) {
	orderID, err := recordID(c, "orderId")
	if err != nil {
		respondError(c, err)
		return
	}
	entries, err := h.facade.Tracking(c.Request.Context(), CurrentPrincipal(c), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(entries, toTrackingResponse))
}

// AppendTracking handles POST /api/orders/tracking.
func (h *OrderHandler) AppendTracking(c *gin.Context) {
	var req dto.TrackingRequest
	if !bindJSON(c, &req, false) {
		return
	}
	orderID, err := recordID(c, "orderId", req.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Status == nil || req.Description == nil {
		respondError(c, domainErrors.ErrMissingFields)
		return
	}
	entry := model.TrackingEntry{OrderID: orderID, Status: *req.Status, Description: *req.Description}
	if req.Location != nil {
		entry.Location = *req.Location
	}

	created, err := h.facade.AppendTracking(c.Request.Context(), CurrentPrincipal(c), entry)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTrackingResponse(*created))
}

// EditTracking handles PUT /api/orders/tracking.
func (h *OrderHandler) EditTracking(c *gin.Context) {
	var req dto.TrackingRequest
	if !bindJSON(c, &req, false) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.facade.EditTracking(c.Request.Context(), CurrentPrincipal(c), id, model.TrackingUpdate{
		Status:      req.Status,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTrackingResponse(*updated))
}
