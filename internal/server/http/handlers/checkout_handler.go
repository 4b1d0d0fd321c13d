package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
)

// CheckoutHandler talks to the payment gateway on behalf of the storefront.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// CreateOrder handles POST /api/razorpay/create-order.
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req, false) {
		return
	}

	order, keyID, err := h.facade.CreatePaymentOrder(c.Request.Context(), model.PaymentIntent{
		Amount:   req.Amount,
		Currency: req.Currency,
		Type:     req.Type,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreateOrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		KeyID:    keyID,
	})
}

// VerifyPayment handles POST /api/razorpay/verify-payment.
func (h *CheckoutHandler) VerifyPayment(c *gin.Context) {
	h.verify(c, "")
}

// PlaceOrder handles POST /api/orders, which is verify-payment fixed to the order type.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	h.verify(c, model.PaymentTypeOrder)
}

// BookSession handles POST /api/sessions, which is verify-payment fixed to the service type.
func (h *CheckoutHandler) BookSession(c *gin.Context) {
	h.verify(c, model.PaymentTypeService)
}

func (h *CheckoutHandler) verify(c *gin.Context, fixed model.PaymentType) {
	var req dto.VerifyPaymentRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if fixed != "" {
		req.Type = string(fixed)
	}

	result, err := h.facade.VerifyPayment(c.Request.Context(), CurrentPrincipal(c), toVerification(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyPaymentResponse{
		Success:   true,
		PaymentID: result.PaymentID,
		OrderID:   result.RecordID,
		Type:      string(result.Type),
		Duplicate: !result.Created,
	})
}

func toVerification(req dto.VerifyPaymentRequest) model.PaymentVerification {
	v := model.PaymentVerification{
		Proof: model.PaymentProof{
			GatewayOrderID: req.GatewayOrderID,
			PaymentID:      req.PaymentID,
			Signature:      req.Signature,
		},
		Type:    req.Type,
		Address: req.Data.ShippingAddress,
		Contact: model.Contact{
			Name:  req.Data.Name,
			Email: req.Data.Email,
			Phone: req.Data.Phone,
		},
		ScheduledAt: req.Data.PreferredDate,
		Notes:       req.Data.Notes,
	}
	for _, item := range req.Data.Items {
		v.Items = append(v.Items, model.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	switch model.PaymentType(req.Type) {
	case model.PaymentTypeService:
		v.ItemID = req.Data.ServiceID
	case model.PaymentTypeCourse:
		v.ItemID = req.Data.CourseID
	}
	return v
}
