package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	pkgAuth "github.com/polkiloo/mysticmart/internal/pkg/auth"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable is checked in order; the first match wins.
var errorTable = []errorMapping{
	{domainErrors.ErrMissingFields, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS"},
	{domainErrors.ErrInvalidID, http.StatusBadRequest, "INVALID_ID"},
	{domainErrors.ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
	{domainErrors.ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY"},
	{domainErrors.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{domainErrors.ErrInvalidEmail, http.StatusBadRequest, "INVALID_EMAIL"},
	{domainErrors.ErrInvalidPassword, http.StatusBadRequest, "INVALID_PASSWORD"},
	{pkgAuth.ErrPasswordTooLong, http.StatusBadRequest, "INVALID_PASSWORD"},
	{domainErrors.ErrInvalidType, http.StatusBadRequest, "INVALID_TYPE"},
	{domainErrors.ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
	{domainErrors.ErrInvalidToken, http.StatusBadRequest, "INVALID_TOKEN"},
	{domainErrors.ErrInsufficientStock, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
	{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domainErrors.ErrInvalidSignature, http.StatusUnauthorized, "INVALID_SIGNATURE"},
	{domainErrors.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{domainErrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{domainErrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
	{domainErrors.ErrReferenced, http.StatusConflict, "REFERENCED"},
	{domainErrors.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domainErrors.ErrServiceNotFound, http.StatusNotFound, "SERVICE_NOT_FOUND"},
	{domainErrors.ErrCourseNotFound, http.StatusNotFound, "COURSE_NOT_FOUND"},
	{domainErrors.ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND"},
	{domainErrors.ErrCartItemNotFound, http.StatusNotFound, "CART_ITEM_NOT_FOUND"},
	{domainErrors.ErrTrackingNotFound, http.StatusNotFound, "TRACKING_NOT_FOUND"},
	{domainErrors.ErrBookingNotFound, http.StatusNotFound, "BOOKING_NOT_FOUND"},
	{domainErrors.ErrEnrollmentNotFound, http.StatusNotFound, "ENROLLMENT_NOT_FOUND"},
	{domainErrors.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{domainErrors.ErrMessageNotFound, http.StatusNotFound, "MESSAGE_NOT_FOUND"},
	{domainErrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domainErrors.ErrPaymentNotConfigured, http.StatusInternalServerError, "PAYMENT_NOT_CONFIGURED"},
	{domainErrors.ErrPaymentGateway, http.StatusBadGateway, "PAYMENT_GATEWAY_ERROR"},
	{domainErrors.ErrOAuthNotConfigured, http.StatusServiceUnavailable, "OAUTH_NOT_CONFIGURED"},
}

// respondError writes the JSON error body for err. Unknown errors are reported generically and
// attached to the gin context so the request logger records the cause.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			c.JSON(m.status, dto.ErrorResponse{Error: m.err.Error(), Code: m.code})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"})
}

func respondInvalidRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
}
