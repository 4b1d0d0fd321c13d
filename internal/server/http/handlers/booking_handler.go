package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
)

// BookingHandler serves session bookings and course enrollments.
type BookingHandler struct {
	facade BookingFacade
}

// NewBookingHandler constructs BookingHandler.
func NewBookingHandler(facade BookingFacade) *BookingHandler {
	return &BookingHandler{facade: facade}
}

// Mine handles GET /api/sessions.
func (h *BookingHandler) Mine(c *gin.Context) {
	bookings, err := h.facade.MyBookings(c.Request.Context(), CurrentPrincipal(c), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(bookings, toBookingResponse))
}

// Reschedule handles PUT /api/sessions.
func (h *BookingHandler) Reschedule(c *gin.Context) {
	var req dto.RescheduleRequest
	if !bindJSON(c, &req, false) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.PreferredDate == nil && req.Notes == nil {
		respondError(c, domainErrors.ErrMissingFields)
		return
	}

	booking, err := h.facade.RescheduleBooking(c.Request.Context(), CurrentPrincipal(c), id, model.Reschedule{
		ScheduledAt: req.PreferredDate,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*booking))
}

// Cancel handles DELETE /api/sessions.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req dto.IDRequest
	if !bindJSON(c, &req, true) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	booking, err := h.facade.CancelBooking(c.Request.Context(), CurrentPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*booking))
}

// Bookings handles GET /api/admin/bookings.
func (h *BookingHandler) Bookings(c *gin.Context) {
	bookings, err := h.facade.Bookings(c.Request.Context(), c.Query("status"), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(bookings, toBookingResponse))
}

// SetBookingStatus handles PUT /api/admin/bookings.
func (h *BookingHandler) SetBookingStatus(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req, false) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	booking, err := h.facade.SetBookingStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*booking))
}

// DeleteBooking handles DELETE /api/admin/bookings.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	var req dto.IDRequest
	if !bindJSON(c, &req, true) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.facade.DeleteBooking(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true})
}

// Enrollments handles GET /api/admin/enrollments.
func (h *BookingHandler) Enrollments(c *gin.Context) {
	enrollments, err := h.facade.Enrollments(c.Request.Context(), c.Query("status"), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(enrollments, toEnrollmentResponse))
}

// SetEnrollmentStatus handles PUT /api/admin/enrollments.
func (h *BookingHandler) SetEnrollmentStatus(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req, false) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	enrollment, err := h.facade.SetEnrollmentStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEnrollmentResponse(*enrollment))
}
