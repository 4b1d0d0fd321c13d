package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
)

// AdminHandler serves customer management and the dashboard.
type AdminHandler struct {
	facade BackOfficeFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade BackOfficeFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Users handles GET /api/admin/users[?id=|?search=].
func (h *AdminHandler) Users(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok, err := queryID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if ok {
		user, err := h.facade.User(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toUserResponse(*user))
		return
	}

	users, err := h.facade.Users(ctx, c.Query("search"), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(users, toUserResponse))
}

// SetRole handles PUT /api/admin/users.
func (h *AdminHandler) SetRole(c *gin.Context) {
	var req dto.RoleRequest
	if !bindJSON(c, &req, false) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	user, err := h.facade.SetUserRole(c.Request.Context(), id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

// DeleteUser handles DELETE /api/admin/users.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	var req dto.IDRequest
	if !bindJSON(c, &req, true) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.facade.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.facade.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStatsResponse(*stats))
}

func toStatsResponse(s model.Stats) dto.StatsResponse {
	byStatus := make(map[string]int64, len(s.OrdersByStatus))
	for status, n := range s.OrdersByStatus {
		byStatus[string(status)] = n
	}
	return dto.StatsResponse{
		Users:          s.Users,
		Orders:         s.Orders,
		Bookings:       s.Bookings,
		Enrollments:    s.Enrollments,
		UnreadMessages: s.UnreadMessages,
		Revenue:        s.Revenue.InexactFloat64(),
		OrdersByStatus: byStatus,
	}
}
