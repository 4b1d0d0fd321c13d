package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
	"github.com/polkiloo/mysticmart/internal/server/http/middleware"
)

// AdminAuthHandler issues operator sessions. Admin tokens travel as bearer only.
type AdminAuthHandler struct {
	facade AdminAuthFacade
}

// NewAdminAuthHandler constructs AdminAuthHandler.
func NewAdminAuthHandler(facade AdminAuthFacade) *AdminAuthHandler {
	return &AdminAuthHandler{facade: facade}
}

// Login handles POST /api/admin/auth/login.
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req, false) {
		return
	}

	admin, token, err := h.facade.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.SessionResponse{Token: token}
	if admin != nil {
		a := toAdminResponse(*admin)
		resp.Admin = &a
	}
	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/admin/auth/logout.
func (h *AdminAuthHandler) Logout(c *gin.Context) {
	if err := h.facade.AdminLogout(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true})
}

// Me handles GET /api/admin/auth/me.
func (h *AdminAuthHandler) Me(c *gin.Context) {
	principal, ok := CurrentPrincipal(c).(model.AdminPrincipal)
	if !ok {
		respondError(c, domainErrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, toAdminResponse(principal.Admin))
}
