package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/mysticmart/internal/adapter/oauth"
	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
	"github.com/polkiloo/mysticmart/internal/server/http/middleware"
)

// SessionSettings controls how customer session cookies are issued.
type SessionSettings struct {
	TTL    time.Duration
	Secure bool
	// RedirectURL is where the browser lands after a Google login.
	RedirectURL string
}

// AuthHandler processes customer registration, login and account recovery.
type AuthHandler struct {
	facade   AuthFacade
	provider oauth.Provider
	session  SessionSettings
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, provider oauth.Provider, session SessionSettings) *AuthHandler {
	return &AuthHandler{facade: facade, provider: provider, session: session}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req, false) {
		return
	}

	user, token, err := h.facade.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	h.issue(c, http.StatusCreated, user, token)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req, false) {
		return
	}

	user, token, err := h.facade.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.issue(c, http.StatusOK, user, token)
}

// Logout handles POST /api/auth/logout. It always clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.CurrentToken(c); token != "" {
		if err := h.facade.Logout(c.Request.Context(), token); err != nil {
			respondError(c, err)
			return
		}
	}
	middleware.ClearSessionCookie(c, h.session.Secure)
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := CurrentPrincipal(c).(model.CustomerPrincipal)
	if !ok {
		respondError(c, domainErrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(principal.User))
}

// VerifyEmail handles GET /api/auth/verify-email?token=.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respondError(c, domainErrors.ErrMissingFields)
		return
	}
	if err := h.facade.VerifyEmail(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "email verified"})
}

// ForgotPassword handles POST /api/auth/forgot-password. The answer does not reveal whether the
// address is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if err := h.facade.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "if the account exists, a reset link has been sent"})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if err := h.facade.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "password updated"})
}

// GoogleBegin handles GET /api/auth/google.
func (h *AuthHandler) GoogleBegin(c *gin.Context) {
	if h.provider == nil {
		respondError(c, domainErrors.ErrOAuthNotConfigured)
		return
	}
	if err := h.provider.Begin(c.Writer, c.Request); err != nil {
		respondError(c, err)
	}
}

// GoogleCallback handles GET /api/auth/google/callback. Browsers are redirected with the session
// cookie set; API clients without a redirect target get the session as JSON.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.provider == nil {
		respondError(c, domainErrors.ErrOAuthNotConfigured)
		return
	}
	identity, err := h.provider.Complete(c.Writer, c.Request)
	if err != nil {
		respondError(c, err)
		return
	}

	user, token, err := h.facade.OAuthLogin(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.session.RedirectURL == "" {
		h.issue(c, http.StatusOK, user, token)
		return
	}
	middleware.SetSessionCookie(c, token, h.session.TTL, h.session.Secure)
	target, err := url.Parse(h.session.RedirectURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target.String())
}

func (h *AuthHandler) issue(c *gin.Context, status int, user *model.User, token string) {
	middleware.SetSessionCookie(c, token, h.session.TTL, h.session.Secure)
	resp := dto.SessionResponse{Token: token}
	if user != nil {
		u := toUserResponse(*user)
		resp.User = &u
	}
	c.JSON(status, resp)
}
