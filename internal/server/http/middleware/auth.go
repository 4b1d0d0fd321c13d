package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

const (
	// PrincipalContextKey is the gin context key for the authenticated principal.
	PrincipalContextKey = "principal"
	// TokenContextKey holds the raw session token so logout can revoke it.
	TokenContextKey = "sessionToken"
	// SessionCookieName carries the customer session token.
	SessionCookieName = "mysticmart_session"
)

// Resolver maps a session token to its principal.
type Resolver interface {
	Resolve(ctx context.Context, token string) (model.Principal, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, token string) (model.Principal, error)

func (f ResolverFunc) Resolve(ctx context.Context, token string) (model.Principal, error) {
	return f(ctx, token)
}

// RequirePrincipal rejects requests without a valid session of the given domain.
// Customer sessions are read from the cookie or a bearer header, admin sessions from the bearer header only.
func RequirePrincipal(resolver Resolver, domain model.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, domain)
		if token == "" {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", domainErrors.ErrUnauthorized.Error())
			return
		}
		principal, err := resolve(c, resolver, token, domain)
		if err != nil {
			if isAuthError(err) {
				abort(c, http.StatusUnauthorized, "UNAUTHORIZED", domainErrors.ErrUnauthorized.Error())
				return
			}
			abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			return
		}
		c.Set(PrincipalContextKey, principal)
		c.Set(TokenContextKey, token)
		c.Next()
	}
}

// OptionalPrincipal attaches the principal when a valid session is present and continues either way.
func OptionalPrincipal(resolver Resolver, domain model.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c, domain); token != "" {
			if principal, err := resolve(c, resolver, token, domain); err == nil {
				c.Set(PrincipalContextKey, principal)
				c.Set(TokenContextKey, token)
			}
		}
		c.Next()
	}
}

// RequireRole must follow RequirePrincipal.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentPrincipal(c)
		if p == nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", domainErrors.ErrUnauthorized.Error())
			return
		}
		if p.Role() != role {
			abort(c, http.StatusForbidden, "FORBIDDEN", domainErrors.ErrForbidden.Error())
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the principal attached by the auth middleware, or nil.
func CurrentPrincipal(c *gin.Context) model.Principal {
	val, ok := c.Get(PrincipalContextKey)
	if !ok {
		return nil
	}
	p, _ := val.(model.Principal)
	return p
}

// CurrentToken returns the session token of the request, or "".
func CurrentToken(c *gin.Context) string {
	return c.GetString(TokenContextKey)
}

// SetSessionCookie writes the customer session cookie and mirrors the token in the Authorization header.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
	c.Header("Authorization", "Bearer "+token)
}

// ClearSessionCookie expires the customer session cookie.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}

func resolve(c *gin.Context, resolver Resolver, token string, domain model.Domain) (model.Principal, error) {
	principal, err := resolver.Resolve(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}
	if principal == nil || principal.Domain() != domain {
		return nil, domainErrors.ErrUnauthorized
	}
	return principal, nil
}

func isAuthError(err error) bool {
	return errors.Is(err, domainErrors.ErrUnauthorized) ||
		errors.Is(err, domainErrors.ErrInvalidToken) ||
		errors.Is(err, domainErrors.ErrNotFound) ||
		errors.Is(err, domainErrors.ErrUserNotFound)
}

func extractToken(c *gin.Context, domain model.Domain) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if domain != model.DomainCustomer {
		return ""
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}
