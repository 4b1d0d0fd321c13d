package oauth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

const providerName = "google"

// CallbackPath is where Google redirects after consent.
const CallbackPath = "/api/auth/google/callback"

// Provider runs the browser side of an OAuth login.
type Provider interface {
	Begin(w http.ResponseWriter, r *http.Request) error
	Complete(w http.ResponseWriter, r *http.Request) (model.OAuthIdentity, error)
}

// Settings configure the Google provider.
type Settings struct {
	ClientID      string
	ClientSecret  string
	BaseURL       string
	SessionSecret string
	SecureCookies bool
}

// Google signs customers in through goth's Google provider.
type Google struct {
	configured bool
}

// NewGoogle registers the goth provider and the gothic state store.
func NewGoogle(s Settings) *Google {
	store := sessions.NewCookieStore([]byte(s.SessionSecret))
	store.MaxAge(15 * 60)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = s.SecureCookies
	store.Options.SameSite = http.SameSiteLaxMode
	gothic.Store = store

	if s.ClientID == "" || s.ClientSecret == "" {
		return &Google{}
	}
	callback := strings.TrimRight(s.BaseURL, "/") + CallbackPath
	goth.UseProviders(google.New(s.ClientID, s.ClientSecret, callback, "email", "profile"))
	return &Google{configured: true}
}

// Begin redirects the browser to Google's consent screen.
func (g *Google) Begin(w http.ResponseWriter, r *http.Request) error {
	if !g.configured {
		return domainErrors.ErrOAuthNotConfigured
	}
	url, err := gothic.GetAuthURL(w, gothic.GetContextWithProvider(r, providerName))
	if err != nil {
		return fmt.Errorf("oauth begin: %w", err)
	}
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
	return nil
}

// Complete exchanges the callback code for the user's verified profile.
func (g *Google) Complete(w http.ResponseWriter, r *http.Request) (model.OAuthIdentity, error) {
	if !g.configured {
		return model.OAuthIdentity{}, domainErrors.ErrOAuthNotConfigured
	}
	user, err := gothic.CompleteUserAuth(w, gothic.GetContextWithProvider(r, providerName))
	if err != nil {
		return model.OAuthIdentity{}, fmt.Errorf("%w: %v", domainErrors.ErrUnauthorized, err)
	}
	if user.Email == "" {
		return model.OAuthIdentity{}, fmt.Errorf("%w: provider returned no email", domainErrors.ErrUnauthorized)
	}
	name := user.Name
	if name == "" {
		name = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	return model.OAuthIdentity{Provider: providerName, Email: strings.ToLower(user.Email), Name: name}, nil
}
