package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
)

// Purpose scopes a signed token so a verification link cannot reset a password.
type Purpose string

const (
	PurposeVerifyEmail   Purpose = "verify-email"
	PurposeResetPassword Purpose = "reset-password"
)

// TokenIssuer issues and verifies short lived signed tokens bound to a subject.
type TokenIssuer interface {
	Issue(purpose Purpose, subjectID int64, ttl time.Duration) (string, error)
	Parse(purpose Purpose, token string) (int64, error)
	IssueBound(purpose Purpose, subjectID int64, binding string, ttl time.Duration) (string, error)
	ParseBound(purpose Purpose, token string, binding BindingFunc) (int64, error)
}

// BindingFunc returns the current binding value of a subject, e.g. its password hash.
type BindingFunc func(subjectID int64) (string, error)

// SignedTokens signs "purpose:subject:expiry" with HMAC-SHA256.
// Bound tokens also cover a server-side value that is never put in the token,
// so they stop verifying once that value changes.
type SignedTokens struct {
	secret []byte
	now    func() time.Time
}

// NewSignedTokens builds SignedTokens keyed by secret.
func NewSignedTokens(secret string) *SignedTokens {
	return &SignedTokens{secret: []byte(secret), now: time.Now}
}

// Issue returns a URL safe token for subjectID that expires after ttl.
func (s *SignedTokens) Issue(purpose Purpose, subjectID int64, ttl time.Duration) (string, error) {
	return s.IssueBound(purpose, subjectID, "", ttl)
}

// Parse validates token for purpose and returns the encoded subject ID.
func (s *SignedTokens) Parse(purpose Purpose, token string) (int64, error) {
	return s.ParseBound(purpose, token, nil)
}

// IssueBound is Issue with the signature also covering binding.
func (s *SignedTokens) IssueBound(purpose Purpose, subjectID int64, binding string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	expires := s.now().Add(ttl).Unix()
	payload := fmt.Sprintf("%s:%d:%d", purpose, subjectID, expires)
	token := payload + ":" + s.sign(bindPayload(payload, binding))
	return base64.RawURLEncoding.EncodeToString([]byte(token)), nil
}

// ParseBound validates token against the subject's current binding. A nil binding means unbound.
func (s *SignedTokens) ParseBound(purpose Purpose, token string, binding BindingFunc) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, domainErrors.ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		return 0, domainErrors.ErrInvalidToken
	}

	if Purpose(parts[0]) != purpose {
		return 0, domainErrors.ErrInvalidToken
	}
	subjectID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, domainErrors.ErrInvalidToken
	}

	var bound string
	if binding != nil {
		if bound, err = binding(subjectID); err != nil {
			return 0, domainErrors.ErrInvalidToken
		}
	}
	payload := strings.Join(parts[:3], ":")
	if !hmac.Equal([]byte(s.sign(bindPayload(payload, bound))), []byte(parts[3])) {
		return 0, domainErrors.ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, domainErrors.ErrInvalidToken
	}
	if time.Unix(expires, 0).Before(s.now()) {
		return 0, domainErrors.ErrInvalidToken
	}

	return subjectID, nil
}

func bindPayload(payload, binding string) string {
	if binding == "" {
		return payload
	}
	return payload + ":" + binding
}

func (s *SignedTokens) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// NewSessionToken returns an opaque random session identifier.
func NewSessionToken() string {
	a, b := uuid.New(), uuid.New()
	return hex.EncodeToString(a[:]) + hex.EncodeToString(b[:])
}
