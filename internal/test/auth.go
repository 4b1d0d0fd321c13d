package test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	pkgAuth "github.com/polkiloo/mysticmart/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// TokenIssuerStub issues readable "purpose:id" tokens.
type TokenIssuerStub struct {
	IssueFn func(pkgAuth.Purpose, int64, time.Duration) (string, error)
	ParseFn func(pkgAuth.Purpose, string) (int64, error)
}

// Issue returns "purpose:id" unless overridden.
func (s TokenIssuerStub) Issue(purpose pkgAuth.Purpose, subjectID int64, ttl time.Duration) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(purpose, subjectID, ttl)
	}
	return fmt.Sprintf("%s:%d", purpose, subjectID), nil
}

// Parse accepts tokens produced by Issue for the same purpose.
func (s TokenIssuerStub) Parse(purpose pkgAuth.Purpose, token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(purpose, token)
	}
	rest, ok := strings.CutPrefix(token, string(purpose)+":")
	if !ok {
		return 0, domainErrors.ErrInvalidToken
	}
	var id int64
	if _, err := fmt.Sscanf(rest, "%d", &id); err != nil {
		return 0, domainErrors.ErrInvalidToken
	}
	return id, nil
}

// IssueBound appends binding to the readable token.
func (s TokenIssuerStub) IssueBound(purpose pkgAuth.Purpose, subjectID int64, binding string, ttl time.Duration) (string, error) {
	token, err := s.Issue(purpose, subjectID, ttl)
	if err != nil {
		return "", err
	}
	return token + "#" + binding, nil
}

// ParseBound accepts IssueBound tokens whose binding still matches.
func (s TokenIssuerStub) ParseBound(purpose pkgAuth.Purpose, token string, binding pkgAuth.BindingFunc) (int64, error) {
	base, bound, _ := strings.Cut(token, "#")
	id, err := s.Parse(purpose, base)
	if err != nil {
		return 0, err
	}
	if binding != nil {
		current, err := binding(id)
		if err != nil || current != bound {
			return 0, domainErrors.ErrInvalidToken
		}
	}
	return id, nil
}

// ResolverStub maps fixed tokens to principals for middleware tests.
type ResolverStub struct {
	Principals map[string]model.Principal
	Err        error
}

// Resolve returns the principal registered for token.
func (s ResolverStub) Resolve(ctx context.Context, token string) (model.Principal, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Principals[token]; ok {
		return p, nil
	}
	return nil, domainErrors.ErrUnauthorized
}

// Customer builds a customer principal.
func Customer(id int64) model.CustomerPrincipal {
	return model.CustomerPrincipal{User: model.User{
		ID:    id,
		Email: fmt.Sprintf("seeker%d@example.com", id),
		Name:  fmt.Sprintf("Seeker %d", id),
		Role:  model.RoleUser,
	}}
}

// StaffCustomer builds a customer principal carrying the admin role.
func StaffCustomer(id int64) model.CustomerPrincipal {
	p := Customer(id)
	p.User.Role = model.RoleAdmin
	return p
}

// Operator builds a back-office principal.
func Operator(id int64) model.AdminPrincipal {
	return model.AdminPrincipal{Admin: model.Admin{ID: id, Email: fmt.Sprintf("ops%d@example.com", id), Name: "ops"}}
}

var (
	_ pkgAuth.PasswordHasher = HasherStub{}
	_ pkgAuth.TokenIssuer    = TokenIssuerStub{}
)
