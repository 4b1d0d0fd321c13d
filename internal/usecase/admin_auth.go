package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/polkiloo/mysticmart/internal/config"
	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
	pkgAuth "github.com/polkiloo/mysticmart/internal/pkg/auth"
)

// AdminAuthUseCase manages back-office operator sessions.
type AdminAuthUseCase struct {
	admins     repository.AdminRepository
	sessions   repository.AdminSessionRepository
	hasher     pkgAuth.PasswordHasher
	sessionTTL time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewAdminAuthUseCase constructs AdminAuthUseCase.
func NewAdminAuthUseCase(admins repository.AdminRepository, sessions repository.AdminSessionRepository, hasher pkgAuth.PasswordHasher, cfg *config.Config, logger *slog.Logger) *AdminAuthUseCase {
	return &AdminAuthUseCase{
		admins:     admins,
		sessions:   sessions,
		hasher:     hasher,
		sessionTTL: cfg.AdminSessionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Login validates operator credentials and returns a bearer token.
func (u *AdminAuthUseCase) Login(ctx context.Context, email, password string) (*model.Admin, string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrMissingFields
	}

	admin, err := u.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := u.hasher.Compare(admin.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	now := u.now()
	token := pkgAuth.NewSessionToken()
	if err := u.sessions.Create(ctx, model.Session{Token: token, SubjectID: admin.ID, ExpiresAt: now.Add(u.sessionTTL), CreatedAt: now}); err != nil {
		return nil, "", err
	}
	if err := u.admins.TouchLogin(ctx, admin.ID); err != nil {
		u.logger.Warn("record admin login failed", slog.Int64("admin_id", admin.ID), slog.String("error", err.Error()))
	}
	return admin, token, nil
}

// Logout revokes the bearer token.
func (u *AdminAuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := u.sessions.Delete(ctx, token); err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return err
	}
	return nil
}

// Resolve maps a bearer token to the signed-in operator.
func (u *AdminAuthUseCase) Resolve(ctx context.Context, token string) (model.Principal, error) {
	if token == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	session, err := u.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}
	if session.Expired(u.now()) {
		_ = u.sessions.Delete(ctx, token)
		return nil, domainErrors.ErrUnauthorized
	}

	admin, err := u.admins.GetByID(ctx, session.SubjectID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}
	return model.AdminPrincipal{Admin: *admin}, nil
}

// EnsureBootstrap seeds the first operator account. An existing account is left untouched.
func (u *AdminAuthUseCase) EnsureBootstrap(ctx context.Context, email, password string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if err := ValidateEmail(email); err != nil {
		return false, err
	}
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	name, _, _ := strings.Cut(email, "@")
	_, created, err := u.admins.Create(ctx, model.Admin{Email: email, Name: name, PasswordHash: hash})
	if err != nil {
		return false, err
	}
	if created {
		u.logger.Info("bootstrap admin created", slog.String("email", email))
	}
	return created, nil
}
