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

const (
	verifyTokenTTL = 48 * time.Hour
	resetTokenTTL  = time.Hour
)

// AuthUseCase handles customer accounts and storefront sessions.
type AuthUseCase struct {
	users      repository.UserRepository
	sessions   repository.CustomerSessionRepository
	outbox     repository.OutboxRepository
	hasher     pkgAuth.PasswordHasher
	tokens     pkgAuth.TokenIssuer
	sessionTTL time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	sessions repository.CustomerSessionRepository,
	outbox repository.OutboxRepository,
	hasher pkgAuth.PasswordHasher,
	tokens pkgAuth.TokenIssuer,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:      users,
		sessions:   sessions,
		outbox:     outbox,
		hasher:     hasher,
		tokens:     tokens,
		sessionTTL: cfg.SessionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Register creates an unverified customer, signs them in and queues the verification email.
func (u *AuthUseCase) Register(ctx context.Context, email, password, name string) (*model.User, string, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, "", domainErrors.ErrMissingFields
	}
	if err := ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, "", err
	}

	hash, err := u.hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, model.User{Email: email, Name: name, PasswordHash: hash, Role: model.RoleUser})
	if err != nil {
		return nil, "", err
	}

	token, err := u.startSession(ctx, usr.ID)
	if err != nil {
		return nil, "", err
	}

	u.queueTokenEmail(ctx, model.EventVerifyEmail, pkgAuth.PurposeVerifyEmail, usr.ID, verifyTokenTTL)
	return usr, token, nil
}

// Login validates credentials and opens a session.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrMissingFields
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	// OAuth-only accounts have no password.
	if usr.PasswordHash == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.startSession(ctx, usr.ID)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Logout revokes the session. Unknown tokens are ignored.
func (u *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := u.sessions.Delete(ctx, token); err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return err
	}
	return nil
}

// Resolve maps a session token to the signed-in customer.
func (u *AuthUseCase) Resolve(ctx context.Context, token string) (model.Principal, error) {
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

	usr, err := u.users.GetByID(ctx, session.SubjectID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}
	return model.CustomerPrincipal{User: *usr}, nil
}

// VerifyEmail marks the address behind a verification token as confirmed.
func (u *AuthUseCase) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domainErrors.ErrMissingFields
	}
	id, err := u.tokens.Parse(pkgAuth.PurposeVerifyEmail, token)
	if err != nil {
		return domainErrors.ErrInvalidToken
	}
	if err := u.users.MarkEmailVerified(ctx, id); err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return domainErrors.ErrInvalidToken
		}
		return err
	}
	return nil
}

// ForgotPassword queues a reset email when the address belongs to a customer.
// The result does not reveal whether it does.
func (u *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return domainErrors.ErrMissingFields
	}
	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return nil
		}
		return err
	}
	token, err := u.tokens.IssueBound(pkgAuth.PurposeResetPassword, usr.ID, usr.PasswordHash, resetTokenTTL)
	u.queueAccountEmail(ctx, model.EventPasswordResetEmail, usr.ID, token, err)
	return nil
}

// ResetPassword sets a new password and revokes every session of the user.
func (u *AuthUseCase) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return domainErrors.ErrMissingFields
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	// Bound to the hash it was issued against; the token is spent once the password changes.
	id, err := u.tokens.ParseBound(pkgAuth.PurposeResetPassword, token, func(id int64) (string, error) {
		usr, err := u.users.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return usr.PasswordHash, nil
	})
	if err != nil {
		return domainErrors.ErrInvalidToken
	}

	hash, err := u.hash(password)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return domainErrors.ErrInvalidToken
		}
		return err
	}
	return u.sessions.DeleteBySubject(ctx, id)
}

// OAuthLogin finds or creates the customer for a provider identity and opens a session.
func (u *AuthUseCase) OAuthLogin(ctx context.Context, identity model.OAuthIdentity) (*model.User, string, error) {
	email := NormalizeEmail(identity.Email)
	if err := ValidateEmail(email); err != nil {
		return nil, "", domainErrors.ErrInvalidEmail
	}

	usr, err := u.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domainErrors.ErrUserNotFound):
		name := strings.TrimSpace(identity.Name)
		if name == "" {
			name = email
		}
		usr, err = u.users.Create(ctx, model.User{Email: email, Name: name, Role: model.RoleUser, EmailVerified: true})
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			usr, err = u.users.GetByEmail(ctx, email)
		}
		if err != nil {
			return nil, "", err
		}
	case err != nil:
		return nil, "", err
	case !usr.EmailVerified:
		if err := u.users.MarkEmailVerified(ctx, usr.ID); err != nil {
			return nil, "", err
		}
		usr.EmailVerified = true
	}

	token, err := u.startSession(ctx, usr.ID)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

func (u *AuthUseCase) hash(password string) (string, error) {
	hash, err := u.hasher.Hash(password)
	if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
		return "", domainErrors.ErrInvalidPassword
	}
	return hash, err
}

func (u *AuthUseCase) startSession(ctx context.Context, userID int64) (string, error) {
	now := u.now()
	token := pkgAuth.NewSessionToken()
	session := model.Session{Token: token, SubjectID: userID, ExpiresAt: now.Add(u.sessionTTL), CreatedAt: now}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

// queueTokenEmail is best effort: the account change already happened.
func (u *AuthUseCase) queueTokenEmail(ctx context.Context, kind model.EventKind, purpose pkgAuth.Purpose, userID int64, ttl time.Duration) {
	token, err := u.tokens.Issue(purpose, userID, ttl)
	u.queueAccountEmail(ctx, kind, userID, token, err)
}

func (u *AuthUseCase) queueAccountEmail(ctx context.Context, kind model.EventKind, userID int64, token string, err error) {
	if err == nil {
		err = u.outbox.Enqueue(ctx, model.OutboxMessage{Kind: kind, Payload: model.OutboxPayload{UserID: userID, Token: token}})
	}
	if err != nil {
		u.logger.Error("queue account email failed",
			slog.String("kind", string(kind)),
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
	}
}
