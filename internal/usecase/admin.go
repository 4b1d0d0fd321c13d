package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
)

// AdminUseCase serves customer management and the dashboard.
type AdminUseCase struct {
	users repository.UserRepository
	stats repository.StatsRepository
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(users repository.UserRepository, stats repository.StatsRepository) *AdminUseCase {
	return &AdminUseCase{users: users, stats: stats}
}

func (u *AdminUseCase) Users(ctx context.Context, search string, page model.Page) ([]model.User, error) {
	return u.users.List(ctx, strings.TrimSpace(search), model.NewPage(page.Limit, page.Offset))
}

func (u *AdminUseCase) User(ctx context.Context, id int64) (*model.User, error) {
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	return u.users.GetByID(ctx, id)
}

// SetRole grants or revokes the admin role of a customer account.
func (u *AdminUseCase) SetRole(ctx context.Context, id int64, role string) (*model.User, error) {
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	r, ok := model.ParseRole(strings.ToLower(strings.TrimSpace(role)))
	if !ok {
		return nil, domainErrors.ErrInvalidRole
	}
	return u.users.UpdateRole(ctx, id, r)
}

func (u *AdminUseCase) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return domainErrors.ErrInvalidID
	}
	return u.users.Delete(ctx, id)
}

// Stats aggregates the dashboard counters.
func (u *AdminUseCase) Stats(ctx context.Context) (*model.Stats, error) {
	return u.stats.Collect(ctx)
}
