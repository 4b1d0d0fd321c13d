package repository

import (
	"context"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// UserRepository describes persistence operations for storefront customers.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, search string, page model.Page) ([]model.User, error)
	UpdateRole(ctx context.Context, id int64, role model.Role) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	MarkEmailVerified(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// AdminRepository describes persistence operations for back-office operators.
type AdminRepository interface {
	// Create inserts the admin unless the email is taken and reports whether a row was written.
	Create(ctx context.Context, admin model.Admin) (*model.Admin, bool, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	GetByID(ctx context.Context, id int64) (*model.Admin, error)
	TouchLogin(ctx context.Context, id int64) error
}
