package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

type adminRepository struct {
	storage *Storage
}

const userColumns = `id, email, name, password_hash, role, email_verified, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (email, name, password_hash, role, email_verified)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING ` + userColumns
	created, err := scanUser(r.storage.pool.QueryRow(ctx, query, user.Email, user.Name, user.PasswordHash, user.Role, user.EmailVerified))
	if err != nil {
		return nil, translate(err, domainErrors.ErrUserNotFound)
	}
	return &created, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, translate(err, domainErrors.ErrUserNotFound)
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, domainErrors.ErrUserNotFound)
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context, search string, page model.Page) ([]model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users
                   WHERE $1 = '' OR email ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
                   ORDER BY created_at DESC, id DESC
                   LIMIT $2 OFFSET $3`
	rows, err := r.storage.pool.Query(ctx, query, search, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collect(rows, scanUser)
}

func (r *userRepository) UpdateRole(ctx context.Context, id int64, role model.Role) (*model.User, error) {
	const query = `UPDATE users SET role=$2, updated_at=NOW() WHERE id=$1 RETURNING ` + userColumns
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, id, role))
	if err != nil {
		return nil, translate(err, domainErrors.ErrUserNotFound)
	}
	return &u, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrUserNotFound,
		`UPDATE users SET password_hash=$2, updated_at=NOW() WHERE id=$1`, id, passwordHash)
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, id int64) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrUserNotFound,
		`UPDATE users SET email_verified=TRUE, updated_at=NOW() WHERE id=$1`, id)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrUserNotFound, `DELETE FROM users WHERE id=$1`, id)
}

const adminColumns = `id, email, name, password_hash, last_login_at, created_at`

func scanAdmin(row pgx.Row) (model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.LastLoginAt, &a.CreatedAt)
	return a, err
}

func (r *adminRepository) Create(ctx context.Context, admin model.Admin) (*model.Admin, bool, error) {
	const query = `INSERT INTO admins (email, name, password_hash) VALUES ($1, $2, $3)
                   ON CONFLICT (email) DO NOTHING
                   RETURNING ` + adminColumns
	created, err := scanAdmin(r.storage.pool.QueryRow(ctx, query, admin.Email, admin.Name, admin.PasswordHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetByEmail(ctx, admin.Email)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &created, true, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	const query = `SELECT ` + adminColumns + ` FROM admins WHERE email=$1`
	a, err := scanAdmin(r.storage.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, translate(err, domainErrors.ErrNotFound)
	}
	return &a, nil
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	const query = `SELECT ` + adminColumns + ` FROM admins WHERE id=$1`
	a, err := scanAdmin(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, domainErrors.ErrNotFound)
	}
	return &a, nil
}

func (r *adminRepository) TouchLogin(ctx context.Context, id int64) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrNotFound, `UPDATE admins SET last_login_at=NOW() WHERE id=$1`, id)
}
