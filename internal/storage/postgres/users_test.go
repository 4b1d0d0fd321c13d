package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

var userRowColumns = []string{"id", "email", "name", "password_hash", "role", "email_verified", "created_at", "updated_at"}

func userRow(id int64, email string, role model.Role) *pgxmockv3.Rows {
	now := time.Now()
	return pgxmockv3.NewRows(userRowColumns).AddRow(id, email, "Seeker", "hash", role, false, now, now)
}

func TestUserRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	input := model.User{Email: "a@example.com", Name: "Seeker", PasswordHash: "hash", Role: model.RoleUser}

	mock.ExpectQuery("INSERT INTO users").WithArgs("a@example.com", "Seeker", "hash", model.RoleUser, false).
		WillReturnRows(userRow(1, "a@example.com", model.RoleUser))
	user, err := repo.Create(context.Background(), input)
	if err != nil || user.ID != 1 || user.Email != "a@example.com" {
		t.Fatalf("unexpected result: %+v err=%v", user, err)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs("a@example.com", "Seeker", "hash", model.RoleUser, false).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	if _, err := repo.Create(context.Background(), input); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	expectMet(t, mock)
}

func TestUserRepositoryLookups(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("a@example.com").WillReturnRows(userRow(1, "a@example.com", model.RoleUser))
	if u, err := repo.GetByEmail(context.Background(), "a@example.com"); err != nil || u.ID != 1 {
		t.Fatalf("unexpected result: %+v err=%v", u, err)
	}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("missing@example.com").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByEmail(context.Background(), "missing@example.com"); !errors.Is(err, domainErrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(2)).WillReturnRows(userRow(2, "b@example.com", model.RoleAdmin))
	if u, err := repo.GetByID(context.Background(), 2); err != nil || u.Role != model.RoleAdmin {
		t.Fatalf("unexpected result: %+v err=%v", u, err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(3)).WillReturnError(errors.New("boom"))
	if _, err := repo.GetByID(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("SELECT id, email, name").WithArgs("see", 20, 0).WillReturnRows(userRow(1, "a@example.com", model.RoleUser))
	users, err := repo.List(context.Background(), "see", model.NewPage(0, 0))
	if err != nil || len(users) != 1 {
		t.Fatalf("unexpected list: %v err=%v", users, err)
	}

	mock.ExpectQuery("SELECT id, email, name").WithArgs("", 20, 0).WillReturnError(errors.New("query"))
	if _, err := repo.List(context.Background(), "", model.NewPage(0, 0)); err == nil {
		t.Fatal("expected error")
	}

	expectMet(t, mock)
}

func TestUserRepositoryMutations(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectQuery("UPDATE users SET role=").WithArgs(int64(1), model.RoleAdmin).WillReturnRows(userRow(1, "a@example.com", model.RoleAdmin))
	if u, err := repo.UpdateRole(context.Background(), 1, model.RoleAdmin); err != nil || u.Role != model.RoleAdmin {
		t.Fatalf("unexpected result: %+v err=%v", u, err)
	}

	mock.ExpectQuery("UPDATE users SET role=").WithArgs(int64(9), model.RoleAdmin).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.UpdateRole(context.Background(), 9, model.RoleAdmin); !errors.Is(err, domainErrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}

	mock.ExpectExec("UPDATE users SET password_hash=").WithArgs(int64(1), "new").WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdatePassword(context.Background(), 1, "new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE users SET email_verified=TRUE").WithArgs(int64(5)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.MarkEmailVerified(context.Background(), 5); !errors.Is(err, domainErrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM users").WithArgs(int64(1)).WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	if err := repo.Delete(context.Background(), 1); !errors.Is(err, domainErrors.ErrReferenced) {
		t.Fatalf("expected referenced error, got %v", err)
	}

	mock.ExpectExec("DELETE FROM users").WithArgs(int64(2)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectMet(t, mock)
}

func TestAdminRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &adminRepository{storage: storage}

	columns := []string{"id", "email", "name", "password_hash", "last_login_at", "created_at"}
	now := time.Now()
	input := model.Admin{Email: "root@example.com", Name: "Root", PasswordHash: "hash"}

	mock.ExpectQuery("INSERT INTO admins").WithArgs("root@example.com", "Root", "hash").
		WillReturnRows(pgxmockv3.NewRows(columns).AddRow(int64(1), "root@example.com", "Root", "hash", nil, now))
	admin, created, err := repo.Create(context.Background(), input)
	if err != nil || !created || admin.ID != 1 {
		t.Fatalf("unexpected result: %+v created=%v err=%v", admin, created, err)
	}

	mock.ExpectQuery("INSERT INTO admins").WithArgs("root@example.com", "Root", "hash").WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("FROM admins WHERE email=").WithArgs("root@example.com").
		WillReturnRows(pgxmockv3.NewRows(columns).AddRow(int64(1), "root@example.com", "Root", "hash", &now, now))
	admin, created, err = repo.Create(context.Background(), input)
	if err != nil || created || admin.LastLoginAt == nil {
		t.Fatalf("unexpected result: %+v created=%v err=%v", admin, created, err)
	}

	mock.ExpectQuery("INSERT INTO admins").WithArgs("root@example.com", "Root", "hash").WillReturnError(errors.New("insert"))
	if _, _, err := repo.Create(context.Background(), input); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("FROM admins WHERE id=").WithArgs(int64(7)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 7); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("UPDATE admins SET last_login_at").WithArgs(int64(1)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.TouchLogin(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectMet(t, mock)
}

func TestSessionRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.AdminSessions()

	expires := time.Now().Add(time.Hour)
	mock.ExpectExec("INSERT INTO admin_sessions").WithArgs("tok", int64(1), expires).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.Create(context.Background(), model.Session{Token: "tok", SubjectID: 1, ExpiresAt: expires}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("SELECT token, admin_id, expires_at, created_at FROM admin_sessions").WithArgs("tok").
		WillReturnRows(pgxmockv3.NewRows([]string{"token", "admin_id", "expires_at", "created_at"}).AddRow("tok", int64(1), expires, time.Now()))
	session, err := repo.Get(context.Background(), "tok")
	if err != nil || session.SubjectID != 1 {
		t.Fatalf("unexpected session: %+v err=%v", session, err)
	}

	mock.ExpectQuery("FROM admin_sessions").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM admin_sessions WHERE token=").WithArgs("tok").WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	customer := storage.CustomerSessions()
	mock.ExpectExec("DELETE FROM user_sessions WHERE user_id=").WithArgs(int64(4)).WillReturnError(errors.New("delete"))
	if err := customer.DeleteBySubject(context.Background(), 4); err == nil {
		t.Fatal("expected error")
	}

	expectMet(t, mock)
}
