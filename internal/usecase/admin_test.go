package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	testhelpers "github.com/polkiloo/mysticmart/internal/test"
)

func TestAdminUsers(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Put(model.User{ID: 1, Email: "a@example.com", Role: model.RoleUser})
	users.Put(model.User{ID: 2, Email: "b@example.com", Role: model.RoleUser})
	uc := NewAdminUseCase(users, testhelpers.StatsRepositoryStub{})
	ctx := context.Background()

	list, err := uc.Users(ctx, "  ", model.Page{})
	if err != nil || len(list) != 2 {
		t.Fatalf("unexpected users %v %v", list, err)
	}

	promoted, err := uc.SetRole(ctx, 2, " Admin ")
	if err != nil || promoted.Role != model.RoleAdmin {
		t.Fatalf("unexpected role change %+v %v", promoted, err)
	}
	if _, err := uc.SetRole(ctx, 2, "owner"); !errors.Is(err, domainErrors.ErrInvalidRole) {
		t.Fatalf("expected invalid role, got %v", err)
	}
	if _, err := uc.SetRole(ctx, 0, "user"); !errors.Is(err, domainErrors.ErrInvalidID) {
		t.Fatalf("expected invalid id, got %v", err)
	}

	if err := uc.DeleteUser(ctx, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := uc.User(ctx, 1); !errors.Is(err, domainErrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestAdminStats(t *testing.T) {
	want := &model.Stats{Users: 3, Orders: 2, Revenue: decimal.NewFromInt(2500)}
	uc := NewAdminUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.StatsRepositoryStub{Stats: want})
	got, err := uc.Stats(context.Background())
	if err != nil || got != want {
		t.Fatalf("unexpected stats %+v %v", got, err)
	}
}
