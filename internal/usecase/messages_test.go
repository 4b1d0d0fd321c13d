package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	testhelpers "github.com/polkiloo/mysticmart/internal/test"
)

func TestMessageSubmit(t *testing.T) {
	repo := testhelpers.NewMessageRepositoryStub()
	uc := NewMessageUseCase(repo, discardLogger())
	ctx := context.Background()

	stored, err := uc.Submit(ctx, model.ContactMessage{Name: " Ravi ", Email: "Ravi@Example.com", Message: " Do you ship abroad? "})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if stored.Name != "Ravi" || stored.Email != "ravi@example.com" || stored.Message != "Do you ship abroad?" {
		t.Fatalf("expected normalized message, got %+v", stored)
	}

	if _, err := uc.Submit(ctx, model.ContactMessage{Name: "R", Email: "ravi@example.com"}); !errors.Is(err, domainErrors.ErrMissingFields) {
		t.Fatalf("expected missing fields, got %v", err)
	}
	if _, err := uc.Submit(ctx, model.ContactMessage{Name: "R", Email: "ravi", Message: "hi"}); !errors.Is(err, domainErrors.ErrInvalidEmail) {
		t.Fatalf("expected invalid email, got %v", err)
	}
}

func TestMessageBackOffice(t *testing.T) {
	repo := testhelpers.NewMessageRepositoryStub()
	uc := NewMessageUseCase(repo, discardLogger())
	ctx := context.Background()
	first, _ := uc.Submit(ctx, model.ContactMessage{Name: "A", Email: "a@example.com", Message: "one"})
	if _, err := uc.Submit(ctx, model.ContactMessage{Name: "B", Email: "b@example.com", Message: "two"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := uc.MarkRead(ctx, first.ID, true); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	unread, err := uc.List(ctx, true, model.Page{})
	if err != nil || len(unread) != 1 || unread[0].Message != "two" {
		t.Fatalf("unexpected unread list %v %v", unread, err)
	}
	if err := uc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := uc.MarkRead(ctx, first.ID, false); !errors.Is(err, domainErrors.ErrMessageNotFound) {
		t.Fatalf("expected message not found, got %v", err)
	}
}
