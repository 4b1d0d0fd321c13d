package usecase

import (
	"context"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
)

// MessageUseCase stores contact form enquiries and serves them to the back office.
type MessageUseCase struct {
	messages repository.MessageRepository
	logger   *slog.Logger
}

// NewMessageUseCase constructs MessageUseCase.
func NewMessageUseCase(messages repository.MessageRepository, logger *slog.Logger) *MessageUseCase {
	return &MessageUseCase{messages: messages, logger: logger}
}

// Submit validates and stores a visitor enquiry.
func (u *MessageUseCase) Submit(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = NormalizeEmail(msg.Email)
	msg.Phone = strings.TrimSpace(msg.Phone)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)
	if err := requireText(msg.Name, msg.Email, msg.Message); err != nil {
		return nil, err
	}
	if err := ValidateEmail(msg.Email); err != nil {
		return nil, err
	}
	stored, err := u.messages.Create(ctx, msg)
	if err != nil {
		return nil, err
	}
	u.logger.Info("contact message received", slog.Int64("message_id", stored.ID))
	return stored, nil
}

// List returns enquiries, optionally only unread ones.
func (u *MessageUseCase) List(ctx context.Context, unreadOnly bool, page model.Page) ([]model.ContactMessage, error) {
	return u.messages.List(ctx, unreadOnly, model.NewPage(page.Limit, page.Offset))
}

// MarkRead flags an enquiry as read or unread.
func (u *MessageUseCase) MarkRead(ctx context.Context, id int64, read bool) (*model.ContactMessage, error) {
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	return u.messages.MarkRead(ctx, id, read)
}

// Delete removes an enquiry.
func (u *MessageUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domainErrors.ErrInvalidID
	}
	return u.messages.Delete(ctx, id)
}
