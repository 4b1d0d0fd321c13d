package repository

import (
	"context"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// CartRepository describes persistence operations for cart lines.
type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	Get(ctx context.Context, id int64) (*model.CartItem, error)
	FindByProduct(ctx context.Context, userID, productID int64) (*model.CartItem, error)
	// Upsert sets the absolute quantity of the user's line for productID.
	Upsert(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) (*model.CartItem, error)
	Delete(ctx context.Context, id int64) error
	ClearByUser(ctx context.Context, userID int64) error
}
