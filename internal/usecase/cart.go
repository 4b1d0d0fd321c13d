package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
)

// CartUseCase manages a customer's cart lines capped by product stock.
type CartUseCase struct {
	cart     repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(cart repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{cart: cart, products: products}
}

// List returns the caller's cart.
func (u *CartUseCase) List(ctx context.Context, p model.Principal) ([]model.CartItem, error) {
	if p == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	return u.cart.ListByUser(ctx, p.SubjectID())
}

// Add puts quantity units of a product in the cart, accumulating onto an existing line.
func (u *CartUseCase) Add(ctx context.Context, p model.Principal, productID int64, quantity int) (*model.CartItem, error) {
	if p == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	if productID <= 0 {
		return nil, domainErrors.ErrMissingFields
	}
	if quantity < 1 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	product, err := u.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	total := quantity
	existing, err := u.cart.FindByProduct(ctx, p.SubjectID(), productID)
	switch {
	case err == nil:
		total += existing.Quantity
	case !errors.Is(err, domainErrors.ErrCartItemNotFound):
		return nil, err
	}
	if total > product.Stock {
		return nil, domainErrors.ErrInsufficientStock
	}
	return u.cart.Upsert(ctx, p.SubjectID(), productID, total)
}

// Update sets the absolute quantity of a cart line.
func (u *CartUseCase) Update(ctx context.Context, p model.Principal, itemID int64, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	item, err := u.owned(ctx, p, itemID)
	if err != nil {
		return nil, err
	}
	if quantity > item.Stock {
		return nil, domainErrors.ErrInsufficientStock
	}
	return u.cart.UpdateQuantity(ctx, itemID, quantity)
}

// Delete removes a cart line.
func (u *CartUseCase) Delete(ctx context.Context, p model.Principal, itemID int64) error {
	if _, err := u.owned(ctx, p, itemID); err != nil {
		return err
	}
	return u.cart.Delete(ctx, itemID)
}

// Clear empties the caller's cart.
func (u *CartUseCase) Clear(ctx context.Context, p model.Principal) error {
	if p == nil {
		return domainErrors.ErrUnauthorized
	}
	return u.cart.ClearByUser(ctx, p.SubjectID())
}

func (u *CartUseCase) owned(ctx context.Context, p model.Principal, itemID int64) (*model.CartItem, error) {
	if p == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	if itemID <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	item, err := u.cart.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !model.CanAccess(p, item.UserID) {
		return nil, domainErrors.ErrForbidden
	}
	return item, nil
}
