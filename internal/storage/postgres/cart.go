package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

type cartRepository struct {
	storage *Storage
}

const cartSelect = `SELECT c.id, c.user_id, c.product_id, c.quantity, p.name, p.price, p.stock, c.created_at, c.updated_at
                    FROM cart_items c JOIN products p ON p.id = c.product_id`

func scanCartItem(row pgx.Row) (model.CartItem, error) {
	var c model.CartItem
	err := row.Scan(&c.ID, &c.UserID, &c.ProductID, &c.Quantity, &c.ProductName, &c.Price, &c.Stock, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	rows, err := r.storage.pool.Query(ctx, cartSelect+` WHERE c.user_id=$1 ORDER BY c.created_at, c.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return collect(rows, scanCartItem)
}

func (r *cartRepository) Get(ctx context.Context, id int64) (*model.CartItem, error) {
	item, err := scanCartItem(r.storage.pool.QueryRow(ctx, cartSelect+` WHERE c.id=$1`, id))
	if err != nil {
		return nil, translate(err, domainErrors.ErrCartItemNotFound)
	}
	return &item, nil
}

func (r *cartRepository) FindByProduct(ctx context.Context, userID, productID int64) (*model.CartItem, error) {
	item, err := scanCartItem(r.storage.pool.QueryRow(ctx, cartSelect+` WHERE c.user_id=$1 AND c.product_id=$2`, userID, productID))
	if err != nil {
		return nil, translate(err, domainErrors.ErrCartItemNotFound)
	}
	return &item, nil
}

func (r *cartRepository) Upsert(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	const query = `INSERT INTO cart_items (user_id, product_id, quantity) VALUES ($1, $2, $3)
                   ON CONFLICT (user_id, product_id) DO UPDATE SET quantity=EXCLUDED.quantity, updated_at=NOW()
                   RETURNING id`
	var id int64
	if err := r.storage.pool.QueryRow(ctx, query, userID, productID, quantity).Scan(&id); err != nil {
		return nil, translate(err, domainErrors.ErrProductNotFound)
	}
	return r.Get(ctx, id)
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) (*model.CartItem, error) {
	if err := execAffected(ctx, r.storage.pool, domainErrors.ErrCartItemNotFound,
		`UPDATE cart_items SET quantity=$2, updated_at=NOW() WHERE id=$1`, id, quantity); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *cartRepository) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrCartItemNotFound, `DELETE FROM cart_items WHERE id=$1`, id)
}

func (r *cartRepository) ClearByUser(ctx context.Context, userID int64) error {
	if _, err := r.storage.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
