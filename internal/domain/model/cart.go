package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one product line in a customer's cart. Product fields are joined at read time.
type CartItem struct {
	ID          int64
	UserID      int64
	ProductID   int64
	Quantity    int
	ProductName string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
