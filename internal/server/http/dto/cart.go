package dto

import "time"

// CartRequest adds or updates a cart line. Quantity defaults to 1 on add.
type CartRequest struct {
	ID        ID   `json:"id"`
	ProductID ID   `json:"productId"`
	Quantity  *int `json:"quantity"`
	ClearAll  bool `json:"clearAll"`
}

// CartItemResponse is one cart line joined with its product.
type CartItemResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"productId"`
	ProductName string    `json:"productName"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
