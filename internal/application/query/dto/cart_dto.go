// internal/application/query/dto/cart_dto.go
package dto

import "agromart/internal/domain/money"

// CartDTO is the response shape for the cart screen.
// Derived fields are echoed as plain JSON numbers.
type CartDTO struct {
	CartID string        `json:"cartId"`
	Items  []CartItemDTO `json:"items"`

	Subtotal money.Amount `json:"subtotal"`
	Shipping money.Amount `json:"shipping"`
	Tax      money.Amount `json:"tax"`
	Total    money.Amount `json:"total"`

	CreatedAt *string `json:"createdAt,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

type CartItemDTO struct {
	ProductID string     `json:"productId"`
	Product   ProductDTO `json:"product"`
	Qty       int        `json:"quantity"`

	// resolved per-line amount for the cart view
	LineTotal money.Amount `json:"lineTotal"`
}

type ProductDTO struct {
	ID       string       `json:"id"`
	Name     string       `json:"name,omitempty"`
	Price    money.Amount `json:"price"`
	Stock    int          `json:"stock,omitempty"`
	Unit     string       `json:"unit,omitempty"`
	Category string       `json:"category,omitempty"`
	ImageURL string       `json:"imageUrl,omitempty"`
}

// WishlistDTO is the response shape for the wishlist screen.
type WishlistDTO struct {
	UserID string            `json:"userId"`
	Items  []WishlistItemDTO `json:"items"`

	CreatedAt *string `json:"createdAt,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

type WishlistItemDTO struct {
	ProductID string     `json:"productId"`
	Product   ProductDTO `json:"product"`
	AddedAt   *string    `json:"addedAt,omitempty"`
}
