// internal/application/query/cart_query.go
package query

import (
	"context"
	"errors"
	"strings"
	"time"

	"agromart/internal/application/query/dto"
	usecase "agromart/internal/application/usecase"
	cartdom "agromart/internal/domain/cart"
	wldom "agromart/internal/domain/wishlist"
)

// CartQuery assembles the cart read model.
//
// Unlike the write side it never returns "not found": an absent cart is an
// empty cart (stable UX). It reads through the usecase so corrupt-snapshot
// recovery applies on the read path too.
type CartQuery struct {
	UC *usecase.CartUsecase
}

func NewCartQuery(uc *usecase.CartUsecase) *CartQuery {
	return &CartQuery{UC: uc}
}

// GetCartQuery matches the handler-side CartQueryService port.
func (q *CartQuery) GetCartQuery(ctx context.Context, cartID string) (any, error) {
	return q.GetByCartID(ctx, cartID)
}

func (q *CartQuery) GetByCartID(ctx context.Context, cartID string) (dto.CartDTO, error) {
	if q == nil || q.UC == nil {
		return dto.CartDTO{}, errors.New("cart query: usecase is nil")
	}

	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return dto.CartDTO{}, usecase.ErrCartInvalidArgument
	}

	c, err := q.UC.Get(ctx, cid)
	if err != nil {
		return dto.CartDTO{}, err
	}
	return ToCartDTO(c), nil
}

// ToCartDTO maps a domain cart to the response shape.
func ToCartDTO(c *cartdom.Cart) dto.CartDTO {
	if c == nil {
		return dto.CartDTO{Items: []dto.CartItemDTO{}}
	}

	out := dto.CartDTO{
		CartID:    c.ID,
		Items:     make([]dto.CartItemDTO, 0, len(c.Items)),
		Subtotal:  c.Subtotal,
		Shipping:  c.Shipping,
		Tax:       c.Tax,
		Total:     c.Total,
		CreatedAt: rfc3339Ptr(c.CreatedAt),
		UpdatedAt: rfc3339Ptr(c.UpdatedAt),
	}

	for _, it := range c.Items {
		out.Items = append(out.Items, dto.CartItemDTO{
			ProductID: it.ProductID,
			Product:   toProductDTO(it.Product),
			Qty:       it.Qty,
			LineTotal: it.Product.Price.MulInt(it.Qty),
		})
	}
	return out
}

// ToWishlistDTO maps a domain wishlist to the response shape.
func ToWishlistDTO(w *wldom.Wishlist) dto.WishlistDTO {
	if w == nil {
		return dto.WishlistDTO{Items: []dto.WishlistItemDTO{}}
	}

	out := dto.WishlistDTO{
		UserID:    w.ID,
		Items:     make([]dto.WishlistItemDTO, 0, len(w.Items)),
		CreatedAt: rfc3339Ptr(w.CreatedAt),
		UpdatedAt: rfc3339Ptr(w.UpdatedAt),
	}
	for _, it := range w.Items {
		out.Items = append(out.Items, dto.WishlistItemDTO{
			ProductID: it.ProductID,
			Product:   toProductDTO(it.Product),
			AddedAt:   rfc3339Ptr(it.AddedAt),
		})
	}
	return out
}

func toProductDTO(p cartdom.ProductSnapshot) dto.ProductDTO {
	return dto.ProductDTO{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		Unit:     p.Unit,
		Category: p.Category,
		ImageURL: p.ImageURL,
	}
}

func rfc3339Ptr(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
