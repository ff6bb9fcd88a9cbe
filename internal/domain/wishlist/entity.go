// internal/domain/wishlist/entity.go
package wishlist

import (
	"errors"
	"strings"
	"time"

	cartdom "agromart/internal/domain/cart"
)

var ErrInvalidWishlist = errors.New("wishlist: invalid")

// Item is one saved product. Like the cart, the product record is a snapshot
// captured at save time. No quantity: a wishlist is a set.
type Item struct {
	ProductID string                  `json:"productId"`
	Product   cartdom.ProductSnapshot `json:"product"`
	AddedAt   time.Time               `json:"addedAt"`
}

// Wishlist is a per-user set of saved products, unique by ProductID,
// insertion ordered.
type Wishlist struct {
	ID string `json:"id"`

	Items []Item `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewWishlist(id string, now time.Time) (*Wishlist, error) {
	wid := strings.TrimSpace(id)
	if wid == "" {
		return nil, ErrInvalidWishlist
	}
	return &Wishlist{
		ID:        wid,
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Add saves a product snapshot. Idempotent: adding an already-saved product
// leaves the existing snapshot (and AddedAt) untouched.
func (w *Wishlist) Add(p cartdom.ProductSnapshot, now time.Time) error {
	if w == nil {
		return ErrInvalidWishlist
	}

	pid := strings.TrimSpace(p.ID)
	if pid == "" || p.Price < 0 {
		return ErrInvalidWishlist
	}

	if w.Items == nil {
		w.Items = []Item{}
	}
	if w.has(pid) {
		return nil
	}

	p.ID = pid
	w.Items = append(w.Items, Item{
		ProductID: pid,
		Product:   p,
		AddedAt:   now,
	})
	w.touch(now)
	return nil
}

// Remove drops productID. No-op if absent.
func (w *Wishlist) Remove(productID string, now time.Time) error {
	if w == nil {
		return ErrInvalidWishlist
	}

	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidWishlist
	}

	for i := range w.Items {
		if w.Items[i].ProductID == pid {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			w.touch(now)
			return nil
		}
	}
	return nil
}

// Clear empties the wishlist.
func (w *Wishlist) Clear(now time.Time) error {
	if w == nil {
		return ErrInvalidWishlist
	}
	w.Items = []Item{}
	w.touch(now)
	return nil
}

// Has reports whether productID is saved.
func (w *Wishlist) Has(productID string) bool {
	if w == nil {
		return false
	}
	return w.has(strings.TrimSpace(productID))
}

func (w *Wishlist) has(pid string) bool {
	for i := range w.Items {
		if w.Items[i].ProductID == pid {
			return true
		}
	}
	return false
}

func (w *Wishlist) touch(now time.Time) {
	w.UpdatedAt = now
}
