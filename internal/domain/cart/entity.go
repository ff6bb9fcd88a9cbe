// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"

	"agromart/internal/domain/money"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")

	// ErrCorruptSnapshot is returned by repository implementations when the
	// persisted snapshot cannot be decoded. The usecase recovers by clearing
	// the entry and starting from an empty cart.
	ErrCorruptSnapshot = errors.New("cart: corrupt snapshot")
)

// Derived-field rates.
//   - shipping = subtotal * 10% (only when subtotal > 0)
//   - tax      = subtotal * 8%  (always; 0 subtotal yields 0)
const (
	ShippingRateBasisPoints = 1000
	TaxRateBasisPoints      = 800
)

// ProductSnapshot is the product record captured at the moment the item was
// first added. It is never refreshed from the catalog afterwards: a later
// price change must not affect items already in the cart (price protection).
type ProductSnapshot struct {
	ID       string       `json:"id"`
	Name     string       `json:"name,omitempty"`
	Price    money.Amount `json:"price"`
	Stock    int          `json:"stock,omitempty"`
	Unit     string       `json:"unit,omitempty"`     // e.g. "kg", "bag", "crate"
	Category string       `json:"category,omitempty"` // e.g. "seeds", "fertilizer"
	ImageURL string       `json:"imageUrl,omitempty"`
}

// LineItem represents one product entry in the cart.
// Uniqueness is defined by ProductID (the merge key).
type LineItem struct {
	ProductID string          `json:"productId"`
	Product   ProductSnapshot `json:"product"`
	Qty       int             `json:"quantity"`
}

// Totals are the derived monetary fields. They are never set directly by a
// caller; Compute is the single source of truth.
type Totals struct {
	Subtotal money.Amount `json:"subtotal"`
	Shipping money.Amount `json:"shipping"`
	Tax      money.Amount `json:"tax"`
	Total    money.Amount `json:"total"`
}

// Compute recomputes the derived fields from items. Pure function, called
// synchronously at the end of every mutation (no hidden reactivity).
func Compute(items []LineItem) Totals {
	var subtotal money.Amount
	for _, it := range items {
		subtotal += it.Product.Price.MulInt(it.Qty)
	}

	var shipping money.Amount
	if subtotal > 0 {
		shipping = subtotal.BasisPoints(ShippingRateBasisPoints)
	}
	tax := subtotal.BasisPoints(TaxRateBasisPoints)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// Cart represents one cart snapshot.
//   - ID is the persistence key (session / user scoped cartId)
//   - Items keep insertion order and are unique by ProductID
//   - Totals are always consistent with Items after any mutation
type Cart struct {
	ID string `json:"id"`

	Items []LineItem `json:"items"`

	Totals

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCart creates an empty cart (all derived fields zero).
func NewCart(id string, now time.Time) (*Cart, error) {
	cid := strings.TrimSpace(id)
	if cid == "" {
		return nil, ErrInvalidCart
	}
	return &Cart{
		ID:        cid,
		Items:     []LineItem{},
		Totals:    Totals{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AddItem increments quantity for product.ID, or appends a new line item.
// The snapshotted product of an existing line item is NOT replaced.
// qty <= 0 is a no-op: a non-positive quantity must never enter via the
// add path (the source storefront left this unvalidated; we do not).
func (c *Cart) AddItem(p ProductSnapshot, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(p.ID)
	if pid == "" || p.Price < 0 {
		return ErrInvalidCart
	}
	if qty <= 0 {
		// no-op (clamp policy)
		return nil
	}

	if c.Items == nil {
		c.Items = []LineItem{}
	}

	idx := findItemIndex(c.Items, pid)
	if idx >= 0 {
		c.Items[idx].Qty += qty
	} else {
		p.ID = pid
		c.Items = append(c.Items, LineItem{
			ProductID: pid,
			Product:   p,
			Qty:       qty,
		})
	}

	c.touch(now)
	return c.validate()
}

// SetQty sets the absolute quantity for productID.
// qty <= 0 removes the item entirely. Unknown productID is a no-op.
func (c *Cart) SetQty(productID string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidCart
	}

	idx := findItemIndex(c.Items, pid)
	if idx < 0 {
		// absent -> no-op (derived fields unchanged)
		return nil
	}

	if qty <= 0 {
		c.Items = removeIndex(c.Items, idx)
	} else {
		c.Items[idx].Qty = qty
	}

	c.touch(now)
	return c.validate()
}

// Remove removes productID from the cart. No-op if absent.
func (c *Cart) Remove(productID string, now time.Time) error {
	return c.SetQty(productID, 0, now)
}

// Clear resets items and all derived fields to zero. The cart itself stays
// (the persistence key keeps holding the empty snapshot).
func (c *Cart) Clear(now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	c.Items = []LineItem{}
	c.touch(now)
	return c.validate()
}

// GetTotal is a pure read accessor for the current total.
func (c *Cart) GetTotal() money.Amount {
	if c == nil {
		return 0
	}
	return c.Total
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
}

// validate normalizes items, recomputes the derived fields and checks the
// invariants. It runs after every mutation so stale totals are never
// observable.
func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}

	c.Items = normalizeAndMerge(c.Items)

	for _, it := range c.Items {
		if strings.TrimSpace(it.ProductID) == "" || it.Qty <= 0 || it.Product.Price < 0 {
			return ErrInvalidCart
		}
	}

	c.Totals = Compute(c.Items)
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func findItemIndex(items []LineItem, pid string) int {
	for i := range items {
		if items[i].ProductID == pid {
			return i
		}
	}
	return -1
}

func removeIndex(items []LineItem, idx int) []LineItem {
	if idx < 0 || idx >= len(items) {
		return items
	}
	// preserve order
	return append(items[:idx], items[idx+1:]...)
}

// normalizeAndMerge drops unusable entries (empty id, non-positive qty) and
// merges duplicate ProductIDs by summing quantities. First occurrence wins
// for the product snapshot and keeps its position (insertion order).
func normalizeAndMerge(src []LineItem) []LineItem {
	out := make([]LineItem, 0, len(src))
	index := map[string]int{}

	for _, it := range src {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" {
			pid = strings.TrimSpace(it.Product.ID)
		}
		if pid == "" || it.Qty <= 0 {
			continue
		}

		if i, ok := index[pid]; ok {
			out[i].Qty += it.Qty
			continue
		}

		it.ProductID = pid
		if strings.TrimSpace(it.Product.ID) == "" {
			it.Product.ID = pid
		}
		index[pid] = len(out)
		out = append(out, it)
	}
	return out
}

// CloneItems returns a copy of items so observers never share the backing
// slice with the cart.
func CloneItems(src []LineItem) []LineItem {
	if len(src) == 0 {
		return []LineItem{}
	}
	out := make([]LineItem, len(src))
	copy(out, src)
	return out
}
