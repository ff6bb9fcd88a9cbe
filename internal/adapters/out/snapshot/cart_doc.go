// internal/adapters/out/snapshot/cart_doc.go
//
// JSON snapshot codec shared by the blob-style repositories (redis, postgres,
// memory). One blob per cartId, shape:
//
//	{
//	  "items": [ { "productId": "...", "product": {...}, "quantity": 1 } ],
//	  "subtotal": 0, "shipping": 0, "tax": 0, "total": 0,
//	  "createdAt": "...", "updatedAt": "..."
//	}
//
// NOTE: the domain struct is NOT marshalled directly (keeps the stored shape
// stable even if the domain struct changes).
package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	cartdom "agromart/internal/domain/cart"
	"agromart/internal/domain/money"
)

type cartDoc struct {
	Items []lineItemDoc `json:"items"`

	Subtotal money.Amount `json:"subtotal"`
	Shipping money.Amount `json:"shipping"`
	Tax      money.Amount `json:"tax"`
	Total    money.Amount `json:"total"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type lineItemDoc struct {
	ProductID string     `json:"productId"`
	Product   productDoc `json:"product"`
	Qty       int        `json:"quantity"`
}

type productDoc struct {
	ID       string       `json:"id"`
	Name     string       `json:"name,omitempty"`
	Price    money.Amount `json:"price"`
	Stock    int          `json:"stock,omitempty"`
	Unit     string       `json:"unit,omitempty"`
	Category string       `json:"category,omitempty"`
	ImageURL string       `json:"imageUrl,omitempty"`
}

// EncodeCart serializes the full cart snapshot.
func EncodeCart(c *cartdom.Cart) ([]byte, error) {
	if c == nil {
		return nil, cartdom.ErrInvalidCart
	}

	doc := cartDoc{
		Items:    make([]lineItemDoc, 0, len(c.Items)),
		Subtotal: c.Subtotal,
		Shipping: c.Shipping,
		Tax:      c.Tax,
		Total:    c.Total,
	}
	if !c.CreatedAt.IsZero() {
		doc.CreatedAt = c.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !c.UpdatedAt.IsZero() {
		doc.UpdatedAt = c.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}

	for _, it := range c.Items {
		if strings.TrimSpace(it.ProductID) == "" || it.Qty <= 0 {
			continue
		}
		doc.Items = append(doc.Items, lineItemDoc{
			ProductID: it.ProductID,
			Product: productDoc{
				ID:       it.Product.ID,
				Name:     it.Product.Name,
				Price:    it.Product.Price,
				Stock:    it.Product.Stock,
				Unit:     it.Product.Unit,
				Category: it.Product.Category,
				ImageURL: it.Product.ImageURL,
			},
			Qty: it.Qty,
		})
	}

	return json.Marshal(doc)
}

// DecodeCart parses a stored blob back into a cart for cartID.
// Malformed JSON yields an error wrapping cartdom.ErrCorruptSnapshot so the
// usecase can recover (clear the entry, start empty). Unusable line items
// (empty id, qty <= 0) are dropped, and the derived fields are recomputed
// from the surviving items so they are consistent by construction.
func DecodeCart(cartID string, data []byte) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, cartdom.ErrInvalidCart
	}

	var doc cartDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", cartdom.ErrCorruptSnapshot, err)
	}

	c := &cartdom.Cart{
		ID:    cid,
		Items: make([]cartdom.LineItem, 0, len(doc.Items)),
	}

	for _, it := range doc.Items {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" {
			pid = strings.TrimSpace(it.Product.ID)
		}
		if pid == "" || it.Qty <= 0 || it.Product.Price < 0 {
			continue
		}
		c.Items = append(c.Items, cartdom.LineItem{
			ProductID: pid,
			Product: cartdom.ProductSnapshot{
				ID:       pid,
				Name:     it.Product.Name,
				Price:    it.Product.Price,
				Stock:    it.Product.Stock,
				Unit:     it.Product.Unit,
				Category: it.Product.Category,
				ImageURL: it.Product.ImageURL,
			},
			Qty: it.Qty,
		})
	}

	if t, err := time.Parse(time.RFC3339Nano, doc.CreatedAt); err == nil {
		c.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, doc.UpdatedAt); err == nil {
		c.UpdatedAt = t
	}

	// derived fields: recompute rather than trust the blob
	c.Totals = cartdom.Compute(c.Items)
	return c, nil
}
