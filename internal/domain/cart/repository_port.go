// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for Cart.
//
// Snapshot shape (JSON-compatible, one blob per cartId):
//
//	{
//	  "items": [ { "productId": "...", "product": { ... }, "quantity": 1 } ],
//	  "subtotal": 0, "shipping": 0, "tax": 0, "total": 0,
//	  "createdAt": ..., "updatedAt": ...
//	}
//
// Not-found policy: GetByCartID returns (nil, nil) when no snapshot exists;
// the application layer treats nil as "empty cart".
// Corrupt policy: when the stored blob cannot be decoded, implementations
// return an error wrapping ErrCorruptSnapshot; the application layer clears
// the entry and continues empty.
type Repository interface {
	GetByCartID(ctx context.Context, cartID string) (*Cart, error)

	// Upsert overwrites the full snapshot (create or update).
	Upsert(ctx context.Context, c *Cart) error

	// DeleteByCartID removes the snapshot (used only for corrupt-entry
	// recovery; clear() persists an empty cart instead of deleting).
	DeleteByCartID(ctx context.Context, cartID string) error
}
