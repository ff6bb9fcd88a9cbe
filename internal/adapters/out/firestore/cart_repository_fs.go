// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "agromart/internal/domain/cart"
)

const defaultCartsCollection = "carts"

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: carts
// - docId: cartId (docId is the source of truth)
// - fields: items(array), subtotal, shipping, tax, total, createdAt, updatedAt
//
// Items are an array (not a map) so the insertion order of line items
// survives the round trip.
type CartRepositoryFS struct {
	Client     *firestore.Client
	Collection string
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client, Collection: defaultCartsCollection}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	name := strings.TrimSpace(r.Collection)
	if name == "" {
		name = defaultCartsCollection
	}
	return r.Client.Collection(name)
}

// GetByCartID returns (nil, nil) if not found (nil policy).
func (r *CartRepositoryFS) GetByCartID(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, errors.New("cart_repository_fs: cartID is empty")
	}

	snap, err := r.col().Doc(cid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	// Parse snap.Data() by hand instead of DataTo: schema drift in stored
	// docs must degrade to dropped entries, not a 500.
	return cartFromSnapshot(cid, snap), nil
}

// Upsert saves cart by docId=cart.ID. Full overwrite (simple & predictable).
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_fs: cart is nil")
	}

	cid := strings.TrimSpace(c.ID)
	if cid == "" {
		return errors.New("cart_repository_fs: Upsert requires cart.ID as docId")
	}

	_, err := r.col().Doc(cid).Set(ctx, cartDocFromDomain(c))
	return err
}

func (r *CartRepositoryFS) DeleteByCartID(ctx context.Context, cartID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return errors.New("cart_repository_fs: cartID is empty")
	}

	_, err := r.col().Doc(cid).Delete(ctx)
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

// NOTE: amounts are stored as float64 currency units (Firestore number);
// they are recomputed from items on read, so drift in stored derived fields
// cannot leak to callers.

func cartDocFromDomain(c *cartdom.Cart) map[string]any {
	items := make([]map[string]any, 0, len(c.Items))
	for _, it := range c.Items {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" || it.Qty <= 0 {
			continue
		}
		items = append(items, map[string]any{
			"productId": pid,
			"product": map[string]any{
				"id":       it.Product.ID,
				"name":     it.Product.Name,
				"price":    it.Product.Price.Float64(),
				"stock":    it.Product.Stock,
				"unit":     it.Product.Unit,
				"category": it.Product.Category,
				"imageUrl": it.Product.ImageURL,
			},
			"quantity": it.Qty,
		})
	}

	return map[string]any{
		"items":     items,
		"subtotal":  c.Subtotal.Float64(),
		"shipping":  c.Shipping.Float64(),
		"tax":       c.Tax.Float64(),
		"total":     c.Total.Float64(),
		"createdAt": c.CreatedAt,
		"updatedAt": c.UpdatedAt,
	}
}

// cartFromSnapshot parses document data with backward compatibility:
// unusable entries are dropped and derived fields recomputed.
func cartFromSnapshot(cartID string, snap *firestore.DocumentSnapshot) *cartdom.Cart {
	c := &cartdom.Cart{
		ID:    cartID,
		Items: []cartdom.LineItem{},
	}

	if snap == nil {
		c.Totals = cartdom.Compute(c.Items)
		return c
	}
	raw := snap.Data()
	if raw == nil {
		c.Totals = cartdom.Compute(c.Items)
		return c
	}

	if t, ok := asTime(raw["createdAt"]); ok {
		c.CreatedAt = t
	}
	if t, ok := asTime(raw["updatedAt"]); ok {
		c.UpdatedAt = t
	}

	if arr, ok := raw["items"].([]any); ok {
		for _, v := range arr {
			mv, ok := v.(map[string]any)
			if !ok {
				continue
			}

			pid := strings.TrimSpace(asString(mv["productId"]))
			qty := asInt(mv["quantity"])

			var p cartdom.ProductSnapshot
			if pm, ok := mv["product"].(map[string]any); ok {
				p = productFromMap(pm)
			}
			if pid == "" {
				pid = strings.TrimSpace(p.ID)
			}
			if pid == "" || qty <= 0 || p.Price < 0 {
				continue
			}
			p.ID = pid

			c.Items = append(c.Items, cartdom.LineItem{
				ProductID: pid,
				Product:   p,
				Qty:       qty,
			})
		}
	}

	c.Totals = cartdom.Compute(c.Items)
	return c
}

func productFromMap(m map[string]any) cartdom.ProductSnapshot {
	return cartdom.ProductSnapshot{
		ID:       strings.TrimSpace(asString(m["id"])),
		Name:     asString(m["name"]),
		Price:    asAmount(m["price"]),
		Stock:    asInt(m["stock"]),
		Unit:     asString(m["unit"]),
		Category: asString(m["category"]),
		ImageURL: asString(m["imageUrl"]),
	}
}
