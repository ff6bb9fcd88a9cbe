// internal/adapters/out/memory/cart_repository_mem.go
package memory

import (
	"context"
	"strings"
	"sync"

	"agromart/internal/adapters/out/snapshot"
	cartdom "agromart/internal/domain/cart"
)

// CartRepositoryMem keeps encoded snapshots in process memory. Used by tests
// and by CART_BACKEND=memory (dev runs without external stores).
//
// It stores the encoded blob, not the domain struct, so the round-trip goes
// through the same codec as the redis/postgres adapters.
type CartRepositoryMem struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewCartRepositoryMem() *CartRepositoryMem {
	return &CartRepositoryMem{docs: map[string][]byte{}}
}

func (r *CartRepositoryMem) GetByCartID(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, cartdom.ErrInvalidCart
	}

	r.mu.RLock()
	data, ok := r.docs[cid]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return snapshot.DecodeCart(cid, data)
}

func (r *CartRepositoryMem) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if c == nil || strings.TrimSpace(c.ID) == "" {
		return cartdom.ErrInvalidCart
	}

	data, err := snapshot.EncodeCart(c)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.docs[c.ID] = data
	r.mu.Unlock()
	return nil
}

func (r *CartRepositoryMem) DeleteByCartID(ctx context.Context, cartID string) error {
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return cartdom.ErrInvalidCart
	}

	r.mu.Lock()
	delete(r.docs, cid)
	r.mu.Unlock()
	return nil
}

// PutRaw stores an arbitrary blob under cartID (tests inject corrupt data).
func (r *CartRepositoryMem) PutRaw(cartID string, data []byte) {
	r.mu.Lock()
	r.docs[strings.TrimSpace(cartID)] = data
	r.mu.Unlock()
}

// Has reports whether a snapshot exists for cartID.
func (r *CartRepositoryMem) Has(cartID string) bool {
	r.mu.RLock()
	_, ok := r.docs[strings.TrimSpace(cartID)]
	r.mu.RUnlock()
	return ok
}
