// internal/adapters/out/memory/wishlist_repository_mem.go
package memory

import (
	"context"
	"strings"
	"sync"

	wldom "agromart/internal/domain/wishlist"
)

// WishlistRepositoryMem keeps wishlists in process memory. Used by tests and
// as the wishlist store when Firestore is not configured.
type WishlistRepositoryMem struct {
	mu    sync.RWMutex
	lists map[string]*wldom.Wishlist
}

func NewWishlistRepositoryMem() *WishlistRepositoryMem {
	return &WishlistRepositoryMem{lists: map[string]*wldom.Wishlist{}}
}

func (r *WishlistRepositoryMem) GetByUserID(ctx context.Context, userID string) (*wldom.Wishlist, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, wldom.ErrInvalidWishlist
	}

	r.mu.RLock()
	w, ok := r.lists[uid]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	// copy so callers never share the stored slice
	cp := *w
	cp.Items = append([]wldom.Item(nil), w.Items...)
	return &cp, nil
}

func (r *WishlistRepositoryMem) Upsert(ctx context.Context, w *wldom.Wishlist) error {
	if w == nil || strings.TrimSpace(w.ID) == "" {
		return wldom.ErrInvalidWishlist
	}

	cp := *w
	cp.Items = append([]wldom.Item(nil), w.Items...)

	r.mu.Lock()
	r.lists[cp.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *WishlistRepositoryMem) DeleteByUserID(ctx context.Context, userID string) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return wldom.ErrInvalidWishlist
	}

	r.mu.Lock()
	delete(r.lists, uid)
	r.mu.Unlock()
	return nil
}
