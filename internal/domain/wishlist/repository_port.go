// internal/domain/wishlist/repository_port.go
package wishlist

import "context"

// Repository is a persistence port for Wishlist.
// Not-found policy: GetByUserID returns (nil, nil) when absent.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Wishlist, error)
	Upsert(ctx context.Context, w *Wishlist) error
	DeleteByUserID(ctx context.Context, userID string) error
}
