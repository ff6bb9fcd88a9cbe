// internal/adapters/out/firestore/wishlist_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	wldom "agromart/internal/domain/wishlist"
)

const defaultWishlistsCollection = "wishlists"

// WishlistRepositoryFS implements wishlist.Repository using Firestore.
// - collection: wishlists
// - docId: userId
type WishlistRepositoryFS struct {
	Client     *firestore.Client
	Collection string
}

func NewWishlistRepositoryFS(client *firestore.Client) *WishlistRepositoryFS {
	return &WishlistRepositoryFS{Client: client, Collection: defaultWishlistsCollection}
}

func (r *WishlistRepositoryFS) col() *firestore.CollectionRef {
	name := strings.TrimSpace(r.Collection)
	if name == "" {
		name = defaultWishlistsCollection
	}
	return r.Client.Collection(name)
}

// GetByUserID returns (nil, nil) if not found (nil policy).
func (r *WishlistRepositoryFS) GetByUserID(ctx context.Context, userID string) (*wldom.Wishlist, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("wishlist_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("wishlist_repository_fs: userID is empty")
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	return wishlistFromSnapshot(uid, snap), nil
}

func (r *WishlistRepositoryFS) Upsert(ctx context.Context, w *wldom.Wishlist) error {
	if r == nil || r.Client == nil {
		return errors.New("wishlist_repository_fs: firestore client is nil")
	}
	if w == nil || strings.TrimSpace(w.ID) == "" {
		return errors.New("wishlist_repository_fs: wishlist.ID is required")
	}

	items := make([]map[string]any, 0, len(w.Items))
	for _, it := range w.Items {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" {
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
			"addedAt": it.AddedAt,
		})
	}

	_, err := r.col().Doc(w.ID).Set(ctx, map[string]any{
		"items":     items,
		"createdAt": w.CreatedAt,
		"updatedAt": w.UpdatedAt,
	})
	return err
}

func (r *WishlistRepositoryFS) DeleteByUserID(ctx context.Context, userID string) error {
	if r == nil || r.Client == nil {
		return errors.New("wishlist_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("wishlist_repository_fs: userID is empty")
	}

	_, err := r.col().Doc(uid).Delete(ctx)
	return err
}

func wishlistFromSnapshot(userID string, snap *firestore.DocumentSnapshot) *wldom.Wishlist {
	w := &wldom.Wishlist{
		ID:    userID,
		Items: []wldom.Item{},
	}
	if snap == nil {
		return w
	}
	raw := snap.Data()
	if raw == nil {
		return w
	}

	if t, ok := asTime(raw["createdAt"]); ok {
		w.CreatedAt = t
	}
	if t, ok := asTime(raw["updatedAt"]); ok {
		w.UpdatedAt = t
	}

	if arr, ok := raw["items"].([]any); ok {
		for _, v := range arr {
			mv, ok := v.(map[string]any)
			if !ok {
				continue
			}

			pid := strings.TrimSpace(asString(mv["productId"]))
			var item wldom.Item
			if pm, ok := mv["product"].(map[string]any); ok {
				item.Product = productFromMap(pm)
			}
			if pid == "" {
				pid = strings.TrimSpace(item.Product.ID)
			}
			if pid == "" {
				continue
			}
			item.ProductID = pid
			item.Product.ID = pid
			if t, ok := asTime(mv["addedAt"]); ok {
				item.AddedAt = t
			}

			w.Items = append(w.Items, item)
		}
	}
	return w
}
