// internal/application/usecase/wishlist_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	cartdom "agromart/internal/domain/cart"
	wldom "agromart/internal/domain/wishlist"
)

var (
	ErrWishlistInvalidArgument = errors.New("wishlist_usecase: invalid argument")
)

// WishlistUsecase coordinates wishlist operations.
type WishlistUsecase struct {
	repo  wldom.Repository
	clock Clock
}

func NewWishlistUsecase(repo wldom.Repository) *WishlistUsecase {
	return &WishlistUsecase{repo: repo, clock: systemClock{}}
}

func NewWishlistUsecaseWithClock(repo wldom.Repository, clock Clock) *WishlistUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &WishlistUsecase{repo: repo, clock: clock}
}

// Get returns the wishlist for userID; absent means empty (not an error).
func (uc *WishlistUsecase) Get(ctx context.Context, userID string) (*wldom.Wishlist, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrWishlistInvalidArgument
	}

	w, err := uc.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if w != nil {
		return w, nil
	}
	return wldom.NewWishlist(uid, uc.clock.Now())
}

// AddItem saves a product snapshot (idempotent) and persists.
func (uc *WishlistUsecase) AddItem(ctx context.Context, userID string, p cartdom.ProductSnapshot) (*wldom.Wishlist, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" || strings.TrimSpace(p.ID) == "" {
		return nil, ErrWishlistInvalidArgument
	}

	w, err := uc.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := w.Add(p, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// RemoveItem drops productID. No-op if absent.
func (uc *WishlistUsecase) RemoveItem(ctx context.Context, userID, productID string) (*wldom.Wishlist, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" {
		return nil, ErrWishlistInvalidArgument
	}

	w, err := uc.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := w.Remove(pid, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Clear empties the wishlist and persists the empty state.
func (uc *WishlistUsecase) Clear(ctx context.Context, userID string) (*wldom.Wishlist, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrWishlistInvalidArgument
	}

	w, err := uc.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := w.Clear(uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}
