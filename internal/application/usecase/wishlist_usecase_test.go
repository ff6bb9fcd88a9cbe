// internal/application/usecase/wishlist_usecase_test.go
package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	outmem "agromart/internal/adapters/out/memory"
	cartdom "agromart/internal/domain/cart"
)

func newWishlistUC(t *testing.T) *WishlistUsecase {
	t.Helper()
	repo := outmem.NewWishlistRepositoryMem()
	clock := fixedClock{t: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)}
	return NewWishlistUsecaseWithClock(repo, clock)
}

func TestWishlistGetAbsentIsEmpty(t *testing.T) {
	uc := newWishlistUC(t)

	w, err := uc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, w.Items)
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	uc := newWishlistUC(t)
	ctx := context.Background()

	p := cartdom.ProductSnapshot{ID: "p1", Name: "Tomato Seeds", Price: price(t, "45.99")}
	_, err := uc.AddItem(ctx, "user-1", p)
	require.NoError(t, err)

	// second add with a changed price keeps the first snapshot
	p.Price = price(t, "99.99")
	w, err := uc.AddItem(ctx, "user-1", p)
	require.NoError(t, err)

	require.Len(t, w.Items, 1)
	assert.Equal(t, price(t, "45.99"), w.Items[0].Product.Price)
}

func TestWishlistRemoveAndClear(t *testing.T) {
	uc := newWishlistUC(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "user-1", cartdom.ProductSnapshot{ID: "p1", Price: price(t, "1")})
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "user-1", cartdom.ProductSnapshot{ID: "p2", Price: price(t, "2")})
	require.NoError(t, err)

	w, err := uc.RemoveItem(ctx, "user-1", "p1")
	require.NoError(t, err)
	require.Len(t, w.Items, 1)
	assert.Equal(t, "p2", w.Items[0].ProductID)

	// removing an absent product is a no-op
	w, err = uc.RemoveItem(ctx, "user-1", "nope")
	require.NoError(t, err)
	require.Len(t, w.Items, 1)

	w, err = uc.Clear(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, w.Items)
}

func TestWishlistRejectsBadArguments(t *testing.T) {
	uc := newWishlistUC(t)
	ctx := context.Background()

	_, err := uc.Get(ctx, "  ")
	assert.ErrorIs(t, err, ErrWishlistInvalidArgument)

	_, err = uc.AddItem(ctx, "user-1", cartdom.ProductSnapshot{ID: ""})
	assert.ErrorIs(t, err, ErrWishlistInvalidArgument)

	_, err = uc.RemoveItem(ctx, "user-1", "")
	assert.ErrorIs(t, err, ErrWishlistInvalidArgument)
}
