// internal/application/usecase/cart_usecase_test.go
package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	outmem "agromart/internal/adapters/out/memory"
	cartdom "agromart/internal/domain/cart"
	"agromart/internal/domain/money"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newCartUC(t *testing.T) (*CartUsecase, *outmem.CartRepositoryMem) {
	t.Helper()
	repo := outmem.NewCartRepositoryMem()
	clock := fixedClock{t: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)}
	return NewCartUsecaseWithClock(repo, clock), repo
}

func price(t *testing.T, s string) money.Amount {
	t.Helper()
	a, err := money.Parse(s)
	require.NoError(t, err)
	return a
}

func TestGetUnknownCartIsEmptyAndNotPersisted(t *testing.T) {
	uc, repo := newCartUC(t)
	ctx := context.Background()

	c, err := uc.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Equal(t, money.Zero, c.Total)

	// read must not create the entry
	assert.False(t, repo.Has("cart-1"))
}

func TestAddItemPersistsSnapshot(t *testing.T) {
	uc, repo := newCartUC(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "cart-1", cartdom.ProductSnapshot{ID: "p1", Price: price(t, "45.99")}, 2)
	require.NoError(t, err)
	assert.True(t, repo.Has("cart-1"))

	// a fresh usecase over the same repo sees the persisted state
	uc2 := NewCartUsecase(repo)
	c, err := uc2.Get(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Qty)
	assert.Equal(t, "91.98", c.Subtotal.String())
}

func TestAddItemMergesAcrossCalls(t *testing.T) {
	uc, _ := newCartUC(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "cart-1", cartdom.ProductSnapshot{ID: "p1", Price: price(t, "10")}, 1)
	require.NoError(t, err)
	c, err := uc.AddItem(ctx, "cart-1", cartdom.ProductSnapshot{ID: "p1", Price: price(t, "10")}, 4)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Qty)
}

func TestAddItemRejectsBadArguments(t *testing.T) {
	uc, _ := newCartUC(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "", cartdom.ProductSnapshot{ID: "p1"}, 1)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)

	_, err = uc.AddItem(ctx, "cart-1", cartdom.ProductSnapshot{ID: ""}, 1)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)

	_, err = uc.AddItem(ctx, "cart-1", cartdom.ProductSnapshot{ID: "p1", Price: price(t, "1")}, 0)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
}

func TestSetItemQtyRemovalAndNoop(t *testing.T) {
	uc, _ := newCartUC(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "cart-1", cartdom.ProductSnapshot{ID: "p1", Price: price(t, "10")}, 2)
	require.NoError(t, err)

	// absent product: no-op, no error
	c, err := uc.SetItemQty(ctx, "cart-1", "nope", 3)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Qty)

	// zero removes
	c, err = uc.SetItemQty(ctx, "cart-1", "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Equal(t, money.Zero, c.Total)
}

func TestRemoveItemIsSetQtyZero(t *testing.T) {
	uc, _ := newCartUC(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "cart-1", cartdom.ProductSnapshot{ID: "p1", Price: price(t, "10")}, 2)
	require.NoError(t, err)

	c, err := uc.RemoveItem(ctx, "cart-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestClearPersistsEmptySnapshot(t *testing.T) {
	uc, repo := newCartUC(t)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "cart-1", cartdom.ProductSnapshot{ID: "p1", Price: price(t, "10")}, 2)
	require.NoError(t, err)

	c, err := uc.Clear(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Equal(t, money.Zero, c.Total)

	// the key keeps holding the empty snapshot (no delete)
	assert.True(t, repo.Has("cart-1"))

	got, err := uc.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestCorruptSnapshotRecovers(t *testing.T) {
	uc, repo := newCartUC(t)
	ctx := context.Background()

	repo.PutRaw("cart-1", []byte(`{{{ not json`))

	c, err := uc.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Equal(t, money.Zero, c.Total)

	// the corrupt entry was cleared
	assert.False(t, repo.Has("cart-1"))

	// and the cart is usable again
	c, err = uc.AddItem(ctx, "cart-1", cartdom.ProductSnapshot{ID: "p1", Price: price(t, "10")}, 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
}

func TestTotalAccessor(t *testing.T) {
	uc, _ := newCartUC(t)
	ctx := context.Background()

	total, err := uc.Total(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, money.Zero, total)

	_, err = uc.AddItem(ctx, "cart-1", cartdom.ProductSnapshot{ID: "p1", Price: price(t, "100")}, 1)
	require.NoError(t, err)

	total, err = uc.Total(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, "118", total.String())
}

// Concurrent adds to the same cart must not lose increments: each mutation
// reloads, applies, persists under the per-cartId lock.
func TestConcurrentAddsSameCart(t *testing.T) {
	uc, _ := newCartUC(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.AddItem(ctx, "cart-1", cartdom.ProductSnapshot{ID: "p1", Price: price(t, "1")}, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := uc.Get(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, n, c.Items[0].Qty)
	assert.Equal(t, money.FromUnits(n), c.Subtotal)
}
