// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	cartdom "agromart/internal/domain/cart"
	"agromart/internal/domain/money"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// CartUsecase coordinates cart operations.
//
// Every mutation is serialized per cartId (the domain assumes one logical
// writer; an HTTP server is not one), reloads the snapshot, applies the
// domain mutation, and persists the full snapshot before returning. Derived
// fields are therefore never stale for a caller that awaited the mutation.
type CartUsecase struct {
	repo  cartdom.Repository
	clock Clock

	// per-cartId serialization point
	locks sync.Map // cartID -> *sync.Mutex
}

func NewCartUsecase(repo cartdom.Repository) *CartUsecase {
	return &CartUsecase{
		repo:  repo,
		clock: systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{repo: repo, clock: clock}
}

func (uc *CartUsecase) lockFor(cartID string) *sync.Mutex {
	v, _ := uc.locks.LoadOrStore(cartID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// load returns the cart for cartID, recovering from corrupt snapshots:
// the bad entry is logged, cleared, and an empty cart is returned. A cart
// that was never persisted is also returned empty (created on first load).
func (uc *CartUsecase) load(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	c, err := uc.repo.GetByCartID(ctx, cartID)
	if err != nil {
		if !errors.Is(err, cartdom.ErrCorruptSnapshot) {
			return nil, err
		}

		// recover locally: discard the bad value and continue empty
		log.Printf("[cart_usecase] WARN: corrupt snapshot cartId=%q err=%v (resetting to empty cart)", cartID, err)
		if delErr := uc.repo.DeleteByCartID(ctx, cartID); delErr != nil {
			log.Printf("[cart_usecase] WARN: failed to clear corrupt snapshot cartId=%q err=%v", cartID, delErr)
		}
		c = nil
	}
	if c != nil {
		return c, nil
	}
	return cartdom.NewCart(cartID, uc.clock.Now())
}

// Get returns the current cart. A cart that does not exist yet is an empty
// cart, not an error (it is not persisted until the first mutation).
func (uc *CartUsecase) Get(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, ErrCartInvalidArgument
	}
	return uc.load(ctx, cid)
}

// AddItem increments qty for product.ID (or appends a new line item) and
// persists the new snapshot. qty <= 0 is rejected here; the domain would
// treat it as a no-op anyway.
func (uc *CartUsecase) AddItem(ctx context.Context, cartID string, p cartdom.ProductSnapshot, qty int) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	pid := strings.TrimSpace(p.ID)
	if cid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}
	if qty <= 0 {
		return nil, ErrCartInvalidArgument
	}

	mu := uc.lockFor(cid)
	mu.Lock()
	defer mu.Unlock()

	c, err := uc.load(ctx, cid)
	if err != nil {
		return nil, err
	}
	if err := c.AddItem(p, qty, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetItemQty sets the absolute quantity for productID.
// qty <= 0 removes the item; unknown productID is a no-op (the unchanged
// snapshot is written back, items and totals stay as they were).
func (uc *CartUsecase) SetItemQty(ctx context.Context, cartID, productID string, qty int) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	pid := strings.TrimSpace(productID)
	if cid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	mu := uc.lockFor(cid)
	mu.Lock()
	defer mu.Unlock()

	c, err := uc.load(ctx, cid)
	if err != nil {
		return nil, err
	}
	if err := c.SetQty(pid, qty, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem removes productID from the cart. No-op if absent.
func (uc *CartUsecase) RemoveItem(ctx context.Context, cartID, productID string) (*cartdom.Cart, error) {
	return uc.SetItemQty(ctx, cartID, productID, 0)
}

// Clear resets the cart to empty and persists the empty snapshot.
// The persistence key keeps existing (no delete, no TTL).
func (uc *CartUsecase) Clear(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, ErrCartInvalidArgument
	}

	mu := uc.lockFor(cid)
	mu.Lock()
	defer mu.Unlock()

	c, err := uc.load(ctx, cid)
	if err != nil {
		return nil, err
	}
	if err := c.Clear(uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Total returns the current total (pure read, no side effects).
func (uc *CartUsecase) Total(ctx context.Context, cartID string) (money.Amount, error) {
	c, err := uc.Get(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return c.GetTotal(), nil
}
