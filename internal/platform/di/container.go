// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"agromart/internal/application/query"
	"agromart/internal/application/usecase"

	outfs "agromart/internal/adapters/out/firestore"
	outmem "agromart/internal/adapters/out/memory"
	outpg "agromart/internal/adapters/out/postgres"
	outredis "agromart/internal/adapters/out/redis"

	cartdom "agromart/internal/domain/cart"
	wldom "agromart/internal/domain/wishlist"
)

// Container is the shop DI container.
// Pure DI: build deps only. No routing branching, no reflection tricks.
type Container struct {
	Infra *Infra

	// Usecases
	CartUC     *usecase.CartUsecase
	WishlistUC *usecase.WishlistUsecase

	// Queries (read side)
	CartQ *query.CartQuery

	// Repos sometimes needed directly (tests, admin tooling)
	CartRepo     cartdom.Repository
	WishlistRepo wldom.Repository
}

func NewContainer(ctx context.Context, infra *Infra) (*Container, error) {
	if infra == nil {
		var err error
		infra, err = NewInfra(ctx)
		if err != nil {
			return nil, err
		}
	}
	if infra.Config == nil {
		return nil, errors.New("di: infra config is nil")
	}

	c := &Container{Infra: infra}

	// --------------------------------------------------------
	// Cart repository (CART_BACKEND)
	// --------------------------------------------------------
	switch infra.CartBackend {
	case BackendFirestore:
		if infra.Firestore == nil {
			return nil, errors.New("di: CART_BACKEND=firestore but infra.Firestore is nil")
		}
		repo := outfs.NewCartRepositoryFS(infra.Firestore)
		if col := strings.TrimSpace(infra.CartsCollection); col != "" {
			repo.Collection = col
		}
		c.CartRepo = repo

	case BackendRedis:
		if infra.Redis == nil {
			return nil, errors.New("di: CART_BACKEND=redis but infra.Redis is nil")
		}
		c.CartRepo = outredis.NewCartRepositoryRedis(infra.Redis)

	case BackendPostgres:
		if infra.Postgres == nil {
			return nil, errors.New("di: CART_BACKEND=postgres but infra.Postgres is nil")
		}
		repo := outpg.NewCartRepositoryPG(infra.Postgres)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("di: postgres EnsureSchema failed: %w", err)
		}
		c.CartRepo = repo

	case BackendMemory:
		c.CartRepo = outmem.NewCartRepositoryMem()

	default:
		return nil, fmt.Errorf("di: unknown cart backend %q", infra.CartBackend)
	}

	// --------------------------------------------------------
	// Wishlist repository (Firestore preferred, memory fallback)
	// --------------------------------------------------------
	if infra.Firestore != nil {
		repo := outfs.NewWishlistRepositoryFS(infra.Firestore)
		if col := strings.TrimSpace(infra.WishlistsCollection); col != "" {
			repo.Collection = col
		}
		c.WishlistRepo = repo
	} else {
		log.Printf("[di] WARN: firestore unavailable, wishlists use the in-memory store")
		c.WishlistRepo = outmem.NewWishlistRepositoryMem()
	}

	// --------------------------------------------------------
	// Usecases / queries
	// --------------------------------------------------------
	c.CartUC = usecase.NewCartUsecase(c.CartRepo)
	c.WishlistUC = usecase.NewWishlistUsecase(c.WishlistRepo)
	c.CartQ = query.NewCartQuery(c.CartUC)

	log.Printf(
		"[di] container built (backend=%s firestore=%t firebaseAuth=%t cartUC=%t wishlistUC=%t cartQ=%t)",
		infra.CartBackend,
		infra.Firestore != nil,
		infra.FirebaseAuth != nil,
		c.CartUC != nil,
		c.WishlistUC != nil,
		c.CartQ != nil,
	)

	return c, nil
}
