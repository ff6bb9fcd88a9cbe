// internal/adapters/out/postgres/cart_repository_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	_ "github.com/lib/pq"

	"agromart/internal/adapters/out/snapshot"
	cartdom "agromart/internal/domain/cart"
)

// CartRepositoryPG implements cart.Repository on Postgres.
// The snapshot blob is stored as-is in a jsonb column keyed by cart_id
// (same layout as the redis adapter, different store).
type CartRepositoryPG struct {
	DB *sql.DB
}

func NewCartRepositoryPG(db *sql.DB) *CartRepositoryPG {
	return &CartRepositoryPG{DB: db}
}

// EnsureSchema creates the snapshot table if missing. Called once at boot.
func (r *CartRepositoryPG) EnsureSchema(ctx context.Context) error {
	if r == nil || r.DB == nil {
		return errors.New("cart_repository_pg: db is nil")
	}

	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cart_snapshots (
			cart_id    text PRIMARY KEY,
			doc        jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	return err
}

func (r *CartRepositoryPG) GetByCartID(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	if r == nil || r.DB == nil {
		return nil, errors.New("cart_repository_pg: db is nil")
	}

	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, errors.New("cart_repository_pg: cartID is empty")
	}

	var data []byte
	err := r.DB.QueryRowContext(ctx,
		`SELECT doc FROM cart_snapshots WHERE cart_id = $1`, cid,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return snapshot.DecodeCart(cid, data)
}

func (r *CartRepositoryPG) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.DB == nil {
		return errors.New("cart_repository_pg: db is nil")
	}
	if c == nil || strings.TrimSpace(c.ID) == "" {
		return errors.New("cart_repository_pg: cart.ID is required")
	}

	data, err := snapshot.EncodeCart(c)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO cart_snapshots (cart_id, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (cart_id)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		c.ID, string(data)) // pq maps string -> jsonb, []byte would be bytea
	return err
}

func (r *CartRepositoryPG) DeleteByCartID(ctx context.Context, cartID string) error {
	if r == nil || r.DB == nil {
		return errors.New("cart_repository_pg: db is nil")
	}

	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return errors.New("cart_repository_pg: cartID is empty")
	}

	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM cart_snapshots WHERE cart_id = $1`, cid)
	return err
}
