// internal/adapters/out/snapshot/cart_doc_test.go
package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "agromart/internal/domain/cart"
	"agromart/internal/domain/money"
)

func buildCart(t *testing.T) *cartdom.Cart {
	t.Helper()
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	c, err := cartdom.NewCart("cart-1", now)
	require.NoError(t, err)

	p1, err := money.Parse("45.99")
	require.NoError(t, err)
	p2, err := money.Parse("10.00")
	require.NoError(t, err)

	require.NoError(t, c.AddItem(cartdom.ProductSnapshot{ID: "p1", Name: "Tomato Seeds", Price: p1, Unit: "bag", Category: "seeds"}, 2, now))
	require.NoError(t, c.AddItem(cartdom.ProductSnapshot{ID: "p2", Name: "Fertilizer", Price: p2, Unit: "kg", Category: "fertilizer"}, 3, now))
	return c
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := buildCart(t)

	data, err := EncodeCart(c)
	require.NoError(t, err)

	back, err := DecodeCart("cart-1", data)
	require.NoError(t, err)

	require.Len(t, back.Items, 2)
	assert.Equal(t, "p1", back.Items[0].ProductID)
	assert.Equal(t, "p2", back.Items[1].ProductID)
	assert.Equal(t, 2, back.Items[0].Qty)
	assert.Equal(t, "Tomato Seeds", back.Items[0].Product.Name)
	assert.Equal(t, c.Items[0].Product.Price, back.Items[0].Product.Price)

	assert.Equal(t, c.Subtotal, back.Subtotal)
	assert.Equal(t, c.Shipping, back.Shipping)
	assert.Equal(t, c.Tax, back.Tax)
	assert.Equal(t, c.Total, back.Total)

	assert.True(t, back.CreatedAt.Equal(c.CreatedAt))
	assert.True(t, back.UpdatedAt.Equal(c.UpdatedAt))
}

func TestDecodeCorruptBlob(t *testing.T) {
	for _, blob := range []string{
		`{not json`,
		`"a string"`,
		`[1,2,3]`,
	} {
		_, err := DecodeCart("cart-1", []byte(blob))
		assert.ErrorIs(t, err, cartdom.ErrCorruptSnapshot, "blob=%s", blob)
	}
}

func TestDecodeDropsUnusableItemsAndRecomputes(t *testing.T) {
	// one good item, one with empty id, one with qty 0; stored totals lie
	blob := `{
		"items": [
			{"productId": "p1", "product": {"id": "p1", "price": 10}, "quantity": 2},
			{"productId": "",   "product": {"id": "",   "price": 5},  "quantity": 1},
			{"productId": "p3", "product": {"id": "p3", "price": 1},  "quantity": 0}
		],
		"subtotal": 999, "shipping": 999, "tax": 999, "total": 9999
	}`

	c, err := DecodeCart("cart-1", []byte(blob))
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "p1", c.Items[0].ProductID)

	// derived fields come from Compute, not from the blob
	assert.Equal(t, money.FromUnits(20), c.Subtotal)
	assert.Equal(t, money.FromUnits(2), c.Shipping)
	assert.Equal(t, "1.6", c.Tax.String())
	assert.Equal(t, "23.6", c.Total.String())
}

func TestDecodeEmptyCartID(t *testing.T) {
	_, err := DecodeCart("  ", []byte(`{}`))
	assert.ErrorIs(t, err, cartdom.ErrInvalidCart)
}
