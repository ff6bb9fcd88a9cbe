// internal/domain/cart/entity_test.go
package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromart/internal/domain/money"
)

func mustAmount(t *testing.T, s string) money.Amount {
	t.Helper()
	a, err := money.Parse(s)
	require.NoError(t, err)
	return a
}

func testNow() time.Time {
	return time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
}

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	c, err := NewCart("cart-1", testNow())
	require.NoError(t, err)
	return c
}

func TestNewCartIsEmpty(t *testing.T) {
	c := newTestCart(t)

	assert.Empty(t, c.Items)
	assert.Equal(t, money.Zero, c.Subtotal)
	assert.Equal(t, money.Zero, c.Shipping)
	assert.Equal(t, money.Zero, c.Tax)
	assert.Equal(t, money.Zero, c.Total)
}

func TestNewCartRejectsEmptyID(t *testing.T) {
	_, err := NewCart("  ", testNow())
	assert.ErrorIs(t, err, ErrInvalidCart)
}

func TestAddItemMergesByProductID(t *testing.T) {
	c := newTestCart(t)
	p := ProductSnapshot{ID: "p1", Name: "Tomato Seeds", Price: mustAmount(t, "45.99")}

	require.NoError(t, c.AddItem(p, 2, testNow()))
	require.NoError(t, c.AddItem(p, 3, testNow()))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Qty)
}

func TestAddItemKeepsFirstSnapshot(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p1", Name: "Tomato Seeds", Price: mustAmount(t, "45.99")}, 1, testNow()))

	// catalog price changed; line item must keep the captured price
	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p1", Name: "Tomato Seeds", Price: mustAmount(t, "99.99")}, 1, testNow()))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Qty)
	assert.Equal(t, mustAmount(t, "45.99"), c.Items[0].Product.Price)
	assert.Equal(t, mustAmount(t, "91.98"), c.Subtotal)
}

func TestAddItemNonPositiveQtyIsNoop(t *testing.T) {
	c := newTestCart(t)
	p := ProductSnapshot{ID: "p1", Price: mustAmount(t, "10")}

	require.NoError(t, c.AddItem(p, 0, testNow()))
	require.NoError(t, c.AddItem(p, -4, testNow()))

	assert.Empty(t, c.Items)
	assert.Equal(t, money.Zero, c.Total)
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p1", Price: mustAmount(t, "1")}, 1, testNow()))
	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p2", Price: mustAmount(t, "2")}, 1, testNow()))
	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p3", Price: mustAmount(t, "3")}, 1, testNow()))
	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p2", Price: mustAmount(t, "2")}, 1, testNow()))

	require.Len(t, c.Items, 3)
	assert.Equal(t, "p1", c.Items[0].ProductID)
	assert.Equal(t, "p2", c.Items[1].ProductID)
	assert.Equal(t, "p3", c.Items[2].ProductID)
}

func TestSetQtyAbsentIsNoop(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p1", Price: mustAmount(t, "10")}, 2, testNow()))
	before := c.Totals

	require.NoError(t, c.SetQty("nope", 7, testNow()))

	require.Len(t, c.Items, 1)
	assert.Equal(t, before, c.Totals)
}

func TestSetQtyZeroRemoves(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p1", Price: mustAmount(t, "10")}, 2, testNow()))
	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p2", Price: mustAmount(t, "5")}, 1, testNow()))

	require.NoError(t, c.SetQty("p1", 0, testNow()))

	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)

	require.NoError(t, c.SetQty("p2", -3, testNow()))
	assert.Empty(t, c.Items)
	assert.Equal(t, money.Zero, c.Total)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p1", Price: mustAmount(t, "10")}, 1, testNow()))

	require.NoError(t, c.Remove("nope", testNow()))
	require.Len(t, c.Items, 1)
}

func TestClearResetsEverything(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p1", Price: mustAmount(t, "45.99")}, 2, testNow()))

	require.NoError(t, c.Clear(testNow()))

	assert.Empty(t, c.Items)
	assert.Equal(t, money.Zero, c.Subtotal)
	assert.Equal(t, money.Zero, c.Shipping)
	assert.Equal(t, money.Zero, c.Tax)
	assert.Equal(t, money.Zero, c.Total)
	assert.Equal(t, "cart-1", c.ID)
}

func TestComputeEmptyIsAllZero(t *testing.T) {
	tt := Compute(nil)
	assert.Equal(t, money.Zero, tt.Subtotal)
	assert.Equal(t, money.Zero, tt.Shipping)
	assert.Equal(t, money.Zero, tt.Tax)
	assert.Equal(t, money.Zero, tt.Total)
}

func TestComputeShippingOnlyWhenSubtotalPositive(t *testing.T) {
	items := []LineItem{{
		ProductID: "p1",
		Product:   ProductSnapshot{ID: "p1", Price: money.FromUnits(100)},
		Qty:       1,
	}}
	tt := Compute(items)
	assert.Equal(t, money.FromUnits(10), tt.Shipping)
	assert.Equal(t, money.FromUnits(8), tt.Tax)
	assert.Equal(t, money.FromUnits(118), tt.Total)
}

// Two products, then a quantity update and a removal. The derived fields
// must match the hand-computed values exactly.
func TestCartScenario(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p1", Name: "Tomato Seeds", Price: mustAmount(t, "45.99"), Unit: "bag", Category: "seeds"}, 2, testNow()))
	require.NoError(t, c.AddItem(ProductSnapshot{ID: "p2", Name: "Fertilizer", Price: mustAmount(t, "10.00"), Unit: "kg", Category: "fertilizer"}, 3, testNow()))

	assert.Equal(t, "121.98", c.Subtotal.String())
	assert.Equal(t, "12.198", c.Shipping.String())
	assert.Equal(t, "9.7584", c.Tax.String())
	assert.Equal(t, "143.9364", c.Total.String())

	assert.InDelta(t, 121.98, c.Subtotal.Float64(), 1e-6)
	assert.InDelta(t, 12.198, c.Shipping.Float64(), 1e-6)
	assert.InDelta(t, 9.7584, c.Tax.Float64(), 1e-6)
	assert.InDelta(t, 143.9364, c.Total.Float64(), 1e-6)

	require.NoError(t, c.SetQty("p2", 1, testNow()))
	assert.Equal(t, "101.98", c.Subtotal.String())

	require.NoError(t, c.Remove("p1", testNow()))
	assert.Equal(t, "10", c.Subtotal.String())
	assert.Equal(t, "1", c.Shipping.String())
	assert.Equal(t, "0.8", c.Tax.String())
	assert.Equal(t, "11.8", c.Total.String())
	assert.Equal(t, c.Total, c.GetTotal())
}
