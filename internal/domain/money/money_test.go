// internal/domain/money/money_test.go
package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Amount
	}{
		{"0", 0},
		{"45.99", 45_990_000},
		{"10", 10_000_000},
		{"12.198", 12_198_000},
		{"9.7584", 9_758_400},
		{"-3", -3_000_000},
		{"0.000001", 1},
		{"+1.5", 1_500_000},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, "Parse(%q)", c.in)
		assert.Equal(t, c.want, got, "Parse(%q)", c.in)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "1.1234567", "-", "1,5"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "Parse(%q)", in)
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		in   Amount
		want string
	}{
		{0, "0"},
		{45_990_000, "45.99"},
		{12_198_000, "12.198"},
		{9_758_400, "9.7584"},
		{-1_500_000, "-1.5"},
		{10_000_000, "10"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.in.String())
	}
}

func TestBasisPointsExact(t *testing.T) {
	// subtotal 121.98 -> 10% shipping and 8% tax with no rounding loss
	subtotal, err := Parse("121.98")
	require.NoError(t, err)

	assert.Equal(t, "12.198", subtotal.BasisPoints(1000).String())
	assert.Equal(t, "9.7584", subtotal.BasisPoints(800).String())
}

func TestMulInt(t *testing.T) {
	p, err := Parse("45.99")
	require.NoError(t, err)
	assert.Equal(t, "91.98", p.MulInt(2).String())
}

func TestJSONRoundTrip(t *testing.T) {
	a, err := Parse("121.98")
	require.NoError(t, err)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, "121.98", string(data))

	var back Amount
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, a, back)

	// numeric strings are tolerated on the way in
	require.NoError(t, json.Unmarshal([]byte(`"45.99"`), &back))
	assert.Equal(t, "45.99", back.String())
}
