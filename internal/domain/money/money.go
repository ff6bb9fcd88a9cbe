// internal/domain/money/money.go
package money

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("money: invalid amount")

// Amount is a monetary value in integer micro-units (1e-6 of one currency
// unit). Prices never carry more than two decimals, and the 10% / 8% cart
// rates keep every derived field exact in this representation, so no rounding
// happens anywhere in the engine.
type Amount int64

const microsPerUnit = 1_000_000

// Zero is the additive identity (explicit name reads better in usecases).
const Zero Amount = 0

// FromMinor builds an Amount from minor units (e.g. cents -> 2 decimals).
func FromMinor(minor int64) Amount {
	return Amount(minor * (microsPerUnit / 100))
}

// FromUnits builds an Amount from whole currency units.
func FromUnits(units int64) Amount {
	return Amount(units * microsPerUnit)
}

// Parse parses a decimal string ("45.99", "-3", "12.198") into an Amount.
// At most 6 fractional digits are accepted.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" {
		return 0, ErrInvalidAmount
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 6 {
		return 0, ErrInvalidAmount
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	micros := int64(0)
	if fracPart != "" {
		// pad to exactly 6 digits
		padded := fracPart + strings.Repeat("0", 6-len(fracPart))
		micros, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
	}

	v := units*microsPerUnit + micros
	if neg {
		v = -v
	}
	return Amount(v), nil
}

// MulInt multiplies the amount by an integer quantity.
func (a Amount) MulInt(n int) Amount {
	return a * Amount(n)
}

// BasisPoints applies a rate expressed in basis points (1 bp = 0.01%).
// 10% = 1000 bp, 8% = 800 bp. Exact for micro-unit amounts that came from
// prices with <= 2 decimals.
func (a Amount) BasisPoints(bp int64) Amount {
	return Amount(int64(a) * bp / 10_000)
}

// Float64 returns the value in currency units. Exact for |a| < 2^53 micros.
func (a Amount) Float64() float64 {
	return float64(a) / microsPerUnit
}

// String formats the amount as a plain decimal without trailing zeros
// ("45.99", "12.198", "0").
func (a Amount) String() string {
	neg := a < 0
	v := int64(a)
	if neg {
		v = -v
	}

	units := v / microsPerUnit
	micros := v % microsPerUnit

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(units, 10))

	if micros > 0 {
		frac := strconv.FormatInt(micros, 10)
		frac = strings.Repeat("0", 6-len(frac)) + frac
		frac = strings.TrimRight(frac, "0")
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// MarshalJSON encodes the amount as a JSON number in currency units
// (persistence layout keeps "subtotal": 121.98 style values).
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number (or a numeric string, for tolerant
// snapshot parsing).
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
