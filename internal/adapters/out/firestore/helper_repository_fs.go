// internal/adapters/out/firestore/helper_repository_fs.go
package firestore

import (
	"fmt"
	"math"
	"strings"
	"time"

	"agromart/internal/domain/money"
)

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}

func asInt(v any) int {
	if v == nil {
		return 0
	}
	switch t := v.(type) {
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float32:
		return int(t)
	case float64:
		return int(t)
	case string:
		tt := strings.TrimSpace(t)
		if tt == "" {
			return 0
		}
		var n int
		_, _ = fmt.Sscanf(tt, "%d", &n)
		return n
	default:
		// best-effort
		s := strings.TrimSpace(fmt.Sprint(v))
		if s == "" {
			return 0
		}
		var n int
		_, _ = fmt.Sscanf(s, "%d", &n)
		return n
	}
}

// asAmount parses a stored monetary value. Firestore numbers come back as
// int64 or float64; older docs may hold decimal strings.
func asAmount(v any) money.Amount {
	if v == nil {
		return 0
	}
	switch t := v.(type) {
	case int:
		return money.FromUnits(int64(t))
	case int64:
		return money.FromUnits(t)
	case float64:
		return money.Amount(math.Round(t * 1_000_000))
	case string:
		a, err := money.Parse(t)
		if err != nil {
			return 0
		}
		return a
	default:
		return 0
	}
}

// asTime returns (time, ok)
func asTime(v any) (time.Time, bool) {
	if v == nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	default:
		return time.Time{}, false
	}
}
