package utils

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/adnankas/coinrush_backend/models"
)

// ParseCoins converts a loosely typed coin count (number or string) to an
// integer, returning 0 when the value is missing, unparseable, negative or
// too large for int64.
func ParseCoins(v interface{}) int64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return clampCoins(n)
	case int64:
		if n < 0 {
			return 0
		}
		return n
	case int:
		if n < 0 {
			return 0
		}
		return int64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return clampCoins(f)
		}
		return 0
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return clampCoins(f)
		}
		return 0
	default:
		return 0
	}
}

func clampCoins(f float64) int64 {
	if math.IsNaN(f) || f < 0 || f > float64(models.MaxBalanceCoins) {
		return 0
	}
	return int64(math.Round(f))
}
