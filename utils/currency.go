package utils

import (
	"fmt"
	"math"
)

// 100 coins = 1 rupee, fixed rate.

// CoinsToPaise converts a coin amount to the smallest currency subunit
func CoinsToPaise(coins int64) int64 {
	return int64(math.Round(float64(coins) / 100.0 * 100.0))
}

// CoinsToRupees renders a coin amount as a two-decimal rupee string
func CoinsToRupees(coins int64) string {
	return fmt.Sprintf("%.2f", float64(coins)/100.0)
}

// RupeesToCoins converts a rupee amount to whole coins
func RupeesToCoins(rupees float64) int64 {
	return int64(math.Round(rupees * 100.0))
}
