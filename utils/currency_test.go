package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoinsToPaiseRoundTripsTheRate(t *testing.T) {
	// 100 coins = 1 rupee = 100 paise, so paise always equals coins.
	for _, coins := range []int64{0, 1, 99, 100, 500, 999, 1000, 123456} {
		assert.Equal(t, coins, CoinsToPaise(coins), "coins=%d", coins)
	}
}

func TestCoinsToRupees(t *testing.T) {
	assert.Equal(t, "10.00", CoinsToRupees(1000))
	assert.Equal(t, "0.50", CoinsToRupees(50))
	assert.Equal(t, "12.34", CoinsToRupees(1234))
	assert.Equal(t, "0.00", CoinsToRupees(0))
}

func TestRupeesToCoins(t *testing.T) {
	assert.Equal(t, int64(5000), RupeesToCoins(50))
	assert.Equal(t, int64(5050), RupeesToCoins(50.5))
	assert.Equal(t, int64(1), RupeesToCoins(0.011))
}

func TestParseCoins(t *testing.T) {
	assert.Equal(t, int64(500), ParseCoins(float64(500)))
	assert.Equal(t, int64(500), ParseCoins("500"))
	assert.Equal(t, int64(501), ParseCoins("500.6"))
	assert.Equal(t, int64(0), ParseCoins("not a number"))
	assert.Equal(t, int64(0), ParseCoins(nil))
	assert.Equal(t, int64(0), ParseCoins(map[string]interface{}{}))
}

func TestParseCoinsClampsOutOfRangeValues(t *testing.T) {
	// Values past int64 would wrap negative and turn a credit into a debit.
	assert.Equal(t, int64(0), ParseCoins("1e300"))
	assert.Equal(t, int64(0), ParseCoins(1e300))
	assert.Equal(t, int64(0), ParseCoins(float64(-5)))
	assert.Equal(t, int64(0), ParseCoins("-500"))
	assert.Equal(t, int64(0), ParseCoins(-500))
}
