package models

import (
	"strings"
	"time"
)

// Withdrawal status values
const (
	WithdrawalStatusPending  = "Pending"
	WithdrawalStatusApproved = "Approved"
	WithdrawalStatusRejected = "Rejected"
)

// DefaultPlayerName is used when a request carries no player name
const DefaultPlayerName = "Guest"

// StartingBalance is granted to every lazily created player
const StartingBalance int64 = 1000

// MinWithdrawalCoins is the smallest withdrawal a player may request
const MinWithdrawalCoins int64 = 1000

// MaxBalanceCoins caps balances at the largest integer float64 stores exactly,
// so JSON numbers convert to int64 without overflow.
const MaxBalanceCoins int64 = 1 << 53

// MaxManualClaimRupees caps a single manual transfer claim
const MaxManualClaimRupees float64 = 10_000_000

// Player holds a wallet balance and the embedded withdrawal history
type Player struct {
	Name        string             `bson:"name" json:"player"`
	Balance     int64              `bson:"balance" json:"balance"`
	Withdrawals []WithdrawalRecord `bson:"withdrawals" json:"withdrawals"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// WithdrawalRecord is one payout request; mutated only by the admin update
type WithdrawalRecord struct {
	Coins          int64     `bson:"coins" json:"coins"`
	AmountInRupees string    `bson:"amountInRupees" json:"amountInRupees"`
	UpiID          string    `bson:"upiId" json:"upiId"`
	Status         string    `bson:"status" json:"status"`
	TxnID          string    `bson:"txnId,omitempty" json:"txnId,omitempty"`
	Note           string    `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// AdminWithdrawal tags a record with its owner and position for the admin view
type AdminWithdrawal struct {
	Player string `json:"player"`
	Index  int    `json:"index"`
	WithdrawalRecord
}

// ValidWithdrawalStatus reports whether s is one of the three known states
func ValidWithdrawalStatus(s string) bool {
	switch s {
	case WithdrawalStatusPending, WithdrawalStatusApproved, WithdrawalStatusRejected:
		return true
	}
	return false
}

// NormalizePlayerName maps blank or missing names to the shared guest wallet
func NormalizePlayerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName
	}
	return name
}
