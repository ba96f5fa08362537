package repositories

import (
	"context"
	"errors"

	"github.com/adnankas/coinrush_backend/models"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyProcessed    = errors.New("claim already processed")
)

// PlayerStore owns wallet balances and the embedded withdrawal history.
// Implementations must serialize mutations so the balance never goes negative.
type PlayerStore interface {
	// Resolve returns the player, creating it with the starting balance if absent.
	Resolve(ctx context.Context, name string) (models.Player, error)

	// SetBalance overwrites the balance and returns the stored value.
	SetBalance(ctx context.Context, name string, balance int64) (int64, error)

	// Credit adds coins and returns the new balance.
	Credit(ctx context.Context, name string, coins int64) (int64, error)

	// Withdraw debits rec.Coins and appends rec in one step. Returns the new
	// balance and full history, or ErrInsufficientBalance.
	Withdraw(ctx context.Context, name string, rec models.WithdrawalRecord) (int64, []models.WithdrawalRecord, error)

	// History returns the player's withdrawal records in creation order.
	History(ctx context.Context, name string) ([]models.WithdrawalRecord, error)

	// UpdateWithdrawal sets the status of the record at index; txnID and note
	// overwrite only when non-empty. Rejecting a pending record refunds its
	// coins. Approved and Rejected are terminal: changing a decided record to
	// any other status returns ErrAlreadyProcessed, so a record can never go
	// back to Pending and refund twice. Returns ErrNotFound when index is out
	// of range.
	UpdateWithdrawal(ctx context.Context, name string, index int, status, txnID, note string) ([]models.WithdrawalRecord, error)

	// AllWithdrawals returns every record across all players, tagged with the
	// owner and per-player index, newest first.
	AllWithdrawals(ctx context.Context) ([]models.AdminWithdrawal, error)
}

// ManualPaymentStore keeps the global list of manual transfer claims.
type ManualPaymentStore interface {
	// Append stores a claim and returns it with its id and timestamp filled in.
	Append(ctx context.Context, claim models.ManualPayment) (models.ManualPayment, error)

	// List returns all claims in insertion order.
	List(ctx context.Context) ([]models.ManualPayment, error)

	// Decide moves the claim at index out of Pending. Returns ErrNotFound when
	// index is out of range and ErrAlreadyProcessed when the claim was decided
	// before.
	Decide(ctx context.Context, index int, status, note string) (models.ManualPayment, error)

	// Reopen puts a decided claim back to Pending so a failed credit can be
	// retried. Returns ErrNotFound when index is out of range.
	Reopen(ctx context.Context, index int) error
}
