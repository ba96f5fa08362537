package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adnankas/coinrush_backend/models"
)

func pendingRecord(coins int64, createdAt time.Time) models.WithdrawalRecord {
	return models.WithdrawalRecord{
		Coins:          coins,
		AmountInRupees: "10.00",
		UpiID:          "someone@upi",
		Status:         models.WithdrawalStatusPending,
		CreatedAt:      createdAt,
	}
}

func TestResolveCreatesPlayerWithStartingBalance(t *testing.T) {
	store := NewMemoryPlayerStore()
	ctx := context.Background()

	p, err := store.Resolve(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, models.StartingBalance, p.Balance)
	assert.Empty(t, p.Withdrawals)
}

func TestResolveNormalizesBlankNameToGuest(t *testing.T) {
	store := NewMemoryPlayerStore()
	ctx := context.Background()

	p, err := store.Resolve(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPlayerName, p.Name)

	// Same wallet on every blank lookup.
	_, err = store.Credit(ctx, "", 50)
	require.NoError(t, err)
	p, err = store.Resolve(ctx, "Guest")
	require.NoError(t, err)
	assert.Equal(t, models.StartingBalance+50, p.Balance)
}

func TestCreditAndSetBalance(t *testing.T) {
	store := NewMemoryPlayerStore()
	ctx := context.Background()

	balance, err := store.Credit(ctx, "Alice", 500)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), balance)

	balance, err = store.SetBalance(ctx, "Alice", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestWithdrawInsufficientBalanceLeavesBalanceIntact(t *testing.T) {
	store := NewMemoryPlayerStore()
	ctx := context.Background()

	_, _, err := store.Withdraw(ctx, "Alice", pendingRecord(2000, time.Now()))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	p, err := store.Resolve(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, models.StartingBalance, p.Balance)
	assert.Empty(t, p.Withdrawals)
}

func TestWithdrawDebitsAndAppends(t *testing.T) {
	store := NewMemoryPlayerStore()
	ctx := context.Background()

	balance, history, err := store.Withdraw(ctx, "Alice", pendingRecord(1000, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
	require.Len(t, history, 1)
	assert.Equal(t, models.WithdrawalStatusPending, history[0].Status)
}

func TestUpdateWithdrawalApprove(t *testing.T) {
	store := NewMemoryPlayerStore()
	ctx := context.Background()

	_, _, err := store.Withdraw(ctx, "Alice", pendingRecord(1000, time.Now()))
	require.NoError(t, err)

	history, err := store.UpdateWithdrawal(ctx, "Alice", 0, models.WithdrawalStatusApproved, "T1", "")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.WithdrawalStatusApproved, history[0].Status)
	assert.Equal(t, "T1", history[0].TxnID)

	// Approval does not move coins.
	p, err := store.Resolve(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Balance)
}

func TestUpdateWithdrawalRejectRefunds(t *testing.T) {
	store := NewMemoryPlayerStore()
	ctx := context.Background()

	_, _, err := store.Withdraw(ctx, "Alice", pendingRecord(1000, time.Now()))
	require.NoError(t, err)

	history, err := store.UpdateWithdrawal(ctx, "Alice", 0, models.WithdrawalStatusRejected, "", "invalid UPI")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusRejected, history[0].Status)
	assert.Equal(t, "invalid UPI", history[0].Note)

	p, err := store.Resolve(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, models.StartingBalance, p.Balance)

	// Flipping an already rejected record must not refund again.
	_, err = store.UpdateWithdrawal(ctx, "Alice", 0, models.WithdrawalStatusRejected, "", "")
	require.NoError(t, err)
	p, _ = store.Resolve(ctx, "Alice")
	assert.Equal(t, models.StartingBalance, p.Balance)
}

func TestUpdateWithdrawalDecidedRecordIsTerminal(t *testing.T) {
	store := NewMemoryPlayerStore()
	ctx := context.Background()

	_, _, err := store.Withdraw(ctx, "Alice", pendingRecord(1000, time.Now()))
	require.NoError(t, err)

	_, err = store.UpdateWithdrawal(ctx, "Alice", 0, models.WithdrawalStatusRejected, "", "")
	require.NoError(t, err)

	// Cycling the rejected record back to Pending and rejecting again would
	// refund the same debit twice.
	_, err = store.UpdateWithdrawal(ctx, "Alice", 0, models.WithdrawalStatusPending, "", "")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	_, err = store.UpdateWithdrawal(ctx, "Alice", 0, models.WithdrawalStatusApproved, "", "")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)

	p, err := store.Resolve(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, models.StartingBalance, p.Balance)
	assert.Equal(t, models.WithdrawalStatusRejected, p.Withdrawals[0].Status)
}

func TestUpdateWithdrawalRetainsTxnIDAndNote(t *testing.T) {
	store := NewMemoryPlayerStore()
	ctx := context.Background()

	_, _, err := store.Withdraw(ctx, "Alice", pendingRecord(1000, time.Now()))
	require.NoError(t, err)

	_, err = store.UpdateWithdrawal(ctx, "Alice", 0, models.WithdrawalStatusApproved, "T1", "first note")
	require.NoError(t, err)

	// Empty values keep the previous ones.
	history, err := store.UpdateWithdrawal(ctx, "Alice", 0, models.WithdrawalStatusApproved, "", "")
	require.NoError(t, err)
	assert.Equal(t, "T1", history[0].TxnID)
	assert.Equal(t, "first note", history[0].Note)
}

func TestUpdateWithdrawalIndexOutOfRange(t *testing.T) {
	store := NewMemoryPlayerStore()
	ctx := context.Background()

	_, err := store.UpdateWithdrawal(ctx, "Alice", 0, models.WithdrawalStatusApproved, "", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = store.Withdraw(ctx, "Alice", pendingRecord(1000, time.Now()))
	require.NoError(t, err)
	_, err = store.UpdateWithdrawal(ctx, "Alice", -1, models.WithdrawalStatusApproved, "", "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.UpdateWithdrawal(ctx, "Alice", 1, models.WithdrawalStatusApproved, "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAllWithdrawalsSortedNewestFirst(t *testing.T) {
	store := NewMemoryPlayerStore()
	ctx := context.Background()

	base := time.Now()
	_, err := store.Credit(ctx, "Alice", 10000)
	require.NoError(t, err)
	_, err = store.Credit(ctx, "Bob", 10000)
	require.NoError(t, err)

	_, _, err = store.Withdraw(ctx, "Alice", pendingRecord(1000, base.Add(-2*time.Hour)))
	require.NoError(t, err)
	_, _, err = store.Withdraw(ctx, "Bob", pendingRecord(1000, base.Add(-1*time.Hour)))
	require.NoError(t, err)
	_, _, err = store.Withdraw(ctx, "Alice", pendingRecord(1000, base))
	require.NoError(t, err)

	all, err := store.AllWithdrawals(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "Alice", all[0].Player)
	assert.Equal(t, 1, all[0].Index)
	assert.Equal(t, "Bob", all[1].Player)
	assert.Equal(t, "Alice", all[2].Player)
	assert.Equal(t, 0, all[2].Index)
}

func TestConcurrentCreditsDoNotLoseUpdates(t *testing.T) {
	store := NewMemoryPlayerStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Credit(ctx, "Alice", 10)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, err := store.Resolve(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, models.StartingBalance+1000, p.Balance)
}
