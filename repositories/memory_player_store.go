package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adnankas/coinrush_backend/models"
)

// MemoryPlayerStore keeps all wallets in a process-lifetime map.
type MemoryPlayerStore struct {
	mu      sync.RWMutex
	players map[string]*models.Player
}

// NewMemoryPlayerStore creates an empty in-memory player store
func NewMemoryPlayerStore() *MemoryPlayerStore {
	return &MemoryPlayerStore{
		players: make(map[string]*models.Player),
	}
}

// resolve returns the live record, creating it if absent. Caller must hold mu.
func (s *MemoryPlayerStore) resolve(name string) *models.Player {
	name = models.NormalizePlayerName(name)
	p, ok := s.players[name]
	if !ok {
		p = &models.Player{
			Name:        name,
			Balance:     models.StartingBalance,
			Withdrawals: []models.WithdrawalRecord{},
			CreatedAt:   time.Now(),
		}
		s.players[name] = p
	}
	return p
}

func (s *MemoryPlayerStore) Resolve(ctx context.Context, name string) (models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyPlayer(s.resolve(name)), nil
}

func (s *MemoryPlayerStore) SetBalance(ctx context.Context, name string, balance int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.resolve(name)
	p.Balance = balance
	return p.Balance, nil
}

func (s *MemoryPlayerStore) Credit(ctx context.Context, name string, coins int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.resolve(name)
	p.Balance += coins
	return p.Balance, nil
}

func (s *MemoryPlayerStore) Withdraw(ctx context.Context, name string, rec models.WithdrawalRecord) (int64, []models.WithdrawalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.resolve(name)
	if rec.Coins > p.Balance {
		return 0, nil, ErrInsufficientBalance
	}

	p.Balance -= rec.Coins
	p.Withdrawals = append(p.Withdrawals, rec)
	return p.Balance, copyRecords(p.Withdrawals), nil
}

func (s *MemoryPlayerStore) History(ctx context.Context, name string) ([]models.WithdrawalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyRecords(s.resolve(name).Withdrawals), nil
}

func (s *MemoryPlayerStore) UpdateWithdrawal(ctx context.Context, name string, index int, status, txnID, note string) ([]models.WithdrawalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.resolve(name)
	if index < 0 || index >= len(p.Withdrawals) {
		return nil, ErrNotFound
	}

	rec := &p.Withdrawals[index]
	// Approved and Rejected are terminal; only txnId/note may still change.
	// Letting a decided record go back to Pending would arm the refund again.
	if rec.Status != models.WithdrawalStatusPending && status != rec.Status {
		return nil, ErrAlreadyProcessed
	}
	if rec.Status == models.WithdrawalStatusPending && status == models.WithdrawalStatusRejected {
		p.Balance += rec.Coins
	}
	rec.Status = status
	if txnID != "" {
		rec.TxnID = txnID
	}
	if note != "" {
		rec.Note = note
	}
	return copyRecords(p.Withdrawals), nil
}

func (s *MemoryPlayerStore) AllWithdrawals(ctx context.Context) ([]models.AdminWithdrawal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.AdminWithdrawal, 0)
	for name, p := range s.players {
		for i, rec := range p.Withdrawals {
			all = append(all, models.AdminWithdrawal{
				Player:           name,
				Index:            i,
				WithdrawalRecord: rec,
			})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// copyPlayer returns a snapshot so callers never see concurrent mutation
func copyPlayer(p *models.Player) models.Player {
	out := *p
	out.Withdrawals = copyRecords(p.Withdrawals)
	return out
}

func copyRecords(recs []models.WithdrawalRecord) []models.WithdrawalRecord {
	out := make([]models.WithdrawalRecord, len(recs))
	copy(out, recs)
	return out
}
