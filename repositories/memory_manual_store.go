package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/adnankas/coinrush_backend/models"
	"github.com/google/uuid"
)

// MemoryManualPaymentStore keeps claims in an append-only slice.
type MemoryManualPaymentStore struct {
	mu     sync.RWMutex
	claims []models.ManualPayment
}

// NewMemoryManualPaymentStore creates an empty in-memory claim store
func NewMemoryManualPaymentStore() *MemoryManualPaymentStore {
	return &MemoryManualPaymentStore{claims: []models.ManualPayment{}}
}

func (s *MemoryManualPaymentStore) Append(ctx context.Context, claim models.ManualPayment) (models.ManualPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = time.Now()
	}
	claim.Status = models.ManualPaymentStatusPending
	s.claims = append(s.claims, claim)
	return claim, nil
}

func (s *MemoryManualPaymentStore) List(ctx context.Context) ([]models.ManualPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ManualPayment, len(s.claims))
	copy(out, s.claims)
	return out, nil
}

func (s *MemoryManualPaymentStore) Decide(ctx context.Context, index int, status, note string) (models.ManualPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.claims) {
		return models.ManualPayment{}, ErrNotFound
	}

	claim := &s.claims[index]
	if claim.Status != models.ManualPaymentStatusPending {
		return models.ManualPayment{}, ErrAlreadyProcessed
	}

	claim.Status = status
	if note != "" {
		claim.Note = note
	}
	return *claim, nil
}

func (s *MemoryManualPaymentStore) Reopen(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.claims) {
		return ErrNotFound
	}
	s.claims[index].Status = models.ManualPaymentStatusPending
	return nil
}
