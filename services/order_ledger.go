package services

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// OrderLedger remembers which gateway orders have already credited coins, so a
// replayed payment proof cannot double-credit.
type OrderLedger interface {
	// MarkCaptured records the order and reports whether this call captured it
	// first. A false return means the order was credited before.
	MarkCaptured(ctx context.Context, orderID string) (bool, error)

	// Release forgets a captured order so a retry can credit it. Used when the
	// credit that followed the capture failed.
	Release(ctx context.Context, orderID string) error
}

// MemoryOrderLedger tracks captured orders in-process
type MemoryOrderLedger struct {
	mu       sync.Mutex
	captured map[string]struct{}
}

// NewMemoryOrderLedger creates an empty ledger
func NewMemoryOrderLedger() *MemoryOrderLedger {
	return &MemoryOrderLedger{captured: make(map[string]struct{})}
}

func (l *MemoryOrderLedger) MarkCaptured(ctx context.Context, orderID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.captured[orderID]; ok {
		return false, nil
	}
	l.captured[orderID] = struct{}{}
	return true, nil
}

func (l *MemoryOrderLedger) Release(ctx context.Context, orderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.captured, orderID)
	return nil
}

// RedisOrderLedger tracks captured orders in Redis so the guard survives a
// restart when a persistent store backend is in use.
type RedisOrderLedger struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisOrderLedger creates a ledger over the given client
func NewRedisOrderLedger(client *redis.Client) *RedisOrderLedger {
	return &RedisOrderLedger{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (l *RedisOrderLedger) MarkCaptured(ctx context.Context, orderID string) (bool, error) {
	return l.client.SetNX(ctx, "captured_order:"+orderID, time.Now().Format(time.RFC3339), l.ttl).Result()
}

func (l *RedisOrderLedger) Release(ctx context.Context, orderID string) error {
	return l.client.Del(ctx, "captured_order:"+orderID).Err()
}
