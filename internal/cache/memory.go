package cache

import (
	"context"
	"sync"
	"time"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
)

// CleanupInterval is how often expired receipts are dropped
const CleanupInterval = 30 * time.Second

type memoryEntry struct {
	receipt   domain.Receipt
	expiresAt time.Time
}

// MemoryCache keeps receipts in process memory, used when no redis is configured
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	m := &MemoryCache{
		entries:     make(map[string]memoryEntry),
		ttl:         ttl,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

func (m *MemoryCache) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.expire()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *MemoryCache) expire() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}

func (m *MemoryCache) Get(_ context.Context, receiptID string) (*domain.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[receiptID]
	if !ok || m.now().After(e.expiresAt) {
		return nil, ErrCacheMiss
	}
	r := e.receipt
	return &r, nil
}

func (m *MemoryCache) Set(_ context.Context, receipt *domain.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[receipt.ID] = memoryEntry{
		receipt:   *receipt,
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, receiptID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, receiptID)
	return nil
}

// Close stops the background cleanup and waits for it to finish
func (m *MemoryCache) Close() error {
	close(m.stopCleanup)
	m.wg.Wait()
	return nil
}
