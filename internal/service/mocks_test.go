package service

import (
	"context"
	"sync"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/cache"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/discount"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/shopspring/decimal"
)

type mockCache struct {
	m        sync.Mutex
	receipts map[string]domain.Receipt
	gets     int
	err      error
	block    chan struct{}
}

func newMockCache() *mockCache {
	return &mockCache{receipts: make(map[string]domain.Receipt)}
}

func (m *mockCache) Get(_ context.Context, id string) (*domain.Receipt, error) {
	if m.block != nil {
		<-m.block
	}
	m.m.Lock()
	defer m.m.Unlock()
	m.gets++
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.receipts[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return &r, nil
}

func (m *mockCache) Set(_ context.Context, r *domain.Receipt) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.receipts[r.ID] = *r
	return nil
}

func (m *mockCache) Delete(_ context.Context, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.receipts, id)
	return m.err
}

func (m *mockCache) getCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.gets
}

// fixedEvaluator returns the same result regardless of input
type fixedEvaluator struct {
	result discount.Result
}

func (f fixedEvaluator) Evaluate([]domain.LineItem) discount.Result {
	return f.result
}

type errConverter struct {
	err error
}

func (e errConverter) Rate(string) (decimal.Decimal, error) {
	return decimal.Zero, e.err
}

func (e errConverter) Convert(decimal.Decimal, string) (decimal.Decimal, error) {
	return decimal.Zero, e.err
}
