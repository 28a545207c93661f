package cache

import (
	"context"
	"errors"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
)

// ReceiptCache stores issued receipts by id
type ReceiptCache interface {
	Get(ctx context.Context, receiptID string) (*domain.Receipt, error)
	Set(ctx context.Context, receipt *domain.Receipt) error
	Delete(ctx context.Context, receiptID string) error
}

var (
	ErrCacheMiss   = errors.New("cache miss")
	ErrUnavailable = errors.New("cache unavailable")
)
