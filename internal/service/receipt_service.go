package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/cache"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type ReceiptService struct {
	cache  cache.ReceiptCache
	logger *zap.Logger
	sfg    singleflight.Group // collapses concurrent lookups of the same receipt
}

func NewReceiptService(c cache.ReceiptCache, logger *zap.Logger) *ReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptService{
		cache:  c,
		logger: logger,
	}
}

func (s *ReceiptService) Save(ctx context.Context, receipt domain.Receipt) error {
	if err := s.cache.Set(ctx, &receipt); err != nil {
		s.logger.Warn("receipt cache set failed", zap.String("receipt_id", receipt.ID), zap.Error(err))
		return fmt.Errorf("save receipt %s: %w", receipt.ID, err)
	}
	return nil
}

func (s *ReceiptService) Get(ctx context.Context, receiptID string) (domain.Receipt, error) {
	v, err, _ := s.sfg.Do(receiptID, func() (interface{}, error) {
		receipt, err := s.cache.Get(ctx, receiptID)
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, fmt.Errorf("%w: %s", ErrReceiptNotFound, receiptID)
		}
		if err != nil {
			s.logger.Warn("receipt cache get failed", zap.String("receipt_id", receiptID), zap.Error(err))
			return nil, err
		}
		return receipt, nil
	})
	if err != nil {
		return domain.Receipt{}, err
	}

	return *v.(*domain.Receipt), nil
}
