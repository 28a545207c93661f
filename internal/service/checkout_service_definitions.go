package service

import (
	"time"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/discount"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Pricer is the read-only view of a cart that checkout needs
type Pricer interface {
	LineItems() []domain.LineItem
	Subtotal() decimal.Decimal
	IsEmpty() bool
}

type Evaluator interface {
	Evaluate(items []domain.LineItem) discount.Result
}

type Converter interface {
	Rate(code string) (decimal.Decimal, error)
	Convert(amount decimal.Decimal, code string) (decimal.Decimal, error)
}

type CheckoutService interface {
	Checkout(cart Pricer, currency string) (domain.Receipt, error)
}

type CheckoutServiceImpl struct {
	engine    Evaluator
	converter Converter
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewCheckoutService(engine Evaluator, converter Converter, logger *zap.Logger) *CheckoutServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutServiceImpl{
		engine:    engine,
		converter: converter,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}
