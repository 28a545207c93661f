package service

import (
	"errors"
	"strings"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/currency"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Checkout prices the cart and optionally converts the total into currency.
// An unsupported currency does not fail the checkout: the receipt keeps the USD
// total and records the rejected code. The cart is not modified.
func (s *CheckoutServiceImpl) Checkout(cart Pricer, currencyCode string) (domain.Receipt, error) {
	if cart.IsEmpty() {
		return domain.Receipt{}, ErrEmptyCart
	}

	items := cart.LineItems()
	subtotal := cart.Subtotal()
	result := s.engine.Evaluate(items)

	receipt := domain.Receipt{
		ID:            s.newID(),
		Lines:         make([]domain.ReceiptLine, 0, len(items)),
		Subtotal:      subtotal,
		DiscountTotal: result.Total,
		Discounts:     result.Descriptions(),
		CreatedAt:     s.now().UTC(),
	}
	for _, item := range items {
		receipt.Lines = append(receipt.Lines, domain.ReceiptLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.UnitPrice,
			LineTotal: item.Total().Round(2),
		})
	}

	total := subtotal.Sub(result.Total)
	if total.IsNegative() {
		s.logger.Warn("discount exceeds subtotal, clamping total to zero",
			zap.String("receipt_id", receipt.ID),
			zap.String("subtotal", subtotal.StringFixed(2)),
			zap.String("discount", result.Total.StringFixed(2)))
		total = decimal.Zero
		receipt.Clamped = true
	}
	receipt.TotalUSD = total.Round(2)

	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	switch code {
	case "":
	case domain.BaseCurrency:
		receipt.Conversion = &domain.Conversion{
			Currency: domain.BaseCurrency,
			Rate:     decimal.NewFromInt(1),
			Total:    receipt.TotalUSD,
		}
	default:
		conversion, err := s.convert(receipt.TotalUSD, code)
		if err != nil {
			if !errors.Is(err, currency.ErrUnsupportedCurrency) {
				return domain.Receipt{}, err
			}
			s.logger.Info("currency not supported, receipt kept in USD",
				zap.String("receipt_id", receipt.ID),
				zap.String("currency", code))
			receipt.UnsupportedCurrency = code
		} else {
			receipt.Conversion = conversion
		}
	}

	s.logger.Debug("checkout priced",
		zap.String("receipt_id", receipt.ID),
		zap.Int("lines", len(receipt.Lines)),
		zap.String("subtotal", receipt.Subtotal.StringFixed(2)),
		zap.String("discount", receipt.DiscountTotal.StringFixed(2)),
		zap.String("total_usd", receipt.TotalUSD.StringFixed(2)))

	return receipt, nil
}

func (s *CheckoutServiceImpl) convert(amount decimal.Decimal, code string) (*domain.Conversion, error) {
	rate, err := s.converter.Rate(code)
	if err != nil {
		return nil, err
	}
	converted, err := s.converter.Convert(amount, code)
	if err != nil {
		return nil, err
	}
	return &domain.Conversion{
		Currency: code,
		Rate:     rate,
		Total:    converted,
	}, nil
}
