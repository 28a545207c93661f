package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency every total is computed in before conversion
const BaseCurrency = "USD"

type ReceiptLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type Conversion struct {
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
	Total    decimal.Decimal `json:"total"`
}

// Receipt is the result of a checkout, amounts in BaseCurrency unless stated otherwise
type Receipt struct {
	ID            string          `json:"id"`
	Lines         []ReceiptLine   `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	Discounts     []string        `json:"discounts"`
	TotalUSD      decimal.Decimal `json:"total_usd"`
	// Clamped is set when discounts exceeded the subtotal and the total was floored at zero
	Clamped    bool        `json:"clamped,omitempty"`
	Conversion *Conversion `json:"conversion,omitempty"`
	// UnsupportedCurrency holds a requested currency code that could not be converted
	UnsupportedCurrency string    `json:"unsupported_currency,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

func (r Receipt) Converted() bool {
	return r.Conversion != nil
}
