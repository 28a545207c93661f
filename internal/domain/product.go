package domain

import "github.com/shopspring/decimal"

// Category tags a product for promotion scoping
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryOther       Category = "Other"
)

// String representation (for logging)
func (c Category) String() string {
	return string(c)
}

type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Category  Category        `json:"category"`
}

// LineItem is one product's aggregated quantity within a cart
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Total returns unit price times quantity
func (l LineItem) Total() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
