package discount

import (
	"fmt"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/shopspring/decimal"
)

// Kind identifies how a rule computes its discount
type Kind string

const (
	KindBuyOneGetOneFree Kind = "BUY_ONE_GET_ONE_FREE"
	KindPercentageOff    Kind = "PERCENTAGE_OFF"
)

func (k Kind) String() string {
	return string(k)
}

var hundred = decimal.NewFromInt(100)

// Rule is a category-scoped promotion. Only the fields relevant to Kind are read.
type Rule struct {
	Kind        Kind
	Category    domain.Category
	MinQuantity int
	Percent     decimal.Decimal
}

// BuyOneGetOneFree makes every second unit of the category free
func BuyOneGetOneFree(category domain.Category) Rule {
	return Rule{
		Kind:        KindBuyOneGetOneFree,
		Category:    category,
		MinQuantity: 2,
	}
}

// PercentageOff takes percent off the line total of the category, at any quantity
func PercentageOff(category domain.Category, percent int64) Rule {
	return Rule{
		Kind:     KindPercentageOff,
		Category: category,
		Percent:  decimal.NewFromInt(percent),
	}
}

// apply returns the discount for item and whether the rule triggered.
// The amount never exceeds the line total.
func (r Rule) apply(item domain.LineItem) (decimal.Decimal, bool) {
	if item.Product.Category != r.Category || item.Quantity < r.MinQuantity {
		return decimal.Zero, false
	}

	var amount decimal.Decimal
	switch r.Kind {
	case KindBuyOneGetOneFree:
		free := item.Quantity / 2
		if free == 0 {
			return decimal.Zero, false
		}
		amount = item.Product.UnitPrice.Mul(decimal.NewFromInt(int64(free)))
	case KindPercentageOff:
		amount = item.Total().Mul(r.Percent).Div(hundred)
	default:
		return decimal.Zero, false
	}

	if total := item.Total(); amount.GreaterThan(total) {
		amount = total
	}
	return amount, true
}

// Describe is the audit line for a triggered rule
func (r Rule) Describe(item domain.LineItem) string {
	switch r.Kind {
	case KindBuyOneGetOneFree:
		return fmt.Sprintf("Buy 1 Get 1 Free on %s applied", item.Product.Name)
	case KindPercentageOff:
		return fmt.Sprintf("%s%% Off on %s applied", r.Percent.String(), item.Product.Name)
	default:
		return fmt.Sprintf("%s on %s applied", r.Kind, item.Product.Name)
	}
}

// Summary describes the promotion for listings
func (r Rule) Summary() string {
	switch r.Kind {
	case KindBuyOneGetOneFree:
		return fmt.Sprintf("Buy 1 Get 1 Free on %s items", r.Category)
	case KindPercentageOff:
		return fmt.Sprintf("%s%% Off on %s", r.Percent.String(), r.Category)
	default:
		return fmt.Sprintf("%s on %s", r.Kind, r.Category)
	}
}
