package discount

import (
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/shopspring/decimal"
)

// Applied records one rule triggered by one line item
type Applied struct {
	ProductID   string          `json:"product_id"`
	Kind        Kind            `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Result is the outcome of evaluating a set of line items
type Result struct {
	Total   decimal.Decimal
	Applied []Applied
}

func (r Result) Descriptions() []string {
	out := make([]string, 0, len(r.Applied))
	for _, a := range r.Applied {
		out = append(out, a.Description)
	}
	return out
}

// Engine evaluates promotion rules. It holds no mutable state and is safe to share.
type Engine struct {
	rules []Rule
}

func DefaultRules() []Rule {
	return []Rule{
		BuyOneGetOneFree(domain.CategoryFashion),
		PercentageOff(domain.CategoryElectronics, 10),
	}
}

func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	r := make([]Rule, len(rules))
	copy(r, rules)
	return &Engine{rules: r}
}

// Rules returns the configured rules
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Evaluate computes discounts for items without modifying them. Each rule is
// applied to each line item independently.
func (e *Engine) Evaluate(items []domain.LineItem) Result {
	total := decimal.Zero
	var applied []Applied

	for _, item := range items {
		for _, rule := range e.rules {
			amount, ok := rule.apply(item)
			if !ok {
				continue
			}
			total = total.Add(amount)
			applied = append(applied, Applied{
				ProductID:   item.Product.ID,
				Kind:        rule.Kind,
				Description: rule.Describe(item),
				Amount:      amount.Round(2),
			})
		}
	}

	return Result{
		Total:   total.Round(2),
		Applied: applied,
	}
}
