package currency

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidRate         = errors.New("invalid conversion rate")
)

// Converter converts USD amounts using a fixed rate table ("1 USD = rate x target").
// The table is read-only after construction so a Converter can be shared freely.
type Converter struct {
	rates map[string]decimal.Decimal
	codes []string
}

func New(rates map[string]decimal.Decimal) (*Converter, error) {
	c := &Converter{
		rates: make(map[string]decimal.Decimal, len(rates)),
		codes: make([]string, 0, len(rates)),
	}

	for code, rate := range rates {
		code = normalize(code)
		if code == "" {
			return nil, fmt.Errorf("%w: empty currency code", ErrInvalidRate)
		}
		if code == domain.BaseCurrency {
			return nil, fmt.Errorf("%w: %s is the base currency", ErrInvalidRate, code)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("%w: %s rate must be positive, got %s", ErrInvalidRate, code, rate)
		}
		if _, dup := c.rates[code]; dup {
			return nil, fmt.Errorf("%w: %s listed twice", ErrInvalidRate, code)
		}
		c.rates[code] = rate
		c.codes = append(c.codes, code)
	}
	sort.Strings(c.codes)

	return c, nil
}

// DefaultRates is the built-in table
func DefaultRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.85"),
		"GBP": decimal.RequireFromString("0.75"),
	}
}

func Default() *Converter {
	c, err := New(DefaultRates())
	if err != nil {
		panic(err)
	}
	return c
}

// ParseRates reads a table in the form "EUR=0.85,GBP=0.75"
func ParseRates(s string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not CODE=RATE", ErrInvalidRate, pair)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRate, pair, err)
		}
		rates[normalize(code)] = rate
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: no rates in %q", ErrInvalidRate, s)
	}
	return rates, nil
}

// Rate returns the configured rate for code
func (c *Converter) Rate(code string) (decimal.Decimal, error) {
	rate, ok := c.rates[normalize(code)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return rate, nil
}

// Convert returns amount x rate(code), rounded to cents
func (c *Converter) Convert(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	rate, err := c.Rate(code)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(2), nil
}

// SupportedCurrencies returns the convertible codes in alphabetical order
func (c *Converter) SupportedCurrencies() []string {
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
