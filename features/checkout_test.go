package features

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/cart"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/catalog"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/currency"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/discount"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/service"
)

type checkoutTestContext struct {
	catalog  *catalog.Catalog
	checkout service.CheckoutService
	cart     *cart.Cart
	receipt  domain.Receipt
	err      error
}

func (c *checkoutTestContext) reset() {
	engine := discount.NewEngine()
	c.catalog = catalog.Default()
	c.checkout = service.NewCheckoutService(engine, currency.Default(), nil)
	c.cart = nil
	c.receipt = domain.Receipt{}
	c.err = nil
}

func (c *checkoutTestContext) anEmptyCart() error {
	c.cart = cart.New()
	return nil
}

func (c *checkoutTestContext) iAddOfProduct(quantity int, productID string) error {
	product, err := c.catalog.FindByID(productID)
	if err != nil {
		return err
	}
	return c.cart.AddItem(product, quantity)
}

func (c *checkoutTestContext) iRemoveOfProduct(quantity int, productID string) error {
	_, err := c.cart.RemoveItem(productID, quantity)
	return err
}

func (c *checkoutTestContext) iCheckOutIn(code string) error {
	c.receipt, c.err = c.checkout.Checkout(c.cart, code)
	return nil
}

func (c *checkoutTestContext) checkedOut() error {
	if c.err != nil {
		return fmt.Errorf("expected receipt but got error: %v", c.err)
	}
	return nil
}

func expectAmount(name string, got decimal.Decimal, want string) error {
	expected, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	if !got.Equal(expected) {
		return fmt.Errorf("expected %s %s, got %s", name, want, got.StringFixed(2))
	}
	return nil
}

func (c *checkoutTestContext) theSubtotalIs(want string) error {
	if err := c.checkedOut(); err != nil {
		return err
	}
	return expectAmount("subtotal", c.receipt.Subtotal, want)
}

func (c *checkoutTestContext) theDiscountTotalIs(want string) error {
	if err := c.checkedOut(); err != nil {
		return err
	}
	return expectAmount("discount total", c.receipt.DiscountTotal, want)
}

func (c *checkoutTestContext) theFinalTotalIs(want string) error {
	if err := c.checkedOut(); err != nil {
		return err
	}
	return expectAmount("final total", c.receipt.TotalUSD, want)
}

func (c *checkoutTestContext) theConvertedTotalIs(want, code string) error {
	if err := c.checkedOut(); err != nil {
		return err
	}
	if !c.receipt.Converted() {
		return errors.New("expected a converted total")
	}
	if c.receipt.Conversion.Currency != code {
		return fmt.Errorf("expected currency %s, got %s", code, c.receipt.Conversion.Currency)
	}
	return expectAmount("converted total", c.receipt.Conversion.Total, want)
}

func (c *checkoutTestContext) theDiscountsAppliedAre(table *godog.Table) error {
	if err := c.checkedOut(); err != nil {
		return err
	}
	var want []string
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		want = append(want, row.Cells[0].Value)
	}
	if len(want) != len(c.receipt.Discounts) {
		return fmt.Errorf("expected %d discounts, got %v", len(want), c.receipt.Discounts)
	}
	for i := range want {
		if want[i] != c.receipt.Discounts[i] {
			return fmt.Errorf("discount %d: expected %q, got %q", i, want[i], c.receipt.Discounts[i])
		}
	}
	return nil
}

func (c *checkoutTestContext) theCartHasLineWithQuantityOfProduct(lines, quantity int, productID string) error {
	if c.cart.Len() != lines {
		return fmt.Errorf("expected %d lines, got %d", lines, c.cart.Len())
	}
	got, ok := c.cart.Quantity(productID)
	if !ok {
		return fmt.Errorf("product %s not in cart", productID)
	}
	if got != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, got)
	}
	return nil
}

func (c *checkoutTestContext) theCartIsEmpty() error {
	if !c.cart.IsEmpty() {
		return fmt.Errorf("expected empty cart, got %d lines", c.cart.Len())
	}
	return nil
}

func (c *checkoutTestContext) checkoutFailsBecauseTheCartIsEmpty() error {
	if !errors.Is(c.err, service.ErrEmptyCart) {
		return fmt.Errorf("expected ErrEmptyCart, got %v", c.err)
	}
	return nil
}

func (c *checkoutTestContext) theReceiptReportsUnsupportedCurrency(code string) error {
	if err := c.checkedOut(); err != nil {
		return err
	}
	if c.receipt.UnsupportedCurrency != code {
		return fmt.Errorf("expected unsupported currency %q, got %q", code, c.receipt.UnsupportedCurrency)
	}
	if c.receipt.Converted() {
		return errors.New("expected no conversion")
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)

	// When steps
	ctx.Step(`^I add (\d+) of product "([^"]*)"$`, tc.iAddOfProduct)
	ctx.Step(`^I remove (\d+) of product "([^"]*)"$`, tc.iRemoveOfProduct)
	ctx.Step(`^I check out in "([^"]*)"$`, tc.iCheckOutIn)

	// Then steps
	ctx.Step(`^the subtotal is "([^"]*)"$`, tc.theSubtotalIs)
	ctx.Step(`^the discount total is "([^"]*)"$`, tc.theDiscountTotalIs)
	ctx.Step(`^the final total is "([^"]*)"$`, tc.theFinalTotalIs)
	ctx.Step(`^the converted total is "([^"]*)" "([^"]*)"$`, tc.theConvertedTotalIs)
	ctx.Step(`^the discounts applied are:$`, tc.theDiscountsAppliedAre)
	ctx.Step(`^the cart has (\d+) line with quantity (\d+) of product "([^"]*)"$`, tc.theCartHasLineWithQuantityOfProduct)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^checkout fails because the cart is empty$`, tc.checkoutFailsBecauseTheCartIsEmpty)
	ctx.Step(`^the receipt reports unsupported currency "([^"]*)"$`, tc.theReceiptReportsUnsupportedCurrency)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
