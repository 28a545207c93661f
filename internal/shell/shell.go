package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/cart"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/discount"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/service"
	"go.uber.org/zap"
)

const commandList = "add_to_cart, remove_from_cart, view_cart, list_products, list_discounts, checkout, quit"

type ProductCatalog interface {
	FindByID(productID string) (domain.Product, error)
	List() []domain.Product
}

type PromotionLister interface {
	Rules() []discount.Rule
}

type CurrencyLister interface {
	SupportedCurrencies() []string
}

// Shell runs the interactive command loop over one cart
type Shell struct {
	in  *bufio.Scanner
	out io.Writer

	cart       *cart.Cart
	catalog    ProductCatalog
	promotions PromotionLister
	currencies CurrencyLister
	checkout   service.CheckoutService
	logger     *zap.Logger
}

func New(in io.Reader, out io.Writer, catalog ProductCatalog, promotions PromotionLister,
	currencies CurrencyLister, checkout service.CheckoutService, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	return &Shell{
		in:         scanner,
		out:        out,
		cart:       cart.New(),
		catalog:    catalog,
		promotions: promotions,
		currencies: currencies,
		checkout:   checkout,
		logger:     logger,
	}
}

// Run reads commands until quit or end of input
func (s *Shell) Run() error {
	for {
		s.printf("\nEnter a command (%s): ", commandList)
		command, ok := s.next()
		if !ok {
			return s.in.Err()
		}

		switch command {
		case "add_to_cart":
			s.addToCart()
		case "remove_from_cart":
			s.removeFromCart()
		case "view_cart":
			s.viewCart()
		case "list_products":
			s.listProducts()
		case "list_discounts":
			s.listDiscounts()
		case "checkout":
			s.runCheckout()
		case "quit":
			s.printf("Thank you for shopping! Exiting...\n")
			return nil
		default:
			s.printf("Invalid command. Available commands: %s.\n", commandList)
		}
	}
}

func (s *Shell) addToCart() {
	productID, quantity, ok := s.productAndQuantity()
	if !ok {
		return
	}

	product, err := s.catalog.FindByID(productID)
	if err != nil {
		s.printf("Product with ID %s not found.\n", productID)
		return
	}

	if err := s.cart.AddItem(product, quantity); err != nil {
		s.printf("Quantity must be a positive integer.\n")
		return
	}
	s.logger.Debug("item added", zap.String("product_id", productID), zap.Int("quantity", quantity))
	s.printf("Added %d %s(s) to the cart.\n", quantity, product.Name)
}

func (s *Shell) removeFromCart() {
	productID, quantity, ok := s.productAndQuantity()
	if !ok {
		return
	}

	res, err := s.cart.RemoveItem(productID, quantity)
	switch {
	case errors.Is(err, cart.ErrProductNotInCart):
		s.printf("Product not found in cart.\n")
	case err != nil:
		s.printf("Quantity must be a positive integer.\n")
	case res.Removed:
		s.printf("Removed all %s(s) from the cart.\n", res.Product.Name)
	default:
		s.printf("Reduced quantity of %s to %d.\n", res.Product.Name, res.Quantity)
	}
}

func (s *Shell) viewCart() {
	if s.cart.IsEmpty() {
		s.printf("Your cart is empty.\n")
		return
	}

	s.printf("Your Cart:\n")
	for _, item := range s.cart.LineItems() {
		s.printf("%s - Quantity: %d, Price: %s USD, Total: %s USD\n",
			item.Product.Name, item.Quantity,
			item.Product.UnitPrice.StringFixed(2), item.Total().StringFixed(2))
	}
	s.printf("Total (before discounts): %s USD\n", s.cart.Subtotal().StringFixed(2))
}

func (s *Shell) listProducts() {
	s.printf("Products:\n")
	for _, p := range s.catalog.List() {
		s.printf("%s - %s (%s): %s USD\n", p.ID, p.Name, p.Category, p.UnitPrice.StringFixed(2))
	}
}

func (s *Shell) listDiscounts() {
	s.printf("Available Discounts:\n")
	for i, rule := range s.promotions.Rules() {
		s.printf("%d. %s\n", i+1, rule.Summary())
	}
}

func (s *Shell) runCheckout() {
	receipt, err := s.checkout.Checkout(s.cart, "")
	if errors.Is(err, service.ErrEmptyCart) {
		s.printf("Your cart is empty. Add items to proceed with checkout.\n")
		return
	}
	if err != nil {
		s.logger.Error("checkout failed", zap.Error(err))
		s.printf("Checkout failed: %v\n", err)
		return
	}

	s.printf("Applying discounts...\n")
	for _, d := range receipt.Discounts {
		s.printf("%s.\n", d)
	}
	s.printf("Total Discount: %s USD\n", receipt.DiscountTotal.StringFixed(2))
	s.printf("Final Total in USD: %s USD\n", receipt.TotalUSD.StringFixed(2))

	s.printf("Would you like to view it in a different currency? (yes/no): ")
	answer, ok := s.next()
	if !ok || !strings.EqualFold(answer, "yes") {
		return
	}

	s.printf("Available Currencies: %s\n", strings.Join(s.currencies.SupportedCurrencies(), ", "))
	s.printf("Enter currency: ")
	code, ok := s.next()
	if !ok {
		return
	}

	converted, err := s.checkout.Checkout(s.cart, code)
	if err != nil {
		s.printf("Checkout failed: %v\n", err)
		return
	}
	if !converted.Converted() {
		s.printf("Unsupported currency.\n")
		return
	}
	c := converted.Conversion
	s.printf("Final Total in %s: %s %s (Conversion rate: %s)\n",
		c.Currency, c.Total.StringFixed(2), c.Currency, c.Rate.String())
}

func (s *Shell) productAndQuantity() (string, int, bool) {
	productID, ok := s.next()
	if !ok {
		return "", 0, false
	}
	raw, ok := s.next()
	if !ok {
		return "", 0, false
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		s.printf("Quantity must be a positive integer.\n")
		return "", 0, false
	}
	return productID, quantity, true
}

func (s *Shell) next() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}
