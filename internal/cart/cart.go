package cart

import (
	"fmt"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/shopspring/decimal"
)

// Cart holds line items in first-added order. It has a single owner and is not safe for concurrent use.
type Cart struct {
	items []domain.LineItem
}

// RemoveResult reports what RemoveItem did to the line item
type RemoveResult struct {
	Product  domain.Product
	Removed  bool // line item deleted entirely
	Quantity int  // remaining quantity when not removed
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges quantity into an existing line item or appends a new one
func (c *Cart) AddItem(product domain.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	if i := c.find(product.ID); i >= 0 {
		c.items[i].Quantity += quantity
		return nil
	}

	c.items = append(c.items, domain.LineItem{Product: product, Quantity: quantity})
	return nil
}

// RemoveItem reduces a line item by quantity, deleting it once nothing remains
func (c *Cart) RemoveItem(productID string, quantity int) (RemoveResult, error) {
	if quantity <= 0 {
		return RemoveResult{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	i := c.find(productID)
	if i < 0 {
		return RemoveResult{}, fmt.Errorf("%w: %s", ErrProductNotInCart, productID)
	}

	item := c.items[i]
	if quantity >= item.Quantity {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return RemoveResult{Product: item.Product, Removed: true}, nil
	}

	c.items[i].Quantity -= quantity
	return RemoveResult{Product: item.Product, Quantity: c.items[i].Quantity}, nil
}

// LineItems returns a copy of the line items
func (c *Cart) LineItems() []domain.LineItem {
	out := make([]domain.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Subtotal is the pre-discount total rounded to cents
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Total())
	}
	return total.Round(2)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Quantity returns the current quantity for productID
func (c *Cart) Quantity(productID string) (int, bool) {
	if i := c.find(productID); i >= 0 {
		return c.items[i].Quantity, true
	}
	return 0, false
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) find(productID string) int {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
