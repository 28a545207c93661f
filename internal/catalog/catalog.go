package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("duplicate product id")
	ErrInvalidProduct   = errors.New("invalid product")
)

// Lookup resolves product ids to product values
type Lookup interface {
	FindByID(productID string) (domain.Product, error)
}

// Catalog is an immutable snapshot of products, safe for concurrent reads
type Catalog struct {
	products []domain.Product
	index    map[string]int
}

// New builds a snapshot from the given products, keeping their order for listing
func New(products ...domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}

	for _, p := range products {
		if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: id and name are required", ErrInvalidProduct)
		}
		if p.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: %s has negative price", ErrInvalidProduct, p.ID)
		}
		if _, exists := c.index[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

// Default returns the built-in product snapshot
func Default() *Catalog {
	c, err := New(
		domain.Product{ID: "P001", Name: "Laptop", UnitPrice: decimal.NewFromInt(1000), Category: domain.CategoryElectronics},
		domain.Product{ID: "P002", Name: "Phone", UnitPrice: decimal.NewFromInt(500), Category: domain.CategoryElectronics},
		domain.Product{ID: "P003", Name: "T-Shirt", UnitPrice: decimal.NewFromInt(20), Category: domain.CategoryFashion},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// FindByID returns a copy of the product with the given id
func (c *Catalog) FindByID(productID string) (domain.Product, error) {
	i, ok := c.index[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return c.products[i], nil
}

// List returns all products in load order
func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}
