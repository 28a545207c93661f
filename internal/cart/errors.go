package cart

import "errors"

var (
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrProductNotInCart = errors.New("product not found in cart")
)
