package cart

import "errors"

var (
	ErrSessionRequired  = errors.New("cart session token required")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("invalid cart quantity")
	ErrBuyNowEmpty      = errors.New("no buy-now item staged")
)
