package order

import "errors"

var (
	ErrValidation    = errors.New("invalid order input")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrInvalidMode   = errors.New("invalid payment mode")
)
