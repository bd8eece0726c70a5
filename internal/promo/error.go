package promo

import "errors"

var (
	ErrPromoNotFound = errors.New("promo code not found")
	ErrPromoExpired  = errors.New("promo code expired")
	ErrInvalidInput  = errors.New("invalid promo input")
)
