package cart

import (
	"context"
	"time"
)

const (
	cartTTL   = 7 * 24 * time.Hour
	buyNowTTL = 30 * time.Minute
)

// Store persists session-scoped cart state. The redis driver backs
// production; the memory driver backs tests and local development.
type Store interface {
	GetItems(ctx context.Context, token string) ([]Item, error)
	SaveItems(ctx context.Context, token string, items []Item) error
	Clear(ctx context.Context, token string) error

	// Buy-now is a separate single-item slot that bypasses the cart.
	SaveBuyNow(ctx context.Context, token string, item Item) error
	// PeekBuyNow returns the staged item without removing it.
	PeekBuyNow(ctx context.Context, token string) (*Item, error)
	// TakeBuyNow returns the staged item and removes it, so it can be
	// consumed exactly once by checkout.
	TakeBuyNow(ctx context.Context, token string) (*Item, error)
}
