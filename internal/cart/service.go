package cart

import (
	"context"

	"floramia-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context, token string) (*Cart, error)
	Add(ctx context.Context, token string, item Item) (*Cart, error)
	UpdateQuantity(ctx context.Context, token, productID string, qty int) (*Cart, error)
	Remove(ctx context.Context, token, productID string) (*Cart, error)
	Clear(ctx context.Context, token string) error

	StageBuyNow(ctx context.Context, token string, item Item) error
	PeekBuyNow(ctx context.Context, token string) (*Item, error)
	TakeBuyNow(ctx context.Context, token string) (*Item, error)
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Get(ctx context.Context, token string) (*Cart, error) {
	if token == "" {
		return nil, ErrSessionRequired
	}

	items, err := s.store.GetItems(ctx, token)
	if err != nil {
		return nil, err
	}

	c := derive(items)
	return &c, nil
}

// Add merges into an existing line by product id, otherwise appends.
// Insertion order is preserved as display order.
func (s *service) Add(ctx context.Context, token string, item Item) (*Cart, error) {
	if token == "" {
		return nil, ErrSessionRequired
	}
	if item.ProductID == "" {
		return nil, ErrCartItemNotFound
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	items, err := s.store.GetItems(ctx, token)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	if err := s.store.SaveItems(ctx, token, items); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Debug("cart item added",
		zap.String("product_id", item.ProductID),
		zap.Int("quantity", item.Quantity),
		zap.Bool("merged", merged),
	)

	c := derive(items)
	return &c, nil
}

// UpdateQuantity sets a line's quantity; zero or negative removes the line.
func (s *service) UpdateQuantity(ctx context.Context, token, productID string, qty int) (*Cart, error) {
	if token == "" {
		return nil, ErrSessionRequired
	}

	items, err := s.store.GetItems(ctx, token)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range items {
		if items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrCartItemNotFound
	}

	if qty <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = qty
	}

	if err := s.store.SaveItems(ctx, token, items); err != nil {
		return nil, err
	}

	c := derive(items)
	return &c, nil
}

// Remove drops the line unconditionally; a missing line is not an error.
func (s *service) Remove(ctx context.Context, token, productID string) (*Cart, error) {
	if token == "" {
		return nil, ErrSessionRequired
	}

	items, err := s.store.GetItems(ctx, token)
	if err != nil {
		return nil, err
	}

	out := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}

	if err := s.store.SaveItems(ctx, token, out); err != nil {
		return nil, err
	}

	c := derive(out)
	return &c, nil
}

func (s *service) Clear(ctx context.Context, token string) error {
	if token == "" {
		return ErrSessionRequired
	}
	return s.store.Clear(ctx, token)
}

func (s *service) StageBuyNow(ctx context.Context, token string, item Item) error {
	if token == "" {
		return ErrSessionRequired
	}
	if item.ProductID == "" {
		return ErrCartItemNotFound
	}
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.store.SaveBuyNow(ctx, token, item)
}

func (s *service) PeekBuyNow(ctx context.Context, token string) (*Item, error) {
	if token == "" {
		return nil, ErrSessionRequired
	}
	return s.store.PeekBuyNow(ctx, token)
}

func (s *service) TakeBuyNow(ctx context.Context, token string) (*Item, error) {
	if token == "" {
		return nil, ErrSessionRequired
	}
	return s.store.TakeBuyNow(ctx, token)
}
