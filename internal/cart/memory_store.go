package cart

import (
	"context"
	"sync"
)

// memoryStore is the in-process driver. TTLs are not enforced here; it
// exists for tests and for running without redis.
type memoryStore struct {
	mu     sync.Mutex
	carts  map[string][]Item
	buyNow map[string]Item
}

func NewMemoryStore() Store {
	return &memoryStore{
		carts:  make(map[string][]Item),
		buyNow: make(map[string]Item),
	}
}

func (s *memoryStore) GetItems(_ context.Context, token string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[token]
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

func (s *memoryStore) SaveItems(_ context.Context, token string, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]Item, len(items))
	copy(cp, items)
	s.carts[token] = cp
	return nil
}

func (s *memoryStore) Clear(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, token)
	return nil
}

func (s *memoryStore) SaveBuyNow(_ context.Context, token string, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buyNow[token] = item
	return nil
}

func (s *memoryStore) PeekBuyNow(_ context.Context, token string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.buyNow[token]
	if !ok {
		return nil, ErrBuyNowEmpty
	}
	return &item, nil
}

func (s *memoryStore) TakeBuyNow(_ context.Context, token string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.buyNow[token]
	if !ok {
		return nil, ErrBuyNowEmpty
	}
	delete(s.buyNow, token)
	return &item, nil
}
