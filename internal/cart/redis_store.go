package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func cartKey(token string) string   { return "cart:" + token }
func buyNowKey(token string) string { return "buynow:" + token }

func (s *redisStore) GetItems(ctx context.Context, token string) ([]Item, error) {
	val, err := s.rdb.Get(ctx, cartKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *redisStore) SaveItems(ctx context.Context, token string, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(token), data, cartTTL).Err()
}

func (s *redisStore) Clear(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, cartKey(token)).Err()
}

func (s *redisStore) SaveBuyNow(ctx context.Context, token string, item Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, buyNowKey(token), data, buyNowTTL).Err()
}

func (s *redisStore) PeekBuyNow(ctx context.Context, token string) (*Item, error) {
	val, err := s.rdb.Get(ctx, buyNowKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBuyNowEmpty
	}
	if err != nil {
		return nil, err
	}

	var item Item
	if err := json.Unmarshal([]byte(val), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *redisStore) TakeBuyNow(ctx context.Context, token string) (*Item, error) {
	val, err := s.rdb.GetDel(ctx, buyNowKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBuyNowEmpty
	}
	if err != nil {
		return nil, err
	}

	var item Item
	if err := json.Unmarshal([]byte(val), &item); err != nil {
		return nil, err
	}
	return &item, nil
}
