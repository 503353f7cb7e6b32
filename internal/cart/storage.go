package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"abils-mall/internal/domain"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrCartCorrupt  = errors.New("stored cart data is corrupt")
)

// Storage is the durable key-value slot carts are persisted to after
// every mutation. One slot per cart ID, under a fixed key prefix.
type Storage interface {
	Load(ctx context.Context, cartID string) (*domain.Cart, error)
	Save(ctx context.Context, cartID string, cart *domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}

type redisStorage struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStorage creates cart storage backed by Redis. Carts are
// stored as JSON under "<prefix>:<cartID>".
func NewRedisStorage(client *redis.Client, keyPrefix string) Storage {
	if keyPrefix == "" {
		keyPrefix = "cart"
	}
	return &redisStorage{client: client, keyPrefix: keyPrefix}
}

func (s *redisStorage) key(cartID string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, cartID)
}

func (s *redisStorage) Load(ctx context.Context, cartID string) (*domain.Cart, error) {
	data, err := s.client.Get(ctx, s.key(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	cart := &domain.Cart{}
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, ErrCartCorrupt
	}

	return cart, nil
}

func (s *redisStorage) Save(ctx context.Context, cartID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := s.client.Set(ctx, s.key(cartID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

func (s *redisStorage) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, s.key(cartID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
