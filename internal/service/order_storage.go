package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"abils-mall/internal/domain"

	"github.com/redis/go-redis/v9"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStorage is the local echo slot for submitted checkout payloads.
// Orders are never transmitted anywhere else; the latest submission per
// cart overwrites the previous one, like the single localStorage key it
// replaces.
type OrderStorage interface {
	Save(ctx context.Context, cartID string, order *domain.Order) error
	Latest(ctx context.Context, cartID string) (*domain.Order, error)
}

type redisOrderStorage struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisOrderStorage creates order storage backed by Redis under
// "<prefix>:<cartID>".
func NewRedisOrderStorage(client *redis.Client, keyPrefix string) OrderStorage {
	if keyPrefix == "" {
		keyPrefix = "checkout"
	}
	return &redisOrderStorage{client: client, keyPrefix: keyPrefix}
}

func (s *redisOrderStorage) key(cartID string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, cartID)
}

func (s *redisOrderStorage) Save(ctx context.Context, cartID string, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to serialize order: %w", err)
	}

	if err := s.client.Set(ctx, s.key(cartID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	return nil
}

func (s *redisOrderStorage) Latest(ctx context.Context, cartID string) (*domain.Order, error) {
	data, err := s.client.Get(ctx, s.key(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	order := &domain.Order{}
	if err := json.Unmarshal(data, order); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}

	return order, nil
}
