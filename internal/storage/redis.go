package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quickbite/internal/domain"
)

// RedisStateStore persists per-user state (cart, orders, profile) as
// JSON blobs under string keys, with no expiration: state must survive
// process restarts.
type RedisStateStore struct {
	Client *redis.Client
}

func NewRedisStateStore(client *redis.Client) *RedisStateStore {
	return &RedisStateStore{Client: client}
}

func (s *RedisStateStore) CartKey(userID string) string {
	return "cart:" + userID
}

func (s *RedisStateStore) OrdersKey(userID string) string {
	return "orders:" + userID
}

func (s *RedisStateStore) UserKey(userID string) string {
	return "user:" + userID
}

func (s *RedisStateStore) LoadCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart := &domain.Cart{}
	if err := s.load(ctx, s.CartKey(userID), cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *RedisStateStore) SaveCart(ctx context.Context, userID string, cart *domain.Cart) error {
	return s.save(ctx, s.CartKey(userID), cart)
}

func (s *RedisStateStore) DeleteCart(ctx context.Context, userID string) error {
	return s.Client.Del(ctx, s.CartKey(userID)).Err()
}

func (s *RedisStateStore) LoadOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := s.load(ctx, s.OrdersKey(userID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *RedisStateStore) SaveOrders(ctx context.Context, userID string, orders []domain.Order) error {
	return s.save(ctx, s.OrdersKey(userID), orders)
}

func (s *RedisStateStore) LoadUser(ctx context.Context, userID string) (*domain.User, error) {
	user := &domain.User{ID: userID}
	if err := s.load(ctx, s.UserKey(userID), user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *RedisStateStore) SaveUser(ctx context.Context, userID string, user *domain.User) error {
	return s.save(ctx, s.UserKey(userID), user)
}

// load leaves out untouched when the key is absent.
func (s *RedisStateStore) load(ctx context.Context, key string, out interface{}) error {
	payload, err := s.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	return json.Unmarshal(payload, out)
}

func (s *RedisStateStore) save(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, key, payload, 0).Err()
}
