package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/lox/wildpoker/internal/game"
)

// KeyPrefix namespaces game documents in redis.
const KeyPrefix = "wildpoker:state:"

// RedisStore keeps each game document as a JSON string value.
type RedisStore struct {
	rdb *redis.Client
}

// OpenRedis connects to addr and checks the connection.
func OpenRedis(ctx context.Context, addr string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Load reads the document for id.
func (s *RedisStore) Load(ctx context.Context, id string) (*game.State, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	data, err := s.rdb.Get(ctx, KeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	var state game.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	return &state, nil
}

// Save replaces the document for id.
func (s *RedisStore) Save(ctx context.Context, id string, state *game.State) error {
	if err := checkID(id); err != nil {
		return err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", id, err)
	}
	if err := s.rdb.Set(ctx, KeyPrefix+id, data, 0).Err(); err != nil {
		return fmt.Errorf("save game %s: %w", id, err)
	}
	return nil
}

// Delete removes the document for id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, KeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	return nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
