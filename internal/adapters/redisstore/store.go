// Package redisstore keeps user records in Redis, one JSON value per user.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
)

// Config holds configuration for the Redis connection
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	// TTL expires idle records. Zero keeps them forever.
	TTL time.Duration
}

// Store implements the profile repository on Redis.
type Store struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

var _ ports.ProfileRepository = (*Store)(nil)

// NewStore connects to Redis and verifies the connection.
func NewStore(cfg Config) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewStoreWithClient(rdb, cfg.KeyPrefix, cfg.TTL), nil
}

// NewStoreWithClient wraps an existing client.
func NewStoreWithClient(rdb *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Key is the Redis key holding the record of userID.
func (s *Store) Key(userID string) string {
	return s.prefix + "user:" + userID
}

// Load returns the stored record, or an empty record for a new user.
func (s *Store) Load(ctx context.Context, userID string) (*domain.UserRecord, error) {
	raw, err := s.rdb.Get(ctx, s.Key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewUserRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	rec := domain.NewUserRecord()
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("failed to decode user record: %w", err)
	}
	return rec, nil
}

// Save overwrites the stored record.
func (s *Store) Save(ctx context.Context, userID string, rec *domain.UserRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}
	if err := s.rdb.Set(ctx, s.Key(userID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.rdb.Close()
}
