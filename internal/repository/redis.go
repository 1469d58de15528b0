package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"faylbot/internal/models"
)

// RedisStateRepository is the primary state store. State survives process
// restarts; abandoned conversations expire with the TTL.
type RedisStateRepository struct {
	client   *redis.Client
	stateTTL time.Duration
	logger   *zerolog.Logger
}

func NewRedisStateRepository(client *redis.Client, stateTTL time.Duration, logger *zerolog.Logger) *RedisStateRepository {
	return &RedisStateRepository{client: client, stateTTL: stateTTL, logger: logger}
}

func stateKey(userID int64) string {
	return fmt.Sprintf("user_state:%d", userID)
}

func rateLimitKey(userID int64) string {
	return fmt.Sprintf("rate_limit:%d", userID)
}

func (r *RedisStateRepository) GetState(ctx context.Context, userID int64) (*models.UserState, error) {
	data, err := r.client.Get(ctx, stateKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get state: %w", err)
	}

	var state models.UserState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &state, nil
}

func (r *RedisStateRepository) SetState(ctx context.Context, state *models.UserState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := r.client.Set(ctx, stateKey(state.UserID), data, r.stateTTL).Err(); err != nil {
		return fmt.Errorf("redis set state: %w", err)
	}
	return nil
}

func (r *RedisStateRepository) DeleteState(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, stateKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete state: %w", err)
	}
	return nil
}

func (r *RedisStateRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	key := rateLimitKey(userID)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis incr rate limit: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("redis expire rate limit: %w", err)
		}
	}
	return count <= int64(limit), nil
}

func (r *RedisStateRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
