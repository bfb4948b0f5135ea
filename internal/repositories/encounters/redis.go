package encounters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

// DefaultTTL is how long an encounter survives without being touched
const DefaultTTL = 24 * time.Hour

// redisRepo stores each session as a JSON blob under encounter:<id>
type redisRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	TTL    time.Duration // refreshed on every write (default: 24 hours)
}

// NewRedisRepository creates a new Redis-backed encounter repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepo{
		client: cfg.Client,
		ttl:    ttl,
	}
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("encounter:%s", id)
}

// Create stores a new encounter. SETNX keeps concurrent creates from overwriting each other.
func (r *redisRepo) Create(ctx context.Context, session *combat.Session) error {
	if session == nil || session.ID == "" {
		return dnderr.InvalidArgument("encounter ID is required")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal encounter: %w", err)
	}

	created, err := r.client.SetNX(ctx, r.key(session.ID), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create encounter: %w", err)
	}
	if !created {
		return dnderr.AlreadyExistsf("encounter with ID '%s' already exists", session.ID).
			WithMeta("encounter_id", session.ID)
	}

	return nil
}

// Get retrieves an encounter by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*combat.Session, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("encounter ID is required")
	}

	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, dnderr.NotFoundf("encounter with ID '%s' not found", id).
			WithMeta("encounter_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get encounter: %w", err)
	}

	var session combat.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal encounter: %w", err)
	}

	return &session, nil
}

// Update replaces an existing encounter and refreshes its TTL
func (r *redisRepo) Update(ctx context.Context, session *combat.Session) error {
	if session == nil || session.ID == "" {
		return dnderr.InvalidArgument("encounter ID is required")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal encounter: %w", err)
	}

	updated, err := r.client.SetXX(ctx, r.key(session.ID), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to update encounter: %w", err)
	}
	if !updated {
		return dnderr.NotFoundf("encounter with ID '%s' not found", session.ID).
			WithMeta("encounter_id", session.ID)
	}

	return nil
}

// Delete removes an encounter
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("encounter ID is required")
	}

	removed, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete encounter: %w", err)
	}
	if removed == 0 {
		return dnderr.NotFoundf("encounter with ID '%s' not found", id).
			WithMeta("encounter_id", id)
	}

	return nil
}
