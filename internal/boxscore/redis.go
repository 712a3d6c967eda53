package boxscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codr1/handball-record/internal/config"
)

// ErrNotCached is returned by a Mirror that holds nothing for the game.
var ErrNotCached = errors.New("box score not cached")

// Mirror is a secondary copy of the per-game box score.
type Mirror interface {
	WriteBoxScore(ctx context.Context, snap Snapshot) error
	ReadBoxScore(ctx context.Context, gameNumber int64) (Snapshot, error)
}

// NewRedisClient returns a client for the configured address, or nil when Redis is not
// configured.
func NewRedisClient(cfg config.CacheConfig) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: 2 * time.Second,
		ReadTimeout: time.Second,
	})
}

// RedisMirror keeps the box score JSON under game:<number>:boxscore.
type RedisMirror struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMirror(client *redis.Client, ttl time.Duration) *RedisMirror {
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}
	return &RedisMirror{client: client, ttl: ttl}
}

func boxScoreKey(gameNumber int64) string {
	return fmt.Sprintf("game:%d:boxscore", gameNumber)
}

func (m *RedisMirror) WriteBoxScore(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling boxscore: %w", err)
	}
	return m.client.Set(ctx, boxScoreKey(snap.GameNumber), data, m.ttl).Err()
}

func (m *RedisMirror) ReadBoxScore(ctx context.Context, gameNumber int64) (Snapshot, error) {
	data, err := m.client.Get(ctx, boxScoreKey(gameNumber)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNotCached
	}
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshaling boxscore: %w", err)
	}
	return snap, nil
}

// Ping checks the connection at startup.
func (m *RedisMirror) Ping(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}
