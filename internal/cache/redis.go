package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key is not in the cache.
var ErrMiss = errors.New("cache: miss")

// DefaultShareTTL is how long a resolved share view stays cached.
const DefaultShareTTL = 5 * time.Minute

// RedisClient wraps the Redis client for share view caching
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client
func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Printf("[Redis] Connected to %s", addr)
	return &RedisClient{client: client}, nil
}

func shareKey(token string) string {
	return "share:" + token + ":view"
}

// SetShareView caches the resolved payload for a share token
func (r *RedisClient) SetShareView(ctx context.Context, token string, payload interface{}, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if ttl <= 0 {
		ttl = DefaultShareTTL
	}

	if err := r.client.Set(ctx, shareKey(token), data, ttl).Err(); err != nil {
		log.Printf("[Redis] Failed to cache share view: %v", err)
		return err
	}

	return nil
}

// GetShareView retrieves a cached share view, or ErrMiss
func (r *RedisClient) GetShareView(ctx context.Context, token string) ([]byte, error) {
	data, err := r.client.Get(ctx, shareKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// InvalidateShareView drops the cached view for a token
// Use this after a canvas or note write under that token
func (r *RedisClient) InvalidateShareView(ctx context.Context, token string) error {
	return r.client.Del(ctx, shareKey(token)).Err()
}

// TouchVideo increments the per-video request counter for rough usage stats
func (r *RedisClient) TouchVideo(ctx context.Context, videoID int64) (int64, error) {
	return r.client.HIncrBy(ctx, "video:hits", strconv.FormatInt(videoID, 10), 1).Result()
}

// VideoHits returns all per-video request counters
func (r *RedisClient) VideoHits(ctx context.Context) (map[string]string, error) {
	return r.client.HGetAll(ctx, "video:hits").Result()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// Health checks if Redis is healthy
func (r *RedisClient) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
