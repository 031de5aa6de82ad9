package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"talentflow/internal/domain/scoring"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis is a best-effort score cache. When the server is unreachable the
// cache silently degrades to a no-op so scoring keeps working without it.
type Redis struct {
	client *redis.Client
	logger *log.Logger
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

type Options struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

func NewRedis(opts Options, logger *log.Logger) *Redis {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(opts.Port)
	if port == "" {
		port = "6379"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 600 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: strings.TrimSpace(opts.Password),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("component=cache status=unavailable err=%v", err)
		}
		_ = client.Close()
		return &Redis{client: nil, logger: logger, ttl: ttl}
	}

	return &Redis{client: client, logger: logger, ttl: ttl}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("component=cache status=unavailable bypassing=true err=%v", err)
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return redis.ErrClosed
	}
	return r.client.Ping(ctx).Err()
}

func scoreKey(applicationID uuid.UUID) string {
	return "score:" + applicationID.String()
}

// GetScore reports a miss for both absent keys and an unreachable server.
func (r *Redis) GetScore(ctx context.Context, applicationID uuid.UUID) (scoring.Breakdown, bool) {
	if r.isUnavailable() {
		return scoring.Breakdown{}, false
	}
	b, err := r.client.Get(ctx, scoreKey(applicationID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.warnUnavailableOnce(err)
		}
		return scoring.Breakdown{}, false
	}
	var out scoring.Breakdown
	if err := json.Unmarshal(b, &out); err != nil {
		return scoring.Breakdown{}, false
	}
	return out, true
}

func (r *Redis) SetScore(ctx context.Context, applicationID uuid.UUID, breakdown scoring.Breakdown) {
	if r.isUnavailable() {
		return
	}
	b, err := json.Marshal(breakdown)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, scoreKey(applicationID), b, r.ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
	}
}

func (r *Redis) InvalidateScore(ctx context.Context, applicationID uuid.UUID) {
	if r.isUnavailable() {
		return
	}
	if err := r.client.Del(ctx, scoreKey(applicationID)).Err(); err != nil {
		r.warnUnavailableOnce(err)
	}
}

// InvalidateAll drops the cached score for each given application.
func (r *Redis) InvalidateAll(ctx context.Context, applicationIDs []uuid.UUID) {
	if r.isUnavailable() {
		return
	}
	for _, id := range applicationIDs {
		if err := r.client.Del(ctx, scoreKey(id)).Err(); err != nil {
			r.warnUnavailableOnce(err)
			return
		}
	}
}

func TTLFromEnv(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 600 * time.Second
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 600 * time.Second
	}
	return time.Duration(v) * time.Second
}
