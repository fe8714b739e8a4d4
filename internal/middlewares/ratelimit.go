package middlewares

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ilia642021/web-development-labs-2-sem/internal/httperr"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/logger"
)

// RateLimitMessage is the fixed message returned to throttled clients.
const RateLimitMessage = "Too many requests. Try again in a minute."

// unknownClient is the sentinel identity for callers whose address
// cannot be determined.
const unknownClient = "unknown"

// CounterStore counts requests per client identity within a fixed window.
// Incr must be atomic per key.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, reset time.Time, err error)
}

// RateLimit caps request volume per client identity. It runs before any
// entity logic and is independent of request content. Every response it
// passes through carries X-RateLimit-Limit/Remaining/Reset headers; over
// the ceiling the request is rejected with 429 and the fixed message.
// A failing store lets traffic through rather than taking the API down.
func RateLimit(store CounterStore, limit int64, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			count, reset, err := store.Incr(r.Context(), clientKey(r), window)
			if err != nil {
				logger.Log.Warnw("rate limit store unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			remaining := limit - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if count > limit {
				retryAfter := int64(time.Until(reset).Seconds()) + 1
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
				httperr.Write(w, r, httperr.RateLimited(RateLimitMessage))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller by the host part of its network address.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return unknownClient
	}
	return host
}

// MemoryStore is the default in-process counter store: a mutex-guarded map
// of fixed windows with a background sweep of expired entries.
type MemoryStore struct {
	mu          sync.Mutex
	windows     map[string]*windowEntry
	stopCleanup chan struct{}
}

type windowEntry struct {
	count int64
	reset time.Time
}

// NewMemoryStore creates a memory store and starts its cleanup goroutine.
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		windows:     make(map[string]*windowEntry),
		stopCleanup: make(chan struct{}),
	}
	go store.cleanupLoop()
	return store
}

// Incr counts a request against the key's current window, opening a new
// window when the previous one has expired.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.windows[key]
	if !ok || now.After(entry.reset) {
		entry = &windowEntry{reset: now.Add(window)}
		s.windows[key] = entry
	}
	entry.count++
	return entry.count, entry.reset, nil
}

// cleanupLoop periodically drops expired windows so the map does not grow
// without bound under address churn.
func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.windows {
		if now.After(entry.reset) {
			delete(s.windows, key)
		}
	}
}

// Stop shuts down the cleanup goroutine.
func (s *MemoryStore) Stop() {
	close(s.stopCleanup)
}

// RedisStore counts windows in Redis so the ceiling holds across replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Incr atomically increments the key's counter and sets the window TTL on
// first use.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	redisKey := "ratelimit:" + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	ttl := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	return incr.Val(), time.Now().Add(ttl.Val()), nil
}
