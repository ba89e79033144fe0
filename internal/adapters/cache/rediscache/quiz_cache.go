// Package rediscache puts a Redis read-through cache in front of the quiz store.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/testmaker/quizapi/internal/domain"
	"github.com/testmaker/quizapi/internal/platform/logging"
	"github.com/testmaker/quizapi/internal/ports"
)

const keyPrefix = "quizapi:quiz:"

// Options configures the Redis client.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient creates a Redis client.
func NewClient(opts Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// QuizCache decorates a ports.QuizRepository. Single-quiz reads are served
// from Redis when possible; concurrent misses for one id share a single
// store read. Writes go to the store first and then evict the cached copy.
// Listings are always read from the store.
//
// Redis failures never fail a request: the cache logs and falls through.
// A read that races an update may re-cache the previous version; it lives
// until its TTL expires.
type QuizCache struct {
	next   ports.QuizRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// NewQuizCache wraps next with a cache on client. A non-positive ttl stores
// entries without expiry.
func NewQuizCache(next ports.QuizRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *QuizCache {
	if logger == nil {
		logger = slog.Default()
	}

	seed := uint64(time.Now().UnixNano())

	return &QuizCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "rediscache")),
		rnd:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// FindByID returns the cached quiz or loads it from the store.
func (c *QuizCache) FindByID(ctx context.Context, id int64) (*domain.Quiz, error) {
	if q, ok := c.get(ctx, id); ok {
		return q, nil
	}

	v, err, _ := c.sf.Do(strconv.FormatInt(id, 10), func() (any, error) {
		// Another caller may have filled the entry while we waited.
		if q, ok := c.get(ctx, id); ok {
			return q, nil
		}

		q, err := c.next.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		c.set(ctx, q)

		return q, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers sharing a flight must not share the pointer.
	q := *v.(*domain.Quiz)

	return &q, nil
}

// Insert writes through to the store. New ids are never cached yet.
func (c *QuizCache) Insert(ctx context.Context, quiz *domain.Quiz) error {
	return c.next.Insert(ctx, quiz)
}

// Update writes through and evicts the cached quiz.
func (c *QuizCache) Update(ctx context.Context, quiz *domain.Quiz) error {
	if err := c.next.Update(ctx, quiz); err != nil {
		return err
	}

	c.evict(ctx, quiz.ID)

	return nil
}

// Delete removes the quiz from the store and the cache.
func (c *QuizCache) Delete(ctx context.Context, id int64) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}

	c.evict(ctx, id)

	return nil
}

func (c *QuizCache) ListLatest(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	return c.next.ListLatest(ctx, limit)
}

func (c *QuizCache) ListByTitle(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	return c.next.ListByTitle(ctx, limit)
}

func (c *QuizCache) ListAll(ctx context.Context) ([]*domain.Quiz, error) {
	return c.next.ListAll(ctx)
}

func (c *QuizCache) Count(ctx context.Context) (int64, error) {
	return c.next.Count(ctx)
}

func (c *QuizCache) get(ctx context.Context, id int64) (*domain.Quiz, bool) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log(ctx).WarnContext(ctx, "cache read failed",
				slog.Int64("quiz_id", id),
				slog.Any("error", err),
			)
		}

		return nil, false
	}

	var q domain.Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		c.log(ctx).WarnContext(ctx, "discarding corrupt cache entry",
			slog.Int64("quiz_id", id),
			slog.Any("error", err),
		)
		c.evict(ctx, id)

		return nil, false
	}

	return &q, true
}

func (c *QuizCache) set(ctx context.Context, q *domain.Quiz) {
	raw, err := json.Marshal(q)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key(q.ID), raw, c.ttlWithJitter()).Err(); err != nil {
		c.log(ctx).WarnContext(ctx, "cache write failed",
			slog.Int64("quiz_id", q.ID),
			slog.Any("error", err),
		)
	}
}

func (c *QuizCache) evict(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		c.log(ctx).WarnContext(ctx, "cache eviction failed",
			slog.Int64("quiz_id", id),
			slog.Any("error", err),
		)
	}
}

// ttlWithJitter spreads expiries by up to 10% so entries filled together
// do not expire together.
func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}

	c.rndMu.Lock()
	defer c.rndMu.Unlock()

	return c.ttl + time.Duration(c.rnd.Int64N(int64(c.ttl)/10+1))
}

func (c *QuizCache) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, c.logger)
}

func key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

// HealthChecker pings Redis.
type HealthChecker struct {
	client *redis.Client
}

// NewHealthChecker creates a health checker for client.
func NewHealthChecker(client *redis.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// Name implements ports.HealthChecker.
func (h *HealthChecker) Name() string { return "cache" }

// Check implements ports.HealthChecker.
func (h *HealthChecker) Check(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}
