package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Window is a sliding-window counter kept in a Redis sorted set per key.
// A nil client allows everything.
type Window struct {
	Client *redis.Client
	Prefix string
	Size   time.Duration
	Max    int
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Allow records a hit for key and reports whether it fits in the window.
func (w Window) Allow(ctx context.Context, key string) (Decision, error) {
	now := time.Now()
	d := Decision{Allowed: true, Remaining: w.Max, ResetAt: now.Add(w.Size)}
	if w.Client == nil || w.Max <= 0 || w.Size <= 0 {
		return d, nil
	}

	redisKey := w.Prefix + key
	pipe := w.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", strconv.FormatInt(now.Add(-w.Size).UnixNano(), 10))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	card := pipe.ZCard(ctx, redisKey)
	pipe.PExpire(ctx, redisKey, w.Size)
	if _, err := pipe.Exec(ctx); err != nil {
		return d, err
	}

	used := int(card.Val())
	d.Allowed = used <= w.Max
	d.Remaining = max(w.Max-used, 0)
	return d, nil
}
