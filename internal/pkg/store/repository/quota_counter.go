package repository

import (
	"context"

	"github.com/redis/go-redis/v9"

	"globe/dodrio_credit_limit/internal/pkg/logger"
)

// QuotaCounter is a shared usage counter backed by redis INCR. Quotas are
// enforced by incrementing first and comparing the returned value, so two
// workers racing on the last slot cannot both win it.
type QuotaCounter struct {
	client redis.Cmdable
}

func NewQuotaCounter(client redis.Cmdable) *QuotaCounter {
	return &QuotaCounter{client: client}
}

// IncrementIfBelow consumes one slot of the quota under key. It returns
// whether the slot was granted and how many slots remain after this call.
// When the increment overshoots the quota the counter is rolled back so
// unrelated later grants are not blocked by failed attempts.
func (q *QuotaCounter) IncrementIfBelow(ctx context.Context, key string, quota int64) (bool, int64, error) {
	used, err := q.client.Incr(ctx, key).Result()
	if err != nil {
		logger.Error(ctx, "QuotaCounter : INCR %s failed %v", key, err)
		return false, 0, err
	}
	if used > quota {
		if err := q.client.Decr(ctx, key).Err(); err != nil {
			logger.Warn(ctx, "QuotaCounter : rollback DECR %s failed %v", key, err)
		}
		return false, 0, nil
	}
	return true, quota - used, nil
}

// Used returns how many slots have been consumed under key. A missing key
// counts as zero.
func (q *QuotaCounter) Used(ctx context.Context, key string) (int64, error) {
	used, err := q.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return used, nil
}
