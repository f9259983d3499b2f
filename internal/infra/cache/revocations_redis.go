package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barbershop-booking/internal/session"
)

const revokedKeyPrefix = "session:revoked:"

// RevocationsRedis keeps one key per signed-out token, expiring with it.
type RevocationsRedis struct {
	rdb redis.Cmdable
	now func() time.Time
}

func NewRevocationsRedis(rdb redis.Cmdable) *RevocationsRedis {
	return &RevocationsRedis{rdb: rdb, now: time.Now}
}

func (r *RevocationsRedis) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

func (r *RevocationsRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ session.Revocations = (*RevocationsRedis)(nil)
