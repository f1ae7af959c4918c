package booking

import (
	"context"
	"fmt"
	"time"

	"voltport/utils"

	"github.com/google/uuid"
)

// Locker serializes booking admission for a (port, hour-bucket) pair. Two
// concurrent requests for the same bucket must not both pass the conflict
// check; the second either waits out the TTL or is turned away.
type Locker interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}

// admissionLockKey buckets a booking by its port and the hour its interval
// starts in.
func admissionLockKey(portID string, start time.Time) string {
	return fmt.Sprintf("booking_lock:%s:%d", portID, start.Truncate(time.Hour).Unix())
}

// RedisLocker implements Locker with a SETNX advisory lock. The random lock
// value guards against releasing a lock acquired by another request after
// this one's TTL expired.
type RedisLocker struct{}

func (RedisLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	lockValue := uuid.New().String()
	acquired, err := utils.GetLockCacheClient().SetNX(ctx, key, lockValue, expiration).Result()
	if err != nil {
		return false, "", fmt.Errorf("failed to acquire admission lock %s: %w", key, err)
	}
	if !acquired {
		return false, "", nil
	}
	return true, lockValue, nil
}

func (RedisLocker) Unlock(ctx context.Context, key, lockValue string) error {
	client := utils.GetLockCacheClient()
	storedVal, err := client.Get(ctx, key).Result()
	if err != nil {
		return nil // expired or already released
	}
	if storedVal != lockValue {
		return fmt.Errorf("admission lock %s not owned by this request", key)
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release admission lock %s: %w", key, err)
	}
	return nil
}
