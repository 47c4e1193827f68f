package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotAcquired = errors.New("lock not acquired")

// unlockScript deletes the key only when it still holds our token, so an
// expired lock taken over by another holder is never released by us.
const unlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

// Lock is a redis advisory lock. It is used to serialize callback processing
// per transaction number; the conditional status updates remain the actual
// correctness guarantee, the lock just avoids doing the work twice.
type Lock struct {
	client     *redis.Client
	key        string
	token      string
	expiration time.Duration
}

func New(client *redis.Client, key, token string, expiration time.Duration) *Lock {
	return &Lock{client: client, key: key, token: token, expiration: expiration}
}

// NewTransactionLock builds a lock scoped to one transaction number.
func NewTransactionLock(client *redis.Client, transactionNo, token string) *Lock {
	return New(client, fmt.Sprintf("trx:lock:%s", transactionNo), token, 30*time.Second)
}

// TryLock attempts to take the lock without blocking.
func (l *Lock) TryLock(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, l.key, l.token, l.expiration).Result()
}

// Lock retries until the lock is acquired, maxRetries is exhausted or the
// context is cancelled.
func (l *Lock) Lock(ctx context.Context, retryInterval time.Duration, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		ok, err := l.TryLock(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return ErrNotAcquired
}

func (l *Lock) Unlock(ctx context.Context) error {
	_, err := l.client.Eval(ctx, unlockScript, []string{l.key}, l.token).Result()
	return err
}
