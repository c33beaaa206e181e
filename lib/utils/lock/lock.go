package lock

import (
	"context"
	"sync"
	"time"
)

var lockMap sync.Map

// WithDelay выполняет safeCode под блокировкой по ключу.
// Если ключ занят, ждёт освобождения не дольше wait, иначе success=false
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	deadline := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			defer lockMap.Delete(key)
			return true, safeCode()
		}
		select {
		case <-deadline:
			return false, nil
		case <-ctx.Done():
			return false, nil
		case <-time.After(50 * time.Millisecond):
		}
	}
}
