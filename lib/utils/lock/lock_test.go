package lock

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	ctx := context.Background()
	t.Run(`выполнение под свободным ключом`, func(t *testing.T) {
		called := false
		success, err := WithDelay(ctx, "key1", time.Second, func() error {
			called = true
			return nil
		})
		require.NoError(t, err)
		require.True(t, success)
		require.True(t, called)
	})
	t.Run(`ошибка кода возвращается вызывающему`, func(t *testing.T) {
		expected := errors.New("ошибка")
		success, err := WithDelay(ctx, "key2", time.Second, func() error {
			return expected
		})
		require.True(t, success)
		require.Equal(t, expected, err)
	})
	t.Run(`отказ по таймауту на занятом ключе`, func(t *testing.T) {
		acquired := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = WithDelay(ctx, "key3", time.Second, func() error {
				close(acquired)
				<-release
				return nil
			})
		}()
		<-acquired
		success, err := WithDelay(ctx, "key3", 100*time.Millisecond, func() error {
			return nil
		})
		require.NoError(t, err)
		require.False(t, success)
		close(release)
		<-done
	})
	t.Run(`ожидание освобождения ключа`, func(t *testing.T) {
		acquired := make(chan struct{})
		go func() {
			_, _ = WithDelay(ctx, "key4", time.Second, func() error {
				close(acquired)
				time.Sleep(100 * time.Millisecond)
				return nil
			})
		}()
		<-acquired
		success, err := WithDelay(ctx, "key4", 2*time.Second, func() error {
			return nil
		})
		require.NoError(t, err)
		require.True(t, success)
	})
	t.Run(`отмена контекста прерывает ожидание`, func(t *testing.T) {
		acquired := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = WithDelay(ctx, "key5", time.Second, func() error {
				close(acquired)
				<-release
				return nil
			})
		}()
		<-acquired
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()
		success, err := WithDelay(cancelCtx, "key5", time.Minute, func() error {
			return nil
		})
		require.NoError(t, err)
		require.False(t, success)
		close(release)
		<-done
	})
}
