package testutil

import (
	"context"
	"testing"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const receiveTimeout = 10 * time.Second

func Context(t *testing.T) context.Context {
	return logging.WithLogger(t.Context(), zaptest.NewLogger(t).Sugar())
}

// Receive waits for a value from the channel failing the test if it's not delivered in time. Must be called from the
// test goroutine.
func Receive[T any](t *testing.T, values <-chan T) T {
	t.Helper()

	select {
	case value := <-values:
		return value
	case <-time.After(receiveTimeout):
		require.FailNow(t, "Timed out waiting for a value")
		var zero T
		return zero
	}
}
