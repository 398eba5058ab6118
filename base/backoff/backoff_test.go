package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponentialDurations(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 4*time.Millisecond)

	req.Equal(time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(2*time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(4*time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(4*time.Millisecond, b.NextDuration)
	req.Equal(3, b.Count())

	b.Reset()
	req.Equal(time.Millisecond, b.NextDuration)
	req.Equal(0, b.Count())
}

func TestLinearDurations(t *testing.T) {
	req := require.New(t)
	b := NewLinear(time.Millisecond, 0)
	req.Equal(time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(2*time.Millisecond, b.NextDuration)
}

func TestBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewExponential(time.Hour, 0)
	require.Equal(t, context.Canceled, b.Backoff(ctx))
	require.Equal(t, 0, b.Count())
}

func TestRetry(t *testing.T) {
	req := require.New(t)
	errFlaky := errors.New("flaky")

	calls := 0
	err := NewExponential(time.Millisecond, 0).Retry(context.Background(), 3, func() error {
		calls++
		if calls < 3 {
			return errFlaky
		}
		return nil
	})
	req.NoError(err)
	req.Equal(3, calls)

	calls = 0
	err = NewExponential(time.Millisecond, 0).Retry(context.Background(), 2, func() error {
		calls++
		return errFlaky
	})
	req.Equal(errFlaky, err)
	req.Equal(2, calls)
}
