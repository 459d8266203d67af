package generation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/phrazzld/promptchain/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoff(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, Backoff(base, 1))
	assert.Equal(t, 4*time.Second, Backoff(base, 2))
	assert.Equal(t, 8*time.Second, Backoff(base, 3))
	assert.Equal(t, 2*time.Second, Backoff(base, 0))
}

func TestExecuteWithRetry_SucceedsAfterFailures(t *testing.T) {
	for k := 0; k < 3; k++ {
		t.Run(fmt.Sprintf("%d failures", k), func(t *testing.T) {
			r, sleeper := testRetrier(3)
			calls := 0

			value, report, err := ExecuteWithRetry(context.Background(), r, "op", func(context.Context) (string, error) {
				calls++
				if calls <= k {
					return "", errUpstream
				}
				return "done", nil
			})

			require.NoError(t, err)
			assert.Equal(t, "done", value)
			assert.Equal(t, k+1, calls)
			assert.Equal(t, k+1, report.Attempts)
			assert.Len(t, report.Errors, k)
			for i, e := range report.Errors {
				assert.Equal(t, i+1, e.Attempt)
				assert.Contains(t, e.Message, "503")
			}
			assert.Len(t, sleeper.Delays(), k)
		})
	}
}

func TestExecuteWithRetry_Exhausted(t *testing.T) {
	r, sleeper := testRetrier(4)
	calls := 0
	last := errors.New("attempt 4 failed")

	_, report, err := ExecuteWithRetry(context.Background(), r, "primary prompt", func(context.Context) (int, error) {
		calls++
		if calls == 4 {
			return 0, last
		}
		return 0, errUpstream
	})

	require.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.True(t, errors.Is(err, ErrExhaustedRetries))
	assert.Equal(t, last, errors.Unwrap(err))

	var exhausted *ExhaustedRetriesError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 4, exhausted.Attempts)
	assert.Len(t, exhausted.Log, 4)
	assert.Equal(t, report.Errors, exhausted.Log)
	assert.Contains(t, exhausted.Summary(), "#4: attempt 4 failed")

	// No wait after the final attempt; delays double each time.
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, sleeper.Delays())
	minimum := 2 * time.Second * (1 + 2 + 4)
	assert.GreaterOrEqual(t, sleeper.Total(), minimum)
}

func TestExecuteWithRetry_UnconfiguredProviderStopsEarly(t *testing.T) {
	r, sleeper := testRetrier(3)
	p := UnconfiguredText("gemini-2.5-pro")
	calls := 0

	_, report, err := ExecuteWithRetry(context.Background(), r, "primary prompt", func(ctx context.Context) (string, error) {
		calls++
		return p.Generate(ctx, "idea", "")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, report.Attempts)
	assert.True(t, errors.Is(err, ErrExhaustedRetries))
	assert.True(t, errors.Is(err, ErrProviderNotConfigured))
	assert.Empty(t, sleeper.Delays())
	assert.Equal(t, "gemini-2.5-pro", p.Model())
}

func TestExecuteWithRetry_LogsEveryAttempt(t *testing.T) {
	logger, handler := testutils.NewTestLogger()
	s := &recordingSleeper{}
	r := NewRetrier(3, time.Millisecond, logger, WithSleeper(s.Sleep))
	calls := 0

	_, _, err := ExecuteWithRetry(context.Background(), r, "op", func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errUpstream
		}
		return "ok", nil
	})
	require.NoError(t, err)

	failed := handler.EntriesWithMessage("attempt failed")
	succeeded := handler.EntriesWithMessage("attempt succeeded")
	require.Len(t, failed, 2)
	require.Len(t, succeeded, 1)
	assert.Equal(t, "ERROR", failed[0]["level"])
	assert.Equal(t, "INFO", succeeded[0]["level"])
	assert.Equal(t, int64(3), succeeded[0]["attempt"])
	assert.Equal(t, "retry", succeeded[0]["component"])
}

func TestExecuteWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRetrier(5, time.Second, discardLogger(), WithSleeper(func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}))
	calls := 0

	_, report, err := ExecuteWithRetry(ctx, r, "op", func(context.Context) (string, error) {
		calls++
		return "", errUpstream
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrExhaustedRetries))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, report.Attempts)
}

func TestNewRetrier_Defaults(t *testing.T) {
	r := NewRetrier(0, -1, nil)
	assert.Equal(t, DefaultMaxAttempts, r.MaxAttempts())
	assert.Equal(t, DefaultBaseDelay, r.BaseDelay())
}

func TestContextSleep(t *testing.T) {
	assert.NoError(t, contextSleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, contextSleep(ctx, time.Hour), context.Canceled)
}
