package generation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okStage(text string) Stage {
	return func(context.Context) (ProviderResult, error) {
		return ProviderResult{Text: text, ProviderID: "p", Attempts: 1}, nil
	}
}

func failStage(err error) Stage {
	return func(context.Context) (ProviderResult, error) {
		return ProviderResult{ProviderID: "p", Attempts: 1, Errors: []AttemptError{{Attempt: 1, Message: err.Error()}}}, err
	}
}

func TestRunWithFallback(t *testing.T) {
	fallbackErr := errUpstream

	tests := []struct {
		name      string
		primary   Stage
		fallback  Stage
		kind      OutcomeKind
		succeeded bool
		text      string
		err       error
	}{
		{
			name:      "primary succeeds",
			primary:   okStage("primary"),
			fallback:  failStage(errNotCalled),
			kind:      OutcomeSuccess,
			succeeded: true,
			text:      "primary",
		},
		{
			name:    "primary fails without fallback",
			primary: failStage(errTimeout),
			kind:    OutcomeRetriedThenFailed,
			err:     errTimeout,
		},
		{
			name:      "fallback succeeds",
			primary:   failStage(errTimeout),
			fallback:  okStage("fallback"),
			kind:      OutcomeFellBackSucceeded,
			succeeded: true,
			text:      "fallback",
		},
		{
			name:     "fallback fails",
			primary:  failStage(errTimeout),
			fallback: failStage(fallbackErr),
			kind:     OutcomeFellBackFailed,
			err:      fallbackErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RunWithFallback(context.Background(), tt.primary, tt.fallback)

			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.succeeded, out.Succeeded())
			if tt.succeeded {
				assert.Equal(t, tt.text, out.Result().Text)
				assert.NoError(t, out.Err())
			} else {
				assert.Equal(t, tt.err, out.Err())
			}
		})
	}
}

func TestRunWithFallback_SkipsFallbackWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false

	out := RunWithFallback(ctx, failStage(context.Canceled), func(context.Context) (ProviderResult, error) {
		called = true
		return ProviderResult{}, nil
	})

	assert.False(t, called)
	assert.Equal(t, OutcomeRetriedThenFailed, out.Kind)
}

func TestOutcomeKind_String(t *testing.T) {
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "retried_then_failed", OutcomeRetriedThenFailed.String())
	assert.Equal(t, "fell_back_succeeded", OutcomeFellBackSucceeded.String())
	assert.Equal(t, "fell_back_failed", OutcomeFellBackFailed.String())
	assert.Equal(t, "outcome(9)", OutcomeKind(9).String())
}

func TestTextStage_EmptyTextIsFailure(t *testing.T) {
	res, err := TextStage(textReturning("m", "   "), "prompt", "")(context.Background())

	assert.ErrorIs(t, err, ErrProviderCallFailed)
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, "m", res.ProviderID)
	assert.Len(t, res.Errors, 1)
}

func TestRetriedChatStage_ReportsAttempts(t *testing.T) {
	r, _ := testRetrier(3)
	chat := &fakeChat{name: "openrouter", fn: func(call int, _ ChatRequest) (string, error) {
		if call == 1 {
			return "", errUpstream
		}
		return " text ", nil
	}}

	res, err := RetriedChatStage(r, "op", chat, ChatRequest{Model: "m"})(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "text", res.Text)
	assert.Equal(t, "openrouter/m", res.ProviderID)
	assert.Equal(t, 2, res.Attempts)
	assert.Len(t, res.Errors, 1)
}
