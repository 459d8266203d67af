package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

var errUpstream = fmt.Errorf("%w: upstream returned 503", ErrProviderCallFailed)

var errTimeout = fmt.Errorf("%w: %w", ErrProviderCallFailed, context.DeadlineExceeded)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeText struct {
	model string
	fn    func(call int, prompt, system string) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (f *fakeText) Generate(ctx context.Context, prompt, system string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	call := len(f.prompts)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.fn(call, prompt, system)
}

func (f *fakeText) Model() string { return f.model }

func (f *fakeText) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeText) Prompt(i int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompts[i]
}

func textReturning(model, text string) *fakeText {
	return &fakeText{model: model, fn: func(int, string, string) (string, error) { return text, nil }}
}

func textFailing(model string, err error) *fakeText {
	return &fakeText{model: model, fn: func(int, string, string) (string, error) { return "", err }}
}

type fakeChat struct {
	name string
	fn   func(call int, req ChatRequest) (string, error)

	mu       sync.Mutex
	requests []ChatRequest
}

func (f *fakeChat) Complete(ctx context.Context, req ChatRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	call := len(f.requests)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.fn(call, req)
}

func (f *fakeChat) Name() string { return f.name }

func (f *fakeChat) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeChat) Request(i int) ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i]
}

func chatReturning(text string) *fakeChat {
	return &fakeChat{name: "openrouter", fn: func(int, ChatRequest) (string, error) { return text, nil }}
}

func chatFailing(err error) *fakeChat {
	return &fakeChat{name: "openrouter", fn: func(int, ChatRequest) (string, error) { return "", err }}
}

type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *recordingSleeper) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.delays))
	copy(out, s.delays)
	return out
}

func (s *recordingSleeper) Total() time.Duration {
	var total time.Duration
	for _, d := range s.Delays() {
		total += d
	}
	return total
}

func testRetrier(maxAttempts int) (*Retrier, *recordingSleeper) {
	s := &recordingSleeper{}
	return NewRetrier(maxAttempts, 2*time.Second, discardLogger(), WithSleeper(s.Sleep)), s
}

var errNotCalled = errors.New("should not be called")
