package generation

import (
	"context"
	"fmt"
	"strings"
)

// OutcomeKind tags how a primary/fallback pair resolved.
type OutcomeKind int

// Outcome kinds
const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeRetriedThenFailed
	OutcomeFellBackSucceeded
	OutcomeFellBackFailed
)

// String returns the snake_case name of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetriedThenFailed:
		return "retried_then_failed"
	case OutcomeFellBackSucceeded:
		return "fell_back_succeeded"
	case OutcomeFellBackFailed:
		return "fell_back_failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Stage is one unit of provider work: a single call, or a retried call.
type Stage func(ctx context.Context) (ProviderResult, error)

// Outcome is the tagged result of RunWithFallback.
type Outcome struct {
	Kind        OutcomeKind
	Primary     ProviderResult
	Fallback    ProviderResult
	PrimaryErr  error
	FallbackErr error
}

// Succeeded reports whether either stage produced text.
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess || o.Kind == OutcomeFellBackSucceeded
}

// Result returns the result of the stage that produced text.
func (o Outcome) Result() ProviderResult {
	if o.Kind == OutcomeFellBackSucceeded {
		return o.Fallback
	}
	return o.Primary
}

// Err returns the error that ended the outcome, or nil on success.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeRetriedThenFailed:
		return o.PrimaryErr
	case OutcomeFellBackFailed:
		return o.FallbackErr
	default:
		return nil
	}
}

// RunWithFallback runs primary and, if it fails, fallback. A nil fallback
// yields OutcomeRetriedThenFailed on primary failure. The fallback is not
// attempted once ctx is done.
func RunWithFallback(ctx context.Context, primary, fallback Stage) Outcome {
	res, err := primary(ctx)
	if err == nil {
		return Outcome{Kind: OutcomeSuccess, Primary: res}
	}
	out := Outcome{Kind: OutcomeRetriedThenFailed, Primary: res, PrimaryErr: err}
	if fallback == nil || ctx.Err() != nil {
		return out
	}

	fres, ferr := fallback(ctx)
	out.Fallback = fres
	if ferr != nil {
		out.Kind = OutcomeFellBackFailed
		out.FallbackErr = ferr
		return out
	}
	out.Kind = OutcomeFellBackSucceeded
	return out
}

// TextStage calls a TextProvider once.
func TextStage(p TextProvider, prompt, systemInstruction string) Stage {
	return func(ctx context.Context) (ProviderResult, error) {
		res := ProviderResult{ProviderID: p.Model(), Attempts: 1}
		text, err := callText(ctx, p, prompt, systemInstruction)
		if err != nil {
			res.Errors = []AttemptError{{Attempt: 1, Message: err.Error()}}
			return res, err
		}
		res.Text = text
		return res, nil
	}
}

// RetriedTextStage calls a TextProvider through r.
func RetriedTextStage(r *Retrier, operation string, p TextProvider, prompt, systemInstruction string) Stage {
	return func(ctx context.Context) (ProviderResult, error) {
		text, report, err := ExecuteWithRetry(ctx, r, operation, func(ctx context.Context) (string, error) {
			return callText(ctx, p, prompt, systemInstruction)
		})
		return ProviderResult{
			Text:       text,
			ProviderID: p.Model(),
			Attempts:   report.Attempts,
			Errors:     report.Errors,
		}, err
	}
}

// ChatStage calls a ChatProvider once.
func ChatStage(p ChatProvider, req ChatRequest) Stage {
	return func(ctx context.Context) (ProviderResult, error) {
		res := ProviderResult{ProviderID: ChatModelID(p, req.Model), Attempts: 1}
		text, err := callChat(ctx, p, req)
		if err != nil {
			res.Errors = []AttemptError{{Attempt: 1, Message: err.Error()}}
			return res, err
		}
		res.Text = text
		return res, nil
	}
}

// RetriedChatStage calls a ChatProvider through r.
func RetriedChatStage(r *Retrier, operation string, p ChatProvider, req ChatRequest) Stage {
	return func(ctx context.Context) (ProviderResult, error) {
		text, report, err := ExecuteWithRetry(ctx, r, operation, func(ctx context.Context) (string, error) {
			return callChat(ctx, p, req)
		})
		return ProviderResult{
			Text:       text,
			ProviderID: ChatModelID(p, req.Model),
			Attempts:   report.Attempts,
			Errors:     report.Errors,
		}, err
	}
}

func callText(ctx context.Context, p TextProvider, prompt, systemInstruction string) (string, error) {
	text, err := p.Generate(ctx, prompt, systemInstruction)
	if err != nil {
		return "", err
	}
	return requireText(text)
}

func callChat(ctx context.Context, p ChatProvider, req ChatRequest) (string, error) {
	text, err := p.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	return requireText(text)
}

func requireText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %w", ErrProviderCallFailed, ErrEmptyResponse)
	}
	return text, nil
}
