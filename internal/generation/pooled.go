package generation

import (
	"context"
)

// Runner executes blocking work, typically on a bounded worker pool, and
// returns once fn has finished or ctx is done.
type Runner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

type pooledText struct {
	next   TextProvider
	runner Runner
}

// PooledText routes every call of p through r.
func PooledText(p TextProvider, r Runner) TextProvider {
	if r == nil {
		return p
	}
	return &pooledText{next: p, runner: r}
}

func (p *pooledText) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	var out string
	err := p.runner.Run(ctx, func(ctx context.Context) error {
		var err error
		out, err = p.next.Generate(ctx, prompt, systemInstruction)
		return err
	})
	return out, err
}

func (p *pooledText) Model() string { return p.next.Model() }

// Ping forwards to the wrapped provider when it supports it.
func (p *pooledText) Ping(ctx context.Context) error {
	if pinger, ok := p.next.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

type pooledChat struct {
	next   ChatProvider
	runner Runner
}

// PooledChat routes every call of p through r.
func PooledChat(p ChatProvider, r Runner) ChatProvider {
	if r == nil {
		return p
	}
	return &pooledChat{next: p, runner: r}
}

func (p *pooledChat) Complete(ctx context.Context, req ChatRequest) (string, error) {
	var out string
	err := p.runner.Run(ctx, func(ctx context.Context) error {
		var err error
		out, err = p.next.Complete(ctx, req)
		return err
	})
	return out, err
}

func (p *pooledChat) Name() string { return p.next.Name() }

// Ping forwards to the wrapped provider when it supports it.
func (p *pooledChat) Ping(ctx context.Context) error {
	if pinger, ok := p.next.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}
