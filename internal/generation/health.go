package generation

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/promptchain/internal/redact"
)

// ProviderCheck names a provider to verify. A nil Pinger means the provider
// has no credential configured.
type ProviderCheck struct {
	Name   string
	Model  string
	Pinger Pinger
}

// ProviderStatus is the result of checking one provider.
type ProviderStatus struct {
	Name       string        `json:"name"`
	Model      string        `json:"model"`
	Configured bool          `json:"configured"`
	OK         bool          `json:"ok"`
	Error      string        `json:"error,omitempty"`
	Latency    time.Duration `json:"latency_ns"`
}

// CheckProviders pings every configured provider concurrently and returns
// one status per check, in input order. Error messages are redacted.
func CheckProviders(ctx context.Context, checks []ProviderCheck) []ProviderStatus {
	statuses := make([]ProviderStatus, len(checks))
	var wg sync.WaitGroup
	for i, c := range checks {
		statuses[i] = ProviderStatus{Name: c.Name, Model: c.Model, Configured: c.Pinger != nil}
		if c.Pinger == nil {
			statuses[i].Error = ErrProviderNotConfigured.Error()
			continue
		}
		wg.Add(1)
		go func(i int, p Pinger) {
			defer wg.Done()
			start := time.Now()
			err := p.Ping(ctx)
			statuses[i].Latency = time.Since(start)
			if err != nil {
				statuses[i].Error = redact.Error(err)
				return
			}
			statuses[i].OK = true
		}(i, c.Pinger)
	}
	wg.Wait()
	return statuses
}
