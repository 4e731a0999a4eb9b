package service

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/logger"
)

// StatusTracker remembers the most recent connectivity probe.
type StatusTracker struct {
	mu      sync.RWMutex
	last    *domain.APIStatus
	checked time.Time
}

func NewStatusTracker() *StatusTracker {
	return &StatusTracker{}
}

func (t *StatusTracker) Record(s domain.APIStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = &s
	t.checked = time.Now().UTC()
}

// Last returns the latest recorded status, or nil before the first probe.
func (t *StatusTracker) Last() *domain.APIStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.last == nil {
		return nil
	}
	s := *t.last
	return &s
}

// CheckedAt is when the latest status was recorded, zero before the first probe.
func (t *StatusTracker) CheckedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.checked
}

// TestAPIConnection checks the generation endpoint in three steps:
// credential, DNS reachability of its host, one minimal completion.
func (a *Aggregator) TestAPIConnection(ctx context.Context) domain.APIStatus {
	status := a.probeGenerated(ctx)
	a.status.Record(status)
	if status.Success {
		a.log.Info("api connection ok")
	} else {
		a.log.Warn("api connection failed", logger.String("message", status.Message))
	}
	return status
}

func (a *Aggregator) probeGenerated(ctx context.Context) domain.APIStatus {
	if a.generated == nil || !a.generated.HasCredential() {
		return domain.APIStatus{Success: false, Message: "OpenAI API key is not configured"}
	}

	host := hostname(a.generated.BaseURL())
	if host == "" {
		return domain.APIStatus{
			Success: false,
			Message: "OpenAI base URL is invalid",
			Details: map[string]any{"base_url": a.generated.BaseURL()},
		}
	}
	if _, err := a.opts.Resolver.LookupHost(ctx, host); err != nil {
		return domain.APIStatus{
			Success: false,
			Message: "Network connectivity issue: cannot resolve " + host,
			Details: map[string]any{"error": err.Error()},
		}
	}

	start := time.Now()
	if err := a.generated.Probe(ctx); err != nil {
		return domain.APIStatus{
			Success: false,
			Message: "OpenAI API request failed",
			Details: map[string]any{"error": err.Error()},
		}
	}
	return domain.APIStatus{
		Success: true,
		Message: "OpenAI API connection successful",
		Details: map[string]any{"latency_ms": time.Since(start).Milliseconds()},
	}
}

func hostname(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
