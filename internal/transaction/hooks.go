package transaction

import (
	"strings"
	"time"

	"github.com/yungbote/university-backend/internal/observability"
)

// Hooks captures boundary-level observability events.
type Hooks interface {
	ObserveTransaction(outcome, status string, dur time.Duration)
	IncRollbackFailure()
}

type noopHooks struct{}

func (noopHooks) ObserveTransaction(string, string, time.Duration) {}
func (noopHooks) IncRollbackFailure()                              {}

type observabilityHooks struct {
	metrics *observability.Metrics
}

// NewObservabilityHooks creates boundary hooks backed by observability metrics.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return &observabilityHooks{metrics: metrics}
}

func (h *observabilityHooks) ObserveTransaction(outcome, status string, dur time.Duration) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.ObserveTransaction(strings.TrimSpace(outcome), strings.TrimSpace(status), dur)
}

func (h *observabilityHooks) IncRollbackFailure() {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.IncRollbackFailure()
}
