package mediator

import (
	"strings"
	"time"

	"github.com/yungbote/university-backend/internal/observability"
)

// Hooks captures dispatch-level observability events.
type Hooks interface {
	ObserveDispatch(request, kind, status string, dur time.Duration)
}

type noopHooks struct{}

func (noopHooks) ObserveDispatch(string, string, string, time.Duration) {}

type observabilityHooks struct {
	metrics *observability.Metrics
}

// NewObservabilityHooks creates dispatch hooks backed by observability metrics.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return &observabilityHooks{metrics: metrics}
}

func (h *observabilityHooks) ObserveDispatch(request, kind, status string, dur time.Duration) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.ObserveDispatch(strings.TrimSpace(request), strings.TrimSpace(kind), strings.TrimSpace(status), dur)
}
