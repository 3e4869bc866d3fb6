package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecordsDispatchAndTransaction(t *testing.T) {
	m := New()
	m.ObserveDispatch("students.CreateCommand", "command", "success", 5*time.Millisecond)
	m.ObserveDispatch("students.CreateCommand", "command", "success", 7*time.Millisecond)
	m.ObserveTransaction("success", "committed", 10*time.Millisecond)
	m.IncRollbackFailure()

	if got := testutil.ToFloat64(m.dispatchTotal.WithLabelValues("students.CreateCommand", "command", "success")); got != 2 {
		t.Fatalf("dispatch total: want=2 got=%v", got)
	}
	if got := testutil.ToFloat64(m.txTotal.WithLabelValues("success", "committed")); got != 1 {
		t.Fatalf("tx total: want=1 got=%v", got)
	}
	if got := testutil.ToFloat64(m.txRollbackFailure); got != 1 {
		t.Fatalf("rollback failures: want=1 got=%v", got)
	}
}

func TestMetrics_HandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveAPI("GET", "/api/students", "200", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "university_api_requests_total") {
		t.Fatalf("expected api counter in exposition, got:\n%s", body)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ObserveDispatch("x", "query", "success", time.Millisecond)
	m.ObserveTransaction("success", "committed", time.Millisecond)
	m.IncRollbackFailure()
	if m.Registry() != nil {
		t.Fatalf("nil metrics must have nil registry")
	}
}
