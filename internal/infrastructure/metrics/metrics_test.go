package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/goexpense/internal/usecase"
)

var _ usecase.LedgerMetrics = (*Metrics)(nil)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	m.RecordCreated("personal", "expense")
	m.TransferCreated()
	m.ObserveHTTP("GET", "/api/v1/accounts", 200, 10*time.Millisecond)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestLedgerCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordCreated("personal", "expense")
	m.RecordCreated("personal", "expense")
	m.RecordCreated("business", "income")
	m.LimitSpent()
	m.LedgerError("record", "validation")

	if got := testutil.ToFloat64(m.RecordsCreated.WithLabelValues("personal", "expense")); got != 2 {
		t.Fatalf("expected 2 personal expenses, got %v", got)
	}
	if got := testutil.ToFloat64(m.LimitsSpent); got != 1 {
		t.Fatalf("expected 1 limit spend, got %v", got)
	}
	if got := testutil.ToFloat64(m.LedgerErrors.WithLabelValues("record", "validation")); got != 1 {
		t.Fatalf("expected 1 ledger error, got %v", got)
	}
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{200, "2xx"},
		{201, "2xx"},
		{304, "3xx"},
		{404, "4xx"},
		{409, "4xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		if got := statusClass(tt.status); got != tt.want {
			t.Fatalf("statusClass(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}
