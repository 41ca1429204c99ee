package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()
}

func TestSearchRequestsTotal_Labels(t *testing.T) {
	before := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("ok"))
	SearchRequestsTotal.WithLabelValues("ok").Inc()
	after := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("ok"))
	if after-before != 1 {
		t.Errorf("search_requests_total{status=ok} grew by %v, want 1", after-before)
	}
}

func TestWriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: "lexdex", Name: "dump_test_total", Help: "test"})
	reg.MustRegister(c)
	other := prometheus.NewCounter(prometheus.CounterOpts{Name: "other_total", Help: "test"})
	reg.MustRegister(other)
	c.Add(3)
	other.Inc()

	var buf bytes.Buffer
	if err := WriteText(&buf, reg, ""); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !strings.Contains(buf.String(), "lexdex_dump_test_total 3") || !strings.Contains(buf.String(), "other_total 1") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	buf.Reset()
	if err := WriteText(&buf, reg, "lexdex_"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !strings.Contains(buf.String(), "lexdex_dump_test_total 3") {
		t.Errorf("filtered output missing lexdex family:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "other_total") {
		t.Errorf("filtered output kept foreign family:\n%s", buf.String())
	}
}
