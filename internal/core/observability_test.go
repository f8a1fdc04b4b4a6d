package core

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExpvarMetricsRecorderAggregates(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	if rec.Name() == "" {
		t.Fatalf("expected generated expvar name")
	}
	ctx := context.Background()
	rec.Observe(ctx, "create_member", true, 10*time.Millisecond)
	rec.Observe(ctx, "create_member", true, 5*time.Millisecond)
	rec.Observe(ctx, "create_member", false, time.Millisecond)
	rec.Observe(ctx, "", true, time.Second)

	snap := rec.Snapshot()
	if snap.Results["create_member"]["success"] != 2 {
		t.Fatalf("success count = %d", snap.Results["create_member"]["success"])
	}
	if snap.Results["create_member"]["error"] != 1 {
		t.Fatalf("error count = %d", snap.Results["create_member"]["error"])
	}
	if snap.DurationsMS["create_member"] != 16 {
		t.Fatalf("duration total = %v", snap.DurationsMS["create_member"])
	}
	if len(snap.Results) != 1 {
		t.Fatalf("empty operation names must be dropped")
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ctx := context.Background()
	rec.Observe(ctx, "delete_desk", true, 2*time.Millisecond)
	rec.Observe(ctx, "delete_desk", false, time.Millisecond)

	got := testutil.ToFloat64(rec.results.WithLabelValues("delete_desk", "success"))
	if got != 1 {
		t.Fatalf("success counter = %v", got)
	}
	got = testutil.ToFloat64(rec.results.WithLabelValues("delete_desk", "error"))
	if got != 1 {
		t.Fatalf("error counter = %v", got)
	}

	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("duplicate registration must fail")
	}
}
