package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRecomputeMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewRecomputeMetrics(reg)
	trigger := "config-change"
	metrics.ObserveDuration(trigger, 250*time.Millisecond)
	metrics.AddUpdated(trigger, 12)
	metrics.AddFailed(trigger, 3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "price_recompute_updated_total", "trigger", trigger); err != nil {
		t.Fatalf("fetch updated: %v", err)
	} else if got != 12 {
		t.Fatalf("expected updated=12, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "price_recompute_failed_total", "trigger", trigger); err != nil {
		t.Fatalf("fetch failed: %v", err)
	} else if got != 3 {
		t.Fatalf("expected failed=3, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "price_recompute_duration_seconds", "trigger", trigger); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestRecomputeMetricsNilSafe(t *testing.T) {
	var metrics *RecomputeMetrics
	metrics.ObserveDuration("x", time.Second)
	metrics.AddUpdated("x", 1)
	metrics.AddFailed("x", 1)

	empty := NewRecomputeMetrics(nil)
	empty.AddUpdated("x", 1)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
