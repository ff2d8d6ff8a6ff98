// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/canonical/workspace-service/internal/logging"
)

func TestMonitorRecordsMetrics(t *testing.T) {
	m := NewMonitor("workspace-service", logging.NewNoopLogger())

	if m.GetService() != "workspace-service" {
		t.Fatalf("unexpected service %s", m.GetService())
	}

	if err := m.SetResponseTimeMetric(map[string]string{"route": "GET/api/v0/status", "status": "OK"}, 0.2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.SetDependencyAvailability(map[string]string{"component": "redis"}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(m.dependencyAvailability.WithLabelValues("redis", "workspace-service")); got != 1 {
		t.Errorf("expected dependency gauge 1, got %v", got)
	}
}

func TestMonitorWithoutMetrics(t *testing.T) {
	m := &Monitor{service: "x", logger: logging.NewNoopLogger()}

	if err := m.SetResponseTimeMetric(nil, 1); err == nil {
		t.Error("expected error when histogram is missing")
	}
	if err := m.SetDependencyAvailability(nil, 1); err == nil {
		t.Error("expected error when gauge is missing")
	}
}
