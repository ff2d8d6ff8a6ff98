// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.responseTime.With(m.labels(tags)).Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencyAvailability == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.dependencyAvailability.With(m.labels(tags)).Set(value)

	return nil
}

func (m *Monitor) labels(tags map[string]string) prometheus.Labels {
	l := prometheus.Labels{"service": m.service}
	for k, v := range tags {
		l[k] = v
	}
	return l
}

func (m *Monitor) registerHistograms() {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_time_seconds",
			Help: "http_response_time_seconds",
		},
		[]string{"route", "status", "service"},
	)

	if err := prometheus.Register(m.responseTime); err != nil {
		m.logger.Debugf("metric already registered: %v", err)
	}
}

func (m *Monitor) registerGauges() {
	m.dependencyAvailability = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "dependency_available",
		},
		[]string{"component", "service"},
	)

	if err := prometheus.Register(m.dependencyAvailability); err != nil {
		m.logger.Debugf("metric already registered: %v", err)
	}
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerHistograms()
	m.registerGauges()

	return m
}
