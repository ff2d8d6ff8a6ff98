// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "info", "warning", "error", "invalid"} {
		t.Run(level, func(t *testing.T) {
			l := NewLogger(level)
			if l == nil {
				t.Fatal("expected logger")
			}
			if l.Security() == nil {
				t.Fatal("expected security logger")
			}
		})
	}
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	l.Infof("nothing %s", "here")
	l.Security().SystemStartup()
}

func TestSecurityLoggerEvents(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := newSecurityLogger(zap.New(core))

	s.AuthzFailure("user-1", "workspace:abc")
	s.PaymentSignatureMismatch("user-1", "ws-1", "order-1")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if got := entries[0].ContextMap()["event"]; got != "authz_fail:user-1,workspace:abc" {
		t.Errorf("unexpected event %v", got)
	}
	if got := entries[1].ContextMap()["type"]; got != "security" {
		t.Errorf("unexpected type %v", got)
	}
}
