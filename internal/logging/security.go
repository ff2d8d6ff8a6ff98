// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

const securityLevel = "WARN"

type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.log("sys_startup", "workspace-service started")
}

func (s *SecurityLogger) SystemShutdown() {
	s.log("sys_shutdown", "workspace-service stopped")
}

func (s *SecurityLogger) AuthnFailure(userID, reason string) {
	s.log(
		fmt.Sprintf("authn_login_fail:%s", userID),
		fmt.Sprintf("authentication failed for %s: %s", userID, reason),
	)
}

func (s *SecurityLogger) AuthzFailure(userID, resource string) {
	s.log(
		fmt.Sprintf("authz_fail:%s,%s", userID, resource),
		fmt.Sprintf("user %s attempted to access %s without permission", userID, resource),
	)
}

func (s *SecurityLogger) AdminAction(userID, action, resource string) {
	s.log(
		fmt.Sprintf("authz_admin:%s,%s", userID, action),
		fmt.Sprintf("user %s performed %s on %s", userID, action, resource),
	)
}

func (s *SecurityLogger) PaymentVerified(userID, workspaceID, paymentID string) {
	s.log(
		fmt.Sprintf("payment_verified:%s,%s", userID, workspaceID),
		fmt.Sprintf("payment %s verified for workspace %s", paymentID, workspaceID),
	)
}

func (s *SecurityLogger) PaymentSignatureMismatch(userID, workspaceID, orderID string) {
	s.log(
		fmt.Sprintf("input_validation_fail:%s,payment_signature", userID),
		fmt.Sprintf("payment signature mismatch for order %s on workspace %s", orderID, workspaceID),
	)
}

func (s *SecurityLogger) log(event, description string) {
	host, _ := os.Hostname()

	s.l.Warn(
		description,
		zap.String("type", "security"),
		zap.String("event", event),
		zap.String("level", securityLevel),
		zap.String("hostname", host),
	)
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l}
}
