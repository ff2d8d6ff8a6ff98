// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Errorf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
	Fatalf(string, ...interface{})
	Error(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Debug(...interface{})
	Fatal(...interface{})
	Sync() error

	Security() SecurityLoggerInterface
}

// SecurityLoggerInterface emits security events following the OWASP logging vocabulary.
type SecurityLoggerInterface interface {
	SystemStartup()
	SystemShutdown()
	AuthnFailure(userID, reason string)
	AuthzFailure(userID, resource string)
	AdminAction(userID, action, resource string)
	PaymentVerified(userID, workspaceID, paymentID string)
	PaymentSignatureMismatch(userID, workspaceID, orderID string)
}
