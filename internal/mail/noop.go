// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"

	"github.com/canonical/workspace-service/internal/logging"
)

// NoopMailer logs invitations instead of sending them.
type NoopMailer struct {
	logger logging.LoggerInterface
}

func (m *NoopMailer) SendInvitation(_ context.Context, to, workspaceName, _, link string) error {
	m.logger.Debugf("smtp disabled, invitation for %s to %s not sent: %s", to, workspaceName, link)
	return nil
}

func NewNoopMailer(logger logging.LoggerInterface) *NoopMailer {
	return &NoopMailer{logger: logger}
}
