// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"
)

type MailerInterface interface {
	SendInvitation(ctx context.Context, to, workspaceName, inviterEmail, link string) error
}
