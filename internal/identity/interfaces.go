// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"

	ory "github.com/ory/client-go"
)

// KratosInterface mirrors kratos.ClientInterface so the middleware can be tested with a mock.
type KratosInterface interface {
	GetIdentity(ctx context.Context, id string) (*ory.Identity, error)
	GetIdentityEmail(ctx context.Context, id string) (string, error)
}
