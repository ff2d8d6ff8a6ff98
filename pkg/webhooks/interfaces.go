// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/workspace-service/internal/types"
)

// StorageInterface defines the storage operations required by the webhooks package.
// It is a subset of the internal/storage interface.
type StorageInterface interface {
	ListWorkspacesByUserID(ctx context.Context, userID string) ([]*types.WorkspaceMembership, error)
}

// WorkspacesInterface provisions workspaces, it is satisfied by the workspace service.
type WorkspacesInterface interface {
	CreateWorkspace(ctx context.Context, principal types.Principal, name string) (*types.Result[*types.Workspace], error)
}

// BillingInterface receives verified payment provider events, it is satisfied by the billing service.
type BillingInterface interface {
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) (*types.Result[*types.Workspace], error)
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identityID, email string) (*types.Result[*types.Workspace], error)
	HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error)
	HandleStripe(ctx context.Context, payload []byte, signature string) (*types.Result[*types.Workspace], error)
}
