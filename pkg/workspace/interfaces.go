// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workspace

import (
	"context"
	"time"

	"github.com/canonical/workspace-service/internal/types"
)

type ServiceInterface interface {
	CreateWorkspace(ctx context.Context, principal types.Principal, name string) (*types.Result[*types.Workspace], error)
	ListWorkspaces(ctx context.Context, principal types.Principal) ([]*types.WorkspaceMembership, error)
	GetDashboard(ctx context.Context, principal types.Principal, workspaceID string) (*Dashboard, error)
	GetSettings(ctx context.Context, principal types.Principal, workspaceID string) (*Settings, error)
	GetBilling(ctx context.Context, principal types.Principal, workspaceID string) (*Billing, error)
}

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	CreateWorkspace(ctx context.Context, w *types.Workspace) (*types.Workspace, error)
	GetWorkspace(ctx context.Context, id string) (*types.Workspace, error)
	ListWorkspacesByUserID(ctx context.Context, userID string) ([]*types.WorkspaceMembership, error)
	AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error)
	GetMembership(ctx context.Context, workspaceID, userID string) (*types.Membership, error)
	ListMembers(ctx context.Context, workspaceID string) ([]*types.Membership, error)
	ListTasks(ctx context.Context, workspaceID string) ([]*types.Task, error)
	ListPendingInvitations(ctx context.Context, workspaceID string) ([]*types.Invitation, error)
	ListActivityLogs(ctx context.Context, workspaceID string, limit, offset uint64) ([]*types.ActivityLog, error)
}

type AuditInterface interface {
	Publish(ctx context.Context, l *types.ActivityLog) types.SideEffects
}

type AuthzInterface interface {
	AssignWorkspaceRole(ctx context.Context, workspaceID, userID string, role types.Role) error
}

type CacheInterface interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
