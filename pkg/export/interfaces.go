// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package export

import (
	"context"

	"github.com/canonical/workspace-service/internal/types"
)

type ServiceInterface interface {
	ExportActivityLogs(ctx context.Context, principal types.Principal, workspaceID string) (*Report, error)
	ExportTasks(ctx context.Context, principal types.Principal, workspaceID string) (*Report, error)
}

type StorageInterface interface {
	GetMembership(ctx context.Context, workspaceID, userID string) (*types.Membership, error)
	GetWorkspace(ctx context.Context, id string) (*types.Workspace, error)
	ListActivityLogs(ctx context.Context, workspaceID string, limit, offset uint64) ([]*types.ActivityLog, error)
	ListTasks(ctx context.Context, workspaceID string) ([]*types.Task, error)
}
