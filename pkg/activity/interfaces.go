// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"context"

	"github.com/canonical/workspace-service/internal/types"
)

type ServiceInterface interface {
	ListActivity(ctx context.Context, principal types.Principal, workspaceID string, page, size int64) ([]*Entry, error)
}

// StorageInterface is the subset of internal/storage used by the activity log.
type StorageInterface interface {
	GetMembership(ctx context.Context, workspaceID, userID string) (*types.Membership, error)
	CreateActivityLog(ctx context.Context, l *types.ActivityLog) (*types.ActivityLog, error)
	ListActivityLogs(ctx context.Context, workspaceID string, limit, offset uint64) ([]*types.ActivityLog, error)
}

type CacheInterface interface {
	Delete(ctx context.Context, key string) error
}
