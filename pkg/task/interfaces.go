// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package task

import (
	"context"

	"github.com/canonical/workspace-service/internal/types"
)

type ServiceInterface interface {
	CreateTask(ctx context.Context, principal types.Principal, workspaceID string, input CreateTaskInput) (*types.Result[*types.Task], error)
	UpdateTask(ctx context.Context, principal types.Principal, workspaceID, taskID string, input UpdateTaskInput) (*types.Result[*types.Task], error)
	DeleteTask(ctx context.Context, principal types.Principal, workspaceID, taskID string) (*types.Result[*types.Task], error)
	ToggleTaskStatus(ctx context.Context, principal types.Principal, workspaceID, taskID string) (*types.Result[*types.Task], error)
	GetTask(ctx context.Context, principal types.Principal, workspaceID, taskID string) (*TaskDetail, error)
	ListTasks(ctx context.Context, principal types.Principal, workspaceID string, filter Filter) (*TaskList, error)

	CreateComment(ctx context.Context, principal types.Principal, workspaceID, taskID, content string) (*types.Result[*types.Comment], error)
	DeleteComment(ctx context.Context, principal types.Principal, workspaceID, taskID, commentID string) (*types.Result[*types.Comment], error)
}

// StorageInterface is the subset of internal/storage used by tasks and comments.
type StorageInterface interface {
	GetMembership(ctx context.Context, workspaceID, userID string) (*types.Membership, error)
	GetMembershipByID(ctx context.Context, workspaceID, memberID string) (*types.Membership, error)

	CreateTask(ctx context.Context, t *types.Task) (*types.Task, error)
	GetTask(ctx context.Context, workspaceID, taskID string) (*types.Task, error)
	ListTasks(ctx context.Context, workspaceID string) ([]*types.Task, error)
	UpdateTask(ctx context.Context, t *types.Task) (*types.Task, error)
	DeleteTask(ctx context.Context, workspaceID, taskID string) error

	CreateComment(ctx context.Context, c *types.Comment) (*types.Comment, error)
	GetComment(ctx context.Context, taskID, commentID string) (*types.Comment, error)
	ListComments(ctx context.Context, taskID string) ([]*types.Comment, error)
	DeleteComment(ctx context.Context, taskID, commentID string) error
}

// AuditInterface records the activity of an action and reports the side effect outcomes.
type AuditInterface interface {
	Publish(ctx context.Context, l *types.ActivityLog) types.SideEffects
}
