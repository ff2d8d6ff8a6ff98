// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/workspace-service/internal/types"
)

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error

	CreateWorkspace(ctx context.Context, w *types.Workspace) (*types.Workspace, error)
	GetWorkspace(ctx context.Context, id string) (*types.Workspace, error)
	ListWorkspacesByUserID(ctx context.Context, userID string) ([]*types.WorkspaceMembership, error)
	UpgradeWorkspacePlan(ctx context.Context, id string, plan types.Plan, subscriptionID string) (*types.Workspace, error)

	AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error)
	GetMembership(ctx context.Context, workspaceID, userID string) (*types.Membership, error)
	GetMembershipByID(ctx context.Context, workspaceID, memberID string) (*types.Membership, error)
	GetMembershipByEmail(ctx context.Context, workspaceID, email string) (*types.Membership, error)
	ListMembers(ctx context.Context, workspaceID string) ([]*types.Membership, error)
	UpdateMemberRole(ctx context.Context, workspaceID, memberID string, role types.Role) error
	RemoveMember(ctx context.Context, workspaceID, memberID string) error

	CreateTask(ctx context.Context, t *types.Task) (*types.Task, error)
	GetTask(ctx context.Context, workspaceID, taskID string) (*types.Task, error)
	ListTasks(ctx context.Context, workspaceID string) ([]*types.Task, error)
	UpdateTask(ctx context.Context, t *types.Task) (*types.Task, error)
	DeleteTask(ctx context.Context, workspaceID, taskID string) error

	CreateComment(ctx context.Context, c *types.Comment) (*types.Comment, error)
	GetComment(ctx context.Context, taskID, commentID string) (*types.Comment, error)
	ListComments(ctx context.Context, taskID string) ([]*types.Comment, error)
	DeleteComment(ctx context.Context, taskID, commentID string) error

	CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error)
	GetPendingInvitation(ctx context.Context, workspaceID, email string) (*types.Invitation, error)
	ListPendingInvitations(ctx context.Context, workspaceID string) ([]*types.Invitation, error)
	MarkInvitationAccepted(ctx context.Context, id string) (bool, error)

	CreateActivityLog(ctx context.Context, l *types.ActivityLog) (*types.ActivityLog, error)
	ListActivityLogs(ctx context.Context, workspaceID string, limit, offset uint64) ([]*types.ActivityLog, error)
}
