// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package member

import (
	"context"

	"github.com/canonical/workspace-service/internal/types"
)

type ServiceInterface interface {
	CreateInvitation(ctx context.Context, principal types.Principal, workspaceID, email string) (*types.Result[*Invitation], error)
	GetInvitation(ctx context.Context, token string) (*InvitationPreview, error)
	AcceptInvitation(ctx context.Context, principal types.Principal, token string) (*types.Result[*Acceptance], error)
	ChangeMemberRole(ctx context.Context, principal types.Principal, workspaceID, memberID string, role types.Role) (*types.Result[*types.Membership], error)
	RemoveMember(ctx context.Context, principal types.Principal, workspaceID, memberID string) (*types.Result[*types.Membership], error)
	LeaveWorkspace(ctx context.Context, principal types.Principal, workspaceID string) (*types.Result[*types.Membership], error)
}

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	GetWorkspace(ctx context.Context, id string) (*types.Workspace, error)
	AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error)
	GetMembership(ctx context.Context, workspaceID, userID string) (*types.Membership, error)
	GetMembershipByID(ctx context.Context, workspaceID, memberID string) (*types.Membership, error)
	GetMembershipByEmail(ctx context.Context, workspaceID, email string) (*types.Membership, error)
	UpdateMemberRole(ctx context.Context, workspaceID, memberID string, role types.Role) error
	RemoveMember(ctx context.Context, workspaceID, memberID string) error
	CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error)
	GetPendingInvitation(ctx context.Context, workspaceID, email string) (*types.Invitation, error)
	MarkInvitationAccepted(ctx context.Context, id string) (bool, error)
}

type AuditInterface interface {
	Publish(ctx context.Context, l *types.ActivityLog) types.SideEffects
}

type AuthzInterface interface {
	AssignWorkspaceRole(ctx context.Context, workspaceID, userID string, role types.Role) error
	ChangeWorkspaceRole(ctx context.Context, workspaceID, userID string, from, to types.Role) error
	RemoveWorkspaceUser(ctx context.Context, workspaceID, userID string) error
}

type MailerInterface interface {
	SendInvitation(ctx context.Context, to, workspaceName, inviterEmail, link string) error
}
