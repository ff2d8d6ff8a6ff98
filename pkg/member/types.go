// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package member

import (
	"github.com/canonical/workspace-service/internal/types"
)

type InvitationInput struct {
	Email string `json:"email"`
}

type RoleInput struct {
	Role types.Role `json:"role"`
}

// Invitation is a pending invitation and its accept link.
// Created is false when an existing pending invitation was returned.
type Invitation struct {
	*types.Invitation

	Link    string `json:"link"`
	Created bool   `json:"created"`
}

// InvitationPreview is what an invitee sees before signing in.
type InvitationPreview struct {
	WorkspaceID   string                 `json:"workspace_id"`
	WorkspaceName string                 `json:"workspace_name"`
	Email         string                 `json:"email"`
	Status        types.InvitationStatus `json:"status"`
}

type Acceptance struct {
	Workspace  *types.Workspace  `json:"workspace"`
	Membership *types.Membership `json:"membership"`
	Joined     bool              `json:"joined"`
}
