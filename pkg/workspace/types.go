// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workspace

import (
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/activity"
	"github.com/canonical/workspace-service/pkg/permissions"
)

type CreateWorkspaceInput struct {
	Name string `json:"name"`
}

type Stats struct {
	Total          int      `json:"total"`
	Completed      int      `json:"completed"`
	Pending        int      `json:"pending"`
	Overdue        int      `json:"overdue"`
	CompletionRate int      `json:"completion_rate"`
	OverdueTitles  []string `json:"overdue_titles"`
}

type AssigneeCount struct {
	MemberID  string `json:"member_id"`
	Email     string `json:"email"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// Analytics is only computed for PRO workspaces.
type Analytics struct {
	ByPriority  map[types.TaskPriority]int `json:"by_priority"`
	ByAssignee  []AssigneeCount            `json:"by_assignee"`
	Unassigned  int                        `json:"unassigned"`
	DueThisWeek int                        `json:"due_this_week"`
}

// Overview is the part of the dashboard shared by every member, it is cached per workspace.
type Overview struct {
	Workspace *types.Workspace    `json:"workspace"`
	Members   []*types.Membership `json:"members"`
	Tasks     []*types.Task       `json:"tasks"`
	Activity  []*activity.Entry   `json:"activity"`
	Stats     Stats               `json:"stats"`
	Analytics *Analytics          `json:"analytics,omitempty"`
}

type Dashboard struct {
	*Overview

	IsPro       bool                    `json:"is_pro"`
	Role        types.Role              `json:"role"`
	Permissions permissions.Permissions `json:"permissions"`
}

type RoleOption struct {
	Role  types.Role `json:"role"`
	Label string     `json:"label"`
}

// MemberView is a member as seen by the caller on the settings page.
type MemberView struct {
	*types.Membership

	RoleLabel     string `json:"role_label"`
	IsCurrentUser bool   `json:"is_current_user"`
	CanChangeRole bool   `json:"can_change_role"`
	CanRemove     bool   `json:"can_remove"`
}

type Settings struct {
	Workspace       *types.Workspace        `json:"workspace"`
	Members         []*MemberView           `json:"members"`
	Invitations     []*types.Invitation     `json:"invitations,omitempty"`
	Role            types.Role              `json:"role"`
	RoleLabel       string                  `json:"role_label"`
	Permissions     permissions.Permissions `json:"permissions"`
	AssignableRoles []RoleOption            `json:"assignable_roles"`
}

type Billing struct {
	Workspace *types.Workspace `json:"workspace"`
	Plan      types.Plan       `json:"plan"`
	IsPro     bool             `json:"is_pro"`
	Price     types.Price      `json:"price"`
	Display   string           `json:"display"`
}
