// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

type TaskStatus string

const (
	TaskStatusTodo TaskStatus = "TODO"
	TaskStatusDone TaskStatus = "DONE"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
)

type ActivityAction string

const (
	ActionWorkspaceCreated ActivityAction = "WORKSPACE_CREATED"
	ActionTaskCreated      ActivityAction = "TASK_CREATED"
	ActionTaskUpdated      ActivityAction = "TASK_UPDATED"
	ActionTaskDeleted      ActivityAction = "TASK_DELETED"
	ActionTaskCompleted    ActivityAction = "TASK_COMPLETED"
	ActionTaskReopened     ActivityAction = "TASK_REOPENED"
	ActionCommentAdded     ActivityAction = "COMMENT_ADDED"
	ActionCommentDeleted   ActivityAction = "COMMENT_DELETED"
	ActionMemberInvited    ActivityAction = "MEMBER_INVITED"
	ActionMemberJoined     ActivityAction = "MEMBER_JOINED"
	ActionMemberRemoved    ActivityAction = "MEMBER_REMOVED"
	ActionMemberLeft       ActivityAction = "MEMBER_LEFT"
	ActionRoleChanged      ActivityAction = "ROLE_CHANGED"
	ActionPlanUpgraded     ActivityAction = "PLAN_UPGRADED"
)

type TargetType string

const (
	TargetWorkspace  TargetType = "WORKSPACE"
	TargetTask       TargetType = "TASK"
	TargetComment    TargetType = "COMMENT"
	TargetMember     TargetType = "MEMBER"
	TargetInvitation TargetType = "INVITATION"
)

// Principal is the authenticated caller of an action.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Workspace struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Slug           string    `json:"slug" db:"slug"`
	Plan           Plan      `json:"plan" db:"plan"`
	SubscriptionID string    `json:"subscription_id,omitempty" db:"subscription_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type Membership struct {
	ID          string    `json:"id" db:"id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	UserEmail   string    `json:"user_email" db:"user_email"`
	Role        Role      `json:"role" db:"role"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// WorkspaceMembership is a workspace seen from one of its members.
type WorkspaceMembership struct {
	Workspace
	Role Role `json:"role"`
}

type Task struct {
	ID           string       `json:"id" db:"id"`
	WorkspaceID  string       `json:"workspace_id" db:"workspace_id"`
	Title        string       `json:"title" db:"title"`
	Description  string       `json:"description" db:"description"`
	Status       TaskStatus   `json:"status" db:"status"`
	Priority     TaskPriority `json:"priority" db:"priority"`
	DueDate      *time.Time   `json:"due_date,omitempty" db:"due_date"`
	AssignedToID *string      `json:"assigned_to_id,omitempty" db:"assigned_to_id"`
	Assignee     *Membership  `json:"assignee,omitempty"`
	CreatedByID  string       `json:"created_by_id" db:"created_by_id"`
	CommentCount int          `json:"comment_count"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

type Comment struct {
	ID        string    `json:"id" db:"id"`
	TaskID    string    `json:"task_id" db:"task_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	UserEmail string    `json:"user_email" db:"user_email"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Invitation struct {
	ID          string           `json:"id" db:"id"`
	WorkspaceID string           `json:"workspace_id" db:"workspace_id"`
	Email       string           `json:"email" db:"email"`
	Token       string           `json:"token" db:"token"`
	Status      InvitationStatus `json:"status" db:"status"`
	InvitedByID string           `json:"invited_by_id" db:"invited_by_id"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	AcceptedAt  *time.Time       `json:"accepted_at,omitempty" db:"accepted_at"`
}

type ActivityLog struct {
	ID          string                 `json:"id" db:"id"`
	WorkspaceID string                 `json:"workspace_id" db:"workspace_id"`
	UserID      string                 `json:"user_id" db:"user_id"`
	UserEmail   string                 `json:"user_email" db:"user_email"`
	Action      ActivityAction         `json:"action" db:"action"`
	TargetType  TargetType             `json:"target_type" db:"target_type"`
	TargetID    string                 `json:"target_id" db:"target_id"`
	TargetName  string                 `json:"target_name" db:"target_name"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" db:"metadata"`
	CreatedAt   time.Time              `json:"created_at" db:"created_at"`
}
