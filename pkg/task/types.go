// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package task

import (
	"github.com/canonical/workspace-service/internal/types"
)

// noAssignee is accepted alongside the empty string to clear an assignment.
const noAssignee = "none"

type CreateTaskInput struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Priority    types.TaskPriority `json:"priority"`
	DueDate     string             `json:"due_date"`
	AssigneeID  string             `json:"assignee_id"`
}

// UpdateTaskInput is a partial update, nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Priority    *types.TaskPriority `json:"priority"`
	DueDate     *string             `json:"due_date"`
	AssigneeID  *string             `json:"assignee_id"`
}

type CommentInput struct {
	Content string `json:"content"`
}

// TaskDetail is a task together with its comments, oldest first.
type TaskDetail struct {
	*types.Task

	Comments  []*types.Comment `json:"comments"`
	DueLabel  string           `json:"due_label,omitempty"`
	CanEdit   bool             `json:"can_edit"`
	CanDelete bool             `json:"can_delete"`
}

// TaskList is a filtered task list with counts over the whole workspace.
type TaskList struct {
	Tasks  []*types.Task `json:"tasks"`
	Counts Counts        `json:"counts"`
}
