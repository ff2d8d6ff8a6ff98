// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package task

import (
	"strings"

	"github.com/canonical/workspace-service/internal/types"
)

// UnassignedFilter selects tasks without an assignee.
const UnassignedFilter = "UNASSIGNED"

// Filter narrows a task list, empty fields match everything.
type Filter struct {
	Search   string
	Status   types.TaskStatus
	Priority types.TaskPriority
	Assignee string
}

// Counts tallies tasks by status and priority.
type Counts struct {
	Total      int                        `json:"total"`
	ByStatus   map[types.TaskStatus]int   `json:"by_status"`
	ByPriority map[types.TaskPriority]int `json:"by_priority"`
}

func (f Filter) matches(t *types.Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}

	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}

	switch f.Assignee {
	case "":
	case UnassignedFilter:
		if t.AssignedToID != nil {
			return false
		}
	default:
		if t.AssignedToID == nil || *t.AssignedToID != f.Assignee {
			return false
		}
	}

	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if strings.Contains(strings.ToLower(t.Title), q) {
			return true
		}
		return t.Assignee != nil && strings.Contains(strings.ToLower(t.Assignee.UserEmail), q)
	}

	return true
}

// FilterTasks returns the tasks matching f, preserving their order.
func FilterTasks(tasks []*types.Task, f Filter) []*types.Task {
	filtered := make([]*types.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.matches(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func CountTasks(tasks []*types.Task) Counts {
	c := Counts{
		Total: len(tasks),
		ByStatus: map[types.TaskStatus]int{
			types.TaskStatusTodo: 0,
			types.TaskStatusDone: 0,
		},
		ByPriority: map[types.TaskPriority]int{
			types.TaskPriorityLow:    0,
			types.TaskPriorityMedium: 0,
			types.TaskPriorityHigh:   0,
		},
	}

	for _, t := range tasks {
		c.ByStatus[t.Status]++
		c.ByPriority[t.Priority]++
	}

	return c
}
