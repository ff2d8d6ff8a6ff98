// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package task

import (
	"testing"

	"github.com/canonical/workspace-service/internal/types"
)

func strPtr(s string) *string {
	return &s
}

func TestFilterTasks(t *testing.T) {
	alice := &types.Membership{ID: "m-alice", UserEmail: "Alice@Example.com"}

	tasks := []*types.Task{
		{ID: "t1", Title: "Write docs", Status: types.TaskStatusTodo, Priority: types.TaskPriorityHigh, AssignedToID: strPtr(alice.ID), Assignee: alice},
		{ID: "t2", Title: "Ship release", Status: types.TaskStatusDone, Priority: types.TaskPriorityMedium},
		{ID: "t3", Title: "Fix login", Status: types.TaskStatusTodo, Priority: types.TaskPriorityLow},
	}

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{name: "no filter", filter: Filter{}, expected: []string{"t1", "t2", "t3"}},
		{name: "search title", filter: Filter{Search: "SHIP"}, expected: []string{"t2"}},
		{name: "search assignee email", filter: Filter{Search: "alice@"}, expected: []string{"t1"}},
		{name: "status", filter: Filter{Status: types.TaskStatusTodo}, expected: []string{"t1", "t3"}},
		{name: "priority", filter: Filter{Priority: types.TaskPriorityLow}, expected: []string{"t3"}},
		{name: "assignee", filter: Filter{Assignee: "m-alice"}, expected: []string{"t1"}},
		{name: "unassigned", filter: Filter{Assignee: UnassignedFilter}, expected: []string{"t2", "t3"}},
		{name: "combined", filter: Filter{Status: types.TaskStatusTodo, Search: "fix"}, expected: []string{"t3"}},
		{name: "no match", filter: Filter{Search: "nothing"}, expected: []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := FilterTasks(tasks, test.filter)
			if len(got) != len(test.expected) {
				t.Fatalf("expected %v, got %d tasks", test.expected, len(got))
			}
			for i, id := range test.expected {
				if got[i].ID != id {
					t.Errorf("expected %s at %d, got %s", id, i, got[i].ID)
				}
			}
		})
	}
}

func TestCountTasks(t *testing.T) {
	c := CountTasks([]*types.Task{
		{Status: types.TaskStatusTodo, Priority: types.TaskPriorityHigh},
		{Status: types.TaskStatusDone, Priority: types.TaskPriorityHigh},
		{Status: types.TaskStatusTodo, Priority: types.TaskPriorityLow},
	})

	if c.Total != 3 {
		t.Errorf("expected 3 tasks, got %d", c.Total)
	}
	if c.ByStatus[types.TaskStatusTodo] != 2 || c.ByStatus[types.TaskStatusDone] != 1 {
		t.Errorf("unexpected status counts %v", c.ByStatus)
	}
	if c.ByPriority[types.TaskPriorityHigh] != 2 || c.ByPriority[types.TaskPriorityMedium] != 0 {
		t.Errorf("unexpected priority counts %v", c.ByPriority)
	}
}
