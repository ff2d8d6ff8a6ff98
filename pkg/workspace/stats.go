// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workspace

import (
	"math"
	"time"

	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/task"
)

const maxOverdueTitles = 3

func isOpenOverdue(t *types.Task, now time.Time) bool {
	return t.Status != types.TaskStatusDone && task.IsOverdue(t.DueDate, now)
}

// ComputeStats summarises tasks, overdue means not done and due before today.
func ComputeStats(tasks []*types.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks), OverdueTitles: make([]string, 0, maxOverdueTitles)}

	for _, t := range tasks {
		if t.Status == types.TaskStatusDone {
			s.Completed++
		}
		if isOpenOverdue(t, now) {
			s.Overdue++
			if len(s.OverdueTitles) < maxOverdueTitles {
				s.OverdueTitles = append(s.OverdueTitles, t.Title)
			}
		}
	}

	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}

	return s
}

// ComputeAnalytics breaks tasks down by priority and assignee, members keep their listing order.
func ComputeAnalytics(tasks []*types.Task, members []*types.Membership, now time.Time) *Analytics {
	a := &Analytics{
		ByPriority: map[types.TaskPriority]int{
			types.TaskPriorityLow:    0,
			types.TaskPriorityMedium: 0,
			types.TaskPriorityHigh:   0,
		},
		ByAssignee: make([]AssigneeCount, 0, len(members)),
	}

	index := make(map[string]int, len(members))
	for i, m := range members {
		index[m.ID] = i
		a.ByAssignee = append(a.ByAssignee, AssigneeCount{MemberID: m.ID, Email: m.UserEmail})
	}

	for _, t := range tasks {
		a.ByPriority[t.Priority]++

		if t.Status != types.TaskStatusDone && task.IsDueThisWeek(t.DueDate, now) {
			a.DueThisWeek++
		}

		if t.AssignedToID == nil {
			a.Unassigned++
			continue
		}

		i, ok := index[*t.AssignedToID]
		if !ok {
			a.Unassigned++
			continue
		}
		a.ByAssignee[i].Total++
		if t.Status == types.TaskStatusDone {
			a.ByAssignee[i].Completed++
		}
	}

	return a
}
