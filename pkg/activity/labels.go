// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"fmt"
	"strings"

	"github.com/canonical/workspace-service/internal/types"
)

var labels = map[types.ActivityAction]string{
	types.ActionWorkspaceCreated: "created workspace",
	types.ActionTaskCreated:      "created task",
	types.ActionTaskUpdated:      "updated task",
	types.ActionTaskDeleted:      "deleted task",
	types.ActionTaskCompleted:    "completed task",
	types.ActionTaskReopened:     "reopened task",
	types.ActionCommentAdded:     "commented on",
	types.ActionCommentDeleted:   "deleted a comment on",
	types.ActionMemberInvited:    "invited",
	types.ActionMemberJoined:     "joined",
	types.ActionMemberRemoved:    "removed",
	types.ActionMemberLeft:       "left",
	types.ActionRoleChanged:      "changed the role of",
	types.ActionPlanUpgraded:     "upgraded to PRO",
}

// Label returns the human readable verb of an action.
func Label(action types.ActivityAction) string {
	if l, ok := labels[action]; ok {
		return l
	}
	return strings.ToLower(strings.ReplaceAll(string(action), "_", " "))
}

// Describe renders a log entry as a sentence, e.g. `alice@example.com completed task "Ship"`.
func Describe(l *types.ActivityLog) string {
	if l.TargetName == "" {
		return fmt.Sprintf("%s %s", l.UserEmail, Label(l.Action))
	}
	return fmt.Sprintf("%s %s %q", l.UserEmail, Label(l.Action), l.TargetName)
}
