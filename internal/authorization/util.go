// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"strings"

	"github.com/canonical/workspace-service/internal/types"
)

const (
	OWNER_RELATION  = "owner"
	ADMIN_RELATION  = "admin"
	MEMBER_RELATION = "member"

	CAN_VIEW_PERMISSION   = "can_view"
	CAN_EDIT_PERMISSION   = "can_edit"
	CAN_MANAGE_PERMISSION = "can_manage"
	CAN_BILL_PERMISSION   = "can_bill"
)

func UserTuple(userId string) string {
	return "user:" + userId
}

func WorkspaceTuple(workspaceId string) string {
	return "workspace:" + workspaceId
}

// RoleRelation maps a membership role to its relation on the workspace type.
func RoleRelation(role types.Role) string {
	return strings.ToLower(string(role))
}
