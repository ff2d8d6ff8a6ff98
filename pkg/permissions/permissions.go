// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package permissions maps workspace roles to capabilities.
//
// Roles are totally ordered, OWNER > ADMIN > MEMBER. Every function here is
// pure: callers pass both the caller and the subject identifiers explicitly.
package permissions

import (
	"github.com/canonical/workspace-service/internal/types"
)

const (
	levelNone   = 0
	levelMember = 1
	levelAdmin  = 2
	levelOwner  = 3
)

var levels = map[types.Role]int{
	types.RoleOwner:  levelOwner,
	types.RoleAdmin:  levelAdmin,
	types.RoleMember: levelMember,
}

var labels = map[types.Role]string{
	types.RoleOwner:  "Owner",
	types.RoleAdmin:  "Admin",
	types.RoleMember: "Member",
}

// Level returns the privilege level of a role, 0 for unknown roles.
func Level(role types.Role) int {
	if l, ok := levels[role]; ok {
		return l
	}
	return levelNone
}

// Label returns the display name of a role.
func Label(role types.Role) string {
	if l, ok := labels[role]; ok {
		return l
	}
	return string(role)
}

// Permissions is the capability set of a role.
type Permissions struct {
	Role types.Role `json:"role"`

	CanCreateTask      bool `json:"can_create_task"`
	CanEditAnyTask     bool `json:"can_edit_any_task"`
	CanDeleteAnyTask   bool `json:"can_delete_any_task"`
	CanInviteMembers   bool `json:"can_invite_members"`
	CanChangeRoles     bool `json:"can_change_roles"`
	CanRemoveMembers   bool `json:"can_remove_members"`
	CanDeleteWorkspace bool `json:"can_delete_workspace"`
	CanAccessBilling   bool `json:"can_access_billing"`
}

// CanEditTask is true for elevated roles or when the caller created the task.
func (p Permissions) CanEditTask(creatorID, currentUserID string) bool {
	return p.CanEditAnyTask || (creatorID != "" && creatorID == currentUserID)
}

// CanDeleteTask is true for elevated roles or when the caller created the task.
func (p Permissions) CanDeleteTask(creatorID, currentUserID string) bool {
	return p.CanDeleteAnyTask || (creatorID != "" && creatorID == currentUserID)
}

// GetPermissions returns the capability set for role.
func GetPermissions(role types.Role) Permissions {
	level := Level(role)

	return Permissions{
		Role:               role,
		CanCreateTask:      level >= levelMember,
		CanEditAnyTask:     level >= levelAdmin,
		CanDeleteAnyTask:   level >= levelAdmin,
		CanInviteMembers:   level >= levelAdmin,
		CanRemoveMembers:   level >= levelAdmin,
		CanChangeRoles:     level >= levelOwner,
		CanDeleteWorkspace: level >= levelOwner,
		CanAccessBilling:   level >= levelOwner,
	}
}

// CanManageRole reports whether manager may assign, demote or remove target.
func CanManageRole(manager, target types.Role) bool {
	return Level(manager) > Level(target)
}

// AssignableRoles lists the roles manager may grant, highest first.
func AssignableRoles(manager types.Role) []types.Role {
	roles := make([]types.Role, 0, 2)
	for _, r := range []types.Role{types.RoleOwner, types.RoleAdmin, types.RoleMember} {
		if CanManageRole(manager, r) {
			roles = append(roles, r)
		}
	}
	return roles
}
