// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package permissions

import (
	"reflect"
	"testing"

	"github.com/canonical/workspace-service/internal/types"
)

var roles = []types.Role{types.RoleOwner, types.RoleAdmin, types.RoleMember}

func TestCanManageRoleTruthTable(t *testing.T) {
	expected := map[types.Role]map[types.Role]bool{
		types.RoleOwner: {
			types.RoleOwner:  false,
			types.RoleAdmin:  true,
			types.RoleMember: true,
		},
		types.RoleAdmin: {
			types.RoleOwner:  false,
			types.RoleAdmin:  false,
			types.RoleMember: true,
		},
		types.RoleMember: {
			types.RoleOwner:  false,
			types.RoleAdmin:  false,
			types.RoleMember: false,
		},
	}

	for _, manager := range roles {
		for _, target := range roles {
			t.Run(string(manager)+"->"+string(target), func(t *testing.T) {
				if got := CanManageRole(manager, target); got != expected[manager][target] {
					t.Errorf("CanManageRole(%s, %s) = %v, want %v", manager, target, got, expected[manager][target])
				}
			})
		}
	}
}

func TestCanManageRoleIsStrictOrder(t *testing.T) {
	for _, r1 := range roles {
		if CanManageRole(r1, r1) {
			t.Errorf("%s must not manage itself", r1)
		}
		for _, r2 := range roles {
			if Level(r1) > Level(r2) {
				if !CanManageRole(r1, r2) || CanManageRole(r2, r1) {
					t.Errorf("ordering broken between %s and %s", r1, r2)
				}
			}
		}
	}
}

func TestGetPermissions(t *testing.T) {
	tests := []struct {
		role     types.Role
		expected Permissions
	}{
		{
			role: types.RoleOwner,
			expected: Permissions{
				Role:               types.RoleOwner,
				CanCreateTask:      true,
				CanEditAnyTask:     true,
				CanDeleteAnyTask:   true,
				CanInviteMembers:   true,
				CanChangeRoles:     true,
				CanRemoveMembers:   true,
				CanDeleteWorkspace: true,
				CanAccessBilling:   true,
			},
		},
		{
			role: types.RoleAdmin,
			expected: Permissions{
				Role:             types.RoleAdmin,
				CanCreateTask:    true,
				CanEditAnyTask:   true,
				CanDeleteAnyTask: true,
				CanInviteMembers: true,
				CanRemoveMembers: true,
			},
		},
		{
			role: types.RoleMember,
			expected: Permissions{
				Role:          types.RoleMember,
				CanCreateTask: true,
			},
		},
		{
			role:     types.Role("GUEST"),
			expected: Permissions{Role: types.Role("GUEST")},
		},
	}

	for _, test := range tests {
		t.Run(string(test.role), func(t *testing.T) {
			if got := GetPermissions(test.role); !reflect.DeepEqual(got, test.expected) {
				t.Errorf("GetPermissions(%s) = %+v, want %+v", test.role, got, test.expected)
			}
		})
	}
}

func TestTaskPredicates(t *testing.T) {
	tests := []struct {
		name      string
		role      types.Role
		creatorID string
		callerID  string
		expected  bool
	}{
		{"member creator", types.RoleMember, "c", "c", true},
		{"member not creator", types.RoleMember, "c", "d", false},
		{"member empty ids", types.RoleMember, "", "", false},
		{"admin any task", types.RoleAdmin, "c", "b", true},
		{"owner any task", types.RoleOwner, "c", "a", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := GetPermissions(test.role)

			if got := p.CanEditTask(test.creatorID, test.callerID); got != test.expected {
				t.Errorf("CanEditTask = %v, want %v", got, test.expected)
			}
			if got := p.CanDeleteTask(test.creatorID, test.callerID); got != test.expected {
				t.Errorf("CanDeleteTask = %v, want %v", got, test.expected)
			}
		})
	}
}

func TestAssignableRoles(t *testing.T) {
	tests := []struct {
		role     types.Role
		expected []types.Role
	}{
		{types.RoleOwner, []types.Role{types.RoleAdmin, types.RoleMember}},
		{types.RoleAdmin, []types.Role{types.RoleMember}},
		{types.RoleMember, []types.Role{}},
	}

	for _, test := range tests {
		if got := AssignableRoles(test.role); !reflect.DeepEqual(got, test.expected) {
			t.Errorf("AssignableRoles(%s) = %v, want %v", test.role, got, test.expected)
		}
	}
}

func TestLabel(t *testing.T) {
	if Label(types.RoleOwner) != "Owner" || Label(types.RoleAdmin) != "Admin" || Label(types.RoleMember) != "Member" {
		t.Error("unexpected role labels")
	}
	if Label(types.Role("X")) != "X" {
		t.Error("unknown roles should label as themselves")
	}
}
