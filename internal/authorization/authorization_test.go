// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"testing"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"
	"go.uber.org/mock/gomock"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/openfga"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_interfaces.go -source=./interfaces.go

func newTestAuthorizer(c AuthzClientInterface) *Authorizer {
	logger := logging.NewNoopLogger()
	return NewAuthorizer(c, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
}

func TestAuthorizationModel(t *testing.T) {
	model := NewAuthorizationModelProvider("v0").GetModel()

	if model.SchemaVersion != "1.1" {
		t.Fatalf("expected schema 1.1, got %s", model.SchemaVersion)
	}

	seen := make(map[string]bool)
	for _, td := range model.TypeDefinitions {
		seen[td.Type] = true
	}
	if !seen["user"] || !seen["workspace"] {
		t.Fatalf("expected user and workspace types, got %v", seen)
	}
}

func TestRoleRelation(t *testing.T) {
	tests := []struct {
		role     types.Role
		relation string
	}{
		{types.RoleOwner, OWNER_RELATION},
		{types.RoleAdmin, ADMIN_RELATION},
		{types.RoleMember, MEMBER_RELATION},
	}

	for _, test := range tests {
		if got := RoleRelation(test.role); got != test.relation {
			t.Errorf("expected %s, got %s", test.relation, got)
		}
	}
}

func TestAuthorizer_ValidateModel(t *testing.T) {
	testCases := []struct {
		name        string
		setupMocks  func(*MockAuthzClientInterface)
		expectedErr error
		expectErr   bool
	}{
		{
			name: "model matches",
			setupMocks: func(c *MockAuthzClientInterface) {
				c.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(true, nil)
			},
		},
		{
			name: "model differs",
			setupMocks: func(c *MockAuthzClientInterface) {
				c.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			expectedErr: ErrInvalidAuthModel,
			expectErr:   true,
		},
		{
			name: "client error",
			setupMocks: func(c *MockAuthzClientInterface) {
				c.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(false, errors.New("unreachable"))
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := NewMockAuthzClientInterface(ctrl)
			tc.setupMocks(mockClient)

			err := newTestAuthorizer(mockClient).ValidateModel(context.Background())

			if tc.expectErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.expectErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.expectedErr != nil && !errors.Is(err, tc.expectedErr) {
				t.Fatalf("expected %v, got %v", tc.expectedErr, err)
			}
		})
	}
}

func TestAuthorizer_AssignWorkspaceRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := NewMockAuthzClientInterface(ctrl)
	mockClient.EXPECT().WriteTuple(gomock.Any(), "user:u1", "admin", "workspace:w1").Return(nil)

	if err := newTestAuthorizer(mockClient).AssignWorkspaceRole(context.Background(), "w1", "u1", types.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthorizer_RemoveWorkspaceRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := NewMockAuthzClientInterface(ctrl)
	mockClient.EXPECT().DeleteTuple(gomock.Any(), "user:u1", "member", "workspace:w1").Return(errors.New("boom"))

	if err := newTestAuthorizer(mockClient).RemoveWorkspaceRole(context.Background(), "w1", "u1", types.RoleMember); err == nil {
		t.Fatal("expected error")
	}
}

func TestAuthorizer_ChangeWorkspaceRole(t *testing.T) {
	testCases := []struct {
		name       string
		setupMocks func(*MockAuthzClientInterface)
		expectErr  bool
	}{
		{
			name: "swap",
			setupMocks: func(c *MockAuthzClientInterface) {
				gomock.InOrder(
					c.EXPECT().DeleteTuple(gomock.Any(), "user:u2", "member", "workspace:w1").Return(nil),
					c.EXPECT().WriteTuple(gomock.Any(), "user:u2", "admin", "workspace:w1").Return(nil),
				)
			},
		},
		{
			name: "stale tuple still writes the new relation",
			setupMocks: func(c *MockAuthzClientInterface) {
				c.EXPECT().DeleteTuple(gomock.Any(), "user:u2", "member", "workspace:w1").Return(errors.New("missing"))
				c.EXPECT().WriteTuple(gomock.Any(), "user:u2", "admin", "workspace:w1").Return(nil)
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := NewMockAuthzClientInterface(ctrl)
			tc.setupMocks(mockClient)

			err := newTestAuthorizer(mockClient).ChangeWorkspaceRole(context.Background(), "w1", "u2", types.RoleMember, types.RoleAdmin)
			if (err != nil) != tc.expectErr {
				t.Fatalf("expected error %v, got %v", tc.expectErr, err)
			}
		})
	}
}

func TestAuthorizer_RemoveWorkspaceUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := NewMockAuthzClientInterface(ctrl)

	page1 := &client.ClientReadResponse{
		Tuples:            []fga.Tuple{{Key: fga.TupleKey{User: "user:u1", Relation: "admin", Object: "workspace:w1"}}},
		ContinuationToken: "next",
	}
	page2 := &client.ClientReadResponse{
		Tuples: []fga.Tuple{{Key: fga.TupleKey{User: "user:u1", Relation: "member", Object: "workspace:w1"}}},
	}

	gomock.InOrder(
		mockClient.EXPECT().ReadTuples(gomock.Any(), "user:u1", "", "workspace:w1", "").Return(page1, nil),
		mockClient.EXPECT().DeleteTuples(gomock.Any(), []openfga.Tuple{*openfga.NewTuple("user:u1", "admin", "workspace:w1")}).Return(nil),
		mockClient.EXPECT().ReadTuples(gomock.Any(), "user:u1", "", "workspace:w1", "next").Return(page2, nil),
		mockClient.EXPECT().DeleteTuples(gomock.Any(), []openfga.Tuple{*openfga.NewTuple("user:u1", "member", "workspace:w1")}).Return(nil),
	)

	if err := newTestAuthorizer(mockClient).RemoveWorkspaceUser(context.Background(), "w1", "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
