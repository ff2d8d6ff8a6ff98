// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package export

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/storage"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package export -destination ./mock_interfaces.go -source=./interfaces.go

const workspaceID = "w1"

var (
	admin  = &types.Membership{ID: "m-b", WorkspaceID: workspaceID, UserID: "B", UserEmail: "b@x", Role: types.RoleAdmin}
	member = &types.Membership{ID: "m-c", WorkspaceID: workspaceID, UserID: "C", UserEmail: "c@x", Role: types.RoleMember}
	ws     = &types.Workspace{ID: workspaceID, Name: "Acme", Slug: "acme-1a2b", Plan: types.PlanFree}
)

func principalOf(m *types.Membership) types.Principal {
	return types.Principal{ID: m.UserID, Email: m.UserEmail}
}

func newTestService(ctrl *gomock.Controller) (*Service, *MockStorageInterface) {
	mockStorage := NewMockStorageInterface(ctrl)

	logger := logging.NewNoopLogger()
	s := NewService(mockStorage, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
	s.now = func() time.Time { return time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC) }

	return s, mockStorage
}

func TestService_ExportActivityLogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockStorage := newTestService(ctrl)

	logs := []*types.ActivityLog{
		{
			ID: "l2", WorkspaceID: workspaceID, UserEmail: "b@x", Action: types.ActionRoleChanged,
			TargetType: types.TargetMember, TargetName: "c@x",
			Metadata:  map[string]interface{}{"from": "MEMBER", "to": "ADMIN"},
			CreatedAt: time.Date(2026, 3, 9, 8, 5, 1, 0, time.UTC),
		},
		{
			ID: "l1", WorkspaceID: workspaceID, UserEmail: "a@x", Action: types.ActionWorkspaceCreated,
			TargetType: types.TargetWorkspace,
			CreatedAt:  time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC),
		},
	}

	mockStorage.EXPECT().GetMembership(gomock.Any(), workspaceID, "B").Return(admin, nil)
	mockStorage.EXPECT().GetWorkspace(gomock.Any(), workspaceID).Return(ws, nil)
	mockStorage.EXPECT().ListActivityLogs(gomock.Any(), workspaceID, uint64(0), uint64(0)).Return(logs, nil)

	report, err := s.ExportActivityLogs(context.Background(), principalOf(admin), workspaceID)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if report.Filename != "acme-1a2b-activity-2026-03-10.csv" {
		t.Fatalf("unexpected filename %s", report.Filename)
	}

	lines := strings.Split(report.Content, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), report.Content)
	}

	if lines[0] != "Date,Time,User,Action,Target,Details" {
		t.Fatalf("unexpected header %q", lines[0])
	}

	if !strings.HasPrefix(lines[1], `"2026-03-09","08:05:01","b@x",`) {
		t.Fatalf("expected newest entry first, got %q", lines[1])
	}

	if !strings.Contains(lines[1], `"MEMBER: c@x","{""from"":""MEMBER"",""to"":""ADMIN""}"`) {
		t.Fatalf("unexpected target or details %q", lines[1])
	}

	if !strings.HasSuffix(lines[2], `"-","-"`) {
		t.Fatalf("expected empty target and details placeholders, got %q", lines[2])
	}
}

func TestService_ExportActivityLogsDenied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockStorage := newTestService(ctrl)

	mockStorage.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(member, nil)
	mockStorage.EXPECT().ListActivityLogs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := s.ExportActivityLogs(context.Background(), principalOf(member), workspaceID)
	if !errors.Is(err, types.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err.Error() != "You do not have permission to export data" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestService_ExportTasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockStorage := newTestService(ctrl)

	due := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	tasks := []*types.Task{
		{
			ID: "t2", WorkspaceID: workspaceID, Title: `Say "hi"`, Status: types.TaskStatusDone, Priority: types.TaskPriorityHigh,
			DueDate: &due, AssignedToID: &admin.ID, Assignee: admin,
			CreatedAt: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "t1", WorkspaceID: workspaceID, Title: "Ship", Status: types.TaskStatusTodo, Priority: types.TaskPriorityLow,
			CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	mockStorage.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(member, nil)
	mockStorage.EXPECT().GetWorkspace(gomock.Any(), workspaceID).Return(ws, nil)
	mockStorage.EXPECT().ListTasks(gomock.Any(), workspaceID).Return(tasks, nil)

	report, err := s.ExportTasks(context.Background(), principalOf(member), workspaceID)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	expected := strings.Join([]string{
		"Title,Status,Priority,Due Date,Assignee,Created",
		`"Say ""hi""","DONE","HIGH","2026-03-12","b@x","2026-03-08"`,
		`"Ship","TODO","LOW","-","Unassigned","2026-03-01"`,
	}, "\n")

	if report.Content != expected {
		t.Fatalf("expected\n%s\ngot\n%s", expected, report.Content)
	}

	if report.Filename != "acme-1a2b-tasks-2026-03-10.csv" {
		t.Fatalf("unexpected filename %s", report.Filename)
	}
}

func TestService_ExportErrors(t *testing.T) {
	tests := []struct {
		name       string
		principal  types.Principal
		setupMocks func(*MockStorageInterface)
		kind       error
	}{
		{
			name:      "unauthenticated",
			principal: types.Principal{},
			kind:      types.ErrUnauthenticated,
		},
		{
			name:      "not a member",
			principal: types.Principal{ID: "Z"},
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetMembership(gomock.Any(), workspaceID, "Z").Return(nil, storage.ErrNotFound)
			},
			kind: types.ErrForbidden,
		},
		{
			name:      "workspace gone",
			principal: principalOf(member),
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(member, nil)
				s.EXPECT().GetWorkspace(gomock.Any(), workspaceID).Return(nil, storage.ErrNotFound)
			},
			kind: types.ErrNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, mockStorage := newTestService(ctrl)
			if test.setupMocks != nil {
				test.setupMocks(mockStorage)
			}

			_, err := s.ExportTasks(context.Background(), test.principal, workspaceID)
			if !errors.Is(err, test.kind) {
				t.Fatalf("expected %v, got %v", test.kind, err)
			}
		})
	}
}
