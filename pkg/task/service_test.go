// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/storage"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package task -destination ./mock_interfaces.go -source=./interfaces.go

const workspaceID = "w1"

var (
	owner   = &types.Membership{ID: "m-a", WorkspaceID: workspaceID, UserID: "A", UserEmail: "a@x", Role: types.RoleOwner}
	admin   = &types.Membership{ID: "m-b", WorkspaceID: workspaceID, UserID: "B", UserEmail: "b@x", Role: types.RoleAdmin}
	creator = &types.Membership{ID: "m-c", WorkspaceID: workspaceID, UserID: "C", UserEmail: "c@x", Role: types.RoleMember}
	other   = &types.Membership{ID: "m-d", WorkspaceID: workspaceID, UserID: "D", UserEmail: "d@x", Role: types.RoleMember}
)

func principalOf(m *types.Membership) types.Principal {
	return types.Principal{ID: m.UserID, Email: m.UserEmail}
}

func newTestService(ctrl *gomock.Controller) (*Service, *MockStorageInterface, *MockAuditInterface) {
	mockStorage := NewMockStorageInterface(ctrl)
	mockAudit := NewMockAuditInterface(ctrl)

	logger := logging.NewNoopLogger()
	s := NewService(mockStorage, mockAudit, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
	s.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

	return s, mockStorage, mockAudit
}

func taskByC() *types.Task {
	return &types.Task{ID: "T", WorkspaceID: workspaceID, Title: "Ship", Status: types.TaskStatusTodo, Priority: types.TaskPriorityMedium, CreatedByID: "C"}
}

func TestService_CreateTask(t *testing.T) {
	tests := []struct {
		name       string
		input      CreateTaskInput
		setupMocks func(*MockStorageInterface, *MockAuditInterface)
		kind       error
		check      func(*testing.T, *types.Task)
	}{
		{
			name:  "defaults",
			input: CreateTaskInput{Title: "  Write docs  ", AssigneeID: "none"},
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(creator, nil)
				s.EXPECT().CreateTask(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, t *types.Task) (*types.Task, error) {
						c := *t
						c.ID = "t-new"
						return &c, nil
					},
				)
				a.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, l *types.ActivityLog) types.SideEffects {
						if l.Action != types.ActionTaskCreated || l.TargetID != "t-new" || l.Metadata["assignee"] != nil {
							t.Errorf("unexpected activity %+v", l)
						}
						return types.SideEffects{}
					},
				)
			},
			check: func(t *testing.T, task *types.Task) {
				if task.Title != "Write docs" || task.Priority != types.TaskPriorityMedium || task.Status != types.TaskStatusTodo {
					t.Errorf("unexpected task %+v", task)
				}
				if task.AssignedToID != nil || task.CreatedByID != "C" {
					t.Errorf("unexpected task ownership %+v", task)
				}
			},
		},
		{
			name:  "with assignee and due date",
			input: CreateTaskInput{Title: "Review", Priority: types.TaskPriorityHigh, DueDate: "2026-03-12", AssigneeID: "m-d"},
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(creator, nil)
				s.EXPECT().GetMembershipByID(gomock.Any(), workspaceID, "m-d").Return(other, nil)
				s.EXPECT().CreateTask(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, t *types.Task) (*types.Task, error) {
						return t, nil
					},
				)
				a.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(types.SideEffects{})
			},
			check: func(t *testing.T, task *types.Task) {
				if task.AssignedToID == nil || *task.AssignedToID != "m-d" {
					t.Errorf("expected assignee m-d, got %v", task.AssignedToID)
				}
				if task.DueDate == nil || task.DueDate.Day() != 12 {
					t.Errorf("unexpected due date %v", task.DueDate)
				}
			},
		},
		{
			name:  "assignee from another workspace",
			input: CreateTaskInput{Title: "Review", AssigneeID: "m-elsewhere"},
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(creator, nil)
				s.EXPECT().GetMembershipByID(gomock.Any(), workspaceID, "m-elsewhere").Return(nil, storage.ErrNotFound)
			},
			kind: types.ErrNotFound,
		},
		{
			name:  "empty title",
			input: CreateTaskInput{Title: "   "},
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(creator, nil)
			},
			kind: types.ErrInvalidInput,
		},
		{
			name:  "bad priority",
			input: CreateTaskInput{Title: "x", Priority: "URGENT"},
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(creator, nil)
			},
			kind: types.ErrInvalidInput,
		},
		{
			name:  "bad due date",
			input: CreateTaskInput{Title: "x", DueDate: "tomorrow"},
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(creator, nil)
			},
			kind: types.ErrInvalidInput,
		},
		{
			name:  "not a member",
			input: CreateTaskInput{Title: "x"},
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(nil, storage.ErrNotFound)
			},
			kind: types.ErrForbidden,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, mockStorage, mockAudit := newTestService(ctrl)
			test.setupMocks(mockStorage, mockAudit)

			res, err := s.CreateTask(context.Background(), principalOf(creator), workspaceID, test.input)

			if test.kind != nil {
				if !errors.Is(err, test.kind) {
					t.Fatalf("expected %v, got %v", test.kind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			test.check(t, res.Value)
		})
	}
}

func TestService_CreateTaskAuditFailureIsNotAnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockStorage, mockAudit := newTestService(ctrl)
	auditErr := errors.New("activity insert failed")

	mockStorage.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(creator, nil)
	mockStorage.EXPECT().CreateTask(gomock.Any(), gomock.Any()).Return(taskByC(), nil)
	mockAudit.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(types.SideEffects{Audit: auditErr})

	res, err := s.CreateTask(context.Background(), principalOf(creator), workspaceID, CreateTaskInput{Title: "Ship"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Value == nil || !errors.Is(res.SideEffects.Audit, auditErr) {
		t.Fatalf("expected task with audit failure, got %+v", res)
	}
}

func TestService_DeleteTaskScenario(t *testing.T) {
	tests := []struct {
		name    string
		caller  *types.Membership
		allowed bool
	}{
		{name: "admin deletes any task", caller: admin, allowed: true},
		{name: "owner deletes any task", caller: owner, allowed: true},
		{name: "creator deletes own task", caller: creator, allowed: true},
		{name: "other member is denied", caller: other, allowed: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, mockStorage, mockAudit := newTestService(ctrl)

			mockStorage.EXPECT().GetMembership(gomock.Any(), workspaceID, test.caller.UserID).Return(test.caller, nil)
			mockStorage.EXPECT().GetTask(gomock.Any(), workspaceID, "T").Return(taskByC(), nil)
			if test.allowed {
				mockStorage.EXPECT().DeleteTask(gomock.Any(), workspaceID, "T").Return(nil)
				mockAudit.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(types.SideEffects{})
			}

			res, err := s.DeleteTask(context.Background(), principalOf(test.caller), workspaceID, "T")

			if !test.allowed {
				if !errors.Is(err, types.ErrForbidden) || err.Error() != "You do not have permission to delete this task" {
					t.Fatalf("expected permission denied, got %v", err)
				}
				return
			}
			if err != nil || res.Value.ID != "T" {
				t.Fatalf("unexpected result %v %v", res, err)
			}
		})
	}
}

func TestService_DeleteTaskNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockStorage, _ := newTestService(ctrl)

	mockStorage.EXPECT().GetMembership(gomock.Any(), workspaceID, "B").Return(admin, nil)
	mockStorage.EXPECT().GetTask(gomock.Any(), workspaceID, "missing").Return(nil, storage.ErrNotFound)

	_, err := s.DeleteTask(context.Background(), principalOf(admin), workspaceID, "missing")
	if !errors.Is(err, types.ErrNotFound) || err.Error() != "Task not found" {
		t.Fatalf("expected task not found, got %v", err)
	}
}

func TestService_UpdateTask(t *testing.T) {
	title := "Ship it"
	empty := ""
	high := types.TaskPriorityHigh

	tests := []struct {
		name       string
		caller     *types.Membership
		input      UpdateTaskInput
		setupMocks func(*MockStorageInterface, *MockAuditInterface)
		kind       error
		changes    []string
	}{
		{
			name:   "creator edits title and priority",
			caller: creator,
			input:  UpdateTaskInput{Title: &title, Priority: &high},
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, t *types.Task) (*types.Task, error) { return t, nil },
				)
				a.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(types.SideEffects{})
			},
			changes: []string{"title", "priority"},
		},
		{
			name:       "no changes skips the write",
			caller:     admin,
			input:      UpdateTaskInput{},
			setupMocks: func(*MockStorageInterface, *MockAuditInterface) {},
		},
		{
			name:       "other member is denied",
			caller:     other,
			input:      UpdateTaskInput{Title: &title},
			setupMocks: func(*MockStorageInterface, *MockAuditInterface) {},
			kind:       types.ErrForbidden,
		},
		{
			name:       "empty title",
			caller:     admin,
			input:      UpdateTaskInput{Title: &empty},
			setupMocks: func(*MockStorageInterface, *MockAuditInterface) {},
			kind:       types.ErrInvalidInput,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, mockStorage, mockAudit := newTestService(ctrl)

			mockStorage.EXPECT().GetMembership(gomock.Any(), workspaceID, test.caller.UserID).Return(test.caller, nil)
			mockStorage.EXPECT().GetTask(gomock.Any(), workspaceID, "T").Return(taskByC(), nil)
			test.setupMocks(mockStorage, mockAudit)

			res, err := s.UpdateTask(context.Background(), principalOf(test.caller), workspaceID, "T", test.input)

			if test.kind != nil {
				if !errors.Is(err, test.kind) {
					t.Fatalf("expected %v, got %v", test.kind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if test.changes != nil && (res.Value.Title != title || res.Value.Priority != high) {
				t.Fatalf("unexpected task %+v", res.Value)
			}
		})
	}
}

func TestService_ToggleTaskStatus(t *testing.T) {
	assigned := func(status types.TaskStatus) *types.Task {
		task := taskByC()
		task.Status = status
		task.AssignedToID = &other.ID
		return task
	}

	tests := []struct {
		name     string
		caller   *types.Membership
		task     *types.Task
		expected types.TaskStatus
		action   types.ActivityAction
		kind     error
	}{
		{name: "creator completes", caller: creator, task: taskByC(), expected: types.TaskStatusDone, action: types.ActionTaskCompleted},
		{name: "assignee reopens", caller: other, task: assigned(types.TaskStatusDone), expected: types.TaskStatusTodo, action: types.ActionTaskReopened},
		{name: "admin completes", caller: admin, task: taskByC(), expected: types.TaskStatusDone, action: types.ActionTaskCompleted},
		{name: "unrelated member denied", caller: other, task: taskByC(), kind: types.ErrForbidden},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, mockStorage, mockAudit := newTestService(ctrl)

			mockStorage.EXPECT().GetMembership(gomock.Any(), workspaceID, test.caller.UserID).Return(test.caller, nil)
			mockStorage.EXPECT().GetTask(gomock.Any(), workspaceID, "T").Return(test.task, nil)

			if test.kind == nil {
				mockStorage.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, t *types.Task) (*types.Task, error) { return t, nil },
				)
				mockAudit.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, l *types.ActivityLog) types.SideEffects {
						if l.Action != test.action {
							t.Errorf("expected %s, got %s", test.action, l.Action)
						}
						return types.SideEffects{}
					},
				)
			}

			res, err := s.ToggleTaskStatus(context.Background(), principalOf(test.caller), workspaceID, "T")

			if test.kind != nil {
				if !errors.Is(err, test.kind) {
					t.Fatalf("expected %v, got %v", test.kind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if res.Value.Status != test.expected {
				t.Fatalf("expected %s, got %s", test.expected, res.Value.Status)
			}
		})
	}
}

func TestService_GetTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockStorage, _ := newTestService(ctrl)

	task := taskByC()
	task.DueDate = day(2026, 3, 11)
	comments := []*types.Comment{{ID: "c1", Content: "first"}, {ID: "c2", Content: "second"}}

	mockStorage.EXPECT().GetMembership(gomock.Any(), workspaceID, "D").Return(other, nil)
	mockStorage.EXPECT().GetTask(gomock.Any(), workspaceID, "T").Return(task, nil)
	mockStorage.EXPECT().ListComments(gomock.Any(), "T").Return(comments, nil)

	detail, err := s.GetTask(context.Background(), principalOf(other), workspaceID, "T")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(detail.Comments) != 2 || detail.DueLabel != "Due tomorrow" {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if detail.CanEdit || detail.CanDelete {
		t.Fatal("a member who did not create the task should not edit it")
	}
}

func TestService_ListTasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockStorage, _ := newTestService(ctrl)

	done := taskByC()
	done.ID = "T2"
	done.Status = types.TaskStatusDone

	mockStorage.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(creator, nil)
	mockStorage.EXPECT().ListTasks(gomock.Any(), workspaceID).Return([]*types.Task{taskByC(), done}, nil)

	list, err := s.ListTasks(context.Background(), principalOf(creator), workspaceID, Filter{Status: types.TaskStatusDone})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(list.Tasks) != 1 || list.Tasks[0].ID != "T2" {
		t.Fatalf("unexpected tasks %+v", list.Tasks)
	}
	if list.Counts.Total != 2 || list.Counts.ByStatus[types.TaskStatusTodo] != 1 {
		t.Fatalf("counts should cover the unfiltered list, got %+v", list.Counts)
	}
}

func TestService_CreateComment(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		setupMocks func(*MockStorageInterface, *MockAuditInterface)
		kind       error
		message    string
	}{
		{
			name:    "empty",
			content: "   ",
			kind:    types.ErrInvalidInput,
			message: "Comment cannot be empty",
		},
		{
			name:    "task missing",
			content: "hello",
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().GetTask(gomock.Any(), workspaceID, "T").Return(nil, storage.ErrNotFound)
			},
			kind:    types.ErrNotFound,
			message: "Task not found",
		},
		{
			name:    "success",
			content: "  hello  ",
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().GetTask(gomock.Any(), workspaceID, "T").Return(taskByC(), nil)
				s.EXPECT().CreateComment(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, c *types.Comment) (*types.Comment, error) {
						if c.Content != "hello" || c.UserID != "D" || c.UserEmail != "d@x" || c.TaskID != "T" {
							t.Errorf("unexpected comment %+v", c)
						}
						created := *c
						created.ID = "c1"
						return &created, nil
					},
				)
				a.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, l *types.ActivityLog) types.SideEffects {
						if l.Action != types.ActionCommentAdded || l.TargetType != types.TargetTask || l.TargetID != "T" {
							t.Errorf("unexpected activity %+v", l)
						}
						return types.SideEffects{}
					},
				)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, mockStorage, mockAudit := newTestService(ctrl)
			mockStorage.EXPECT().GetMembership(gomock.Any(), workspaceID, "D").Return(other, nil)
			if test.setupMocks != nil {
				test.setupMocks(mockStorage, mockAudit)
			}

			res, err := s.CreateComment(context.Background(), principalOf(other), workspaceID, "T", test.content)

			if test.kind != nil {
				if !errors.Is(err, test.kind) || err.Error() != test.message {
					t.Fatalf("expected %q, got %v", test.message, err)
				}
				return
			}
			if err != nil || res.Value.ID != "c1" {
				t.Fatalf("unexpected result %v %v", res, err)
			}
		})
	}
}

func TestService_DeleteComment(t *testing.T) {
	comment := &types.Comment{ID: "c1", TaskID: "T", UserID: "C", Content: "mine"}

	tests := []struct {
		name       string
		caller     *types.Membership
		setupMocks func(*MockStorageInterface, *MockAuditInterface)
		kind       error
		message    string
	}{
		{
			name:   "missing comment",
			caller: creator,
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().GetComment(gomock.Any(), "T", "c1").Return(nil, storage.ErrNotFound)
			},
			kind:    types.ErrNotFound,
			message: "Comment not found",
		},
		{
			name:   "owner cannot delete somebody else's comment",
			caller: owner,
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().GetComment(gomock.Any(), "T", "c1").Return(comment, nil)
			},
			kind:    types.ErrForbidden,
			message: "You can only delete your own comments",
		},
		{
			name:   "author deletes",
			caller: creator,
			setupMocks: func(s *MockStorageInterface, a *MockAuditInterface) {
				s.EXPECT().GetComment(gomock.Any(), "T", "c1").Return(comment, nil)
				s.EXPECT().DeleteComment(gomock.Any(), "T", "c1").Return(nil)
				a.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(types.SideEffects{})
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, mockStorage, mockAudit := newTestService(ctrl)
			mockStorage.EXPECT().GetMembership(gomock.Any(), workspaceID, test.caller.UserID).Return(test.caller, nil)
			mockStorage.EXPECT().GetTask(gomock.Any(), workspaceID, "T").Return(taskByC(), nil)
			test.setupMocks(mockStorage, mockAudit)

			_, err := s.DeleteComment(context.Background(), principalOf(test.caller), workspaceID, "T", "c1")

			if test.kind != nil {
				if !errors.Is(err, test.kind) || err.Error() != test.message {
					t.Fatalf("expected %q, got %v", test.message, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

func TestService_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, _ := newTestService(ctrl)

	if _, err := s.CreateTask(context.Background(), types.Principal{}, workspaceID, CreateTaskInput{Title: "x"}); !errors.Is(err, types.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if _, err := s.ListTasks(context.Background(), types.Principal{}, workspaceID, Filter{}); !errors.Is(err, types.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
