// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/storage"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/access"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	audit   AuditInterface
	now     func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) CreateTask(ctx context.Context, principal types.Principal, workspaceID string, input CreateTaskInput) (*types.Result[*types.Task], error) {
	ctx, span := s.tracer.Start(ctx, "task.Service.CreateTask")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	if !caller.Permissions.CanCreateTask {
		return nil, types.Forbidden("You do not have permission to create tasks")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, types.InvalidInput("Title is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = types.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, types.InvalidInput("Invalid priority")
	}

	due, err := ParseDueDate(input.DueDate)
	if err != nil {
		return nil, types.InvalidInput("Invalid due date")
	}

	assignee, err := s.resolveAssignee(ctx, workspaceID, input.AssigneeID)
	if err != nil {
		return nil, err
	}

	t := &types.Task{
		WorkspaceID: workspaceID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      types.TaskStatusTodo,
		Priority:    priority,
		DueDate:     due,
		CreatedByID: caller.UserID(),
	}
	if assignee != nil {
		t.AssignedToID = &assignee.ID
	}

	created, err := s.storage.CreateTask(ctx, t)
	if errors.Is(err, storage.ErrForeignKeyViolation) {
		return nil, types.NotFound("Assignee not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: workspaceID,
		UserID:      caller.UserID(),
		UserEmail:   caller.Email(),
		Action:      types.ActionTaskCreated,
		TargetType:  types.TargetTask,
		TargetID:    created.ID,
		TargetName:  created.Title,
		Metadata: map[string]interface{}{
			"priority": created.Priority,
			"assignee": assigneeEmail(assignee),
		},
	})

	return types.NewResult(created, effects), nil
}

func (s *Service) UpdateTask(ctx context.Context, principal types.Principal, workspaceID, taskID string, input UpdateTaskInput) (*types.Result[*types.Task], error) {
	ctx, span := s.tracer.Start(ctx, "task.Service.UpdateTask")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	t, err := s.getTask(ctx, workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	if !caller.Permissions.CanEditTask(t.CreatedByID, caller.UserID()) {
		return nil, types.Forbidden("You do not have permission to edit this task")
	}

	changes := make([]string, 0)

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, types.InvalidInput("Title is required")
		}
		if title != t.Title {
			t.Title = title
			changes = append(changes, "title")
		}
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description != t.Description {
			t.Description = description
			changes = append(changes, "description")
		}
	}

	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, types.InvalidInput("Invalid priority")
		}
		if *input.Priority != t.Priority {
			t.Priority = *input.Priority
			changes = append(changes, "priority")
		}
	}

	if input.DueDate != nil {
		due, err := ParseDueDate(*input.DueDate)
		if err != nil {
			return nil, types.InvalidInput("Invalid due date")
		}
		if !sameDay(due, t.DueDate) {
			t.DueDate = due
			changes = append(changes, "due_date")
		}
	}

	if input.AssigneeID != nil {
		assignee, err := s.resolveAssignee(ctx, workspaceID, *input.AssigneeID)
		if err != nil {
			return nil, err
		}

		var id *string
		if assignee != nil {
			id = &assignee.ID
		}
		if !sameID(id, t.AssignedToID) {
			t.AssignedToID = id
			t.Assignee = assignee
			changes = append(changes, "assignee")
		}
	}

	if len(changes) == 0 {
		return types.NewResult(t, types.SideEffects{}), nil
	}

	updated, err := s.storage.UpdateTask(ctx, t)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, types.NotFound("Task not found")
	case errors.Is(err, storage.ErrForeignKeyViolation):
		return nil, types.NotFound("Assignee not found")
	case err != nil:
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: workspaceID,
		UserID:      caller.UserID(),
		UserEmail:   caller.Email(),
		Action:      types.ActionTaskUpdated,
		TargetType:  types.TargetTask,
		TargetID:    updated.ID,
		TargetName:  updated.Title,
		Metadata:    map[string]interface{}{"changes": changes},
	})

	return types.NewResult(updated, effects), nil
}

func (s *Service) DeleteTask(ctx context.Context, principal types.Principal, workspaceID, taskID string) (*types.Result[*types.Task], error) {
	ctx, span := s.tracer.Start(ctx, "task.Service.DeleteTask")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	t, err := s.getTask(ctx, workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	if !caller.Permissions.CanDeleteTask(t.CreatedByID, caller.UserID()) {
		s.logger.Security().AuthzFailure(caller.UserID(), "task:"+t.ID)
		return nil, types.Forbidden("You do not have permission to delete this task")
	}

	err = s.storage.DeleteTask(ctx, workspaceID, taskID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("Task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: workspaceID,
		UserID:      caller.UserID(),
		UserEmail:   caller.Email(),
		Action:      types.ActionTaskDeleted,
		TargetType:  types.TargetTask,
		TargetID:    t.ID,
		TargetName:  t.Title,
	})

	return types.NewResult(t, effects), nil
}

// ToggleTaskStatus flips a task between TODO and DONE based on its stored status.
// Editors and the assignee may toggle.
func (s *Service) ToggleTaskStatus(ctx context.Context, principal types.Principal, workspaceID, taskID string) (*types.Result[*types.Task], error) {
	ctx, span := s.tracer.Start(ctx, "task.Service.ToggleTaskStatus")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	t, err := s.getTask(ctx, workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	isAssignee := t.AssignedToID != nil && *t.AssignedToID == caller.Membership.ID
	if !caller.Permissions.CanEditTask(t.CreatedByID, caller.UserID()) && !isAssignee {
		return nil, types.Forbidden("You do not have permission to update this task")
	}

	action, next := types.ActionTaskCompleted, types.TaskStatusDone
	if t.Status == types.TaskStatusDone {
		action, next = types.ActionTaskReopened, types.TaskStatusTodo
	}
	t.Status = next

	updated, err := s.storage.UpdateTask(ctx, t)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("Task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: workspaceID,
		UserID:      caller.UserID(),
		UserEmail:   caller.Email(),
		Action:      action,
		TargetType:  types.TargetTask,
		TargetID:    updated.ID,
		TargetName:  updated.Title,
	})

	return types.NewResult(updated, effects), nil
}

func (s *Service) GetTask(ctx context.Context, principal types.Principal, workspaceID, taskID string) (*TaskDetail, error) {
	ctx, span := s.tracer.Start(ctx, "task.Service.GetTask")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	t, err := s.getTask(ctx, workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	comments, err := s.storage.ListComments(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return &TaskDetail{
		Task:      t,
		Comments:  comments,
		DueLabel:  FormatDueDate(t.DueDate, s.now()),
		CanEdit:   caller.Permissions.CanEditTask(t.CreatedByID, caller.UserID()),
		CanDelete: caller.Permissions.CanDeleteTask(t.CreatedByID, caller.UserID()),
	}, nil
}

// ListTasks returns the workspace tasks matching filter, newest first.
// Counts are computed over the unfiltered list.
func (s *Service) ListTasks(ctx context.Context, principal types.Principal, workspaceID string, filter Filter) (*TaskList, error) {
	ctx, span := s.tracer.Start(ctx, "task.Service.ListTasks")
	defer span.End()

	if _, err := access.Resolve(ctx, s.storage, principal, workspaceID); err != nil {
		return nil, err
	}

	tasks, err := s.storage.ListTasks(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &TaskList{
		Tasks:  FilterTasks(tasks, filter),
		Counts: CountTasks(tasks),
	}, nil
}

func (s *Service) getTask(ctx context.Context, workspaceID, taskID string) (*types.Task, error) {
	t, err := s.storage.GetTask(ctx, workspaceID, taskID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("Task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// resolveAssignee returns the membership a task is assigned to, nil when unassigned.
func (s *Service) resolveAssignee(ctx context.Context, workspaceID, memberID string) (*types.Membership, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" || memberID == noAssignee {
		return nil, nil
	}

	m, err := s.storage.GetMembershipByID(ctx, workspaceID, memberID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("Assignee not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assignee: %w", err)
	}

	return m, nil
}

func assigneeEmail(m *types.Membership) interface{} {
	if m == nil {
		return nil
	}
	return m.UserEmail
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return calendarDay(*a).Equal(calendarDay(*b))
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func NewService(storage StorageInterface, audit AuditInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.storage = storage
	s.audit = audit
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
