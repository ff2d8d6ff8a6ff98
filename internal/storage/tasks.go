// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/workspace-service/internal/types"
)

func (s *Storage) selectTasks(ctx context.Context) sq.SelectBuilder {
	return s.db.Statement(ctx).
		Select(
			"t.id", "t.workspace_id", "t.title", "t.description", "t.status", "t.priority",
			"t.due_date", "t.assigned_to_id", "t.created_by_id", "t.created_at", "t.updated_at",
			"m.user_id", "m.user_email", "m.role", "m.created_at",
			"(SELECT COUNT(*) FROM comments c WHERE c.task_id = t.id)",
		).
		From("tasks t").
		LeftJoin("memberships m ON m.id = t.assigned_to_id")
}

func scanTask(row rowScanner) (*types.Task, error) {
	var (
		t               types.Task
		dueDate         sql.NullTime
		assignedToID    sql.NullString
		assigneeUserID  sql.NullString
		assigneeEmail   sql.NullString
		assigneeRole    sql.NullString
		assigneeCreated sql.NullTime
	)

	err := row.Scan(
		&t.ID, &t.WorkspaceID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&dueDate, &assignedToID, &t.CreatedByID, &t.CreatedAt, &t.UpdatedAt,
		&assigneeUserID, &assigneeEmail, &assigneeRole, &assigneeCreated,
		&t.CommentCount,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		d := dueDate.Time
		t.DueDate = &d
	}

	if assignedToID.Valid {
		id := assignedToID.String
		t.AssignedToID = &id
		t.Assignee = &types.Membership{
			ID:          id,
			WorkspaceID: t.WorkspaceID,
			UserID:      assigneeUserID.String,
			UserEmail:   assigneeEmail.String,
			Role:        types.Role(assigneeRole.String),
			CreatedAt:   assigneeCreated.Time,
		}
	}

	return &t, nil
}

func (s *Storage) CreateTask(ctx context.Context, t *types.Task) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTask")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	status := t.Status
	if status == "" {
		status = types.TaskStatusTodo
	}

	_, err = s.db.Statement(ctx).
		Insert("tasks").
		Columns("id", "workspace_id", "title", "description", "status", "priority", "due_date", "assigned_to_id", "created_by_id").
		Values(id, t.WorkspaceID, t.Title, t.Description, status, t.Priority, t.DueDate, t.AssignedToID, t.CreatedByID).
		ExecContext(ctx)
	if err != nil {
		return nil, wrapWriteError(err, "insert task")
	}

	return s.GetTask(ctx, t.WorkspaceID, id)
}

func (s *Storage) GetTask(ctx context.Context, workspaceID, taskID string) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTask")
	defer span.End()

	row := s.selectTasks(ctx).
		Where(sq.Eq{"t.workspace_id": workspaceID, "t.id": taskID}).
		QueryRowContext(ctx)

	task, err := scanTask(row)
	if err != nil {
		return nil, wrapReadError(err, "get task")
	}

	return task, nil
}

// ListTasks returns every task of a workspace, newest first.
func (s *Storage) ListTasks(ctx context.Context, workspaceID string) ([]*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTasks")
	defer span.End()

	rows, err := s.selectTasks(ctx).
		Where(sq.Eq{"t.workspace_id": workspaceID}).
		OrderBy("t.created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*types.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tasks, nil
}

// UpdateTask overwrites the mutable fields of a task.
func (s *Storage) UpdateTask(ctx context.Context, t *types.Task) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTask")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("tasks").
		SetMap(map[string]interface{}{
			"title":          t.Title,
			"description":    t.Description,
			"status":         t.Status,
			"priority":       t.Priority,
			"due_date":       t.DueDate,
			"assigned_to_id": t.AssignedToID,
			"updated_at":     sq.Expr("NOW()"),
		}).
		Where(sq.Eq{"workspace_id": t.WorkspaceID, "id": t.ID}).
		ExecContext(ctx)
	if err != nil {
		return nil, wrapWriteError(err, "update task")
	}

	if err := expectAffected(res); err != nil {
		return nil, err
	}

	return s.GetTask(ctx, t.WorkspaceID, t.ID)
}

func (s *Storage) DeleteTask(ctx context.Context, workspaceID, taskID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteTask")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("tasks").
		Where(sq.Eq{"workspace_id": workspaceID, "id": taskID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
