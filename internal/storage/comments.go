// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/workspace-service/internal/types"
)

var commentColumns = []string{"id", "task_id", "user_id", "user_email", "content", "created_at"}

func scanComment(row rowScanner) (*types.Comment, error) {
	var c types.Comment
	if err := row.Scan(&c.ID, &c.TaskID, &c.UserID, &c.UserEmail, &c.Content, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) CreateComment(ctx context.Context, c *types.Comment) (*types.Comment, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateComment")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	row := s.db.Statement(ctx).
		Insert("comments").
		Columns("id", "task_id", "user_id", "user_email", "content").
		Values(id, c.TaskID, c.UserID, c.UserEmail, c.Content).
		Suffix("RETURNING " + strings.Join(commentColumns, ", ")).
		QueryRowContext(ctx)

	comment, err := scanComment(row)
	if err != nil {
		return nil, wrapWriteError(err, "insert comment")
	}

	return comment, nil
}

func (s *Storage) GetComment(ctx context.Context, taskID, commentID string) (*types.Comment, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetComment")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(commentColumns...).
		From("comments").
		Where(sq.Eq{"task_id": taskID, "id": commentID}).
		QueryRowContext(ctx)

	comment, err := scanComment(row)
	if err != nil {
		return nil, wrapReadError(err, "get comment")
	}

	return comment, nil
}

// ListComments returns the comments of a task, oldest first.
func (s *Storage) ListComments(ctx context.Context, taskID string) ([]*types.Comment, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListComments")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(commentColumns...).
		From("comments").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*types.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return comments, nil
}

func (s *Storage) DeleteComment(ctx context.Context, taskID, commentID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteComment")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("comments").
		Where(sq.Eq{"task_id": taskID, "id": commentID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return expectAffected(res)
}
