// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/canonical/workspace-service/internal/storage"
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/access"
)

func (s *Service) CreateComment(ctx context.Context, principal types.Principal, workspaceID, taskID, content string) (*types.Result[*types.Comment], error) {
	ctx, span := s.tracer.Start(ctx, "task.Service.CreateComment")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, types.InvalidInput("Comment cannot be empty")
	}

	t, err := s.getTask(ctx, workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	c, err := s.storage.CreateComment(ctx, &types.Comment{
		TaskID:    t.ID,
		UserID:    caller.UserID(),
		UserEmail: caller.Email(),
		Content:   content,
	})
	if errors.Is(err, storage.ErrForeignKeyViolation) {
		return nil, types.NotFound("Task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: workspaceID,
		UserID:      caller.UserID(),
		UserEmail:   caller.Email(),
		Action:      types.ActionCommentAdded,
		TargetType:  types.TargetTask,
		TargetID:    t.ID,
		TargetName:  t.Title,
		Metadata:    map[string]interface{}{"comment_id": c.ID},
	})

	return types.NewResult(c, effects), nil
}

// DeleteComment removes a comment, only its author may do so.
func (s *Service) DeleteComment(ctx context.Context, principal types.Principal, workspaceID, taskID, commentID string) (*types.Result[*types.Comment], error) {
	ctx, span := s.tracer.Start(ctx, "task.Service.DeleteComment")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	t, err := s.getTask(ctx, workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	c, err := s.storage.GetComment(ctx, t.ID, commentID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("Comment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if c.UserID != caller.UserID() {
		return nil, types.Forbidden("You can only delete your own comments")
	}

	err = s.storage.DeleteComment(ctx, t.ID, c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("Comment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: workspaceID,
		UserID:      caller.UserID(),
		UserEmail:   caller.Email(),
		Action:      types.ActionCommentDeleted,
		TargetType:  types.TargetTask,
		TargetID:    t.ID,
		TargetName:  t.Title,
		Metadata:    map[string]interface{}{"comment_id": c.ID},
	})

	return types.NewResult(c, effects), nil
}
