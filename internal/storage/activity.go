// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/workspace-service/internal/types"
)

var activityColumns = []string{"id", "workspace_id", "user_id", "user_email", "action", "target_type", "target_id", "target_name", "metadata", "created_at"}

func scanActivityLog(row rowScanner) (*types.ActivityLog, error) {
	var (
		l        types.ActivityLog
		metadata []byte
	)

	err := row.Scan(&l.ID, &l.WorkspaceID, &l.UserID, &l.UserEmail, &l.Action, &l.TargetType, &l.TargetID, &l.TargetName, &metadata, &l.CreatedAt)
	if err != nil {
		return nil, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &l.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode activity metadata: %w", err)
		}
	}

	return &l, nil
}

func (s *Storage) CreateActivityLog(ctx context.Context, l *types.ActivityLog) (*types.ActivityLog, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateActivityLog")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	var metadata interface{}
	if l.Metadata != nil {
		b, err := json.Marshal(l.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode activity metadata: %w", err)
		}
		metadata = string(b)
	}

	row := s.db.Statement(ctx).
		Insert("activity_logs").
		Columns("id", "workspace_id", "user_id", "user_email", "action", "target_type", "target_id", "target_name", "metadata").
		Values(id, l.WorkspaceID, l.UserID, l.UserEmail, l.Action, l.TargetType, l.TargetID, l.TargetName, metadata).
		Suffix("RETURNING " + strings.Join(activityColumns, ", ")).
		QueryRowContext(ctx)

	entry, err := scanActivityLog(row)
	if err != nil {
		return nil, wrapWriteError(err, "insert activity log")
	}

	return entry, nil
}

// ListActivityLogs returns the log of a workspace, newest first.
// A zero limit returns every entry.
func (s *Storage) ListActivityLogs(ctx context.Context, workspaceID string, limit, offset uint64) ([]*types.ActivityLog, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListActivityLogs")
	defer span.End()

	q := s.db.Statement(ctx).
		Select(activityColumns...).
		From("activity_logs").
		Where(sq.Eq{"workspace_id": workspaceID}).
		OrderBy("created_at DESC", "id DESC")

	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	rows, err := q.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*types.ActivityLog, 0)
	for rows.Next() {
		l, err := scanActivityLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return logs, nil
}
