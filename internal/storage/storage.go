// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/workspace-service/internal/db"
	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

var workspaceColumns = []string{"id", "name", "slug", "plan", "subscription_id", "created_at", "updated_at"}

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

// WithTx runs fn in a single transaction, every storage call made with the
// context passed to fn joins it.
func (s *Storage) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return s.db.WithTx(ctx, fn)
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return id.String(), nil
}

type rowScanner interface {
	Scan(...interface{}) error
}

func scanWorkspace(row rowScanner, extra ...interface{}) (*types.Workspace, error) {
	var (
		w              types.Workspace
		subscriptionID sql.NullString
	)

	dest := append([]interface{}{&w.ID, &w.Name, &w.Slug, &w.Plan, &subscriptionID, &w.CreatedAt, &w.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	w.SubscriptionID = subscriptionID.String

	return &w, nil
}

func (s *Storage) CreateWorkspace(ctx context.Context, w *types.Workspace) (*types.Workspace, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateWorkspace")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	plan := w.Plan
	if plan == "" {
		plan = types.PlanFree
	}

	row := s.db.Statement(ctx).
		Insert("workspaces").
		Columns("id", "name", "slug", "plan").
		Values(id, w.Name, w.Slug, plan).
		Suffix("RETURNING id, name, slug, plan, subscription_id, created_at, updated_at").
		QueryRowContext(ctx)

	workspace, err := scanWorkspace(row)
	if err != nil {
		return nil, wrapWriteError(err, "insert workspace")
	}

	return workspace, nil
}

func (s *Storage) GetWorkspace(ctx context.Context, id string) (*types.Workspace, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetWorkspace")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(workspaceColumns...).
		From("workspaces").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	workspace, err := scanWorkspace(row)
	if err != nil {
		return nil, wrapReadError(err, "get workspace")
	}

	return workspace, nil
}

func (s *Storage) ListWorkspacesByUserID(ctx context.Context, userID string) ([]*types.WorkspaceMembership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListWorkspacesByUserID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("w.id", "w.name", "w.slug", "w.plan", "w.subscription_id", "w.created_at", "w.updated_at", "m.role").
		From("workspaces w").
		Join("memberships m ON w.id = m.workspace_id").
		Where(sq.Eq{"m.user_id": userID}).
		OrderBy("w.created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	workspaces := make([]*types.WorkspaceMembership, 0)
	for rows.Next() {
		var role types.Role

		w, err := scanWorkspace(rows, &role)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}

		workspaces = append(workspaces, &types.WorkspaceMembership{Workspace: *w, Role: role})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return workspaces, nil
}

func (s *Storage) UpgradeWorkspacePlan(ctx context.Context, id string, plan types.Plan, subscriptionID string) (*types.Workspace, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpgradeWorkspacePlan")
	defer span.End()

	row := s.db.Statement(ctx).
		Update("workspaces").
		Set("plan", plan).
		Set("subscription_id", subscriptionID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, slug, plan, subscription_id, created_at, updated_at").
		QueryRowContext(ctx)

	workspace, err := scanWorkspace(row)
	if err != nil {
		return nil, wrapReadError(err, "update workspace plan")
	}

	return workspace, nil
}
