// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/workspace-service/internal/types"
)

var invitationColumns = []string{"id", "workspace_id", "email", "token", "status", "invited_by_id", "created_at", "accepted_at"}

func scanInvitation(row rowScanner) (*types.Invitation, error) {
	var (
		i          types.Invitation
		acceptedAt sql.NullTime
	)

	if err := row.Scan(&i.ID, &i.WorkspaceID, &i.Email, &i.Token, &i.Status, &i.InvitedByID, &i.CreatedAt, &acceptedAt); err != nil {
		return nil, err
	}

	if acceptedAt.Valid {
		t := acceptedAt.Time
		i.AcceptedAt = &t
	}

	return &i, nil
}

func (s *Storage) CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvitation")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	row := s.db.Statement(ctx).
		Insert("invitations").
		Columns("id", "workspace_id", "email", "token", "status", "invited_by_id").
		Values(id, i.WorkspaceID, i.Email, i.Token, types.InvitationPending, i.InvitedByID).
		Suffix("RETURNING " + strings.Join(invitationColumns, ", ")).
		QueryRowContext(ctx)

	invitation, err := scanInvitation(row)
	if err != nil {
		return nil, wrapWriteError(err, "insert invitation")
	}

	return invitation, nil
}

func (s *Storage) GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvitationByToken")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(invitationColumns...).
		From("invitations").
		Where(sq.Eq{"token": token}).
		QueryRowContext(ctx)

	invitation, err := scanInvitation(row)
	if err != nil {
		return nil, wrapReadError(err, "get invitation")
	}

	return invitation, nil
}

func (s *Storage) GetPendingInvitation(ctx context.Context, workspaceID, email string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPendingInvitation")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(invitationColumns...).
		From("invitations").
		Where(sq.Eq{"workspace_id": workspaceID, "status": types.InvitationPending}).
		Where(sq.Expr("lower(email) = lower(?)", email)).
		Limit(1).
		QueryRowContext(ctx)

	invitation, err := scanInvitation(row)
	if err != nil {
		return nil, wrapReadError(err, "get pending invitation")
	}

	return invitation, nil
}

func (s *Storage) ListPendingInvitations(ctx context.Context, workspaceID string) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListPendingInvitations")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(invitationColumns...).
		From("invitations").
		Where(sq.Eq{"workspace_id": workspaceID, "status": types.InvitationPending}).
		OrderBy("created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	invitations := make([]*types.Invitation, 0)
	for rows.Next() {
		i, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invitations, nil
}

// MarkInvitationAccepted flips a pending invitation to accepted.
// It returns false when the invitation was no longer pending.
func (s *Storage) MarkInvitationAccepted(ctx context.Context, id string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.MarkInvitationAccepted")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("invitations").
		Set("status", types.InvitationAccepted).
		Set("accepted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "status": types.InvitationPending}).
		ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to accept invitation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return n == 1, nil
}
