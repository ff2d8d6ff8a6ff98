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

var membershipColumns = []string{"id", "workspace_id", "user_id", "user_email", "role", "created_at"}

func scanMembership(row rowScanner) (*types.Membership, error) {
	var m types.Membership
	if err := row.Scan(&m.ID, &m.WorkspaceID, &m.UserID, &m.UserEmail, &m.Role, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Storage) AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMember")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	row := s.db.Statement(ctx).
		Insert("memberships").
		Columns("id", "workspace_id", "user_id", "user_email", "role").
		Values(id, m.WorkspaceID, m.UserID, m.UserEmail, m.Role).
		Suffix("RETURNING " + strings.Join(membershipColumns, ", ")).
		QueryRowContext(ctx)

	member, err := scanMembership(row)
	if err != nil {
		return nil, wrapWriteError(err, "add member")
	}

	return member, nil
}

func (s *Storage) GetMembership(ctx context.Context, workspaceID, userID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembership")
	defer span.End()

	return s.getMembership(ctx, sq.Eq{"workspace_id": workspaceID, "user_id": userID})
}

func (s *Storage) GetMembershipByID(ctx context.Context, workspaceID, memberID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembershipByID")
	defer span.End()

	return s.getMembership(ctx, sq.Eq{"workspace_id": workspaceID, "id": memberID})
}

func (s *Storage) GetMembershipByEmail(ctx context.Context, workspaceID, email string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembershipByEmail")
	defer span.End()

	return s.getMembership(ctx, sq.And{
		sq.Eq{"workspace_id": workspaceID},
		sq.Expr("lower(user_email) = lower(?)", email),
	})
}

func (s *Storage) getMembership(ctx context.Context, pred sq.Sqlizer) (*types.Membership, error) {
	row := s.db.Statement(ctx).
		Select(membershipColumns...).
		From("memberships").
		Where(pred).
		Limit(1).
		QueryRowContext(ctx)

	member, err := scanMembership(row)
	if err != nil {
		return nil, wrapReadError(err, "get membership")
	}

	return member, nil
}

// ListMembers returns the members of a workspace, owners first, then by join date.
func (s *Storage) ListMembers(ctx context.Context, workspaceID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembers")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(membershipColumns...).
		From("memberships").
		Where(sq.Eq{"workspace_id": workspaceID}).
		OrderBy("CASE role WHEN 'OWNER' THEN 0 WHEN 'ADMIN' THEN 1 ELSE 2 END", "created_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := make([]*types.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

func (s *Storage) UpdateMemberRole(ctx context.Context, workspaceID, memberID string, role types.Role) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMemberRole")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("memberships").
		Set("role", role).
		Where(sq.Eq{"workspace_id": workspaceID, "id": memberID}).
		ExecContext(ctx)
	if err != nil {
		return wrapWriteError(err, "update member")
	}

	return expectAffected(res)
}

func (s *Storage) RemoveMember(ctx context.Context, workspaceID, memberID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.RemoveMember")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("memberships").
		Where(sq.Eq{"workspace_id": workspaceID, "id": memberID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return expectAffected(res)
}
