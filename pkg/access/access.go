// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package access resolves the caller of an action into a workspace membership and its capabilities.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/workspace-service/internal/storage"
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/permissions"
)

type MembershipReaderInterface interface {
	GetMembership(ctx context.Context, workspaceID, userID string) (*types.Membership, error)
}

// Caller is a principal acting inside one workspace.
type Caller struct {
	Principal   types.Principal
	Membership  *types.Membership
	Permissions permissions.Permissions
}

func (c *Caller) UserID() string {
	return c.Principal.ID
}

func (c *Caller) Role() types.Role {
	return c.Membership.Role
}

// Email prefers the identity provider email and falls back to the one recorded on the membership.
func (c *Caller) Email() string {
	if c.Principal.Email != "" {
		return c.Principal.Email
	}
	return c.Membership.UserEmail
}

// Authenticated fails with an unauthenticated error when the principal carries no identity.
func Authenticated(p types.Principal) error {
	if p.ID == "" {
		return types.Unauthorized()
	}
	return nil
}

// Resolve looks up the membership of p in workspaceID.
func Resolve(ctx context.Context, r MembershipReaderInterface, p types.Principal, workspaceID string) (*Caller, error) {
	if err := Authenticated(p); err != nil {
		return nil, err
	}

	m, err := r.GetMembership(ctx, workspaceID, p.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotAMember()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve membership: %w", err)
	}

	return &Caller{
		Principal:   p,
		Membership:  m,
		Permissions: permissions.GetPermissions(m.Role),
	}, nil
}
