// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"

	"github.com/canonical/workspace-service/internal/openfga"
	"github.com/canonical/workspace-service/internal/types"
)

// AuthorizerInterface mirrors workspace memberships into openfga.
type AuthorizerInterface interface {
	ValidateModel(context.Context) error

	AssignWorkspaceRole(ctx context.Context, workspaceID, userID string, role types.Role) error
	RemoveWorkspaceRole(ctx context.Context, workspaceID, userID string, role types.Role) error
	ChangeWorkspaceRole(ctx context.Context, workspaceID, userID string, from, to types.Role) error
	RemoveWorkspaceUser(ctx context.Context, workspaceID, userID string) error
}

type AuthzClientInterface interface {
	ReadModel(context.Context) (*fga.AuthorizationModel, error)
	CompareModel(context.Context, fga.AuthorizationModel) (bool, error)
	ReadTuples(context.Context, string, string, string, string) (*client.ClientReadResponse, error)
	WriteTuple(ctx context.Context, user, relation, object string) error
	DeleteTuple(ctx context.Context, user, relation, object string) error
	DeleteTuples(context.Context, []openfga.Tuple) error
}
