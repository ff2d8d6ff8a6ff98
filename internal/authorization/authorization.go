// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/openfga"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
)

var ErrInvalidAuthModel = fmt.Errorf("invalid authorization model schema")

var _ AuthorizerInterface = (*Authorizer)(nil)

type Authorizer struct {
	client AuthzClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authorizer) ValidateModel(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ValidateModel")
	defer span.End()

	model := *NewAuthorizationModelProvider("v0").GetModel()

	eq, err := a.client.CompareModel(ctx, model)
	if err != nil {
		return err
	}
	if !eq {
		return ErrInvalidAuthModel
	}
	return nil
}

func (a *Authorizer) AssignWorkspaceRole(ctx context.Context, workspaceID, userID string, role types.Role) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignWorkspaceRole")
	defer span.End()

	return a.client.WriteTuple(ctx, UserTuple(userID), RoleRelation(role), WorkspaceTuple(workspaceID))
}

func (a *Authorizer) RemoveWorkspaceRole(ctx context.Context, workspaceID, userID string, role types.Role) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RemoveWorkspaceRole")
	defer span.End()

	return a.client.DeleteTuple(ctx, UserTuple(userID), RoleRelation(role), WorkspaceTuple(workspaceID))
}

// ChangeWorkspaceRole swaps the relation of a user, the new tuple is written even if the old one was missing.
func (a *Authorizer) ChangeWorkspaceRole(ctx context.Context, workspaceID, userID string, from, to types.Role) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ChangeWorkspaceRole")
	defer span.End()

	delErr := a.client.DeleteTuple(ctx, UserTuple(userID), RoleRelation(from), WorkspaceTuple(workspaceID))
	if delErr != nil {
		a.logger.Warnf("failed to delete %s tuple for user %s: %v", from, userID, delErr)
	}

	writeErr := a.client.WriteTuple(ctx, UserTuple(userID), RoleRelation(to), WorkspaceTuple(workspaceID))

	return errors.Join(delErr, writeErr)
}

// RemoveWorkspaceUser deletes every tuple linking the user to the workspace.
func (a *Authorizer) RemoveWorkspaceUser(ctx context.Context, workspaceID, userID string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RemoveWorkspaceUser")
	defer span.End()

	cToken := ""
	for {
		r, err := a.client.ReadTuples(ctx, UserTuple(userID), "", WorkspaceTuple(workspaceID), cToken)
		if err != nil {
			a.logger.Errorf("error when retrieving tuples: %s", err)
			return err
		}
		if len(r.Tuples) == 0 {
			break
		}
		ts := make([]openfga.Tuple, len(r.Tuples))
		for i, t := range r.Tuples {
			ts[i] = *openfga.NewTuple(t.Key.User, t.Key.Relation, t.Key.Object)
		}
		if err := a.client.DeleteTuples(ctx, ts); err != nil {
			a.logger.Errorf("error when deleting tuples %v: %s", ts, err)
			return err
		}
		if r.ContinuationToken == "" {
			break
		}
		cToken = r.ContinuationToken
	}
	return nil
}

func NewAuthorizer(client AuthzClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.client = client
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}
