// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"fmt"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
)

const defaultWorkspaceName = "My Workspace"

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage    StorageInterface
	workspaces WorkspacesInterface
	billing    BillingInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	workspaces WorkspacesInterface,
	billing BillingInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:    storage,
		workspaces: workspaces,
		billing:    billing,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

// HandleRegistration gives a freshly registered identity a personal workspace it owns.
func (s *Service) HandleRegistration(ctx context.Context, identityID, email string) (*types.Result[*types.Workspace], error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	s.logger.Debugf("Handling registration for identity %s with email %s", identityID, email)

	if identityID == "" {
		return nil, types.InvalidInput("Identity id is required")
	}

	name := defaultWorkspaceName
	if email != "" {
		name = fmt.Sprintf("%s's Workspace", email)
	}

	res, err := s.workspaces.CreateWorkspace(ctx, types.Principal{ID: identityID, Email: email}, name)
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Successfully provisioned workspace %s for user %s", res.Value.ID, identityID)
	return res, nil
}

// HandleTokenHook adds the ids of the caller's workspaces to the issued tokens.
func (s *Service) HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleTokenHook")
	defer span.End()

	if req == nil || req.Session == nil || req.Session.DefaultSession == nil || req.Session.DefaultSession.Subject == "" {
		return nil, types.InvalidInput("Token hook session has no subject")
	}

	subject := req.Session.DefaultSession.Subject
	s.logger.Debugf("Handling token hook for subject %s", subject)

	workspaces, err := s.storage.ListWorkspacesByUserID(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	resp := new(TokenHookResponse)
	if len(workspaces) == 0 {
		return resp, nil
	}

	ids := make([]string, 0, len(workspaces))
	for _, w := range workspaces {
		ids = append(ids, w.ID)
	}

	resp.Session.IDToken = map[string]interface{}{workspacesClaim: ids}
	resp.Session.AccessToken = map[string]interface{}{workspacesClaim: ids}

	return resp, nil
}

func (s *Service) HandleStripe(ctx context.Context, payload []byte, signature string) (*types.Result[*types.Workspace], error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleStripe")
	defer span.End()

	return s.billing.HandleStripeWebhook(ctx, payload, signature)
}
