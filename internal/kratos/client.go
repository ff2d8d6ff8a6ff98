// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"fmt"
	"net/http"

	ory "github.com/ory/client-go"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
)

type ClientInterface interface {
	GetIdentity(ctx context.Context, id string) (*ory.Identity, error)
	GetIdentityEmail(ctx context.Context, id string) (string, error)
}

var _ ClientInterface = (*Client)(nil)

type Client struct {
	client  *ory.APIClient
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(kratosAdminURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: kratosAdminURL}}
	return &Client{
		client:  ory.NewAPIClient(conf),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (c *Client) GetIdentity(ctx context.Context, id string) (*ory.Identity, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.GetIdentity")
	defer span.End()

	identity, r, err := c.client.IdentityAPI.GetIdentity(ctx, id).Execute()
	c.setAvailability(r, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return identity, nil
}

// GetIdentityEmail returns the email trait of an identity, empty when the schema has none.
func (c *Client) GetIdentityEmail(ctx context.Context, id string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.GetIdentityEmail")
	defer span.End()

	identity, err := c.GetIdentity(ctx, id)
	if err != nil {
		return "", err
	}

	return EmailFromTraits(identity.Traits), nil
}

// EmailFromTraits extracts the email trait of a kratos identity.
func EmailFromTraits(traits interface{}) string {
	t, ok := traits.(map[string]interface{})
	if !ok {
		return ""
	}

	email, _ := t["email"].(string)
	return email
}

func (c *Client) setAvailability(r *http.Response, err error) {
	available := 1.0
	if err != nil && (r == nil || r.StatusCode >= http.StatusInternalServerError) {
		available = 0
	}

	if mErr := c.monitor.SetDependencyAvailability(map[string]string{"component": "kratos"}, available); mErr != nil {
		c.logger.Debugf("failed to set dependency metric: %v", mErr)
	}
}
