// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/canonical/workspace-service/internal/tracing"
)

var _ CheckoutInterface = (*StripeClient)(nil)

type StripeClient struct {
	api *client.API

	tracer tracing.TracingInterface
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	ctx, span := c.tracer.Start(ctx, "billing.StripeClient.CreateCheckoutSession")
	defer span.End()

	params.Context = ctx

	return c.api.CheckoutSessions.New(params)
}

func NewStripeClient(secretKey string, tracer tracing.TracingInterface) *StripeClient {
	c := new(StripeClient)

	c.api = new(client.API)
	c.api.Init(secretKey, nil)
	c.tracer = tracer

	return c
}
