// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"context"

	"github.com/stripe/stripe-go/v79"

	"github.com/canonical/workspace-service/internal/types"
)

type ServiceInterface interface {
	CreateOrder(ctx context.Context, principal types.Principal, workspaceID string) (*Order, error)
	VerifyPayment(ctx context.Context, principal types.Principal, workspaceID string, input VerifyInput) (*types.Result[*types.Workspace], error)
	CreateCheckoutSession(ctx context.Context, principal types.Principal, workspaceID string) (*Checkout, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) (*types.Result[*types.Workspace], error)
}

type StorageInterface interface {
	GetMembership(ctx context.Context, workspaceID, userID string) (*types.Membership, error)
	GetWorkspace(ctx context.Context, id string) (*types.Workspace, error)
	UpgradeWorkspacePlan(ctx context.Context, id string, plan types.Plan, subscriptionID string) (*types.Workspace, error)
}

type AuditInterface interface {
	Publish(ctx context.Context, l *types.ActivityLog) types.SideEffects
}

// OrdersInterface creates Razorpay orders.
type OrdersInterface interface {
	CreateOrder(ctx context.Context, req *OrderRequest) (*RazorpayOrder, error)
}

// CheckoutInterface creates Stripe checkout sessions.
type CheckoutInterface interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}
