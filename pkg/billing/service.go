// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/storage"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/access"
)

const (
	planName = "Pro Plan"

	metadataWorkspaceID = "workspaceId"
	metadataUserID      = "userId"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage  StorageInterface
	audit    AuditInterface
	orders   OrdersInterface
	checkout CheckoutInterface
	cfg      Config

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) CreateOrder(ctx context.Context, principal types.Principal, workspaceID string) (*Order, error) {
	ctx, span := s.tracer.Start(ctx, "billing.Service.CreateOrder")
	defer span.End()

	if err := s.requireProvider(ProviderRazorpay); err != nil {
		return nil, err
	}

	caller, w, err := s.billable(ctx, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.CreateOrder(ctx, &OrderRequest{
		Amount:   s.cfg.Price.MinorUnits(),
		Currency: s.cfg.Price.Currency,
		Receipt:  "receipt_" + w.ID,
		Notes: map[string]string{
			metadataWorkspaceID: w.ID,
			metadataUserID:      caller.UserID(),
		},
	})
	if err != nil {
		s.logger.Errorf("failed to create payment order for workspace %s: %v", w.ID, err)
		return nil, types.ProviderUnavailable("Failed to create payment order")
	}

	return &Order{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.cfg.RazorpayKeyID,
	}, nil
}

// VerifyPayment upgrades the workspace once the Razorpay signature checks out.
func (s *Service) VerifyPayment(ctx context.Context, principal types.Principal, workspaceID string, input VerifyInput) (*types.Result[*types.Workspace], error) {
	ctx, span := s.tracer.Start(ctx, "billing.Service.VerifyPayment")
	defer span.End()

	if err := s.requireProvider(ProviderRazorpay); err != nil {
		return nil, err
	}

	caller, w, err := s.billable(ctx, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	if input.OrderID == "" || input.PaymentID == "" || input.Signature == "" {
		return nil, types.InvalidInput("Missing payment details")
	}

	if !ValidSignature(s.cfg.RazorpayKeySecret, input.OrderID, input.PaymentID, input.Signature) {
		s.logger.Security().PaymentSignatureMismatch(caller.UserID(), w.ID, input.OrderID)
		return nil, types.InvalidSignature()
	}

	return s.upgrade(ctx, w.ID, caller.UserID(), caller.Email(), input.PaymentID)
}

func (s *Service) CreateCheckoutSession(ctx context.Context, principal types.Principal, workspaceID string) (*Checkout, error) {
	ctx, span := s.tracer.Start(ctx, "billing.Service.CreateCheckoutSession")
	defer span.End()

	if err := s.requireProvider(ProviderStripe); err != nil {
		return nil, err
	}

	caller, w, err := s.billable(ctx, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	dashboard := strings.TrimSuffix(s.cfg.AppURL, "/") + "/dashboard/" + w.ID

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(s.cfg.Price.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(planName + " - " + w.Name),
					},
					UnitAmount: stripe.Int64(s.cfg.Price.MinorUnits()),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(dashboard + "?success=true"),
		CancelURL:  stripe.String(dashboard + "?canceled=true"),
		Metadata: map[string]string{
			metadataWorkspaceID: w.ID,
			metadataUserID:      caller.UserID(),
		},
	}

	session, err := s.checkout.CreateCheckoutSession(ctx, params)
	if err != nil {
		s.logger.Errorf("failed to create checkout session for workspace %s: %v", w.ID, err)
		return nil, types.ProviderUnavailable("Failed to create checkout session")
	}

	return &Checkout{SessionID: session.ID, URL: session.URL}, nil
}

// HandleStripeWebhook upgrades the workspace named in a completed checkout session.
// Other event types are acknowledged and ignored, the returned result then has a nil value.
func (s *Service) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) (*types.Result[*types.Workspace], error) {
	ctx, span := s.tracer.Start(ctx, "billing.Service.HandleStripeWebhook")
	defer span.End()

	if s.cfg.Provider != ProviderStripe || s.cfg.StripeWebhookSecret == "" {
		return nil, types.ProviderUnavailable("Stripe is not configured")
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, s.cfg.StripeWebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		s.logger.Security().AuthnFailure("stripe", err.Error())
		return nil, types.InvalidSignature()
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		s.logger.Debugf("ignoring stripe event %s", event.Type)
		return types.NewResult[*types.Workspace](nil, types.SideEffects{}), nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, types.InvalidInput("Malformed checkout session")
	}

	workspaceID := session.Metadata[metadataWorkspaceID]
	userID := session.Metadata[metadataUserID]
	if workspaceID == "" {
		return nil, types.InvalidInput("Checkout session has no workspace")
	}

	paymentID := session.ID
	if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
		paymentID = session.PaymentIntent.ID
	}

	email := ""
	if m, err := s.storage.GetMembership(ctx, workspaceID, userID); err == nil {
		email = m.UserEmail
	}

	return s.upgrade(ctx, workspaceID, userID, email, paymentID)
}

func (s *Service) upgrade(ctx context.Context, workspaceID, userID, email, paymentID string) (*types.Result[*types.Workspace], error) {
	w, err := s.storage.UpgradeWorkspacePlan(ctx, workspaceID, types.PlanPro, paymentID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("Workspace not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade workspace: %w", err)
	}

	s.logger.Security().PaymentVerified(userID, w.ID, paymentID)

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: w.ID,
		UserID:      userID,
		UserEmail:   email,
		Action:      types.ActionPlanUpgraded,
		TargetType:  types.TargetWorkspace,
		TargetID:    w.ID,
		TargetName:  w.Name,
		Metadata: map[string]interface{}{
			"plan":       string(types.PlanPro),
			"payment_id": paymentID,
		},
	})

	return types.NewResult(w, effects), nil
}

func (s *Service) billable(ctx context.Context, principal types.Principal, workspaceID string) (*access.Caller, *types.Workspace, error) {
	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, nil, err
	}

	if !caller.Permissions.CanAccessBilling {
		s.logger.Security().AuthzFailure(caller.UserID(), "billing:"+workspaceID)
		return nil, nil, types.Forbidden("You do not have permission to access billing")
	}

	w, err := s.storage.GetWorkspace(ctx, workspaceID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, types.NotFound("Workspace not found")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return caller, w, nil
}

func (s *Service) requireProvider(p Provider) error {
	if s.cfg.Provider != p {
		return types.ProviderUnavailable(fmt.Sprintf("Payment provider %s is not enabled", p))
	}
	if p == ProviderRazorpay && s.cfg.RazorpayKeySecret == "" {
		return types.ProviderUnavailable("Razorpay is not configured")
	}
	return nil
}

func NewService(storage StorageInterface, audit AuditInterface, orders OrdersInterface, checkout CheckoutInterface, cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.storage = storage
	s.audit = audit
	s.orders = orders
	s.checkout = checkout
	s.cfg = cfg

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
