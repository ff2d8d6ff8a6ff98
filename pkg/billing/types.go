// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"errors"
	"fmt"

	"github.com/canonical/workspace-service/internal/types"
)

type Provider string

const (
	ProviderRazorpay Provider = "razorpay"
	ProviderStripe   Provider = "stripe"
	ProviderNone     Provider = "none"
)

type Config struct {
	Provider Provider
	Price    types.Price
	AppURL   string

	RazorpayKeyID     string
	RazorpayKeySecret string

	StripeSecretKey     string
	StripeWebhookSecret string
}

// Validate reports a provider selected without the secrets it signs and verifies with.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderRazorpay:
		if c.RazorpayKeyID == "" || c.RazorpayKeySecret == "" {
			return errors.New("razorpay requires RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET")
		}
	case ProviderStripe:
		if c.StripeSecretKey == "" || c.StripeWebhookSecret == "" {
			return errors.New("stripe requires STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET")
		}
	case ProviderNone:
	default:
		return fmt.Errorf("unknown payment provider %q", c.Provider)
	}
	return nil
}

// Order is what a client needs to open the Razorpay checkout.
type Order struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

type VerifyInput struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type Checkout struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type OrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}
