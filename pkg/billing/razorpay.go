// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/tracing"
)

var _ OrdersInterface = (*RazorpayClient)(nil)

// RazorpayClient talks to the Razorpay orders API.
type RazorpayClient struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, order *OrderRequest) (*RazorpayOrder, error) {
	ctx, span := c.tracer.Start(ctx, "billing.RazorpayClient.CreateOrder")
	defer span.End()

	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var e razorpayError
		if json.Unmarshal(raw, &e) == nil && e.Error.Description != "" {
			return nil, fmt.Errorf("razorpay error (status %d): %s: %s", resp.StatusCode, e.Error.Code, e.Error.Description)
		}
		return nil, fmt.Errorf("razorpay error (status %d): %s", resp.StatusCode, string(raw))
	}

	out := new(RazorpayOrder)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	return out, nil
}

// Signature is the hex HMAC-SHA256 Razorpay attaches to a completed payment.
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// ValidSignature compares in constant time. Without a secret nothing is valid.
func ValidSignature(secret, orderID, paymentID, signature string) bool {
	if secret == "" {
		return false
	}
	expected := Signature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

func NewRazorpayClient(baseURL, keyID, keySecret string, tracer tracing.TracingInterface, logger logging.LoggerInterface) *RazorpayClient {
	c := new(RazorpayClient)

	c.baseURL = strings.TrimSuffix(baseURL, "/")
	c.keyID = keyID
	c.keySecret = keySecret
	c.client = &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	c.tracer = tracer
	c.logger = logger

	return c
}
