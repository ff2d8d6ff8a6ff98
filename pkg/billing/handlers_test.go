// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/authentication"
)

func TestAPI_Billing(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		setupMocks func(*MockServiceInterface)
		expected   int
	}{
		{
			name: "order",
			path: "/api/v0/workspaces/w1/billing/orders",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateOrder(gomock.Any(), principalOf(owner), workspaceID).
					Return(&Order{OrderID: "order_1", Amount: 49900, Currency: "INR"}, nil)
			},
			expected: http.StatusCreated,
		},
		{
			name: "verify",
			path: "/api/v0/workspaces/w1/billing/verify",
			body: `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"abc"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().VerifyPayment(gomock.Any(), principalOf(owner), workspaceID, VerifyInput{OrderID: "order_1", PaymentID: "pay_1", Signature: "abc"}).
					Return(types.NewResult(&types.Workspace{ID: workspaceID, Plan: types.PlanPro}, types.SideEffects{}), nil)
			},
			expected: http.StatusOK,
		},
		{
			name: "verify with bad signature",
			path: "/api/v0/workspaces/w1/billing/verify",
			body: `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"abc"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().VerifyPayment(gomock.Any(), gomock.Any(), workspaceID, gomock.Any()).Return(nil, types.InvalidSignature())
			},
			expected: http.StatusBadRequest,
		},
		{
			name:       "verify malformed",
			path:       "/api/v0/workspaces/w1/billing/verify",
			body:       `{`,
			setupMocks: func(s *MockServiceInterface) {},
			expected:   http.StatusBadRequest,
		},
		{
			name: "checkout unavailable",
			path: "/api/v0/workspaces/w1/billing/checkout",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any(), workspaceID).
					Return(nil, types.ProviderUnavailable("Payment provider stripe is not enabled"))
			},
			expected: http.StatusBadGateway,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockServiceInterface(ctrl)
			test.setupMocks(svc)

			mux := chi.NewMux()
			NewAPI(svc, logging.NewNoopLogger()).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPost, test.path, strings.NewReader(test.body))
			p := principalOf(owner)
			req = req.WithContext(authentication.WithPrincipal(req.Context(), &p))

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != test.expected {
				t.Fatalf("expected status %d, got %d: %s", test.expected, w.Code, w.Body.String())
			}
		})
	}
}
