// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ory/hydra/v2/oauth2"
	"go.uber.org/mock/gomock"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/types"
)

func TestAPI_TokenHook(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		validateResp   func(*testing.T, *http.Response)
	}{
		{
			name: "success",
			requestBody: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession("user-123"),
			},
			setupMocks: func(mockSvc *MockServiceInterface) {
				response := new(TokenHookResponse)
				response.Session.IDToken = map[string]interface{}{"workspaces": []string{"workspace-1", "workspace-2"}}
				response.Session.AccessToken = map[string]interface{}{"workspaces": []string{"workspace-1", "workspace-2"}}
				mockSvc.EXPECT().HandleTokenHook(gomock.Any(), gomock.Any()).Return(response, nil)
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, resp *http.Response) {
				var result TokenHookResponse
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Errorf("failed to decode response: %v", err)
				}
				if result.Session.IDToken["workspaces"] == nil {
					t.Error("expected workspaces in ID token")
				}
			},
		},
		{
			name:           "invalid request body",
			requestBody:    "not-json",
			setupMocks:     func(mockSvc *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service error",
			requestBody: &oauth2.TokenHookRequest{
				Session: oauth2.NewSession("user-123"),
			},
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().HandleTokenHook(gomock.Any(), gomock.Any()).Return(nil, errors.New("service error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			api := NewAPI(mockService, logging.NewNoopLogger())

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatalf("failed to marshal request: %v", err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/webhooks/token", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			tt.setupMocks(mockService)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)
			mux.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Errorf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, string(body))
			}

			if tt.validateResp != nil {
				tt.validateResp(t, res)
			}
		})
	}
}

func TestAPI_Registration(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"id":"identity-123","traits":{"email":"user@example.com"}}`,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), "identity-123", "user@example.com").
					Return(types.NewResult(&types.Workspace{ID: "workspace-123"}, types.SideEffects{}), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid request body",
			body:           `{`,
			setupMocks:     func(mockSvc *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing identity",
			body: `{"traits":{"email":"user@example.com"}}`,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), "", "user@example.com").Return(nil, types.InvalidInput("Identity id is required"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tt.setupMocks(mockService)

			mux := chi.NewMux()
			NewAPI(mockService, logging.NewNoopLogger()).RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhooks/registration", strings.NewReader(tt.body)))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPI_Stripe(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "received",
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().HandleStripe(gomock.Any(), []byte(`{"id":"evt_1"}`), "t=1,v1=abc").
					Return(types.NewResult[*types.Workspace](nil, types.SideEffects{}), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "bad signature",
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().HandleStripe(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, types.InvalidSignature())
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tt.setupMocks(mockService)

			mux := chi.NewMux()
			NewAPI(mockService, logging.NewNoopLogger()).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(`{"id":"evt_1"}`))
			req.Header.Set("Stripe-Signature", "t=1,v1=abc")

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
