// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workspace

import (
	"encoding/json"
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

func TestAPI(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setupMocks func(*MockServiceInterface)
		expected   int
	}{
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/api/v0/workspaces",
			body:   `{"name":"My Team"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateWorkspace(gomock.Any(), alice, "My Team").
					Return(types.NewResult(&types.Workspace{ID: "w1", Name: "My Team"}, types.SideEffects{}), nil)
			},
			expected: http.StatusCreated,
		},
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/api/v0/workspaces",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().ListWorkspaces(gomock.Any(), alice).Return([]*types.WorkspaceMembership{}, nil)
			},
			expected: http.StatusOK,
		},
		{
			name:   "dashboard of a foreign workspace",
			method: http.MethodGet,
			path:   "/api/v0/workspaces/w2",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetDashboard(gomock.Any(), alice, "w2").Return(nil, types.NotAMember())
			},
			expected: http.StatusForbidden,
		},
		{
			name:   "settings",
			method: http.MethodGet,
			path:   "/api/v0/workspaces/w1/settings",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetSettings(gomock.Any(), alice, "w1").Return(&Settings{Workspace: &types.Workspace{ID: "w1"}}, nil)
			},
			expected: http.StatusOK,
		},
		{
			name:   "billing",
			method: http.MethodGet,
			path:   "/api/v0/workspaces/w1/billing",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetBilling(gomock.Any(), alice, "w1").Return(nil, types.Forbidden("You do not have permission to access billing"))
			},
			expected: http.StatusForbidden,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			test.setupMocks(mockService)

			mux := chi.NewMux()
			NewAPI(mockService, logging.NewNoopLogger()).RegisterEndpoints(mux)

			req := httptest.NewRequest(test.method, test.path, strings.NewReader(test.body))
			p := alice
			req = req.WithContext(authentication.WithPrincipal(req.Context(), &p))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != test.expected {
				t.Fatalf("expected %d, got %d: %s", test.expected, w.Code, w.Body.String())
			}

			var body map[string]interface{}
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if int(body["status"].(float64)) != test.expected {
				t.Fatalf("unexpected status in body %v", body)
			}
		})
	}
}
