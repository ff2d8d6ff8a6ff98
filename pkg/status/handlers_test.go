// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/version"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func serve(db PingerInterface, path string) *httptest.ResponseRecorder {
	logger := logging.NewNoopLogger()

	mux := chi.NewMux()
	NewAPI(db, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger).RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func TestAPI_Status(t *testing.T) {
	tests := []struct {
		name     string
		db       PingerInterface
		expected int
		database string
	}{
		{name: "healthy", db: pinger{}, expected: http.StatusOK, database: "ok"},
		{name: "database down", db: pinger{err: errors.New("connection refused")}, expected: http.StatusServiceUnavailable, database: "unavailable"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := serve(test.db, "/api/v0/status")

			if w.Code != test.expected {
				t.Fatalf("expected status %d, got %d", test.expected, w.Code)
			}

			var body struct {
				Data Status `json:"data"`
			}
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if body.Data.Database != test.database {
				t.Fatalf("expected database %s, got %s", test.database, body.Data.Database)
			}
		})
	}
}

func TestAPI_Version(t *testing.T) {
	w := serve(pinger{}, "/api/v0/version")

	var body struct {
		Data BuildInfo `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body.Data.Version != version.Version {
		t.Fatalf("expected version %s, got %s", version.Version, body.Data.Version)
	}
}
