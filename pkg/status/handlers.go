// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/workspace-service/internal/http/types"
	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/version"
)

const pingTimeout = 2 * time.Second

type BuildInfo struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash,omitempty"`
	Name       string `json:"name,omitempty"`
}

type Status struct {
	Status    string     `json:"status"`
	Database  string     `json:"database"`
	BuildInfo *BuildInfo `json:"buildInfo,omitempty"`
}

type API struct {
	db PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := Status{Status: "ok", Database: "ok", BuildInfo: buildInfo()}
	code := http.StatusOK

	if err := a.db.Ping(ctx); err != nil {
		a.logger.Errorf("database ping failed: %v", err)
		status.Status = "degraded"
		status.Database = "unavailable"
		code = http.StatusServiceUnavailable
	}

	httptypes.WriteJSON(w, code, status, "")
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	httptypes.WriteJSON(w, http.StatusOK, buildInfo(), "")
}

func buildInfo() *BuildInfo {
	info := &BuildInfo{Version: version.Version}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.Name = bi.Main.Path
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			info.CommitHash = s.Value
		}
	}

	return info
}

func NewAPI(db PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.db = db

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
