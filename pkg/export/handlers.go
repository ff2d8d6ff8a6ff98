// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package export

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/workspace-service/internal/http/types"
	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/pkg/authentication"
)

type API struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/workspaces/{workspaceID}/exports/activity.csv", a.exportActivity)
	mux.Get("/api/v0/workspaces/{workspaceID}/exports/tasks.csv", a.exportTasks)
}

func (a *API) exportActivity(w http.ResponseWriter, r *http.Request) {
	report, err := a.service.ExportActivityLogs(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	a.write(w, report)
}

func (a *API) exportTasks(w http.ResponseWriter, r *http.Request) {
	report, err := a.service.ExportTasks(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	a.write(w, report)
}

func (a *API) write(w http.ResponseWriter, report *Report) {
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(w, report.Content); err != nil {
		a.logger.Errorf("failed to write report %s: %v", report.Filename, err)
	}
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}
