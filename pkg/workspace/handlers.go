// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workspace

import (
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
	mux.Get("/api/v0/workspaces", a.listWorkspaces)
	mux.Post("/api/v0/workspaces", a.createWorkspace)
	mux.Get("/api/v0/workspaces/{workspaceID}", a.getDashboard)
	mux.Get("/api/v0/workspaces/{workspaceID}/settings", a.getSettings)
	mux.Get("/api/v0/workspaces/{workspaceID}/billing", a.getBilling)
}

func (a *API) listWorkspaces(w http.ResponseWriter, r *http.Request) {
	workspaces, err := a.service.ListWorkspaces(r.Context(), authentication.Caller(r.Context()))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, workspaces, "")
}

func (a *API) createWorkspace(w http.ResponseWriter, r *http.Request) {
	var input CreateWorkspaceInput
	if err := httptypes.DecodeJSON(r, &input); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	res, err := a.service.CreateWorkspace(r.Context(), authentication.Caller(r.Context()), input.Name)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusCreated, res.Value, res.SideEffects, "Workspace created")
}

func (a *API) getDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := a.service.GetDashboard(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, dashboard, "")
}

func (a *API) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.service.GetSettings(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, settings, "")
}

func (a *API) getBilling(w http.ResponseWriter, r *http.Request) {
	billing, err := a.service.GetBilling(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, billing, "")
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}
