// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"net/http"
	"strconv"

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
	mux.Get("/api/v0/workspaces/{workspaceID}/activity", a.list)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	size, _ := strconv.ParseInt(r.URL.Query().Get("size"), 10, 64)

	entries, err := a.service.ListActivity(
		r.Context(),
		authentication.Caller(r.Context()),
		chi.URLParam(r, "workspaceID"),
		page,
		size,
	)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, entries, "")
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}
