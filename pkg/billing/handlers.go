// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

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
	mux.Post("/api/v0/workspaces/{workspaceID}/billing/orders", a.createOrder)
	mux.Post("/api/v0/workspaces/{workspaceID}/billing/verify", a.verifyPayment)
	mux.Post("/api/v0/workspaces/{workspaceID}/billing/checkout", a.createCheckoutSession)
}

func (a *API) createOrder(w http.ResponseWriter, r *http.Request) {
	order, err := a.service.CreateOrder(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, order, "Order created")
}

func (a *API) verifyPayment(w http.ResponseWriter, r *http.Request) {
	var input VerifyInput
	if err := httptypes.DecodeJSON(r, &input); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	res, err := a.service.VerifyPayment(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"), input)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusOK, res.Value, res.SideEffects, "Workspace upgraded")
}

func (a *API) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	checkout, err := a.service.CreateCheckoutSession(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, checkout, "Checkout session created")
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}
