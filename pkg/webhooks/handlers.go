// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ory/hydra/v2/oauth2"

	httptypes "github.com/canonical/workspace-service/internal/http/types"
	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/types"
)

const maxStripePayload = 64 << 10

type API struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/webhooks/registration", a.registration)
	mux.Post("/webhooks/token", a.tokenHook)
	mux.Post("/webhooks/stripe", a.stripe)
}

func (a *API) registration(w http.ResponseWriter, r *http.Request) {
	var identity KratosIdentity
	if err := httptypes.DecodeJSON(r, &identity); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	res, err := a.service.HandleRegistration(r.Context(), identity.ID, identity.Traits.Email)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusOK, res.Value, res.SideEffects, "Workspace provisioned")
}

// tokenHook answers Hydra with the bare hook response, not the API envelope.
func (a *API) tokenHook(w http.ResponseWriter, r *http.Request) {
	var req oauth2.TokenHookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.logger.Errorf("failed to decode token hook request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := a.service.HandleTokenHook(r.Context(), &req)
	if err != nil {
		a.logger.Errorf("token hook failed: %v", err)
		http.Error(w, err.Error(), httptypes.StatusFromError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		a.logger.Errorf("failed to encode token hook response: %v", err)
	}
}

func (a *API) stripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxStripePayload))
	if err != nil {
		httptypes.WriteError(w, types.InvalidInput("Invalid request body"), a.logger)
		return
	}

	res, err := a.service.HandleStripe(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusOK, map[string]bool{"received": true}, res.SideEffects, "")
}
