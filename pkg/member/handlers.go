// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package member

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
	mux.Post("/api/v0/workspaces/{workspaceID}/invitations", a.createInvitation)
	mux.Patch("/api/v0/workspaces/{workspaceID}/members/{memberID}", a.changeRole)
	mux.Delete("/api/v0/workspaces/{workspaceID}/members/{memberID}", a.removeMember)
	mux.Post("/api/v0/workspaces/{workspaceID}/leave", a.leave)
	mux.Get("/api/v0/invitations/{token}", a.getInvitation)
	mux.Post("/api/v0/invitations/{token}/accept", a.acceptInvitation)
}

func (a *API) createInvitation(w http.ResponseWriter, r *http.Request) {
	var input InvitationInput
	if err := httptypes.DecodeJSON(r, &input); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	res, err := a.service.CreateInvitation(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"), input.Email)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	if !res.Value.Created {
		httptypes.WriteResult(w, http.StatusOK, res.Value, res.SideEffects, "Invitation already pending")
		return
	}

	httptypes.WriteResult(w, http.StatusCreated, res.Value, res.SideEffects, "Invitation sent")
}

func (a *API) getInvitation(w http.ResponseWriter, r *http.Request) {
	preview, err := a.service.GetInvitation(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, preview, "")
}

func (a *API) acceptInvitation(w http.ResponseWriter, r *http.Request) {
	res, err := a.service.AcceptInvitation(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "token"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusOK, res.Value, res.SideEffects, "Invitation accepted")
}

func (a *API) changeRole(w http.ResponseWriter, r *http.Request) {
	var input RoleInput
	if err := httptypes.DecodeJSON(r, &input); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	res, err := a.service.ChangeMemberRole(
		r.Context(),
		authentication.Caller(r.Context()),
		chi.URLParam(r, "workspaceID"),
		chi.URLParam(r, "memberID"),
		input.Role,
	)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusOK, res.Value, res.SideEffects, "Role updated")
}

func (a *API) removeMember(w http.ResponseWriter, r *http.Request) {
	res, err := a.service.RemoveMember(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "memberID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusOK, res.Value, res.SideEffects, "Member removed")
}

func (a *API) leave(w http.ResponseWriter, r *http.Request) {
	res, err := a.service.LeaveWorkspace(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusOK, res.Value, res.SideEffects, "You left the workspace")
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}
