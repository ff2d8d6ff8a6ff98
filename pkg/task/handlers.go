// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/workspace-service/internal/http/types"
	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/authentication"
)

type API struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/workspaces/{workspaceID}/tasks", a.listTasks)
	mux.Post("/api/v0/workspaces/{workspaceID}/tasks", a.createTask)
	mux.Get("/api/v0/workspaces/{workspaceID}/tasks/{taskID}", a.getTask)
	mux.Patch("/api/v0/workspaces/{workspaceID}/tasks/{taskID}", a.updateTask)
	mux.Delete("/api/v0/workspaces/{workspaceID}/tasks/{taskID}", a.deleteTask)
	mux.Post("/api/v0/workspaces/{workspaceID}/tasks/{taskID}/toggle", a.toggleTask)
	mux.Post("/api/v0/workspaces/{workspaceID}/tasks/{taskID}/comments", a.createComment)
	mux.Delete("/api/v0/workspaces/{workspaceID}/tasks/{taskID}/comments/{commentID}", a.deleteComment)
}

func (a *API) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := Filter{
		Search:   q.Get("search"),
		Status:   types.TaskStatus(q.Get("status")),
		Priority: types.TaskPriority(q.Get("priority")),
		Assignee: q.Get("assignee"),
	}

	list, err := a.service.ListTasks(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"), filter)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, list, "")
}

func (a *API) createTask(w http.ResponseWriter, r *http.Request) {
	var input CreateTaskInput
	if err := httptypes.DecodeJSON(r, &input); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	res, err := a.service.CreateTask(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"), input)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusCreated, res.Value, res.SideEffects, "Task created")
}

func (a *API) getTask(w http.ResponseWriter, r *http.Request) {
	detail, err := a.service.GetTask(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "taskID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, detail, "")
}

func (a *API) updateTask(w http.ResponseWriter, r *http.Request) {
	var input UpdateTaskInput
	if err := httptypes.DecodeJSON(r, &input); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	res, err := a.service.UpdateTask(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "taskID"), input)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusOK, res.Value, res.SideEffects, "Task updated")
}

func (a *API) deleteTask(w http.ResponseWriter, r *http.Request) {
	res, err := a.service.DeleteTask(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "taskID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusOK, res.Value, res.SideEffects, "Task deleted")
}

func (a *API) toggleTask(w http.ResponseWriter, r *http.Request) {
	res, err := a.service.ToggleTaskStatus(r.Context(), authentication.Caller(r.Context()), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "taskID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusOK, res.Value, res.SideEffects, "")
}

func (a *API) createComment(w http.ResponseWriter, r *http.Request) {
	var input CommentInput
	if err := httptypes.DecodeJSON(r, &input); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	res, err := a.service.CreateComment(
		r.Context(),
		authentication.Caller(r.Context()),
		chi.URLParam(r, "workspaceID"),
		chi.URLParam(r, "taskID"),
		input.Content,
	)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusCreated, res.Value, res.SideEffects, "Comment added")
}

func (a *API) deleteComment(w http.ResponseWriter, r *http.Request) {
	res, err := a.service.DeleteComment(
		r.Context(),
		authentication.Caller(r.Context()),
		chi.URLParam(r, "workspaceID"),
		chi.URLParam(r, "taskID"),
		chi.URLParam(r, "commentID"),
	)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResult(w, http.StatusOK, res.Value, res.SideEffects, "Comment deleted")
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}
