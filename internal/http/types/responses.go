// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/types"
)

const internalErrorMessage = "Something went wrong. Please try again."

// Response is the envelope of every successful JSON response.
type Response struct {
	Data     interface{} `json:"data,omitempty"`
	Message  string      `json:"message,omitempty"`
	Status   int         `json:"status"`
	Warnings []string    `json:"warnings,omitempty"`
}

// ErrorResponse is the envelope of every failed JSON response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// StatusFromError maps an action error kind to its HTTP status code.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, types.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrRuleViolation):
		return http.StatusConflict
	case errors.Is(err, types.ErrInvalidInput), errors.Is(err, types.ErrInvalidSignature):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrProviderUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// WriteJSON writes data wrapped in a Response envelope.
func WriteJSON(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(
		Response{
			Data:    data,
			Message: message,
			Status:  status,
		},
	)
}

// WriteResult writes the value of an action result, listing the side effects that did not complete as warnings.
func WriteResult(w http.ResponseWriter, status int, data interface{}, effects types.SideEffects, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(
		Response{
			Data:     data,
			Message:  message,
			Status:   status,
			Warnings: Warnings(effects),
		},
	)
}

// Warnings names the failed side effects of an action.
func Warnings(effects types.SideEffects) []string {
	var warnings []string
	if effects.Audit != nil {
		warnings = append(warnings, "activity log not recorded")
	}
	if effects.Cache != nil {
		warnings = append(warnings, "cached views may be stale")
	}
	if effects.Authz != nil {
		warnings = append(warnings, "authorization mirror not updated")
	}
	if effects.Notify != nil {
		warnings = append(warnings, "notification not sent")
	}
	return warnings
}

// WriteError renders err as an ErrorResponse.
// Action errors keep their message, anything else is logged and hidden behind a generic 500.
func WriteError(w http.ResponseWriter, err error, logger logging.LoggerInterface) {
	status := StatusFromError(err)

	var message string
	var ae *types.ActionError
	if errors.As(err, &ae) {
		message = ae.Error()
	} else {
		logger.Errorf("unexpected error: %v", err)
		status = http.StatusInternalServerError
		message = internalErrorMessage
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(
		ErrorResponse{
			Status:  status,
			Message: message,
		},
	)
}

// DecodeJSON reads the request body into dst, failing with an invalid input error.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return types.InvalidInput("Invalid request body")
	}
	return nil
}
