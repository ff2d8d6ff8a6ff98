// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
)

// Error kinds returned by actions. Use errors.Is against these to classify an ActionError.
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrRuleViolation       = errors.New("rule violation")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrProviderUnavailable = errors.New("payment provider unavailable")
)

// ActionError is a user facing failure of an action.
// Error returns the human readable message, Unwrap the error kind.
type ActionError struct {
	kind    error
	message string
}

func (e *ActionError) Error() string {
	return e.message
}

func (e *ActionError) Unwrap() error {
	return e.kind
}

func NewActionError(kind error, message string) *ActionError {
	return &ActionError{kind: kind, message: message}
}

func Unauthorized() error {
	return NewActionError(ErrUnauthenticated, "Unauthorized")
}

func NotAMember() error {
	return NewActionError(ErrForbidden, "You are not a member of this workspace")
}

func Forbidden(message string) error {
	return NewActionError(ErrForbidden, message)
}

func NotFound(message string) error {
	return NewActionError(ErrNotFound, message)
}

func RuleViolation(message string) error {
	return NewActionError(ErrRuleViolation, message)
}

func InvalidInput(message string) error {
	return NewActionError(ErrInvalidInput, message)
}

func InvalidSignature() error {
	return NewActionError(ErrInvalidSignature, "Invalid Payment Signature")
}

func ProviderUnavailable(message string) error {
	return NewActionError(ErrProviderUnavailable, message)
}
