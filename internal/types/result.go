// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
)

// SideEffects holds the outcome of the best-effort work that follows a successful mutation.
// None of these failures invalidates the primary outcome.
type SideEffects struct {
	Audit  error `json:"-"`
	Cache  error `json:"-"`
	Authz  error `json:"-"`
	Notify error `json:"-"`
}

// OK reports whether every side effect succeeded.
func (s SideEffects) OK() bool {
	return s.Err() == nil
}

// Err joins the side effect failures, nil if there are none.
func (s SideEffects) Err() error {
	return errors.Join(s.Audit, s.Cache, s.Authz, s.Notify)
}

// Result is the primary outcome of an action together with its side effect outcomes.
type Result[T any] struct {
	Value       T
	SideEffects SideEffects
}

func NewResult[T any](v T, effects SideEffects) *Result[T] {
	return &Result[T]{Value: v, SideEffects: effects}
}
