// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/canonical/workspace-service/internal/types"
)

// Define a private custom type to avoid collisions
type contextKey struct{}

var principalContextKey = contextKey{}

// WithPrincipal returns a new context carrying the authenticated caller.
func WithPrincipal(ctx context.Context, p *types.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// GetPrincipal retrieves the authenticated caller from the context.
// Returns nil and false if no caller is present.
func GetPrincipal(ctx context.Context) (*types.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*types.Principal)
	if !ok || p == nil || p.ID == "" {
		return nil, false
	}
	return p, true
}

// Caller returns the principal carried by ctx, or the zero principal for anonymous requests.
func Caller(ctx context.Context) types.Principal {
	if p, ok := GetPrincipal(ctx); ok {
		return *p
	}
	return types.Principal{}
}
