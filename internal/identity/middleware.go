// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"net/http"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/authentication"
)

const (
	// HeaderName is the header used to pass the authenticated identity ID
	HeaderName = "X-Kratos-Authenticated-Identity-Id"
	// EmailHeaderName optionally carries the identity email, saving a kratos lookup
	EmailHeaderName = "X-Kratos-Authenticated-Identity-Email"
)

// Middleware builds the caller from the headers set by the identity proxy.
type Middleware struct {
	kratos KratosInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// NewMiddleware returns the header based identity middleware, kratos may be nil.
func NewMiddleware(k KratosInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		kratos:  k,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.HTTPMiddleware")
		defer span.End()

		userID := r.Header.Get(HeaderName)
		if userID == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		email := r.Header.Get(EmailHeaderName)
		if email == "" && m.kratos != nil {
			e, err := m.kratos.GetIdentityEmail(ctx, userID)
			if err != nil {
				m.logger.Warnf("failed to resolve email for identity %s: %v", userID, err)
			}
			email = e
		}

		ctx = authentication.WithPrincipal(ctx, &types.Principal{ID: userID, Email: email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
