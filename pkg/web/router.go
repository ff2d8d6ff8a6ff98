// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/pkg/activity"
	"github.com/canonical/workspace-service/pkg/billing"
	"github.com/canonical/workspace-service/pkg/export"
	"github.com/canonical/workspace-service/pkg/member"
	"github.com/canonical/workspace-service/pkg/metrics"
	"github.com/canonical/workspace-service/pkg/status"
	"github.com/canonical/workspace-service/pkg/task"
	"github.com/canonical/workspace-service/pkg/webhooks"
	"github.com/canonical/workspace-service/pkg/workspace"
)

// Services groups the application services exposed over HTTP.
type Services struct {
	Workspaces workspace.ServiceInterface
	Members    member.ServiceInterface
	Tasks      task.ServiceInterface
	Activity   activity.ServiceInterface
	Exports    export.ServiceInterface
	Billing    billing.ServiceInterface
	Webhooks   webhooks.ServiceInterface
}

type Config struct {
	CORSAllowedOrigins []string

	// Identify places the caller in the request context of every API route.
	Identify func(http.Handler) http.Handler
}

func NewRouter(
	cfg Config,
	services Services,
	db status.PingerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.CORSAllowedOrigins),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(db, tracer, monitor, logger).RegisterEndpoints(router)
	webhooks.NewAPI(services.Webhooks, logger).RegisterEndpoints(router)

	router.Group(func(r chi.Router) {
		if cfg.Identify != nil {
			r.Use(cfg.Identify)
		}

		workspace.NewAPI(services.Workspaces, logger).RegisterEndpoints(r)
		member.NewAPI(services.Members, logger).RegisterEndpoints(r)
		task.NewAPI(services.Tasks, logger).RegisterEndpoints(r)
		activity.NewAPI(services.Activity, logger).RegisterEndpoints(r)
		export.NewAPI(services.Exports, logger).RegisterEndpoints(r)
		billing.NewAPI(services.Billing, logger).RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
