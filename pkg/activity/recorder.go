// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"context"
	"fmt"

	"github.com/canonical/workspace-service/internal/cache"
	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
)

const unknownUserEmail = "Unknown"

// Recorder appends entries to the activity log and drops the cached views they make stale.
type Recorder struct {
	storage StorageInterface
	cache   CacheInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Record appends l to the log. Failures are logged and returned, never retried.
func (r *Recorder) Record(ctx context.Context, l *types.ActivityLog) error {
	ctx, span := r.tracer.Start(ctx, "activity.Recorder.Record")
	defer span.End()

	entry := *l
	if entry.UserEmail == "" {
		entry.UserEmail = unknownUserEmail
	}

	if _, err := r.storage.CreateActivityLog(ctx, &entry); err != nil {
		r.logger.Errorf("failed to log activity %s on workspace %s: %v", entry.Action, entry.WorkspaceID, err)
		return fmt.Errorf("failed to log activity: %w", err)
	}

	return nil
}

// Publish records l and invalidates the dashboard of its workspace.
// The outcome of both steps is reported in the returned side effects.
func (r *Recorder) Publish(ctx context.Context, l *types.ActivityLog) types.SideEffects {
	ctx, span := r.tracer.Start(ctx, "activity.Recorder.Publish")
	defer span.End()

	effects := types.SideEffects{}
	effects.Audit = r.Record(ctx, l)

	if err := r.cache.Delete(ctx, cache.DashboardKey(l.WorkspaceID)); err != nil {
		r.logger.Warnf("failed to invalidate dashboard of workspace %s: %v", l.WorkspaceID, err)
		effects.Cache = err
	}

	return effects
}

func NewRecorder(storage StorageInterface, c CacheInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Recorder {
	r := new(Recorder)

	r.storage = storage
	r.cache = c

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}
