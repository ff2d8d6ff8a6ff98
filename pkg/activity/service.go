// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"context"
	"fmt"

	"github.com/canonical/workspace-service/internal/db"
	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/access"
)

var _ ServiceInterface = (*Service)(nil)

// Entry is an activity log row decorated for display.
type Entry struct {
	*types.ActivityLog

	Label       string `json:"label"`
	Description string `json:"description"`
}

func NewEntry(l *types.ActivityLog) *Entry {
	return &Entry{
		ActivityLog: l,
		Label:       Label(l.Action),
		Description: Describe(l),
	}
}

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ListActivity returns a page of the workspace log, newest first. Any member may read it.
func (s *Service) ListActivity(ctx context.Context, principal types.Principal, workspaceID string, page, size int64) ([]*Entry, error) {
	ctx, span := s.tracer.Start(ctx, "activity.Service.ListActivity")
	defer span.End()

	if _, err := access.Resolve(ctx, s.storage, principal, workspaceID); err != nil {
		return nil, err
	}

	pageSize := db.PageSize(size)

	logs, err := s.storage.ListActivityLogs(ctx, workspaceID, pageSize, db.Offset(page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	entries := make([]*Entry, len(logs))
	for i, l := range logs {
		entries[i] = NewEntry(l)
	}

	return entries, nil
}

func NewService(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.storage = storage

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
