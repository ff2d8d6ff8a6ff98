// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/storage"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/access"
	"github.com/canonical/workspace-service/pkg/activity"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
	emptyCell  = "-"
	unassigned = "Unassigned"

	ContentType = "text/csv; charset=utf-8"
)

var (
	activityHeaders = []string{"Date", "Time", "User", "Action", "Target", "Details"}
	taskHeaders     = []string{"Title", "Status", "Priority", "Due Date", "Assignee", "Created"}
)

// Report is a rendered CSV document.
type Report struct {
	Filename string
	Content  string
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	now     func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ExportActivityLogs renders the whole activity log, newest first.
func (s *Service) ExportActivityLogs(ctx context.Context, principal types.Principal, workspaceID string) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, "export.Service.ExportActivityLogs")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	if !caller.Permissions.CanInviteMembers {
		s.logger.Security().AuthzFailure(caller.UserID(), "export:"+workspaceID)
		return nil, types.Forbidden("You do not have permission to export data")
	}

	w, err := s.workspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	logs, err := s.storage.ListActivityLogs(ctx, workspaceID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}

	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		created := l.CreatedAt.UTC()
		rows = append(rows, []string{
			created.Format(dateLayout),
			created.Format(timeLayout),
			l.UserEmail,
			activity.Label(l.Action),
			target(l),
			details(l.Metadata),
		})
	}

	return &Report{
		Filename: s.filename(w, "activity"),
		Content:  Encode(activityHeaders, rows),
	}, nil
}

// ExportTasks renders every task of the workspace, newest first.
func (s *Service) ExportTasks(ctx context.Context, principal types.Principal, workspaceID string) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, "export.Service.ExportTasks")
	defer span.End()

	if _, err := access.Resolve(ctx, s.storage, principal, workspaceID); err != nil {
		return nil, err
	}

	w, err := s.workspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.storage.ListTasks(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := emptyCell
		if t.DueDate != nil {
			due = t.DueDate.UTC().Format(dateLayout)
		}

		assignee := unassigned
		if t.Assignee != nil && t.Assignee.UserEmail != "" {
			assignee = t.Assignee.UserEmail
		}

		rows = append(rows, []string{
			t.Title,
			string(t.Status),
			string(t.Priority),
			due,
			assignee,
			t.CreatedAt.UTC().Format(dateLayout),
		})
	}

	return &Report{
		Filename: s.filename(w, "tasks"),
		Content:  Encode(taskHeaders, rows),
	}, nil
}

func (s *Service) workspace(ctx context.Context, id string) (*types.Workspace, error) {
	w, err := s.storage.GetWorkspace(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("Workspace not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return w, nil
}

func (s *Service) filename(w *types.Workspace, kind string) string {
	return fmt.Sprintf("%s-%s-%s.csv", w.Slug, kind, s.now().UTC().Format(dateLayout))
}

func target(l *types.ActivityLog) string {
	if l.TargetName == "" {
		return emptyCell
	}
	return string(l.TargetType) + ": " + l.TargetName
}

func details(metadata map[string]interface{}) string {
	if len(metadata) == 0 {
		return emptyCell
	}

	b, err := json.Marshal(metadata)
	if err != nil {
		return emptyCell
	}
	return string(b)
}

func NewService(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.storage = storage
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
