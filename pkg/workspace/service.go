// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/canonical/workspace-service/internal/cache"
	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/storage"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/access"
	"github.com/canonical/workspace-service/pkg/activity"
	"github.com/canonical/workspace-service/pkg/permissions"
)

const recentActivityLimit = 10

var _ ServiceInterface = (*Service)(nil)

type Config struct {
	CacheTTL time.Duration
	Price    types.Price
}

type Service struct {
	storage StorageInterface
	audit   AuditInterface
	authz   AuthzInterface
	cache   CacheInterface

	cacheTTL time.Duration
	price    types.Price

	now    func() time.Time
	suffix func() (string, error)

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// CreateWorkspace creates a workspace owned by the caller.
func (s *Service) CreateWorkspace(ctx context.Context, principal types.Principal, name string) (*types.Result[*types.Workspace], error) {
	ctx, span := s.tracer.Start(ctx, "workspace.Service.CreateWorkspace")
	defer span.End()

	if err := access.Authenticated(principal); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.InvalidInput("Workspace name is required")
	}

	suffix, err := s.suffix()
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}

	var created *types.Workspace

	err = s.storage.WithTx(ctx, func(ctx context.Context) error {
		w, err := s.storage.CreateWorkspace(ctx, &types.Workspace{Name: name, Slug: Slugify(name, suffix)})
		if err != nil {
			return err
		}

		_, err = s.storage.AddMember(ctx, &types.Membership{
			WorkspaceID: w.ID,
			UserID:      principal.ID,
			UserEmail:   principal.Email,
			Role:        types.RoleOwner,
		})
		if err != nil {
			return err
		}

		created = w
		return nil
	})

	if errors.Is(err, storage.ErrDuplicateKey) {
		return nil, types.RuleViolation("A workspace with this name was just created, please try again")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: created.ID,
		UserID:      principal.ID,
		UserEmail:   principal.Email,
		Action:      types.ActionWorkspaceCreated,
		TargetType:  types.TargetWorkspace,
		TargetID:    created.ID,
		TargetName:  created.Name,
	})

	if err := s.authz.AssignWorkspaceRole(ctx, created.ID, principal.ID, types.RoleOwner); err != nil {
		s.logger.Errorf("failed to mirror owner of workspace %s: %v", created.ID, err)
		effects.Authz = err
	}

	return types.NewResult(created, effects), nil
}

func (s *Service) ListWorkspaces(ctx context.Context, principal types.Principal) ([]*types.WorkspaceMembership, error) {
	ctx, span := s.tracer.Start(ctx, "workspace.Service.ListWorkspaces")
	defer span.End()

	if err := access.Authenticated(principal); err != nil {
		return nil, err
	}

	workspaces, err := s.storage.ListWorkspacesByUserID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	return workspaces, nil
}

func (s *Service) GetDashboard(ctx context.Context, principal types.Principal, workspaceID string) (*Dashboard, error) {
	ctx, span := s.tracer.Start(ctx, "workspace.Service.GetDashboard")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	overview, err := s.overview(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Overview:    overview,
		IsPro:       overview.Workspace.Plan == types.PlanPro,
		Role:        caller.Role(),
		Permissions: caller.Permissions,
	}, nil
}

// overview returns the cached workspace view, building and storing it on a miss.
// Cache failures are logged and never fail the request.
func (s *Service) overview(ctx context.Context, workspaceID string) (*Overview, error) {
	key := cache.DashboardKey(workspaceID)

	cached := new(Overview)
	found, err := s.cache.Get(ctx, key, cached)
	if err != nil {
		s.logger.Warnf("failed to read dashboard cache for %s: %v", workspaceID, err)
	}
	if found && err == nil && cached.Workspace != nil {
		return cached, nil
	}

	overview, err := s.buildOverview(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, overview, s.cacheTTL); err != nil {
		s.logger.Warnf("failed to cache dashboard for %s: %v", workspaceID, err)
	}

	return overview, nil
}

func (s *Service) buildOverview(ctx context.Context, workspaceID string) (*Overview, error) {
	w, err := s.storage.GetWorkspace(ctx, workspaceID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("Workspace not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	members, err := s.storage.ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	tasks, err := s.storage.ListTasks(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	logs, err := s.storage.ListActivityLogs(ctx, workspaceID, recentActivityLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	entries := make([]*activity.Entry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, activity.NewEntry(l))
	}

	now := s.now()

	o := &Overview{
		Workspace: w,
		Members:   members,
		Tasks:     tasks,
		Activity:  entries,
		Stats:     ComputeStats(tasks, now),
	}
	if w.Plan == types.PlanPro {
		o.Analytics = ComputeAnalytics(tasks, members, now)
	}

	return o, nil
}

func (s *Service) GetSettings(ctx context.Context, principal types.Principal, workspaceID string) (*Settings, error) {
	ctx, span := s.tracer.Start(ctx, "workspace.Service.GetSettings")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	w, err := s.storage.GetWorkspace(ctx, workspaceID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("Workspace not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	members, err := s.storage.ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	views := make([]*MemberView, 0, len(members))
	for _, m := range members {
		self := m.UserID == caller.UserID()
		manageable := !self && permissions.CanManageRole(caller.Role(), m.Role)

		views = append(views, &MemberView{
			Membership:    m,
			RoleLabel:     permissions.Label(m.Role),
			IsCurrentUser: self,
			CanChangeRole: caller.Permissions.CanChangeRoles && manageable,
			CanRemove:     caller.Permissions.CanRemoveMembers && manageable,
		})
	}

	settings := &Settings{
		Workspace:       w,
		Members:         views,
		Role:            caller.Role(),
		RoleLabel:       permissions.Label(caller.Role()),
		Permissions:     caller.Permissions,
		AssignableRoles: make([]RoleOption, 0),
	}

	for _, r := range permissions.AssignableRoles(caller.Role()) {
		settings.AssignableRoles = append(settings.AssignableRoles, RoleOption{Role: r, Label: permissions.Label(r)})
	}

	if caller.Permissions.CanInviteMembers {
		invitations, err := s.storage.ListPendingInvitations(ctx, workspaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to list invitations: %w", err)
		}
		settings.Invitations = invitations
	}

	return settings, nil
}

func (s *Service) GetBilling(ctx context.Context, principal types.Principal, workspaceID string) (*Billing, error) {
	ctx, span := s.tracer.Start(ctx, "workspace.Service.GetBilling")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	if !caller.Permissions.CanAccessBilling {
		s.logger.Security().AuthzFailure(caller.UserID(), "billing:"+workspaceID)
		return nil, types.Forbidden("You do not have permission to access billing")
	}

	w, err := s.storage.GetWorkspace(ctx, workspaceID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("Workspace not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return &Billing{
		Workspace: w,
		Plan:      w.Plan,
		IsPro:     w.Plan == types.PlanPro,
		Price:     s.price,
		Display:   s.price.String(),
	}, nil
}

func NewService(
	storage StorageInterface,
	audit AuditInterface,
	authz AuthzInterface,
	cache CacheInterface,
	cfg Config,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = storage
	s.audit = audit
	s.authz = authz
	s.cache = cache

	s.cacheTTL = cfg.CacheTTL
	s.price = cfg.Price

	s.now = time.Now
	s.suffix = randomSuffix

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
