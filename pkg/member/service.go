// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package member

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/storage"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/access"
	"github.com/canonical/workspace-service/pkg/permissions"
)

const tokenSize = 32

var errInvitationConsumed = errors.New("invitation is no longer pending")

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	audit   AuditInterface
	authz   AuthzInterface
	mailer  MailerInterface

	appURL   string
	validate *validator.Validate
	token    func() (string, error)

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// InvitationLink is the page an invitee opens to accept token.
func InvitationLink(appURL, token string) string {
	return strings.TrimRight(appURL, "/") + "/invite/" + token
}

func newToken() (string, error) {
	return gonanoid.New(tokenSize)
}

// CreateInvitation invites email to the workspace.
// A pending invitation for the same email is returned as is.
func (s *Service) CreateInvitation(ctx context.Context, principal types.Principal, workspaceID, email string) (*types.Result[*Invitation], error) {
	ctx, span := s.tracer.Start(ctx, "member.Service.CreateInvitation")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	if !caller.Permissions.CanInviteMembers {
		s.logger.Security().AuthzFailure(caller.UserID(), "invitations:"+workspaceID)
		return nil, types.Forbidden("You do not have permission to invite members")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, types.InvalidInput("Invalid email address")
	}

	pending, err := s.pendingInvitation(ctx, workspaceID, email)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return types.NewResult(pending, types.SideEffects{}), nil
	}

	_, err = s.storage.GetMembershipByEmail(ctx, workspaceID, email)
	switch {
	case err == nil:
		return nil, types.RuleViolation("This user is already a member of this workspace")
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	token, err := s.token()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	created, err := s.storage.CreateInvitation(ctx, &types.Invitation{
		WorkspaceID: workspaceID,
		Email:       email,
		Token:       token,
		InvitedByID: caller.UserID(),
	})
	if errors.Is(err, storage.ErrDuplicateKey) {
		// a concurrent request created the pending invitation first
		pending, err := s.pendingInvitation(ctx, workspaceID, email)
		if err != nil {
			return nil, err
		}
		if pending != nil {
			return types.NewResult(pending, types.SideEffects{}), nil
		}
		return nil, types.RuleViolation("An invitation for this email already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	invitation := &Invitation{Invitation: created, Link: InvitationLink(s.appURL, created.Token), Created: true}

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: workspaceID,
		UserID:      caller.UserID(),
		UserEmail:   caller.Email(),
		Action:      types.ActionMemberInvited,
		TargetType:  types.TargetInvitation,
		TargetID:    created.ID,
		TargetName:  created.Email,
	})

	effects.Notify = s.notify(ctx, workspaceID, caller.Email(), invitation)

	return types.NewResult(invitation, effects), nil
}

func (s *Service) pendingInvitation(ctx context.Context, workspaceID, email string) (*Invitation, error) {
	i, err := s.storage.GetPendingInvitation(ctx, workspaceID, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check pending invitation: %w", err)
	}
	return &Invitation{Invitation: i, Link: InvitationLink(s.appURL, i.Token)}, nil
}

func (s *Service) notify(ctx context.Context, workspaceID, inviterEmail string, i *Invitation) error {
	w, err := s.storage.GetWorkspace(ctx, workspaceID)
	if err != nil {
		s.logger.Errorf("failed to load workspace %s for invitation email: %v", workspaceID, err)
		return err
	}

	if err := s.mailer.SendInvitation(ctx, i.Email, w.Name, inviterEmail, i.Link); err != nil {
		s.logger.Errorf("failed to send invitation %s: %v", i.ID, err)
		return err
	}

	return nil
}

func (s *Service) GetInvitation(ctx context.Context, token string) (*InvitationPreview, error) {
	ctx, span := s.tracer.Start(ctx, "member.Service.GetInvitation")
	defer span.End()

	i, w, err := s.invitationByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return &InvitationPreview{
		WorkspaceID:   w.ID,
		WorkspaceName: w.Name,
		Email:         i.Email,
		Status:        i.Status,
	}, nil
}

func (s *Service) invitationByToken(ctx context.Context, token string) (*types.Invitation, *types.Workspace, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil, types.NotFound("Invalid or expired invite")
	}

	i, err := s.storage.GetInvitationByToken(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, types.NotFound("Invalid or expired invite")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	w, err := s.storage.GetWorkspace(ctx, i.WorkspaceID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, types.NotFound("Invalid or expired invite")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return i, w, nil
}

// AcceptInvitation adds the caller to the invitation's workspace as a MEMBER.
// Accepting an already accepted invitation as a member of the workspace succeeds without changes.
func (s *Service) AcceptInvitation(ctx context.Context, principal types.Principal, token string) (*types.Result[*Acceptance], error) {
	ctx, span := s.tracer.Start(ctx, "member.Service.AcceptInvitation")
	defer span.End()

	if err := access.Authenticated(principal); err != nil {
		return nil, err
	}

	i, w, err := s.invitationByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	existing, err := s.storage.GetMembership(ctx, w.ID, principal.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	if i.Status != types.InvitationPending {
		if existing == nil {
			return nil, types.NotFound("Invalid or expired invite")
		}
		return types.NewResult(&Acceptance{Workspace: w, Membership: existing}, types.SideEffects{}), nil
	}

	email := principal.Email
	if email == "" {
		email = i.Email
	}

	membership, joined := existing, false

	err = s.storage.WithTx(ctx, func(ctx context.Context) error {
		if membership == nil {
			m, err := s.storage.AddMember(ctx, &types.Membership{
				WorkspaceID: w.ID,
				UserID:      principal.ID,
				UserEmail:   email,
				Role:        types.RoleMember,
			})
			if err != nil {
				return err
			}
			membership, joined = m, true
		}

		accepted, err := s.storage.MarkInvitationAccepted(ctx, i.ID)
		if err != nil {
			return err
		}
		if !accepted {
			return errInvitationConsumed
		}
		return nil
	})

	switch {
	case errors.Is(err, errInvitationConsumed):
		// another accept won the invitation, the transaction was rolled back
		joined = false
		membership, err = s.storage.GetMembership(ctx, w.ID, principal.ID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.NotFound("Invalid or expired invite")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get membership: %w", err)
		}
	case errors.Is(err, storage.ErrDuplicateKey):
		// a concurrent accept inserted the membership, the transaction was rolled back
		joined = false
		if membership, err = s.storage.GetMembership(ctx, w.ID, principal.ID); err != nil {
			return nil, fmt.Errorf("failed to get membership: %w", err)
		}
		// the invitation may already be consumed by the concurrent accept
		if _, err = s.storage.MarkInvitationAccepted(ctx, i.ID); err != nil {
			return nil, fmt.Errorf("failed to accept invitation: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}

	acceptance := &Acceptance{Workspace: w, Membership: membership, Joined: joined}
	if !joined {
		return types.NewResult(acceptance, types.SideEffects{}), nil
	}

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: w.ID,
		UserID:      principal.ID,
		UserEmail:   email,
		Action:      types.ActionMemberJoined,
		TargetType:  types.TargetMember,
		TargetID:    membership.ID,
		TargetName:  email,
	})

	if err := s.authz.AssignWorkspaceRole(ctx, w.ID, principal.ID, types.RoleMember); err != nil {
		s.logger.Errorf("failed to mirror member of workspace %s: %v", w.ID, err)
		effects.Authz = err
	}

	return types.NewResult(acceptance, effects), nil
}

func (s *Service) ChangeMemberRole(ctx context.Context, principal types.Principal, workspaceID, memberID string, role types.Role) (*types.Result[*types.Membership], error) {
	ctx, span := s.tracer.Start(ctx, "member.Service.ChangeMemberRole")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	if !caller.Permissions.CanChangeRoles {
		s.logger.Security().AuthzFailure(caller.UserID(), "member:"+memberID)
		return nil, types.Forbidden("You do not have permission to change roles")
	}

	if !role.Valid() {
		return nil, types.InvalidInput("Invalid role")
	}

	target, err := s.getMember(ctx, workspaceID, memberID)
	if err != nil {
		return nil, err
	}

	if target.UserID == caller.UserID() {
		return nil, types.RuleViolation("You cannot change your own role")
	}
	if !permissions.CanManageRole(caller.Role(), role) {
		return nil, types.Forbidden("You cannot assign this role")
	}
	if !permissions.CanManageRole(caller.Role(), target.Role) {
		return nil, types.Forbidden("You cannot change this member's role")
	}

	from := target.Role
	if from == role {
		return types.NewResult(target, types.SideEffects{}), nil
	}

	err = s.storage.UpdateMemberRole(ctx, workspaceID, target.ID, role)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, types.NotFound("Member not found")
	case errors.Is(err, storage.ErrDuplicateKey):
		return nil, types.RuleViolation("A workspace can only have one owner")
	case err != nil:
		return nil, fmt.Errorf("failed to change role: %w", err)
	}
	target.Role = role

	s.logger.Security().AdminAction(caller.UserID(), "change_role", "member:"+target.ID)

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: workspaceID,
		UserID:      caller.UserID(),
		UserEmail:   caller.Email(),
		Action:      types.ActionRoleChanged,
		TargetType:  types.TargetMember,
		TargetID:    target.ID,
		TargetName:  target.UserEmail,
		Metadata:    map[string]interface{}{"from": from, "to": role},
	})

	if err := s.authz.ChangeWorkspaceRole(ctx, workspaceID, target.UserID, from, role); err != nil {
		s.logger.Errorf("failed to mirror role change of %s: %v", target.ID, err)
		effects.Authz = err
	}

	return types.NewResult(target, effects), nil
}

func (s *Service) RemoveMember(ctx context.Context, principal types.Principal, workspaceID, memberID string) (*types.Result[*types.Membership], error) {
	ctx, span := s.tracer.Start(ctx, "member.Service.RemoveMember")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	if !caller.Permissions.CanRemoveMembers {
		s.logger.Security().AuthzFailure(caller.UserID(), "member:"+memberID)
		return nil, types.Forbidden("You do not have permission to remove members")
	}

	target, err := s.getMember(ctx, workspaceID, memberID)
	if err != nil {
		return nil, err
	}

	if target.UserID == caller.UserID() {
		return nil, types.RuleViolation("You cannot remove yourself. Transfer ownership first.")
	}
	if !permissions.CanManageRole(caller.Role(), target.Role) {
		return nil, types.Forbidden("You cannot remove this member")
	}

	if err := s.removeMembership(ctx, target); err != nil {
		return nil, err
	}

	s.logger.Security().AdminAction(caller.UserID(), "remove_member", "member:"+target.ID)

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: workspaceID,
		UserID:      caller.UserID(),
		UserEmail:   caller.Email(),
		Action:      types.ActionMemberRemoved,
		TargetType:  types.TargetMember,
		TargetID:    target.ID,
		TargetName:  target.UserEmail,
	})
	effects.Authz = s.unmirror(ctx, target)

	return types.NewResult(target, effects), nil
}

// LeaveWorkspace removes the caller's own membership, owners cannot leave.
func (s *Service) LeaveWorkspace(ctx context.Context, principal types.Principal, workspaceID string) (*types.Result[*types.Membership], error) {
	ctx, span := s.tracer.Start(ctx, "member.Service.LeaveWorkspace")
	defer span.End()

	caller, err := access.Resolve(ctx, s.storage, principal, workspaceID)
	if err != nil {
		return nil, err
	}

	if caller.Role() == types.RoleOwner {
		return nil, types.RuleViolation("Owners cannot leave. Transfer ownership or delete the workspace.")
	}

	if err := s.removeMembership(ctx, caller.Membership); err != nil {
		return nil, err
	}

	effects := s.audit.Publish(ctx, &types.ActivityLog{
		WorkspaceID: workspaceID,
		UserID:      caller.UserID(),
		UserEmail:   caller.Email(),
		Action:      types.ActionMemberLeft,
		TargetType:  types.TargetMember,
		TargetID:    caller.Membership.ID,
		TargetName:  caller.Email(),
	})
	effects.Authz = s.unmirror(ctx, caller.Membership)

	return types.NewResult(caller.Membership, effects), nil
}

func (s *Service) getMember(ctx context.Context, workspaceID, memberID string) (*types.Membership, error) {
	m, err := s.storage.GetMembershipByID(ctx, workspaceID, memberID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("Member not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

func (s *Service) removeMembership(ctx context.Context, m *types.Membership) error {
	err := s.storage.RemoveMember(ctx, m.WorkspaceID, m.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return types.NotFound("Member not found")
	}
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

func (s *Service) unmirror(ctx context.Context, m *types.Membership) error {
	if err := s.authz.RemoveWorkspaceUser(ctx, m.WorkspaceID, m.UserID); err != nil {
		s.logger.Errorf("failed to remove %s from the authorization mirror: %v", m.ID, err)
		return err
	}
	return nil
}

func NewService(
	storage StorageInterface,
	audit AuditInterface,
	authz AuthzInterface,
	mailer MailerInterface,
	appURL string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = storage
	s.audit = audit
	s.authz = authz
	s.mailer = mailer

	s.appURL = appURL
	s.validate = validator.New(validator.WithRequiredStructEnabled())
	s.token = newToken

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
