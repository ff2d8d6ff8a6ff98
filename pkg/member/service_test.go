// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package member

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/storage"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package member -destination ./mock_interfaces.go -source=./interfaces.go

const workspaceID = "w1"

var (
	ownerM  = &types.Membership{ID: "m-a", WorkspaceID: workspaceID, UserID: "A", UserEmail: "a@example.com", Role: types.RoleOwner}
	adminM  = &types.Membership{ID: "m-b", WorkspaceID: workspaceID, UserID: "B", UserEmail: "b@example.com", Role: types.RoleAdmin}
	admin2M = &types.Membership{ID: "m-e", WorkspaceID: workspaceID, UserID: "E", UserEmail: "e@example.com", Role: types.RoleAdmin}
	memberM = &types.Membership{ID: "m-c", WorkspaceID: workspaceID, UserID: "C", UserEmail: "c@example.com", Role: types.RoleMember}
)

func principalOf(m *types.Membership) types.Principal {
	return types.Principal{ID: m.UserID, Email: m.UserEmail}
}

func copyOf(m *types.Membership) *types.Membership {
	c := *m
	return &c
}

type mocks struct {
	storage *MockStorageInterface
	audit   *MockAuditInterface
	authz   *MockAuthzInterface
	mailer  *MockMailerInterface
}

func newTestService(ctrl *gomock.Controller) (*Service, *mocks) {
	m := &mocks{
		storage: NewMockStorageInterface(ctrl),
		audit:   NewMockAuditInterface(ctrl),
		authz:   NewMockAuthzInterface(ctrl),
		mailer:  NewMockMailerInterface(ctrl),
	}

	logger := logging.NewNoopLogger()
	s := NewService(m.storage, m.audit, m.authz, m.mailer, "https://app.example.com/", tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
	s.token = func() (string, error) { return "tok-new", nil }

	return s, m
}

func runTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func TestInvitationLink(t *testing.T) {
	if got := InvitationLink("https://app.example.com/", "abc"); got != "https://app.example.com/invite/abc" {
		t.Fatalf("unexpected link %q", got)
	}
}

func TestNewToken(t *testing.T) {
	a, err := newToken()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := newToken()
	if len(a) != tokenSize || a == b {
		t.Fatalf("expected distinct %d character tokens, got %q %q", tokenSize, a, b)
	}
}

func TestService_CreateInvitation(t *testing.T) {
	pending := &types.Invitation{ID: "i-old", WorkspaceID: workspaceID, Email: "new@example.com", Token: "tok-old", Status: types.InvitationPending}

	tests := []struct {
		name       string
		caller     *types.Membership
		email      string
		setupMocks func(*mocks)
		kind       error
		message    string
		token      string
		created    bool
		notify     bool
	}{
		{
			name:    "member cannot invite",
			caller:  memberM,
			email:   "new@example.com",
			kind:    types.ErrForbidden,
			message: "You do not have permission to invite members",
		},
		{
			name:    "invalid email",
			caller:  adminM,
			email:   "not-an-email",
			kind:    types.ErrInvalidInput,
			message: "Invalid email address",
		},
		{
			name:   "pending invitation is reused",
			caller: adminM,
			email:  " New@X ",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetPendingInvitation(gomock.Any(), workspaceID, "new@example.com").Return(pending, nil)
			},
			token: "tok-old",
		},
		{
			name:   "already a member",
			caller: adminM,
			email:  "c@example.com",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetPendingInvitation(gomock.Any(), workspaceID, "c@example.com").Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().GetMembershipByEmail(gomock.Any(), workspaceID, "c@example.com").Return(memberM, nil)
			},
			kind:    types.ErrRuleViolation,
			message: "This user is already a member of this workspace",
		},
		{
			name:   "created",
			caller: adminM,
			email:  "New@X",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetPendingInvitation(gomock.Any(), workspaceID, "new@example.com").Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().GetMembershipByEmail(gomock.Any(), workspaceID, "new@example.com").Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, i *types.Invitation) (*types.Invitation, error) {
						c := *i
						c.ID = "i-new"
						c.Status = types.InvitationPending
						return &c, nil
					},
				)
				m.audit.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(types.SideEffects{})
				m.storage.EXPECT().GetWorkspace(gomock.Any(), workspaceID).Return(&types.Workspace{ID: workspaceID, Name: "Acme"}, nil)
				m.mailer.EXPECT().SendInvitation(gomock.Any(), "new@example.com", "Acme", "b@example.com", "https://app.example.com/invite/tok-new").Return(errors.New("smtp down"))
			},
			token:   "tok-new",
			created: true,
			notify:  true,
		},
		{
			name:   "concurrent duplicate",
			caller: adminM,
			email:  "new@example.com",
			setupMocks: func(m *mocks) {
				gomock.InOrder(
					m.storage.EXPECT().GetPendingInvitation(gomock.Any(), workspaceID, "new@example.com").Return(nil, storage.ErrNotFound),
					m.storage.EXPECT().GetMembershipByEmail(gomock.Any(), workspaceID, "new@example.com").Return(nil, storage.ErrNotFound),
					m.storage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey),
					m.storage.EXPECT().GetPendingInvitation(gomock.Any(), workspaceID, "new@example.com").Return(pending, nil),
				)
			},
			token: "tok-old",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, test.caller.UserID).Return(test.caller, nil)
			if test.setupMocks != nil {
				test.setupMocks(m)
			}

			res, err := s.CreateInvitation(context.Background(), principalOf(test.caller), workspaceID, test.email)

			if test.kind != nil {
				if !errors.Is(err, test.kind) || err.Error() != test.message {
					t.Fatalf("expected %q, got %v", test.message, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if res.Value.Token != test.token || res.Value.Created != test.created {
				t.Fatalf("unexpected invitation %+v", res.Value)
			}
			if res.Value.Link != "https://app.example.com/invite/"+test.token {
				t.Fatalf("unexpected link %q", res.Value.Link)
			}
			if (res.SideEffects.Notify != nil) != test.notify {
				t.Fatalf("unexpected notify outcome %v", res.SideEffects.Notify)
			}
		})
	}
}

func TestService_GetInvitation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl)

	m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(&types.Invitation{WorkspaceID: workspaceID, Email: "new@example.com", Status: types.InvitationPending}, nil)
	m.storage.EXPECT().GetWorkspace(gomock.Any(), workspaceID).Return(&types.Workspace{ID: workspaceID, Name: "Acme"}, nil)
	m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "bogus").Return(nil, storage.ErrNotFound)

	preview, err := s.GetInvitation(context.Background(), "tok")
	if err != nil || preview.WorkspaceName != "Acme" || preview.Email != "new@example.com" {
		t.Fatalf("unexpected preview %+v %v", preview, err)
	}

	_, err = s.GetInvitation(context.Background(), "bogus")
	if !errors.Is(err, types.ErrNotFound) || err.Error() != "Invalid or expired invite" {
		t.Fatalf("expected invalid invite, got %v", err)
	}
}

func TestService_AcceptInvitation(t *testing.T) {
	joiner := types.Principal{ID: "N", Email: "new@example.com"}
	joined := &types.Membership{ID: "m-n", WorkspaceID: workspaceID, UserID: "N", UserEmail: "new@example.com", Role: types.RoleMember}

	invitation := func(status types.InvitationStatus) *types.Invitation {
		return &types.Invitation{ID: "i1", WorkspaceID: workspaceID, Email: "new@example.com", Token: "tok", Status: status}
	}

	tests := []struct {
		name       string
		setupMocks func(*mocks)
		kind       error
		joined     bool
	}{
		{
			name: "pending invitation joins",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(invitation(types.InvitationPending), nil)
				m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, "N").Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().AddMember(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, mb *types.Membership) (*types.Membership, error) {
						if mb.Role != types.RoleMember || mb.UserEmail != "new@example.com" {
							return nil, errors.New("unexpected membership")
						}
						return joined, nil
					},
				)
				m.storage.EXPECT().MarkInvitationAccepted(gomock.Any(), "i1").Return(true, nil)
				m.audit.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(types.SideEffects{})
				m.authz.EXPECT().AssignWorkspaceRole(gomock.Any(), workspaceID, "N", types.RoleMember).Return(nil)
			},
			joined: true,
		},
		{
			name: "accepting twice is idempotent",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(invitation(types.InvitationAccepted), nil)
				m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, "N").Return(joined, nil)
			},
		},
		{
			name: "accepted invitation of someone else",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(invitation(types.InvitationAccepted), nil)
				m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, "N").Return(nil, storage.ErrNotFound)
			},
			kind: types.ErrNotFound,
		},
		{
			name: "existing member consumes the invitation",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(invitation(types.InvitationPending), nil)
				m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, "N").Return(joined, nil)
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().MarkInvitationAccepted(gomock.Any(), "i1").Return(true, nil)
			},
		},
		{
			name: "concurrent accept",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(invitation(types.InvitationPending), nil)
				gomock.InOrder(
					m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, "N").Return(nil, storage.ErrNotFound),
					m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx),
					m.storage.EXPECT().AddMember(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey),
					m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, "N").Return(joined, nil),
					m.storage.EXPECT().MarkInvitationAccepted(gomock.Any(), "i1").Return(false, nil),
				)
			},
		},
		{
			name: "invitation consumed by another user",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(invitation(types.InvitationPending), nil)
				gomock.InOrder(
					m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, "N").Return(nil, storage.ErrNotFound),
					m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx),
					m.storage.EXPECT().AddMember(gomock.Any(), gomock.Any()).Return(joined, nil),
					m.storage.EXPECT().MarkInvitationAccepted(gomock.Any(), "i1").Return(false, nil),
					m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, "N").Return(nil, storage.ErrNotFound),
				)
			},
			kind: types.ErrNotFound,
		},
		{
			name: "concurrent accept by the same user after the invitation was consumed",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(invitation(types.InvitationPending), nil)
				gomock.InOrder(
					m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, "N").Return(nil, storage.ErrNotFound),
					m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx),
					m.storage.EXPECT().AddMember(gomock.Any(), gomock.Any()).Return(joined, nil),
					m.storage.EXPECT().MarkInvitationAccepted(gomock.Any(), "i1").Return(false, nil),
					m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, "N").Return(joined, nil),
				)
			},
		},
		{
			name: "unknown token",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(nil, storage.ErrNotFound)
			},
			kind: types.ErrNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			m.storage.EXPECT().GetWorkspace(gomock.Any(), workspaceID).Return(&types.Workspace{ID: workspaceID, Name: "Acme"}, nil).AnyTimes()
			test.setupMocks(m)

			res, err := s.AcceptInvitation(context.Background(), joiner, "tok")

			if test.kind != nil {
				if !errors.Is(err, test.kind) || err.Error() != "Invalid or expired invite" {
					t.Fatalf("expected invalid invite, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if res.Value.Joined != test.joined || res.Value.Membership.ID != "m-n" || res.Value.Workspace.ID != workspaceID {
				t.Fatalf("unexpected acceptance %+v", res.Value)
			}
		})
	}
}

func TestService_AcceptInvitationUnauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _ := newTestService(ctrl)

	if _, err := s.AcceptInvitation(context.Background(), types.Principal{}, "tok"); !errors.Is(err, types.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestService_ChangeMemberRole(t *testing.T) {
	tests := []struct {
		name       string
		caller     *types.Membership
		target     *types.Membership
		role       types.Role
		setupMocks func(*mocks)
		kind       error
		message    string
	}{
		{
			name:    "admin cannot change roles",
			caller:  adminM,
			role:    types.RoleMember,
			kind:    types.ErrForbidden,
			message: "You do not have permission to change roles",
		},
		{
			name:    "invalid role",
			caller:  ownerM,
			role:    "SUPERUSER",
			kind:    types.ErrInvalidInput,
			message: "Invalid role",
		},
		{
			name:    "own role",
			caller:  ownerM,
			target:  ownerM,
			role:    types.RoleAdmin,
			kind:    types.ErrRuleViolation,
			message: "You cannot change your own role",
		},
		{
			name:    "cannot assign owner",
			caller:  ownerM,
			target:  memberM,
			role:    types.RoleOwner,
			kind:    types.ErrForbidden,
			message: "You cannot assign this role",
		},
		{
			name:   "promote member to admin",
			caller: ownerM,
			target: memberM,
			role:   types.RoleAdmin,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().UpdateMemberRole(gomock.Any(), workspaceID, "m-c", types.RoleAdmin).Return(nil)
				m.audit.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, l *types.ActivityLog) types.SideEffects {
						if l.Action != types.ActionRoleChanged || l.Metadata["from"] != types.RoleMember || l.Metadata["to"] != types.RoleAdmin {
							return types.SideEffects{Audit: errors.New("unexpected activity")}
						}
						return types.SideEffects{}
					},
				)
				m.authz.EXPECT().ChangeWorkspaceRole(gomock.Any(), workspaceID, "C", types.RoleMember, types.RoleAdmin).Return(nil)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, test.caller.UserID).Return(test.caller, nil)
			if test.target != nil {
				m.storage.EXPECT().GetMembershipByID(gomock.Any(), workspaceID, test.target.ID).Return(copyOf(test.target), nil)
			}
			if test.setupMocks != nil {
				test.setupMocks(m)
			}

			targetID := "m-x"
			if test.target != nil {
				targetID = test.target.ID
			}

			res, err := s.ChangeMemberRole(context.Background(), principalOf(test.caller), workspaceID, targetID, test.role)

			if test.kind != nil {
				if !errors.Is(err, test.kind) || err.Error() != test.message {
					t.Fatalf("expected %q, got %v", test.message, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if res.Value.Role != test.role || !res.SideEffects.OK() {
				t.Fatalf("unexpected result %+v", res)
			}
		})
	}
}

func TestService_RemoveMember(t *testing.T) {
	tests := []struct {
		name       string
		caller     *types.Membership
		target     *types.Membership
		setupMocks func(*mocks)
		kind       error
		message    string
	}{
		{
			name:    "member cannot remove",
			caller:  memberM,
			target:  adminM,
			kind:    types.ErrForbidden,
			message: "You do not have permission to remove members",
		},
		{
			name:    "admin cannot remove another admin",
			caller:  adminM,
			target:  admin2M,
			kind:    types.ErrForbidden,
			message: "You cannot remove this member",
		},
		{
			name:    "cannot remove yourself",
			caller:  adminM,
			target:  adminM,
			kind:    types.ErrRuleViolation,
			message: "You cannot remove yourself. Transfer ownership first.",
		},
		{
			name:   "admin removes member",
			caller: adminM,
			target: memberM,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().RemoveMember(gomock.Any(), workspaceID, "m-c").Return(nil)
				m.audit.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(types.SideEffects{})
				m.authz.EXPECT().RemoveWorkspaceUser(gomock.Any(), workspaceID, "C").Return(errors.New("openfga down"))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, test.caller.UserID).Return(test.caller, nil)
			if test.caller.Role != types.RoleMember {
				m.storage.EXPECT().GetMembershipByID(gomock.Any(), workspaceID, test.target.ID).Return(test.target, nil)
			}
			if test.setupMocks != nil {
				test.setupMocks(m)
			}

			res, err := s.RemoveMember(context.Background(), principalOf(test.caller), workspaceID, test.target.ID)

			if test.kind != nil {
				if !errors.Is(err, test.kind) || err.Error() != test.message {
					t.Fatalf("expected %q, got %v", test.message, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if res.SideEffects.Authz == nil {
				t.Fatal("expected the authz failure to be reported")
			}
		})
	}
}

func TestService_LeaveWorkspace(t *testing.T) {
	t.Run("owner cannot leave", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestService(ctrl)
		m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, "A").Return(ownerM, nil)

		_, err := s.LeaveWorkspace(context.Background(), principalOf(ownerM), workspaceID)
		if !errors.Is(err, types.ErrRuleViolation) || err.Error() != "Owners cannot leave. Transfer ownership or delete the workspace." {
			t.Fatalf("expected owner rule violation, got %v", err)
		}
	})

	t.Run("member leaves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestService(ctrl)
		m.storage.EXPECT().GetMembership(gomock.Any(), workspaceID, "C").Return(memberM, nil)
		m.storage.EXPECT().RemoveMember(gomock.Any(), workspaceID, "m-c").Return(nil)
		m.audit.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, l *types.ActivityLog) types.SideEffects {
				if l.Action != types.ActionMemberLeft {
					return types.SideEffects{Audit: errors.New("unexpected action")}
				}
				return types.SideEffects{}
			},
		)
		m.authz.EXPECT().RemoveWorkspaceUser(gomock.Any(), workspaceID, "C").Return(nil)

		res, err := s.LeaveWorkspace(context.Background(), principalOf(memberM), workspaceID)
		if err != nil || !res.SideEffects.OK() || res.Value.ID != "m-c" {
			t.Fatalf("unexpected result %+v %v", res, err)
		}
	})
}
