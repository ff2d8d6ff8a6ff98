// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
)

var _ MailerInterface = (*Mailer)(nil)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sender interface {
	DialAndSend(...*gomail.Message) error
}

type Mailer struct {
	from   string
	dialer sender

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Mailer) SendInvitation(ctx context.Context, to, workspaceName, inviterEmail, link string) error {
	_, span := m.tracer.Start(ctx, "mail.Mailer.SendInvitation")
	defer span.End()

	msg := invitationMessage(m.from, to, workspaceName, inviterEmail, link)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send invitation to %s: %w", to, err)
	}

	m.logger.Debugf("invitation sent to %s for workspace %s", to, workspaceName)

	return nil
}

func invitationMessage(from, to, workspaceName, inviterEmail, link string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(from, "Workspace"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("You have been invited to join %s", workspaceName))
	msg.SetBody("text/plain", fmt.Sprintf(
		"%s invited you to join the workspace %s.\n\nAccept the invitation: %s\n",
		inviterEmail, workspaceName, link,
	))
	msg.AddAlternative("text/html", fmt.Sprintf(
		`<p><strong>%s</strong> invited you to join the workspace <strong>%s</strong>.</p><p><a href="%s">Accept the invitation</a></p>`,
		html.EscapeString(inviterEmail), html.EscapeString(workspaceName), html.EscapeString(link),
	))

	return msg
}

func NewMailer(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Mailer {
	m := new(Mailer)

	m.from = cfg.From
	m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}
