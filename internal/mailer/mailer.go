package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/secureexam/portal-backend/internal/config"
)

// Mailer delivers notification emails. The worker depends on this
// interface so tests can swap in a recorder.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay. Auth is only applied
// when a username is configured; local relays need none.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPMailer builds a mailer from the SMTP configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &SMTPMailer{
		addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		from: cfg.SMTPFrom,
		auth: auth,
	}
}

// Send delivers a single plain-text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// ComposeAssignmentEmail renders the notification sent when an exam is
// assigned to a student.
func ComposeAssignmentEmail(username, examTitle string, durationMinutes, totalMarks int) (subject, body string) {
	subject = fmt.Sprintf("New Exam Assigned: %s", examTitle)
	body = fmt.Sprintf(`Hello %s,

A new exam has been assigned to you.

Exam: %s
Duration: %d minutes
Total Marks: %d

Log in to the exam portal to take it before your administrator's deadline.

This is an automated message; please do not reply.
`, username, examTitle, durationMinutes, totalMarks)
	return subject, body
}
