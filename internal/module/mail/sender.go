package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/provely/server/internal/shared/config"
	"github.com/provely/server/internal/utils/metrics"
	"github.com/provely/server/internal/utils/phone"
)

// InvitationEmail carries everything a verification or join email needs.
type InvitationEmail struct {
	To           string
	ToName       string
	Domain       string
	SubjectName  string
	InviterName  string
	InviterEmail string
	InviterPhone string
	Comment      string
	VerifyURL    string
}

// Sender delivers invitation emails.
type Sender interface {
	SendInvitationEmail(ctx context.Context, email InvitationEmail) error
}

// SMTPSender sends invitation emails over SMTP. Sends run through a
// circuit breaker so a dead mail relay fails fast instead of stalling
// every invite request.
type SMTPSender struct {
	config  config.EmailConfig
	breaker *gobreaker.CircuitBreaker[any]
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSMTPSender creates an SMTP invitation mail sender. m may be nil.
func NewSMTPSender(cfg config.EmailConfig, m *metrics.Metrics, logger *zap.Logger) *SMTPSender {
	settings := gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &SMTPSender{
		config:  cfg,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		metrics: m,
		logger:  logger,
	}
}

var _ Sender = (*SMTPSender)(nil)

// SendInvitationEmail renders the domain's template and delivers it.
func (s *SMTPSender) SendInvitationEmail(ctx context.Context, email InvitationEmail) error {
	tmpl := templateFor(email.Domain)
	subject := subjectFor(email.Domain, email.InviterName, email.SubjectName)

	body, err := renderTemplate(tmpl, templateData(email))
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	_, err = s.breaker.Execute(func() (any, error) {
		return nil, s.sendEmail(email.To, subject, body)
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordMailFailed(email.Domain)
		}
		s.logger.Error("failed to send invitation email",
			zap.String("to", email.To),
			zap.String("domain", email.Domain),
			zap.Error(err),
		)
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordMailSent(email.Domain)
	}
	s.logger.Info("invitation email sent",
		zap.String("to", email.To),
		zap.String("domain", email.Domain),
	)
	return nil
}

func (s *SMTPSender) sendEmail(to, subject, body string) error {
	from := s.config.FromAddress
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body)

	addr := fmt.Sprintf("%s:%d", s.config.SMTP.Host, s.config.SMTP.Port)

	var auth smtp.Auth
	if s.config.SMTP.User != "" && s.config.SMTP.Password != "" {
		auth = smtp.PlainAuth("", s.config.SMTP.User, s.config.SMTP.Password, s.config.SMTP.Host)
	}

	return smtp.SendMail(addr, auth, s.config.FromAddress, []string{to}, []byte(msg))
}

func templateData(email InvitationEmail) map[string]string {
	name := email.ToName
	if name == "" {
		name = "there"
	}
	return map[string]string{
		"Name":         name,
		"InviterName":  email.InviterName,
		"InviterEmail": email.InviterEmail,
		"InviterPhone": phone.Format(email.InviterPhone),
		"SubjectName":  email.SubjectName,
		"Comment":      email.Comment,
		"VerifyURL":    email.VerifyURL,
	}
}

func renderTemplate(tmpl string, data map[string]string) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// NoOpSender logs instead of sending. Used in tests and development.
type NoOpSender struct {
	logger *zap.Logger
}

// NewNoOpSender creates a no-op invitation mail sender.
func NewNoOpSender(logger *zap.Logger) *NoOpSender {
	return &NoOpSender{logger: logger}
}

var _ Sender = (*NoOpSender)(nil)

// SendInvitationEmail logs but doesn't send.
func (s *NoOpSender) SendInvitationEmail(ctx context.Context, email InvitationEmail) error {
	s.logger.Info("invitation email (no-op)",
		zap.String("to", email.To),
		zap.String("domain", email.Domain),
		zap.String("verify_url", email.VerifyURL),
	)
	return nil
}
