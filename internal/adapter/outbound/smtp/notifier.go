package smtp

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/warewise/server/internal/domain/organization"
)

// Config holds SMTP mailer configuration. An empty Host leaves the mailer
// unconfigured: invitations are logged instead of sent.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// IsConfigured reports whether outbound mail can be sent.
func (c *Config) IsConfigured() bool {
	return c != nil && c.Host != ""
}

func (c *Config) addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

var invitationTemplate = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #1f2937;">
    <h2>You've been invited to {{.OrganizationName}}</h2>
    <p>{{.InviterName}} invited you to join <strong>{{.OrganizationName}}</strong>.</p>
    <p><a href="{{.AcceptURL}}" style="display: inline-block; padding: 10px 20px; background: #111827; color: #ffffff; text-decoration: none; border-radius: 6px;">Accept invitation</a></p>
    <p>If the button does not work, open this link: {{.AcceptURL}}</p>
    <p>This invitation expires in 7 days.</p>
  </body>
</html>`))

// Notifier implements organization.Notifier over SMTP. Sends go through a
// circuit breaker so a dead mail server fails fast instead of stalling
// invitation requests.
type Notifier struct {
	config  *Config
	breaker *gobreaker.CircuitBreaker[any]
	logger  *zap.Logger
}

// NewNotifier creates a new SMTP notifier.
func NewNotifier(config *Config, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	settings := gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Notifier{
		config:  config,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

// SendInvitationEmail delivers an invitation email. When the mailer is not
// configured the invitation is logged so local setups still surface the
// accept link.
func (n *Notifier) SendInvitationEmail(ctx context.Context, notification *organization.InvitationNotification) error {
	if !n.config.IsConfigured() {
		n.logger.Info("mailer not configured, skipping invitation email",
			zap.String("email", notification.Email),
			zap.String("organization", notification.OrganizationName),
			zap.String("accept_url", notification.AcceptURL))
		return nil
	}

	body, err := n.render(notification)
	if err != nil {
		return fmt.Errorf("render invitation email: %w", err)
	}

	_, err = n.breaker.Execute(func() (any, error) {
		return nil, n.send(notification.Email, fmt.Sprintf("Invitation to join %s", notification.OrganizationName), body)
	})
	if err != nil {
		return fmt.Errorf("send invitation email: %w", err)
	}

	n.logger.Info("invitation email sent",
		zap.String("email", notification.Email),
		zap.String("organization", notification.OrganizationName))
	return nil
}

func (n *Notifier) render(notification *organization.InvitationNotification) (string, error) {
	var buf bytes.Buffer
	if err := invitationTemplate.Execute(&buf, notification); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (n *Notifier) send(to, subject, htmlBody string) error {
	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s\r\n", n.config.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if n.config.Username != "" {
		auth = smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.Host)
	}
	return smtp.SendMail(n.config.addr(), auth, n.config.From, []string{to}, msg.Bytes())
}

// Compile-time check
var _ organization.Notifier = (*Notifier)(nil)
