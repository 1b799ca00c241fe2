package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/wonny/vulture/pkg/config"
	"github.com/wonny/vulture/pkg/logger"
)

// Notifier delivers alert messages. The zero-config notifier is disabled
// and silently drops everything, so callers never branch on settings.
// ⭐ SSOT: 알림 발송은 이 패키지에서만
type Notifier struct {
	cfg    config.NotifyConfig
	logger *logger.Logger

	// send is swappable for tests
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// New creates a new Notifier
func New(cfg config.NotifyConfig, log *logger.Logger) *Notifier {
	return &Notifier{
		cfg:    cfg,
		logger: log.WithField("module", "notify"),
		send:   smtp.SendMail,
	}
}

// Enabled reports whether email delivery is configured
func (n *Notifier) Enabled() bool {
	return n.cfg.EmailEnabled
}

// SendEmail sends a plain-text email to the configured recipients.
func (n *Notifier) SendEmail(subject, body string) error {
	if !n.cfg.EmailEnabled {
		n.logger.Debug("Email disabled, dropping notification")
		return nil
	}

	recipients := splitRecipients(n.cfg.EmailTo)
	if len(recipients) == 0 {
		return fmt.Errorf("no email recipients configured")
	}

	msg := buildMessage(n.cfg.SMTPUser, recipients, subject, body)
	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)
	auth := smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPassword, n.cfg.SMTPHost)

	if err := n.send(addr, auth, n.cfg.SMTPUser, recipients, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.WithFields(map[string]interface{}{
		"subject":    subject,
		"recipients": len(recipients),
	}).Info("Email sent")
	return nil
}

func splitRecipients(to string) []string {
	var recipients []string
	for _, addr := range strings.Split(to, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return recipients
}

func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
