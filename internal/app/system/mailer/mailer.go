// internal/app/system/mailer/mailer.go
package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mailersend/mailersend-go"
	"go.uber.org/zap"
)

// Email is a fully rendered outbound message.
type Email struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers rendered emails. Delivery is best effort: callers
// commit their state change first and treat send failures as
// non-fatal.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// MailerSend sends via the MailerSend API.
type MailerSend struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

// NewMailerSend constructs a MailerSend sender. Returns an error when
// the API key or from address is missing so misconfiguration surfaces
// at startup instead of on first send.
func NewMailerSend(apiKey, fromName, fromEmail string) (*MailerSend, error) {
	if apiKey == "" || fromEmail == "" {
		return nil, errors.New("mailer: api key and from address are required")
	}
	return &MailerSend{
		client: mailersend.NewMailersend(apiKey),
		from:   mailersend.From{Name: fromName, Email: fromEmail},
	}, nil
}

func (m *MailerSend) Send(ctx context.Context, e Email) error {
	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: e.ToName, Email: e.To}})
	msg.SetSubject(e.Subject)
	if strings.TrimSpace(e.TextBody) != "" {
		msg.SetText(e.TextBody)
	}
	if strings.TrimSpace(e.HTMLBody) != "" {
		msg.SetHTML(e.HTMLBody)
	}

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mailersend: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// LogSender logs emails instead of delivering them. Used in local dev
// and when no mail credentials are configured.
type LogSender struct {
	log *zap.Logger
}

// NewLogSender constructs a LogSender.
func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, e Email) error {
	s.log.Info("email (not sent, log sender active)",
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
		zap.String("text", e.TextBody),
	)
	return nil
}
