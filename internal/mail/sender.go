// internal/mail/sender.go
//
// Outbound email interface and the no-op fallback.
//
// Context
// -------
// Every contact submission produces two emails: a notification to the site
// owner and an auto-reply to the visitor.  The transport behind those sends
// is picked once at boot (see select.go) and injected behind this
// interface, so the HTTP layer and tests never care which path is live.
//
// A send failure is the transport's to report and the dispatcher's to log;
// it must never surface to the HTTP client and never touches the stored
// row.
package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/abasuthakur/portfolio-api/internal/contact"
)

// Sender delivers the two per-submission emails.
type Sender interface {
	// SendNotification emails the site owner a summary of the message.
	SendNotification(ctx context.Context, m *contact.Message) error
	// SendAutoReply emails the visitor a thank-you acknowledgment.
	SendAutoReply(ctx context.Context, m *contact.Message) error
}

// SkipSender is selected when no usable mail credentials exist.  Sends are
// logged and succeed, so the contact form keeps working without email.
type SkipSender struct{}

func (SkipSender) SendNotification(_ context.Context, m *contact.Message) error {
	zap.S().Infow("no mail credentials configured, skipping notification", "id", m.ID)
	return nil
}

func (SkipSender) SendAutoReply(_ context.Context, m *contact.Message) error {
	zap.S().Infow("no mail credentials configured, skipping auto-reply", "id", m.ID)
	return nil
}
