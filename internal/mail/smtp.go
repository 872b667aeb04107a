// internal/mail/smtp.go
//
// SMTP transport (plain auth or XOAUTH2).
//
// Context
// -------
// Messages are built and submitted with go-mail, which also renders the
// multipart MIME body the Gmail API path reuses.  Port 587 with an
// opportunistic STARTTLS policy matches how the production service talked
// to smtp.gmail.com.  When an OAuth token source is present the client
// authenticates with XOAUTH2, exchanging the refresh token for a fresh
// access token on each send; otherwise it falls back to username/password.
package mail

import (
	"context"

	gomail "github.com/wneessen/go-mail"
	"golang.org/x/oauth2"

	"github.com/abasuthakur/portfolio-api/internal/config"
	"github.com/abasuthakur/portfolio-api/internal/contact"
)

// SMTPSender submits mail through the configured SMTP relay.
type SMTPSender struct {
	cfg    config.Mail
	tokens oauth2.TokenSource // non-nil selects XOAUTH2
}

func newSMTPSender(cfg config.Mail, tokens oauth2.TokenSource) *SMTPSender {
	return &SMTPSender{cfg: cfg, tokens: tokens}
}

// client builds a connected-on-demand SMTP client for one send.
func (s *SMTPSender) client() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithUsername(s.cfg.Username),
	}
	if s.tokens != nil {
		tok, err := s.tokens.Token()
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthXOAUTH2),
			gomail.WithPassword(tok.AccessToken),
		)
	} else {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithPassword(s.cfg.Password),
		)
	}
	return gomail.NewClient(s.cfg.Host, opts...)
}

func (s *SMTPSender) SendNotification(ctx context.Context, m *contact.Message) error {
	msg, err := notificationMessage(s.cfg, m)
	if err != nil {
		return err
	}
	cli, err := s.client()
	if err != nil {
		return err
	}
	return cli.DialAndSendWithContext(ctx, msg)
}

func (s *SMTPSender) SendAutoReply(ctx context.Context, m *contact.Message) error {
	msg, err := autoReplyMessage(s.cfg, m)
	if err != nil {
		return err
	}
	cli, err := s.client()
	if err != nil {
		return err
	}
	return cli.DialAndSendWithContext(ctx, msg)
}

//
// Message builders (shared with the Gmail API transport)
//

// notificationMessage formats the owner-facing summary email.
func notificationMessage(cfg config.Mail, m *contact.Message) (*gomail.Msg, error) {
	html, err := notificationHTML(m)
	if err != nil {
		return nil, err
	}
	return buildMessage(cfg.FromName, cfg.SenderAddress(), cfg.NotificationRecipient(),
		notificationSubject(m), notificationText(m), html)
}

// autoReplyMessage formats the visitor-facing acknowledgment.
func autoReplyMessage(cfg config.Mail, m *contact.Message) (*gomail.Msg, error) {
	html, err := autoReplyHTML(m, cfg.OwnerName)
	if err != nil {
		return nil, err
	}
	return buildMessage(cfg.OwnerName, cfg.SenderAddress(), m.Email,
		autoReplySubject(m), autoReplyText(m, cfg.OwnerName), html)
}

func buildMessage(fromName, fromAddr, to, subject, text, html string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(fromName, fromAddr); err != nil {
		return nil, err
	}
	if err := msg.To(to); err != nil {
		return nil, err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, text)
	msg.AddAlternativeString(gomail.TypeTextHTML, html)
	return msg, nil
}
