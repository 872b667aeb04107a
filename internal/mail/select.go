// internal/mail/select.go
//
// Transport selection.
//
// Context
// -------
// The transport is chosen once at process start, never per request:
//
//	production flag + full OAuth triple      → Gmail API.
//	OAuth triple + SMTP username             → SMTP with XOAUTH2.
//	SMTP username + password                 → SMTP with plain auth.
//	anything else                            → skip sender (logged no-op).
//
// The returned Mode is what boot logging and tests assert on; the Sender
// is what gets injected into the dispatcher.
package mail

import (
	"context"

	"github.com/abasuthakur/portfolio-api/internal/config"
)

// Mode names the selected transport.
type Mode string

const (
	ModeGmailAPI  Mode = "gmail-api"
	ModeSMTPOAuth Mode = "smtp-xoauth2"
	ModeSMTPPlain Mode = "smtp-plain"
	ModeSkip      Mode = "skip"
)

// Select picks the transport for this process.  Construction performs no
// network I/O, so a bad credential surfaces on first send, not at boot.
func Select(ctx context.Context, cfg config.Mail) (Sender, Mode, error) {
	switch {
	case cfg.Production && cfg.HasOAuth():
		s, err := newGmailSender(ctx, cfg)
		if err != nil {
			return nil, ModeGmailAPI, err
		}
		return s, ModeGmailAPI, nil

	case cfg.HasOAuth() && cfg.Username != "":
		return newSMTPSender(cfg, oauthTokenSource(ctx, cfg)), ModeSMTPOAuth, nil

	case cfg.Username != "" && cfg.Password != "":
		return newSMTPSender(cfg, nil), ModeSMTPPlain, nil

	default:
		return SkipSender{}, ModeSkip, nil
	}
}
