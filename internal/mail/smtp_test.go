// internal/mail/smtp_test.go
//
// SMTP client construction and shared message builders.  Nothing here
// dials; construction must succeed offline for both auth paths.

package mail

import (
	"testing"

	"golang.org/x/oauth2"

	"github.com/abasuthakur/portfolio-api/internal/config"
)

func TestClientConstructionBothAuthPaths(t *testing.T) {
	cfg := config.Mail{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "me@example.com",
		Password: "pw",
	}

	plain := newSMTPSender(cfg, nil)
	if _, err := plain.client(); err != nil {
		t.Fatalf("plain-auth client: %v", err)
	}

	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "ya29.access"})
	xoauth := newSMTPSender(cfg, tokens)
	if _, err := xoauth.client(); err != nil {
		t.Fatalf("xoauth2 client: %v", err)
	}
}

func TestBuildersFallBackToNotificationAddress(t *testing.T) {
	// Gmail API deployments configure the OAuth triple and a notification
	// address but no SMTP username; the From header must still resolve.
	cfg := config.Mail{
		FromName:       "Portfolio Contact",
		OwnerName:      "Site Owner",
		NotificationTo: "owner@example.com",
	}
	m := sampleMessage()

	if _, err := notificationMessage(cfg, m); err != nil {
		t.Fatalf("notificationMessage without smtp username: %v", err)
	}
	if _, err := autoReplyMessage(cfg, m); err != nil {
		t.Fatalf("autoReplyMessage without smtp username: %v", err)
	}
}
