// internal/mail/template.go
//
// Subjects and bodies for the two per-submission emails.
//
// Context
// -------
// Both transports send multipart text + HTML.  The HTML goes through
// html/template so visitor-supplied fields are escaped; the plain-text
// variants mirror what the production service sent.  Timestamps are
// rendered in UTC since the recipient's locale is unknown server-side.
package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/abasuthakur/portfolio-api/internal/contact"
)

const timeLayout = "02 Jan 2006, 15:04 MST"

func notificationSubject(m *contact.Message) string {
	return "Portfolio Contact: " + m.Name
}

func autoReplySubject(m *contact.Message) string {
	return fmt.Sprintf("Thanks for reaching out, %s!", m.Name)
}

func notificationText(m *contact.Message) string {
	phone := m.PhoneNumber
	if phone == "" {
		phone = "—"
	}
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nTime: %s\n\n%s",
		m.Name, m.Email, phone, m.CreatedAt.UTC().Format(timeLayout), m.Body)
}

func autoReplyText(m *contact.Message, owner string) string {
	return fmt.Sprintf("Hi %s,\n\n"+
		"Thank you for getting in touch through my portfolio. I've received "+
		"your message and will get back to you as soon as possible — usually "+
		"within 24-48 hours.\n\nYour message:\n%q\n\nBest regards,\n%s",
		m.Name, m.Body, owner)
}

//
// HTML bodies
//

var notificationTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:24px 12px;background-color:#050e1d;">
  <div style="font-family:Arial,Helvetica,sans-serif;max-width:600px;margin:0 auto;background-color:#061226;color:#e6eef7;border-radius:12px;overflow:hidden;">
    <div style="background:linear-gradient(135deg,#3b82f6 0%,#06b6d4 100%);padding:32px 24px;text-align:center;">
      <h1 style="margin:0;font-size:22px;color:#fff;">New Portfolio Contact</h1>
      <p style="margin:6px 0 0;font-size:13px;color:rgba(255,255,255,0.8);">{{.Time}}</p>
    </div>
    <div style="padding:28px 24px;">
      <table role="presentation" style="width:100%;border-collapse:collapse;">
        <tr><td style="padding:6px 0;width:90px;font-size:12px;color:#94a3b8;">NAME</td><td style="padding:6px 0;font-size:15px;font-weight:600;">{{.Name}}</td></tr>
        <tr><td style="padding:6px 0;font-size:12px;color:#94a3b8;">EMAIL</td><td style="padding:6px 0;font-size:15px;"><a href="mailto:{{.Email}}" style="color:#06b6d4;text-decoration:none;">{{.Email}}</a></td></tr>
        <tr><td style="padding:6px 0;font-size:12px;color:#94a3b8;">PHONE</td><td style="padding:6px 0;font-size:15px;">{{.Phone}}</td></tr>
      </table>
      <hr style="margin:16px 0;border:none;border-top:1px solid rgba(255,255,255,0.08);">
      <p style="margin:0 0 8px;font-size:12px;color:#94a3b8;">MESSAGE</p>
      <p style="margin:0;font-size:15px;line-height:1.7;white-space:pre-wrap;">{{.Body}}</p>
    </div>
  </div>
</body>
</html>`))

var autoReplyTmpl = template.Must(template.New("autoreply").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:24px 12px;background-color:#050e1d;">
  <div style="font-family:Arial,Helvetica,sans-serif;max-width:600px;margin:0 auto;background-color:#061226;color:#e6eef7;border-radius:12px;overflow:hidden;">
    <div style="background:linear-gradient(135deg,#3b82f6 0%,#06b6d4 100%);padding:32px 24px;text-align:center;">
      <h1 style="margin:0;font-size:22px;color:#fff;">Thanks for reaching out!</h1>
    </div>
    <div style="padding:28px 24px;">
      <p style="font-size:15px;line-height:1.7;">Hi {{.Name}},</p>
      <p style="font-size:15px;line-height:1.7;">Thank you for getting in touch through my portfolio.
      I've received your message and will get back to you as soon as possible —
      usually within 24–48 hours.</p>
      <div style="background:#0a1a2f;border:1px solid rgba(255,255,255,0.06);border-radius:10px;padding:20px;margin:20px 0;">
        <p style="margin:0 0 8px;font-size:12px;color:#94a3b8;">YOUR MESSAGE</p>
        <p style="margin:0;font-size:15px;line-height:1.7;white-space:pre-wrap;">{{.Body}}</p>
      </div>
      <p style="font-size:15px;line-height:1.7;">Best regards,<br>{{.Owner}}</p>
    </div>
  </div>
</body>
</html>`))

type templateData struct {
	Name  string
	Email string
	Phone string
	Body  string
	Time  string
	Owner string
}

func notificationHTML(m *contact.Message) (string, error) {
	phone := m.PhoneNumber
	if phone == "" {
		phone = "—"
	}
	var buf bytes.Buffer
	err := notificationTmpl.Execute(&buf, templateData{
		Name:  m.Name,
		Email: m.Email,
		Phone: phone,
		Body:  m.Body,
		Time:  m.CreatedAt.UTC().Format(timeLayout),
	})
	return buf.String(), err
}

func autoReplyHTML(m *contact.Message, owner string) (string, error) {
	var buf bytes.Buffer
	err := autoReplyTmpl.Execute(&buf, templateData{
		Name:  m.Name,
		Body:  m.Body,
		Owner: owner,
	})
	return buf.String(), err
}
