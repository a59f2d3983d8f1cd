// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ContactNotificationData holds data for the new-message notification.
type ContactNotificationData struct {
	SiteName string
	Name     string
	Email    string
	Phone    string
	Subject  string
	Message  string
	AdminURL string // link to the message in the admin inbox
}

// BuildContactNotification creates the email sent to staff when the contact form is used.
func BuildContactNotification(data ContactNotificationData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("[%s] New message: %s", data.SiteName, data.Subject),
		TextBody: buildContactText(data),
		HTMLBody: buildContactHTML(data),
	}
}

func buildContactText(data ContactNotificationData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "New message from %s <%s>\n", data.Name, data.Email)
	if data.Phone != "" {
		fmt.Fprintf(&buf, "Phone: %s\n", data.Phone)
	}
	fmt.Fprintf(&buf, "Subject: %s\n\n", data.Subject)
	buf.WriteString(data.Message + "\n\n")
	if data.AdminURL != "" {
		buf.WriteString("Open in dashboard: " + data.AdminURL + "\n")
	}
	return buf.String()
}

var contactHTML = template.Must(template.New("contact").Parse(contactHTMLTemplate))

func buildContactHTML(data ContactNotificationData) string {
	var buf bytes.Buffer
	_ = contactHTML.Execute(&buf, data)
	return buf.String()
}

const contactHTMLTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>New message</title></head>
<body style="margin:0;padding:24px;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;background:#f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;">
    <tr><td style="padding:24px 28px;border-bottom:1px solid #e5e7eb;">
      <h1 style="margin:0;font-size:20px;color:#15803d;">{{.SiteName}}</h1>
      <p style="margin:4px 0 0;color:#6b7280;font-size:14px;">New contact form message</p>
    </td></tr>
    <tr><td style="padding:24px 28px;font-size:15px;color:#111827;">
      <p style="margin:0 0 8px;"><strong>{{.Name}}</strong> &lt;{{.Email}}&gt;{{if .Phone}} · {{.Phone}}{{end}}</p>
      <p style="margin:0 0 16px;"><strong>Subject:</strong> {{.Subject}}</p>
      <p style="margin:0;white-space:pre-wrap;">{{.Message}}</p>
      {{if .AdminURL}}<p style="margin:24px 0 0;"><a href="{{.AdminURL}}" style="color:#15803d;">Open in dashboard</a></p>{{end}}
    </td></tr>
  </table>
</body>
</html>`
