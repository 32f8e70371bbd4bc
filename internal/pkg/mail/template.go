package mail

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
	"time"
)

// InvitationData 邀请邮件模板参数
type InvitationData struct {
	AppName     string
	Email       string
	InviterName string
	Role        string
	InviteURL   string
	ExpiresAt   time.Time
}

func (d *InvitationData) ExpiryDate() string {
	return d.ExpiresAt.Format("January 2, 2006")
}

var invitationHTML = htmltpl.Must(htmltpl.New("invitation_html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>You're invited to {{.AppName}}</h2>
  <p>{{.InviterName}} has invited you to join {{.AppName}} as <strong>{{.Role}}</strong>.</p>
  <p><a href="{{.InviteURL}}" style="display:inline-block;padding:10px 18px;background:#2563eb;color:#fff;text-decoration:none;border-radius:6px;">Accept invitation</a></p>
  <p>Or copy this link into your browser:<br>{{.InviteURL}}</p>
  <p style="color:#6b7280;font-size:12px;">This invitation expires on {{.ExpiryDate}}.</p>
</body>
</html>`))

var invitationText = texttpl.Must(texttpl.New("invitation_text").Parse(`You're invited to {{.AppName}}

{{.InviterName}} has invited you to join {{.AppName}} as {{.Role}}.

Accept the invitation: {{.InviteURL}}

This invitation expires on {{.ExpiryDate}}.
`))

// RenderInvitation 渲染邀请邮件的主题与正文
func RenderInvitation(data *InvitationData) (*Message, error) {
	var html, text bytes.Buffer
	if err := invitationHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("render invitation html: %w", err)
	}
	if err := invitationText.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("render invitation text: %w", err)
	}
	return &Message{
		To:      []string{data.Email},
		Subject: fmt.Sprintf("You're invited to %s", data.AppName),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
