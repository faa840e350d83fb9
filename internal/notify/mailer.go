package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/gsc-community/events-api/internal/domain"
)

// Mailer sends the transactional emails of the registration lifecycle.
// Every send is best-effort at the call site: the caller logs failures and
// never propagates them.
type Mailer interface {
	SendTicket(ctx context.Context, reg domain.Registration, event domain.Event, qrDataURL string) error
	SendCancellation(ctx context.Context, reg domain.Registration, event domain.Event) error
	SendBadge(ctx context.Context, name, email, badgeSVG string, event domain.Event, badgeType string) error
}

type SendGridMailer struct {
	apiKey        string
	senderAddress string
	senderName    string
	siteURL       string
}

func NewSendGridMailer(apiKey, senderAddress, senderName, siteURL string) *SendGridMailer {
	return &SendGridMailer{
		apiKey:        apiKey,
		senderAddress: senderAddress,
		senderName:    senderName,
		siteURL:       siteURL,
	}
}

func (m *SendGridMailer) SendTicket(_ context.Context, reg domain.Registration, event domain.Event, qrDataURL string) error {
	qrBase64 := strings.TrimPrefix(qrDataURL, "data:image/png;base64,")
	qrHTML := `<p style="color: #999;">[QR code unavailable — use your ticket code at check-in]</p>`
	if qrBase64 != "" && qrBase64 != qrDataURL {
		qrHTML = `<img src="cid:qrcode" alt="Ticket QR Code" style="width: 200px; height: 200px;">`
	} else {
		qrBase64 = ""
	}

	dateLine := escapeHTML(event.Date)
	if event.EndDate != "" {
		dateLine += " – " + escapeHTML(event.EndDate)
	}

	body := m.wrapBody(fmt.Sprintf(`
    <h2 style="color: #001f3f;">You're registered! 🎉</h2>
    <p><strong>Event:</strong> %s</p>
    <p><strong>Date:</strong> %s</p>
    <p><strong>Location:</strong> %s</p>
    <p><strong>Attendee:</strong> %s</p>
    <p><strong>Ticket Code:</strong> %s</p>
    <div style="text-align: center; margin: 24px 0;">
      <p style="color: #666; margin-bottom: 8px;">Present this QR code at check-in:</p>
      %s
    </div>
    <p style="color: #666; font-size: 0.9em;">You can also view your tickets at <a href="%s/my-tickets/">My Tickets</a>.</p>`,
		escapeHTML(event.Title), dateLine, escapeHTML(event.Location),
		escapeHTML(reg.FullName), escapeHTML(reg.TicketCode), qrHTML, m.siteURL))

	msg := m.newMessage(reg.FullName, reg.Email, "Your Ticket: "+event.Title, body)

	if qrBase64 != "" {
		att := mail.NewAttachment()
		att.SetContent(qrBase64)
		att.SetType("image/png")
		att.SetFilename("qrcode.png")
		att.SetDisposition("inline")
		att.SetContentID("qrcode")
		msg.AddAttachment(att)
	}

	return m.send(msg)
}

func (m *SendGridMailer) SendCancellation(_ context.Context, reg domain.Registration, event domain.Event) error {
	dateLine := escapeHTML(event.Date)
	if event.EndDate != "" {
		dateLine += " – " + escapeHTML(event.EndDate)
	}

	body := m.wrapBody(fmt.Sprintf(`
    <h2 style="color: #001f3f;">Registration Cancelled</h2>
    <p>Hi %s,</p>
    <p>Your registration for the following event has been cancelled:</p>
    <p><strong>Event:</strong> %s</p>
    <p><strong>Date:</strong> %s</p>
    <p><strong>Location:</strong> %s</p>
    <p style="color: #666; font-size: 0.9em;">If this was a mistake, you can register again at <a href="%s/events/%s/">the event page</a>.</p>`,
		escapeHTML(reg.FullName), escapeHTML(event.Title), dateLine,
		escapeHTML(event.Location), m.siteURL, escapeHTML(event.Slug)))

	return m.send(m.newMessage(reg.FullName, reg.Email, "Registration Cancelled: "+event.Title, body))
}

func (m *SendGridMailer) SendBadge(_ context.Context, name, email, badgeSVG string, event domain.Event, badgeType string) error {
	verb := "attending"
	switch badgeType {
	case "Speaker":
		verb = "speaking at"
	case "Organiser":
		verb = "organising"
	}

	body := m.wrapBody(fmt.Sprintf(`
    <h2 style="color: #001f3f;">Thank you for %s %s! 🏅</h2>
    <p>Your digital %s badge is attached to this email.</p>
    <p><strong>Event:</strong> %s</p>
    <p><strong>Date:</strong> %s</p>
    <p><strong>Role:</strong> %s</p>`,
		verb, escapeHTML(event.Title), escapeHTML(badgeType),
		escapeHTML(event.Title), escapeHTML(event.Date), escapeHTML(badgeType)))

	msg := m.newMessage(name, email, fmt.Sprintf("Your %s Badge: %s", badgeType, event.Title), body)

	att := mail.NewAttachment()
	att.SetContent(base64.StdEncoding.EncodeToString([]byte(badgeSVG)))
	att.SetType("image/svg+xml")
	att.SetFilename(fmt.Sprintf("gsc-badge-%s.svg", strings.ToLower(badgeType)))
	att.SetDisposition("attachment")
	msg.AddAttachment(att)

	return m.send(msg)
}

func (m *SendGridMailer) newMessage(toName, toAddr, subject, htmlBody string) *mail.SGMailV3 {
	from := mail.NewEmail(m.senderName, m.senderAddress)
	to := mail.NewEmail(toName, toAddr)
	return mail.NewSingleEmail(from, subject, to, "", htmlBody)
}

func (m *SendGridMailer) send(msg *mail.SGMailV3) error {
	if m.apiKey == "" {
		return fmt.Errorf("sendgrid api key is not configured")
	}

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(msg)
	if err != nil {
		return fmt.Errorf("client.Send -> %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body %s", resp.StatusCode, resp.Body)
	}

	return nil
}

func (m *SendGridMailer) wrapBody(inner string) string {
	return fmt.Sprintf(`
<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: #001f3f; padding: 24px; text-align: center;">
    <h1 style="color: #20b2aa; margin: 0;">Global Security Community</h1>
  </div>
  <div style="padding: 24px; background: #f5f5f5;">%s</div>
  <div style="background: #001f3f; padding: 16px; text-align: center;">
    <p style="color: #aaa; margin: 0; font-size: 0.8em;">&copy; %d Global Security Community</p>
  </div>
</div>`, inner, time.Now().Year())
}

func escapeHTML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
