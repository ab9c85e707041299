package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// BrevoSendRequest matches Brevo API v3 send transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoSender `json:"sender"`
	To          []BrevoTo   `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

type BrevoSender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BrevoTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Sender dispatches transactional email. Implementations are best-effort:
// callers log failures and never surface them to the request.
type Sender interface {
	SendInvite(ctx context.Context, toEmail, inviteLink string) error
}

// BrevoClient sends emails via the Brevo API. An empty API key makes every
// send a no-op so local development works without credentials.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Client   *http.Client
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@mywork.app"
}

func (c *BrevoClient) send(ctx context.Context, toEmail, subject, html string) error {
	if c.APIKey == "" {
		return nil
	}
	body := BrevoSendRequest{
		Sender:      BrevoSender{Email: c.from(), Name: "MyWork"},
		To:          []BrevoTo{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: html,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPI, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

// SendInvite sends the invitation email with the accept link.
func (c *BrevoClient) SendInvite(ctx context.Context, toEmail, inviteLink string) error {
	if c.APIKey == "" {
		return nil
	}
	content := invitationContent(EscapeHTML(inviteLink))
	return c.send(ctx, toEmail, "You've been invited to join MyWork", EmailLayout(content))
}

func invitationContent(inviteLink string) string {
	return fmt.Sprintf(`
    <h1>You've Been Invited to Join MyWork</h1>
    <p>You have been invited to join the crew on <strong>MyWork</strong>, the job scheduling board for the team.</p>
    <p>Click the button below to accept your invitation and set up your account:</p>
    <center>
      <a href="%s" class="mywork-button">Accept Invitation</a>
    </center>
    <p style="margin-top:20px;font-size:14px;color:#666;">
      This invitation link will expire in 7 days. If you were not expecting this invitation, you can safely ignore this email.
    </p>
    <p>— The MyWork Team</p>
`, inviteLink)
}
