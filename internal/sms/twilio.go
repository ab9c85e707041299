package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sender dispatches SMS. Implementations are best-effort: callers log
// failures and never surface them to the request.
type Sender interface {
	Send(ctx context.Context, to, body string) error
	Configured() bool
}

// TwilioClient sends SMS via the Twilio Messages API. Missing credentials
// make Configured false and Send a no-op.
type TwilioClient struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	Client     *http.Client
}

func (c *TwilioClient) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// Send posts one message. Twilio accepts form-encoded bodies with basic
// auth on the account SID.
func (c *TwilioClient) Send(ctx context.Context, to, body string) error {
	if !c.Configured() {
		return nil
	}
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", url.PathEscape(c.AccountSID))

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.FromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.AccountSID, c.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio send failed: status %d body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
