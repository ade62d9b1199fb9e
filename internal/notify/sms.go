package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPSMSSender posts messages to an SMS gateway's form endpoint.
type HTTPSMSSender struct {
	apiURL   string
	apiKey   string
	senderID string
	client   *http.Client
}

// NewHTTPSMSSender creates an SMS sender for the given gateway.
func NewHTTPSMSSender(apiURL, apiKey, senderID string) *HTTPSMSSender {
	return &HTTPSMSSender{
		apiURL:   apiURL,
		apiKey:   apiKey,
		senderID: senderID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts one message to the gateway.
func (s *HTTPSMSSender) Send(ctx context.Context, phone, message string) error {
	form := url.Values{}
	form.Set("to", phone)
	form.Set("message", message)
	if s.senderID != "" {
		form.Set("from", s.senderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apiKey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
