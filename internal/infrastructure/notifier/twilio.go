package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"dealflow/pkg/httpx"
	"dealflow/pkg/logx"
)

const twilioBaseURL = "https://api.twilio.com"

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	BaseURL    string
	Timeout    time.Duration
}

// TwilioSender sends SMS through the Twilio Messages REST resource.
type TwilioSender struct {
	client  *http.Client
	baseURL string
	sid     string
	from    string
}

func NewTwilioSender(cfg TwilioConfig) *TwilioSender {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = twilioBaseURL
	}

	transport := httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
	)

	return &TwilioSender{
		client: &http.Client{
			Transport: httpx.NewBasicAuthRoundTripper(transport, cfg.AccountSID, cfg.AuthToken),
			Timeout:   cfg.Timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		sid:     cfg.AccountSID,
		from:    cfg.From,
	}
}

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *TwilioSender) SendSMS(ctx context.Context, to, body string) error {
	form := url.Values{
		"To":   {to},
		"From": {s.from},
		"Body": {body},
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, url.PathEscape(s.sid))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr twilioError
		if err := jsoniter.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			return fmt.Errorf("twilio: unexpected status %d", resp.StatusCode)
		}

		return fmt.Errorf("twilio: %d %s (status %d)", apiErr.Code, apiErr.Message, resp.StatusCode)
	}

	return nil
}
