package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const resendMaxResponseBytes = 1 << 20

// ResendClient sends transactional email through the Resend HTTP API.
type ResendClient struct {
	apiKey  string
	baseURL string
	from    string
	http    *http.Client
}

// ResendOption configures a ResendClient.
type ResendOption func(*ResendClient)

// WithResendHTTPClient sets the HTTP client used for API calls.
func WithResendHTTPClient(c *http.Client) ResendOption {
	return func(r *ResendClient) {
		if c != nil {
			r.http = c
		}
	}
}

// NewResendClient validates cfg and builds a Resend client.
func NewResendClient(cfg APIConfig, opts ...ResendOption) (*ResendClient, error) {
	if strings.TrimSpace(cfg.ResendAPIKey) == "" {
		return nil, fmt.Errorf("%w: RESEND_API_KEY is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.ResendAPIURL) == "" {
		return nil, fmt.Errorf("%w: RESEND_API_URL is required", ErrInvalidConfig)
	}
	if !isEmail(cfg.From) {
		return nil, fmt.Errorf("%w: EMAIL_API_FROM must be a valid email address", ErrInvalidConfig)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &ResendClient{
		apiKey:  cfg.ResendAPIKey,
		baseURL: strings.TrimRight(cfg.ResendAPIURL, "/"),
		from:    cfg.From,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type resendRequest struct {
	From    string      `json:"from"`
	To      []string    `json:"to"`
	Subject string      `json:"subject"`
	HTML    string      `json:"html,omitempty"`
	Text    string      `json:"text,omitempty"`
	ReplyTo string      `json:"reply_to,omitempty"`
	Tags    []resendTag `json:"tags,omitempty"`
}

type resendTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// SendEmail posts one message to {base}/emails.
func (c *ResendClient) SendEmail(ctx context.Context, params SendEmailParams) (Sent, error) {
	if err := params.Validate(); err != nil {
		return Sent{}, err
	}

	payload := resendRequest{
		From:    c.from,
		To:      []string{params.SendTo},
		Subject: params.Subject,
		HTML:    params.BodyHTML,
		Text:    params.BodyText,
		ReplyTo: params.ReplyTo,
	}
	if params.From != "" {
		payload.From = params.From
	}
	if params.Tag != "" {
		payload.Tags = []resendTag{{Name: "category", Value: resendTagValue(params.Tag)}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Sent{}, errors.Join(ErrFailedToSendEmail, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return Sent{}, errors.Join(ErrFailedToSendEmail, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Sent{}, errors.Join(ErrFailedToSendEmail, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, resendMaxResponseBytes))
	if err != nil {
		return Sent{}, errors.Join(ErrFailedToSendEmail, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Sent{}, errors.Join(ErrFailedToSendEmail, &APIError{
			Provider:   string(ProviderResend),
			StatusCode: resp.StatusCode,
			Body:       decodeBody(raw),
		})
	}

	var out resendResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return Sent{}, errors.Join(ErrFailedToSendEmail, fmt.Errorf("decode response: %w", err))
		}
	}

	return Sent{Provider: string(ProviderResend), MessageID: out.ID}, nil
}

// decodeBody returns the JSON value of raw, or raw as a string when it is
// not valid JSON.
func decodeBody(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	return string(raw)
}

// Resend tag values only allow ASCII letters, digits, underscores and dashes.
func resendTagValue(tag string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, tag)
}
