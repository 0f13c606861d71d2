package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mrz1836/postmark"
)

// PostmarkClient sends transactional email through Postmark.
type PostmarkClient struct {
	client *postmark.Client
	from   string
}

// PostmarkOption configures a PostmarkClient.
type PostmarkOption func(*postmark.Client)

// WithPostmarkBaseURL points the client at a different API host.
func WithPostmarkBaseURL(url string) PostmarkOption {
	return func(c *postmark.Client) {
		if url != "" {
			c.BaseURL = strings.TrimRight(url, "/")
		}
	}
}

// NewPostmarkClient creates a Postmark-backed email sender. Both tokens are
// required.
func NewPostmarkClient(cfg APIConfig, opts ...PostmarkOption) (*PostmarkClient, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_ACCOUNT_TOKEN is required", ErrInvalidConfig)
	}
	if !isEmail(cfg.From) {
		return nil, fmt.Errorf("%w: EMAIL_API_FROM must be a valid email address", ErrInvalidConfig)
	}

	client := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client.HTTPClient = &http.Client{Timeout: timeout}
	for _, opt := range opts {
		opt(client)
	}

	return &PostmarkClient{client: client, from: cfg.From}, nil
}

// SendEmail implements EmailSender using Postmark's transactional API.
// Opens are tracked; Reply-To is passed through.
func (c *PostmarkClient) SendEmail(ctx context.Context, params SendEmailParams) (Sent, error) {
	if err := params.Validate(); err != nil {
		return Sent{}, err
	}

	from := c.from
	if params.From != "" {
		from = params.From
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:       from,
		To:         params.SendTo,
		ReplyTo:    params.ReplyTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TextBody:   params.BodyText,
		TrackOpens: true,
	})
	if err != nil {
		return Sent{}, errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return Sent{}, errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}

	return Sent{Provider: string(ProviderPostmark), MessageID: resp.MessageID}, nil
}
