package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
)

// Dialer delivers prepared messages. *mail.Client satisfies it.
type Dialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPClient sends mail through an SMTP relay using STARTTLS or implicit TLS.
type SMTPClient struct {
	dialer Dialer
	from   string
}

// SMTPOption configures an SMTPClient.
type SMTPOption func(*SMTPClient)

// WithDialer replaces the go-mail client, mainly for tests.
func WithDialer(d Dialer) SMTPOption {
	return func(c *SMTPClient) {
		if d != nil {
			c.dialer = d
		}
	}
}

// NewSMTPClient validates cfg and builds a client. No connection is opened
// until a message is sent.
func NewSMTPClient(cfg SMTPConfig, opts ...SMTPOption) (*SMTPClient, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, fmt.Errorf("%w: SMTP host is required", ErrInvalidConfig)
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("%w: SMTP credentials are required", ErrInvalidConfig)
	}
	if !isEmail(cfg.Sender()) {
		return nil, fmt.Errorf("%w: SMTP sender must be a valid email address", ErrInvalidConfig)
	}

	c := &SMTPClient{from: cfg.Sender()}
	for _, opt := range opts {
		opt(c)
	}

	if c.dialer == nil {
		mailOpts := []mail.Option{
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		}
		if cfg.Secure {
			mailOpts = append(mailOpts, mail.WithSSL())
		} else {
			mailOpts = append(mailOpts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
		}
		// Port last so the TLS helpers do not override it.
		mailOpts = append(mailOpts, mail.WithPort(cfg.Port))
		if cfg.Timeout > 0 {
			mailOpts = append(mailOpts, mail.WithTimeout(cfg.Timeout))
		}

		client, err := mail.NewClient(cfg.Host, mailOpts...)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		c.dialer = client
	}

	return c, nil
}

// SendEmail builds a MIME message from params and delivers it in a single
// SMTP session.
func (c *SMTPClient) SendEmail(ctx context.Context, params SendEmailParams) (Sent, error) {
	if err := params.Validate(); err != nil {
		return Sent{}, err
	}

	msg, err := c.message(params)
	if err != nil {
		return Sent{}, err
	}

	if err := c.dialer.DialAndSendWithContext(ctx, msg); err != nil {
		return Sent{}, errors.Join(ErrFailedToSendEmail, err)
	}

	return Sent{Provider: "smtp", MessageID: msg.GetMessageID()}, nil
}

func (c *SMTPClient) message(params SendEmailParams) (*mail.Msg, error) {
	from := c.from
	if params.From != "" {
		from = params.From
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("%w: from: %v", ErrInvalidParams, err)
	}
	if err := msg.To(params.SendTo); err != nil {
		return nil, fmt.Errorf("%w: to: %v", ErrInvalidParams, err)
	}
	if params.ReplyTo != "" {
		if err := msg.ReplyTo(params.ReplyTo); err != nil {
			return nil, fmt.Errorf("%w: reply-to: %v", ErrInvalidParams, err)
		}
	}
	msg.Subject(params.Subject)
	msg.SetMessageID()
	if params.Tag != "" {
		msg.SetGenHeader("X-Tag", params.Tag)
	}

	switch {
	case params.BodyHTML != "" && params.BodyText != "":
		msg.SetBodyString(mail.TypeTextPlain, params.BodyText)
		msg.AddAlternativeString(mail.TypeTextHTML, params.BodyHTML)
	case params.BodyHTML != "":
		msg.SetBodyString(mail.TypeTextHTML, params.BodyHTML)
	default:
		msg.SetBodyString(mail.TypeTextPlain, params.BodyText)
	}

	return msg, nil
}
