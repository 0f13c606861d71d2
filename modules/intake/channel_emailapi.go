package intake

import (
	"fmt"

	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/email"
)

// EmailAPIChannel sends the notification through an HTTP email provider:
// Resend, Postmark, or the file-writing dev sender.
type EmailAPIChannel struct {
	mailChannel
	provider email.Provider
}

// EmailAPIOption customizes provider clients, mostly for tests.
type EmailAPIOption func(*emailAPIOptions)

type emailAPIOptions struct {
	resend   []email.ResendOption
	postmark []email.PostmarkOption
	sender   email.EmailSender
}

// WithResendOptions passes options to the Resend client.
func WithResendOptions(opts ...email.ResendOption) EmailAPIOption {
	return func(o *emailAPIOptions) { o.resend = append(o.resend, opts...) }
}

// WithPostmarkOptions passes options to the Postmark client.
func WithPostmarkOptions(opts ...email.PostmarkOption) EmailAPIOption {
	return func(o *emailAPIOptions) { o.postmark = append(o.postmark, opts...) }
}

// WithSender bypasses provider selection and uses s directly.
func WithSender(s email.EmailSender) EmailAPIOption {
	return func(o *emailAPIOptions) { o.sender = s }
}

// NewEmailAPIChannel selects the provider from cfg.Provider. Missing
// credentials surface later as a *ConfigError.
func NewEmailAPIChannel(cfg email.APIConfig, owner, brand string, opts ...EmailAPIOption) *EmailAPIChannel {
	o := &emailAPIOptions{}
	for _, opt := range opts {
		opt(o)
	}

	ch := &EmailAPIChannel{
		mailChannel: mailChannel{id: ChannelEmailAPI, owner: owner, brand: brand},
		provider:    cfg.Provider,
	}
	if o.sender != nil {
		ch.sender = o.sender
		return ch
	}

	var err error
	switch cfg.Provider {
	case email.ProviderResend, "":
		ch.provider = email.ProviderResend
		ch.sender, err = email.NewResendClient(cfg, o.resend...)
	case email.ProviderPostmark:
		ch.sender, err = email.NewPostmarkClient(cfg, o.postmark...)
	case email.ProviderDev:
		ch.sender = email.NewDevSender(cfg.DevDir)
	default:
		err = fmt.Errorf("unknown EMAIL_API_PROVIDER %q", cfg.Provider)
	}
	if err != nil {
		ch.sender = nil
		ch.cfgErr = configErr(err)
	}
	return ch
}

// Provider reports the selected provider.
func (c *EmailAPIChannel) Provider() email.Provider { return c.provider }
