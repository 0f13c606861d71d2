package intake

import (
	"context"
	"errors"

	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/email"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/sanitizer"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/validator"
)

const notificationTag = "intake-form"

// Subject is the notification subject line. The name is stripped of line
// breaks so it cannot inject headers.
func Subject(name, brand string) string {
	if brand == "" {
		brand = "Unveiled Echo"
	}
	return sanitizer.PreventHeaderInjection("New Form Submission from " + name + " - " + brand)
}

// mailChannel delivers the notification through an email.EmailSender.
type mailChannel struct {
	id     ChannelID
	sender email.EmailSender
	cfgErr error
	owner  string
	brand  string
}

func (c *mailChannel) ID() ChannelID { return c.id }

func (c *mailChannel) Ready() error {
	if c.cfgErr != nil {
		return &ConfigError{Channel: c.id, Err: c.cfgErr}
	}
	if c.sender == nil {
		return &ConfigError{Channel: c.id, Err: errors.New("no email sender configured")}
	}
	if !isEmail(c.owner) {
		return &ConfigError{Channel: c.id, Err: errors.New("OWNER_EMAIL must be a valid email address")}
	}
	return nil
}

// Send emails the owner with the submitter as Reply-To.
func (c *mailChannel) Send(ctx context.Context, rec Record, html string) (Receipt, error) {
	return c.deliver(ctx, email.SendEmailParams{
		SendTo:   c.owner,
		ReplyTo:  rec.Email,
		Subject:  Subject(rec.Name, c.brand),
		BodyHTML: html,
		Tag:      notificationTag,
	})
}

// SendTest emails an arbitrary recipient.
func (c *mailChannel) SendTest(ctx context.Context, to, subject, html string) (Receipt, error) {
	return c.deliver(ctx, email.SendEmailParams{
		SendTo:   to,
		Subject:  sanitizer.PreventHeaderInjection(subject),
		BodyHTML: html,
		Tag:      "config-test",
	})
}

func (c *mailChannel) deliver(ctx context.Context, params email.SendEmailParams) (Receipt, error) {
	if err := c.Ready(); err != nil {
		return Receipt{}, err
	}
	sent, err := c.sender.SendEmail(ctx, params)
	if err != nil {
		return Receipt{}, &TransportError{Channel: c.id, Err: err}
	}
	return Receipt{MessageID: sent.MessageID}, nil
}

func configErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, email.ErrInvalidConfig) {
		return err
	}
	return errors.Join(email.ErrInvalidConfig, err)
}

func isEmail(s string) bool {
	return validator.Apply(validator.ValidEmail("email", s)) == nil
}
