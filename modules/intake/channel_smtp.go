package intake

import (
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/email"
)

// SMTPChannel sends the notification through an SMTP relay.
type SMTPChannel struct {
	mailChannel
}

// NewSMTPChannel never fails: a missing host, user or password is kept and
// reported by Ready and Send as a *ConfigError, before any dial.
func NewSMTPChannel(cfg email.SMTPConfig, owner, brand string, opts ...email.SMTPOption) *SMTPChannel {
	ch := &SMTPChannel{mailChannel{id: ChannelSMTP, owner: owner, brand: brand}}
	client, err := email.NewSMTPClient(cfg, opts...)
	if err != nil {
		ch.cfgErr = configErr(err)
		return ch
	}
	ch.sender = client
	return ch
}
