package intake

import (
	"fmt"
	"log/slog"

	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/email"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/sheets"
)

// ChannelOptions carries per-provider client options into NewChannels.
type ChannelOptions struct {
	SMTP     []email.SMTPOption
	EmailAPI []EmailAPIOption
	Sheets   []sheets.Option
}

// NewChannels builds the channels listed in cfg.Channels, in that order.
// Unconfigured channels are still returned; they report *ConfigError.
func NewChannels(cfg Config, opts ChannelOptions) ([]Channel, error) {
	ids, err := cfg.EnabledChannels()
	if err != nil {
		return nil, err
	}

	channels := make([]Channel, 0, len(ids))
	for _, id := range ids {
		switch id {
		case ChannelSMTP:
			channels = append(channels, NewSMTPChannel(cfg.SMTP, cfg.OwnerEmail, cfg.Brand, opts.SMTP...))
		case ChannelEmailAPI:
			channels = append(channels, NewEmailAPIChannel(cfg.EmailAPI, cfg.OwnerEmail, cfg.Brand, opts.EmailAPI...))
		case ChannelSheets:
			channels = append(channels, NewSheetsChannel(cfg.Sheets, cfg.Location(), opts.Sheets...))
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, id)
		}
	}
	return channels, nil
}

// NewDispatcherFromConfig wires channels, primary selection and rendering
// from cfg.
func NewDispatcherFromConfig(cfg Config, log *slog.Logger, opts ChannelOptions) (*Dispatcher, error) {
	channels, err := NewChannels(cfg, opts)
	if err != nil {
		return nil, err
	}
	ids := make([]ChannelID, len(channels))
	for i, ch := range channels {
		ids[i] = ch.ID()
	}
	primary, err := cfg.Primary(ids)
	if err != nil {
		return nil, err
	}

	return NewDispatcher(channels,
		WithPrimary(primary),
		WithLogger(log),
		WithRenderOptions(RenderOptions{Brand: cfg.Brand, Location: cfg.Location()}),
		WithNormalizeOptions(WithMaxMessageLength(cfg.MaxMessageLen)),
	)
}
