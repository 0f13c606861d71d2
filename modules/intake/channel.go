package intake

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ChannelID identifies a delivery channel.
type ChannelID string

const (
	ChannelSMTP     ChannelID = "smtp"
	ChannelEmailAPI ChannelID = "email-api"
	ChannelSheets   ChannelID = "spreadsheet-log"
)

// primaryOrder is the fallback primary selection order.
var primaryOrder = []ChannelID{ChannelSMTP, ChannelEmailAPI, ChannelSheets}

// ParseChannelID accepts the canonical ids plus the "email", "resend" and
// "sheets" shorthands.
func ParseChannelID(s string) (ChannelID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "smtp":
		return ChannelSMTP, nil
	case "email-api", "email", "resend":
		return ChannelEmailAPI, nil
	case "spreadsheet-log", "sheets", "spreadsheet":
		return ChannelSheets, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownChannel, s)
	}
}

// Channel delivers one rendered record to one backend.
type Channel interface {
	ID() ChannelID
	// Send delivers rec. html is the rendered notification body.
	Send(ctx context.Context, rec Record, html string) (Receipt, error)
	// Ready reports a *ConfigError when required settings are absent.
	// It never touches the network.
	Ready() error
}

// Mailer is a Channel that can also deliver an arbitrary email, which is
// what the configuration-test email needs.
type Mailer interface {
	Channel
	SendTest(ctx context.Context, to, subject, html string) (Receipt, error)
}

// Receipt is what a channel reports on success.
type Receipt struct {
	MessageID    string
	RowsAppended int
	UpdatedRange string
}

// Outcome is one channel's result for one record.
type Outcome struct {
	Channel  ChannelID
	OK       bool
	Receipt  Receipt
	Err      error
	Duration time.Duration
}
