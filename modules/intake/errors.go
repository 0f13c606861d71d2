package intake

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFields means name, email or message was empty after trimming.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidEmail means the email does not have a standard address shape.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrChannelConfig is wrapped by every *ConfigError.
	ErrChannelConfig = errors.New("channel is not configured")
	// ErrChannelTransport is wrapped by every *TransportError.
	ErrChannelTransport = errors.New("channel delivery failed")
	// ErrUnknownChannel is returned for channel names outside smtp, email-api, spreadsheet-log.
	ErrUnknownChannel = errors.New("unknown channel")
	// ErrNoChannels is returned when a dispatcher is built without channels.
	ErrNoChannels = errors.New("no channels enabled")
	// ErrNoEmailChannel means neither smtp nor email-api is enabled, so a
	// test email has nowhere to go.
	ErrNoEmailChannel = errors.New("no email channel enabled")
)

// ConfigError reports a channel whose credentials or identifiers are absent.
// It is always detected before any network call.
type ConfigError struct {
	Channel ChannelID
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Channel, e.Err)
}

func (e *ConfigError) Unwrap() []error { return []error{ErrChannelConfig, e.Err} }

// TransportError reports a failed remote call. Err keeps the provider
// detail, e.g. *email.APIError or *sheets.APIError.
type TransportError struct {
	Channel ChannelID
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Channel, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrChannelTransport, e.Err} }

// AggregateFailure is returned by Dispatch when the primary channel failed.
// Outcomes holds every channel's result, secondary ones included.
type AggregateFailure struct {
	Primary  ChannelID
	Err      error
	Outcomes []Outcome
}

func (e *AggregateFailure) Error() string {
	return fmt.Sprintf("primary channel %s failed: %v", e.Primary, e.Err)
}

func (e *AggregateFailure) Unwrap() error { return e.Err }

// asChannelError leaves *ConfigError and *TransportError as they are and wraps
// anything else as a TransportError for id.
func asChannelError(id ChannelID, err error) error {
	var cfgErr *ConfigError
	var trErr *TransportError
	if errors.As(err, &cfgErr) || errors.As(err, &trErr) {
		return err
	}
	return &TransportError{Channel: id, Err: err}
}
