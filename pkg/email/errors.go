package email

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrFailedToSendEmail = errors.New("email: failed to send email")
	ErrInvalidConfig     = errors.New("email: invalid configuration")
	ErrInvalidParams     = errors.New("email: invalid parameters")
)

// APIError is returned when an HTTP email provider answers with a non-2xx
// status. Body holds the decoded JSON response when the provider sent JSON,
// the raw text otherwise. Body is kept out of Error so provider responses
// never reach API clients; it is exposed to structured logs via LogValue.
type APIError struct {
	Provider   string
	StatusCode int
	Body       any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s api responded with status %d", e.Provider, e.StatusCode)
}

func (e *APIError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", e.Provider),
		slog.Int("status", e.StatusCode),
		slog.Any("body", e.Body),
	)
}
