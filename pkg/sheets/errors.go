package sheets

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrInvalidConfig = errors.New("sheets: invalid configuration")
	ErrAppendFailed  = errors.New("sheets: append failed")
)

// APIError is returned when the Sheets API answers with a non-2xx status.
// Body is the raw response and is only exposed to logs.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sheets api responded with status %d", e.StatusCode)
}

func (e *APIError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("status", e.StatusCode),
		slog.String("body", e.Body),
	)
}
