package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/sanitizer"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/validator"
)

// DefaultMaxMessageLength caps the message when no limit is configured.
const DefaultMaxMessageLength = 5000

const maxFieldLength = 320

// Record is one validated form submission. It is passed by value and never
// modified after Normalize returns it.
type Record struct {
	Name        string
	Email       string
	Phone       string
	Message     string
	SubmittedAt time.Time
}

// NormalizeOption tunes normalization.
type NormalizeOption func(*normalizeConfig)

type normalizeConfig struct {
	maxMessageLen int
}

// WithMaxMessageLength truncates the message to n runes. n <= 0 keeps the default.
func WithMaxMessageLength(n int) NormalizeOption {
	return func(c *normalizeConfig) {
		if n > 0 {
			c.maxMessageLen = n
		}
	}
}

var (
	cleanText = sanitizer.Compose(
		sanitizer.RemoveNullBytes,
		sanitizer.RemoveControlSequences,
		sanitizer.NFC,
		sanitizer.Trim,
	)
	cleanLine = sanitizer.Compose(cleanText, sanitizer.SingleLine)
)

// Normalize builds a Record from a decoded request body using the current time
// as the fallback submission time.
func Normalize(raw map[string]any, opts ...NormalizeOption) (Record, error) {
	return NormalizeAt(raw, time.Now(), opts...)
}

// NormalizeAt is Normalize with an explicit fallback time. raw is not modified.
//
// Name, email and message are required; a failure wraps ErrMissingFields and
// carries validator.ValidationErrors naming the fields. An email that is not a
// plain address wraps ErrInvalidEmail. submittedAt may be an RFC 3339 string
// or epoch milliseconds; anything else falls back to now.
func NormalizeAt(raw map[string]any, now time.Time, opts ...NormalizeOption) (Record, error) {
	cfg := normalizeConfig{maxMessageLen: DefaultMaxMessageLength}
	for _, opt := range opts {
		opt(&cfg)
	}

	rec := Record{
		Name:  sanitizer.LimitLength(cleanLine(stringField(raw, "name")), maxFieldLength),
		Email: cleanLine(stringField(raw, "email")),
		Phone: sanitizer.LimitLength(cleanLine(stringField(raw, "phone")), maxFieldLength),
		Message: sanitizer.LimitLength(
			sanitizer.Trim(sanitizer.NormalizeNewlines(cleanText(stringField(raw, "message")))),
			cfg.maxMessageLen,
		),
		SubmittedAt: parseSubmittedAt(raw["submittedAt"], now),
	}

	if err := validator.Apply(
		validator.RequiredString("name", rec.Name),
		validator.RequiredString("email", rec.Email),
		validator.RequiredString("message", rec.Message),
	); err != nil {
		return Record{}, errors.Join(ErrMissingFields, err)
	}

	if err := validator.Apply(validator.ValidEmail("email", rec.Email)); err != nil {
		return Record{}, errors.Join(ErrInvalidEmail, err)
	}

	return rec, nil
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

// maxEpochMilli is the last millisecond of year 9999. Larger epoch values
// are treated as garbage.
var maxEpochMilli = time.Date(9999, 12, 31, 23, 59, 59, 999_000_000, time.UTC).UnixMilli()

func parseSubmittedAt(v any, now time.Time) time.Time {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			if ts, ok := epochMilli(ms); ok {
				return ts
			}
		}
	case json.Number:
		if ms, err := t.Int64(); err == nil {
			if ts, ok := epochMilli(ms); ok {
				return ts
			}
		} else if f, err := t.Float64(); err == nil {
			if ts, ok := epochMilliFloat(f); ok {
				return ts
			}
		}
	case float64:
		if ts, ok := epochMilliFloat(t); ok {
			return ts
		}
	case int64:
		if ts, ok := epochMilli(t); ok {
			return ts
		}
	case time.Time:
		if !t.IsZero() {
			return t
		}
	}
	return now
}

func epochMilli(ms int64) (time.Time, bool) {
	if ms <= 0 || ms > maxEpochMilli {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// epochMilliFloat range-checks f before converting; int64(f) is undefined
// for values outside the int64 range.
func epochMilliFloat(f float64) (time.Time, bool) {
	if math.IsNaN(f) || f <= 0 || f > float64(maxEpochMilli) {
		return time.Time{}, false
	}
	return epochMilli(int64(f))
}
