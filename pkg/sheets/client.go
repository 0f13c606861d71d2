package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// Scope grants read/write access to spreadsheets.
const Scope = "https://www.googleapis.com/auth/spreadsheets"

const maxResponseBytes = 1 << 20

// Client appends rows to one spreadsheet range with service-account auth.
type Client struct {
	cfg    Config
	tokens oauth2.TokenSource
	base   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource replaces the JWT token source.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

// WithHTTPClient sets the transport used for both token and API calls.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.base = h
		}
	}
}

// New validates cfg and prepares the client. No network call is made.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, fmt.Errorf("%w: GOOGLE_SHEET_ID is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.Range) == "" {
		return nil, fmt.Errorf("%w: GOOGLE_SHEET_RANGE is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.APIURL) == "" {
		cfg.APIURL = "https://sheets.googleapis.com"
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.TokenURL == "" {
		cfg.TokenURL = google.JWTTokenURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{cfg: cfg, base: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(c)
	}

	if c.tokens == nil {
		// Token requests go through the same transport as API calls.
		ts, err := jwtTokenSource(context.WithValue(context.Background(), oauth2.HTTPClient, c.base), cfg)
		if err != nil {
			return nil, err
		}
		c.tokens = ts
	}

	return c, nil
}

func jwtTokenSource(ctx context.Context, cfg Config) (oauth2.TokenSource, error) {
	if strings.TrimSpace(cfg.ClientEmail) == "" {
		return nil, fmt.Errorf("%w: GOOGLE_CLIENT_EMAIL is required", ErrInvalidConfig)
	}
	key := NormalizePrivateKey(cfg.PrivateKey)
	if key == "" {
		return nil, fmt.Errorf("%w: GOOGLE_PRIVATE_KEY is required", ErrInvalidConfig)
	}
	if block, _ := pem.Decode([]byte(key)); block == nil {
		return nil, fmt.Errorf("%w: GOOGLE_PRIVATE_KEY is not PEM encoded", ErrInvalidConfig)
	}

	jc := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(key),
		Scopes:     []string{Scope},
		TokenURL:   cfg.TokenURL,
	}
	return jc.TokenSource(ctx), nil
}

// NormalizePrivateKey expands literal "\n" escapes into newlines and trims
// surrounding quotes and whitespace.
func NormalizePrivateKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.Trim(key, `"`)
	return strings.ReplaceAll(key, `\n`, "\n")
}

// AppendResult reports what the API wrote.
type AppendResult struct {
	UpdatedRange string
	UpdatedRows  int
}

type valueRange struct {
	Range          string     `json:"range"`
	MajorDimension string     `json:"majorDimension"`
	Values         [][]string `json:"values"`
}

type appendResponse struct {
	Updates struct {
		UpdatedRange string `json:"updatedRange"`
		UpdatedRows  int    `json:"updatedRows"`
	} `json:"updates"`
}

// Append adds rows after the last row of the configured range. Values are
// written as RAW so user text is never interpreted as a formula.
func (c *Client) Append(ctx context.Context, rows ...[]string) (AppendResult, error) {
	if len(rows) == 0 {
		return AppendResult{}, nil
	}

	body, err := json.Marshal(valueRange{
		Range:          c.cfg.Range,
		MajorDimension: "ROWS",
		Values:         rows,
	})
	if err != nil {
		return AppendResult{}, errors.Join(ErrAppendFailed, err)
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=RAW&insertDataOption=INSERT_ROWS",
		c.cfg.APIURL, url.PathEscape(c.cfg.SpreadsheetID), url.PathEscape(c.cfg.Range))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return AppendResult{}, errors.Join(ErrAppendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.base), c.tokens)
	httpClient.Timeout = c.base.Timeout

	resp, err := httpClient.Do(req)
	if err != nil {
		return AppendResult{}, errors.Join(ErrAppendFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return AppendResult{}, errors.Join(ErrAppendFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return AppendResult{}, errors.Join(ErrAppendFailed, &APIError{StatusCode: resp.StatusCode, Body: string(raw)})
	}

	var out appendResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return AppendResult{}, errors.Join(ErrAppendFailed, fmt.Errorf("decode response: %w", err))
	}

	return AppendResult{
		UpdatedRange: out.Updates.UpdatedRange,
		UpdatedRows:  out.Updates.UpdatedRows,
	}, nil
}
