package email_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/email"
)

func resendConfig(url string) email.APIConfig {
	return email.APIConfig{
		Provider:     email.ProviderResend,
		From:         "intakes@unveiledecho.com",
		ResendAPIKey: "re_test",
		ResendAPIURL: url,
	}
}

func TestNewResendClient_Config(t *testing.T) {
	t.Parallel()

	_, err := email.NewResendClient(email.APIConfig{ResendAPIURL: "https://api.resend.com", From: "a@b.co"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "RESEND_API_KEY is required")

	_, err = email.NewResendClient(email.APIConfig{ResendAPIKey: "k", From: "a@b.co"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)

	_, err = email.NewResendClient(email.APIConfig{ResendAPIKey: "k", ResendAPIURL: "https://api.resend.com", From: "nope"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}

func TestResendClient_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("posts payload and returns id", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/emails", r.URL.Path)
			assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
		}))
		t.Cleanup(srv.Close)

		client, err := email.NewResendClient(resendConfig(srv.URL + "/"))
		require.NoError(t, err)

		params := validParams()
		params.Tag = "form submission"
		sent, err := client.SendEmail(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, "resend", sent.Provider)
		assert.Equal(t, "49a3999c-0ce1-4ea6-ab68-afcd6dc2e794", sent.MessageID)

		assert.Equal(t, "intakes@unveiledecho.com", got["from"])
		assert.Equal(t, []any{"owner@example.com"}, got["to"])
		assert.Equal(t, params.Subject, got["subject"])
		assert.Equal(t, "<p>Hello</p>", got["html"])
		assert.Equal(t, "jane@example.com", got["reply_to"])
		assert.NotContains(t, got, "text")
		assert.Equal(t, []any{map[string]any{"name": "category", "value": "form_submission"}}, got["tags"])
	})

	t.Run("json error body is decoded", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`))
		}))
		t.Cleanup(srv.Close)

		client, err := email.NewResendClient(resendConfig(srv.URL))
		require.NoError(t, err)

		_, err = client.SendEmail(context.Background(), validParams())
		require.Error(t, err)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)

		var apiErr *email.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		body, ok := apiErr.Body.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "validation_error", body["name"])
	})

	t.Run("text error body is kept raw", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream unavailable"))
		}))
		t.Cleanup(srv.Close)

		client, err := email.NewResendClient(resendConfig(srv.URL))
		require.NoError(t, err)

		_, err = client.SendEmail(context.Background(), validParams())
		var apiErr *email.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, "upstream unavailable", apiErr.Body)
	})

	t.Run("network failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := srv.URL
		srv.Close()

		client, err := email.NewResendClient(resendConfig(url), email.WithResendHTTPClient(&http.Client{}))
		require.NoError(t, err)

		_, err = client.SendEmail(context.Background(), validParams())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		var apiErr *email.APIError
		assert.False(t, errors.As(err, &apiErr))
	})
}
