package intake_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meciahacks/mindful-reach-clinic-01260/modules/intake"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/config"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/email"
)

func TestConfig_EnabledChannels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      []string
		want    []intake.ChannelID
		wantErr error
	}{
		{"canonical", []string{"smtp", "email-api", "spreadsheet-log"}, []intake.ChannelID{intake.ChannelSMTP, intake.ChannelEmailAPI, intake.ChannelSheets}, nil},
		{"aliases and duplicates", []string{" Resend ", "sheets", "email"}, []intake.ChannelID{intake.ChannelEmailAPI, intake.ChannelSheets}, nil},
		{"empty", []string{""}, nil, intake.ErrNoChannels},
		{"unknown", []string{"fax"}, nil, intake.ErrUnknownChannel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := intake.Config{Channels: tt.in}.EnabledChannels()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_Primary(t *testing.T) {
	t.Parallel()

	all := []intake.ChannelID{intake.ChannelSheets, intake.ChannelEmailAPI, intake.ChannelSMTP}

	p, err := intake.Config{}.Primary(all)
	require.NoError(t, err)
	assert.Equal(t, intake.ChannelSMTP, p)

	p, err = intake.Config{PrimaryChannel: "sheets"}.Primary(all)
	require.NoError(t, err)
	assert.Equal(t, intake.ChannelSheets, p)

	_, err = intake.Config{PrimaryChannel: "smtp"}.Primary([]intake.ChannelID{intake.ChannelSheets})
	assert.ErrorIs(t, err, intake.ErrUnknownChannel)

	_, err = intake.Config{}.Primary(nil)
	assert.ErrorIs(t, err, intake.ErrNoChannels)
}

func TestConfig_Location(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.UTC, intake.Config{}.Location())
	assert.Equal(t, time.UTC, intake.Config{Timezone: "Mars/Olympus"}.Location())
	assert.Equal(t, "Europe/Berlin", intake.Config{Timezone: "Europe/Berlin"}.Location().String())
}

func TestConfig_FromEnvironment(t *testing.T) {
	t.Setenv("OWNER_EMAIL", "care@clinic.example")
	t.Setenv("FRONTEND_URL", "https://a.example,https://b.example")
	t.Setenv("INTAKE_CHANNELS", "email-api,spreadsheet-log")
	t.Setenv("SMTP_USER", "relay@clinic.example")
	t.Setenv("EMAIL_API_PROVIDER", "postmark")
	t.Setenv("GOOGLE_SHEET_ID", "sheet-123")
	t.Setenv("INTAKE_RATE_LIMIT_BURST", "3")

	var cfg intake.Config
	require.NoError(t, config.ForceReloadConfig(&cfg))

	assert.Equal(t, "care@clinic.example", cfg.OwnerEmail)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.FrontendURL)
	assert.Equal(t, []string{"email-api", "spreadsheet-log"}, cfg.Channels)
	assert.Equal(t, "Unveiled Echo", cfg.Brand)
	assert.Equal(t, "relay@clinic.example", cfg.SMTP.Username)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, email.ProviderPostmark, cfg.EmailAPI.Provider)
	assert.Equal(t, "https://api.resend.com", cfg.EmailAPI.ResendAPIURL)
	assert.Equal(t, "sheet-123", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "Sheet1!A:E", cfg.Sheets.Range)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.Equal(t, time.Minute, cfg.RateLimit.Interval)

	d, err := intake.NewDispatcherFromConfig(cfg, quietLogger(), intake.ChannelOptions{})
	require.NoError(t, err)
	assert.Equal(t, intake.ChannelEmailAPI, d.Primary())
	assert.ErrorIs(t, d.Ready(t.Context()), intake.ErrChannelConfig, "postmark tokens are missing")
}
