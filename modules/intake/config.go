package intake

import (
	"fmt"
	"time"

	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/email"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/ratelimiter"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/sheets"
)

// Config is the process-wide intake configuration. It is loaded once at
// startup and passed by value; nothing mutates it afterwards.
type Config struct {
	OwnerEmail  string   `env:"OWNER_EMAIL" envDefault:"owner@unveiledecho.com"`
	FrontendURL []string `env:"FRONTEND_URL" envSeparator:","`
	// Channels lists the enabled channels in dispatch order.
	Channels       []string `env:"INTAKE_CHANNELS" envSeparator:"," envDefault:"smtp,spreadsheet-log"`
	PrimaryChannel string   `env:"INTAKE_PRIMARY_CHANNEL"`
	Brand          string   `env:"INTAKE_BRAND" envDefault:"Unveiled Echo"`
	Timezone       string   `env:"INTAKE_TIMEZONE" envDefault:"America/New_York"`
	MaxMessageLen  int      `env:"INTAKE_MAX_MESSAGE_LENGTH" envDefault:"5000"`

	// RateLimit reads INTAKE_RATE_LIMIT_BURST and INTAKE_RATE_LIMIT_INTERVAL.
	RateLimit ratelimiter.Config `envPrefix:"INTAKE_"`

	SMTP     email.SMTPConfig
	EmailAPI email.APIConfig
	Sheets   sheets.Config
}

// EnabledChannels parses Channels, dropping duplicates.
func (c Config) EnabledChannels() ([]ChannelID, error) {
	ids := make([]ChannelID, 0, len(c.Channels))
	seen := make(map[ChannelID]bool, len(c.Channels))
	for _, name := range c.Channels {
		if name == "" {
			continue
		}
		id, err := ParseChannelID(name)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ErrNoChannels
	}
	return ids, nil
}

// Primary returns the must-succeed channel among enabled: PrimaryChannel
// when set, otherwise the first enabled of smtp, email-api, spreadsheet-log.
func (c Config) Primary(enabled []ChannelID) (ChannelID, error) {
	if len(enabled) == 0 {
		return "", ErrNoChannels
	}
	if c.PrimaryChannel != "" {
		id, err := ParseChannelID(c.PrimaryChannel)
		if err != nil {
			return "", err
		}
		for _, e := range enabled {
			if e == id {
				return id, nil
			}
		}
		return "", fmt.Errorf("%w: primary channel %s is not enabled", ErrUnknownChannel, id)
	}
	for _, candidate := range primaryOrder {
		for _, e := range enabled {
			if e == candidate {
				return candidate, nil
			}
		}
	}
	return enabled[0], nil
}

// Location resolves Timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
