package email

import "time"

// SMTPConfig configures the SMTP relay client. From defaults to Username,
// which is what most providers (Gmail included) require.
type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	Secure   bool          `env:"SMTP_SECURE" envDefault:"false"`
	Username string        `env:"SMTP_USER"`
	Password string        `env:"SMTP_PASS"`
	From     string        `env:"SMTP_FROM"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"15s"`
}

// Sender returns the envelope sender address.
func (c SMTPConfig) Sender() string {
	if c.From != "" {
		return c.From
	}
	return c.Username
}

// Provider names an HTTP email provider.
type Provider string

const (
	ProviderResend   Provider = "resend"
	ProviderPostmark Provider = "postmark"
	ProviderDev      Provider = "dev"
)

// APIConfig configures the HTTP email API client. Only the fields of the
// selected Provider are consulted.
type APIConfig struct {
	Provider             Provider      `env:"EMAIL_API_PROVIDER" envDefault:"resend"`
	From                 string        `env:"EMAIL_API_FROM" envDefault:"intakes@unveiledecho.com"`
	Timeout              time.Duration `env:"EMAIL_API_TIMEOUT" envDefault:"10s"`
	ResendAPIKey         string        `env:"RESEND_API_KEY"`
	ResendAPIURL         string        `env:"RESEND_API_URL" envDefault:"https://api.resend.com"`
	PostmarkServerToken  string        `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string        `env:"POSTMARK_ACCOUNT_TOKEN"`
	DevDir               string        `env:"DEV_EMAIL_DIR" envDefault:"./tmp/emails"`
}
