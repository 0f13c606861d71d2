package sheets

import "time"

// Config holds the service-account credentials and target range. The
// private key may contain literal "\n" sequences, as it usually does when it
// is stored in a single-line environment variable.
type Config struct {
	SpreadsheetID string        `env:"GOOGLE_SHEET_ID"`
	ClientEmail   string        `env:"GOOGLE_CLIENT_EMAIL"`
	PrivateKey    string        `env:"GOOGLE_PRIVATE_KEY"`
	Range         string        `env:"GOOGLE_SHEET_RANGE" envDefault:"Sheet1!A:E"`
	APIURL        string        `env:"GOOGLE_SHEETS_API_URL" envDefault:"https://sheets.googleapis.com"`
	TokenURL      string        `env:"GOOGLE_TOKEN_URL" envDefault:"https://oauth2.googleapis.com/token"`
	Timeout       time.Duration `env:"GOOGLE_SHEETS_TIMEOUT" envDefault:"15s"`
}
