// Package sheets appends rows to a Google spreadsheet through the Sheets v4
// REST API, authenticating as a service account with a signed JWT
// (golang.org/x/oauth2/jwt).
//
//	client, err := sheets.New(cfg)
//	res, err := client.Append(ctx, []string{ts, name, email, phone, message})
//
// The client only ever appends; it never reads or overwrites existing rows.
// Non-2xx API answers are returned as *APIError wrapped in ErrAppendFailed.
package sheets
