// Package email sends transactional email through interchangeable providers.
//
// Every provider implements EmailSender:
//   - SMTPClient delivers through an SMTP relay (github.com/wneessen/go-mail)
//   - ResendClient calls the Resend HTTP API
//   - PostmarkClient calls Postmark (github.com/mrz1836/postmark)
//   - DevSender writes HTML and JSON files to a local directory
//
// All of them run SendEmailParams.Validate before any I/O:
//
//	sent, err := client.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "owner@example.com",
//		ReplyTo:  "jane@example.com",
//		Subject:  "New Form Submission from Jane Doe",
//		BodyHTML: html,
//	})
//
// Errors wrap ErrInvalidConfig, ErrInvalidParams or ErrFailedToSendEmail.
// A non-2xx answer from an HTTP provider additionally carries an *APIError
// with the status code and response body:
//
//	var apiErr *email.APIError
//	if errors.As(err, &apiErr) {
//		log.Error("provider rejected message", slog.Any("api", apiErr))
//	}
//
// The templates subpackage renders templ components to strings.
package email
