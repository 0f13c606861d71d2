package intake

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/email/templates"
)

// TimestampLayout is how the submission time appears in the email.
const TimestampLayout = "Monday, January 2, 2006 at 3:04 PM MST"

// RenderOptions controls branding and time zone of the rendered email.
type RenderOptions struct {
	Brand    string
	Location *time.Location
}

func (o RenderOptions) brand() string {
	if o.Brand == "" {
		return "Unveiled Echo"
	}
	return o.Brand
}

func (o RenderOptions) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

const notificationCSS = `body{font-family:Arial,sans-serif;line-height:1.6;color:#333}` +
	`.container{max-width:600px;margin:0 auto;padding:20px}` +
	`.header{background-color:#0ea5e9;color:#fff;padding:20px;border-radius:5px}` +
	`.content{margin:20px 0;padding:20px;background-color:#f5f5f5;border-radius:5px}` +
	`.field{margin:15px 0}.label{font-weight:bold;color:#0ea5e9}.value{margin-top:5px}` +
	`.footer{margin-top:30px;font-size:12px;color:#666;border-top:1px solid #ddd;padding-top:20px}`

// SubmissionEmail renders the staff notification for rec. Every user field
// is HTML-escaped; message newlines become <br> after escaping.
func SubmissionEmail(rec Record, opts RenderOptions) templ.Component {
	brand := opts.brand()
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="container"><div class="header"><h1>New Form Submission - `)
		b.WriteString(templ.EscapeString(brand))
		b.WriteString(`</h1></div><div class="content"><h2>Client Details</h2>`)

		writeField(&b, "Name", templ.EscapeString(rec.Name))
		email := templ.EscapeString(rec.Email)
		writeField(&b, "Email", `<a href="mailto:`+email+`">`+email+`</a>`)
		if rec.Phone != "" {
			writeField(&b, "Phone", templ.EscapeString(rec.Phone))
		}
		writeField(&b, "Message", messageHTML(rec.Message))
		writeField(&b, "Submitted At", templ.EscapeString(rec.SubmittedAt.In(opts.location()).Format(TimestampLayout)))

		b.WriteString(`</div><div class="footer"><p>This is an automated email from the `)
		b.WriteString(templ.EscapeString(brand))
		b.WriteString(` clinic form submission system.</p>`)
		b.WriteString(`<p>Please reply directly to the client's email address to respond to their inquiry.</p></div></div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
	return templates.Layout("New Form Submission - "+brand, notificationCSS, body)
}

// TestEmail is the body of the configuration-test email.
func TestEmail(brand string) templ.Component {
	opts := RenderOptions{Brand: brand}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="container"><div class="header"><h1>Email Configuration Test</h1></div>`+
			`<div class="content"><p>This is a test email from the `+templ.EscapeString(opts.brand())+
			` form handler.</p><p>If you received this, your email configuration is working correctly.</p></div></div>`)
		return err
	})
	return templates.Layout(opts.brand()+" - Email Configuration Test", notificationCSS, body)
}

// Render renders the notification for rec to a string.
func Render(ctx context.Context, rec Record, opts RenderOptions) (string, error) {
	return templates.Render(ctx, SubmissionEmail(rec, opts))
}

func writeField(b *strings.Builder, label, valueHTML string) {
	b.WriteString(`<div class="field"><div class="label">`)
	b.WriteString(label)
	b.WriteString(`:</div><div class="value">`)
	b.WriteString(valueHTML)
	b.WriteString(`</div></div>`)
}

// messageHTML escapes first, so a literal "<br>" in the input stays text.
func messageHTML(s string) string {
	return strings.ReplaceAll(templ.EscapeString(s), "\n", "<br>")
}
