// Package sanitizer holds small string transforms for cleaning untrusted
// form input before it is validated, logged, stored or mailed.
//
// Helpers never return errors. Apply and Compose chain them:
//
//	clean := sanitizer.Compose(
//		sanitizer.RemoveNullBytes,
//		sanitizer.RemoveControlSequences,
//		sanitizer.NFC,
//		sanitizer.SingleLine,
//	)
//	name := clean(" Jane\x00 \x1b[31mDoe\n") // "Jane Doe"
//
// HTML escaping is not done here; templates escape at render time.
package sanitizer
