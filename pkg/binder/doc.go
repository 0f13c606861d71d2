// Package binder decodes HTTP request bodies into Go values for the typed
// handlers in package handler.
//
// JSON enforces the media type, a body size limit, a single top-level value
// and, by default, rejects unknown struct fields. All failures wrap one of
// ErrMissingContentType, ErrUnsupportedMediaType or ErrFailedToParseJSON.
package binder
