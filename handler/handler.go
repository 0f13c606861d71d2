package handler

import (
	"fmt"
	"net/http"
)

// HandlerFunc handles a request already decoded into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response writes status, headers and body.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind decodes r into v, which is always a non-nil pointer.
type Bind func(r *http.Request, v any) error

// ErrorHandler writes the response for a failed bind, a failed render, a
// nil Response or a recovered panic.
type ErrorHandler func(ctx Context, err error)

// Option configures Wrap.
type Option[R any] func(*wrapped[R])

type wrapped[R any] struct {
	handle  HandlerFunc[R]
	binders []Bind
	onError ErrorHandler
}

// WithBinder appends b. Binders run in the order they were added.
func WithBinder[R any](b Bind) Option[R] {
	return func(w *wrapped[R]) {
		if b != nil {
			w.binders = append(w.binders, b)
		}
	}
}

// WithErrorHandler replaces the default NewErrorHandler(nil).
func WithErrorHandler[R any](h ErrorHandler) Option[R] {
	return func(w *wrapped[R]) {
		if h != nil {
			w.onError = h
		}
	}
}

// Wrap adapts h to http.HandlerFunc. The first binder error skips h.
func Wrap[R any](h HandlerFunc[R], opts ...Option[R]) http.HandlerFunc {
	wr := &wrapped[R]{handle: h, onError: NewErrorHandler(nil)}
	for _, opt := range opts {
		opt(wr)
	}
	return wr.serve
}

func (wr *wrapped[R]) serve(w http.ResponseWriter, r *http.Request) {
	ctx := NewContext(w, r)
	defer func() {
		if p := recover(); p != nil {
			if p == http.ErrAbortHandler {
				panic(p)
			}
			wr.onError(ctx, fmt.Errorf("%w: %v", ErrPanic, p))
		}
	}()

	var req R
	for _, bind := range wr.binders {
		if err := bind(r, &req); err != nil {
			wr.onError(ctx, err)
			return
		}
	}

	resp := wr.handle(ctx, req)
	if resp == nil {
		wr.onError(ctx, ErrNilResponse)
		return
	}
	if err := resp.Render(w, r); err != nil {
		wr.onError(ctx, err)
	}
}
