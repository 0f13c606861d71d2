// Package handler provides type-safe HTTP handlers: a request is bound into
// a typed value, passed to a HandlerFunc, and the returned Response renders
// itself.
//
//	func sendTestEmail(ctx handler.Context, req TestEmailRequest) handler.Response {
//		if req.TestEmail == "" {
//			return handler.JSONError(http.StatusBadRequest, "Test email address required", "")
//		}
//		return handler.JSON(map[string]any{"success": true})
//	}
//
//	r.Post("/send-test-email", handler.Wrap(sendTestEmail,
//		handler.WithBinder[TestEmailRequest](binder.JSON()),
//		handler.WithErrorHandler[TestEmailRequest](handler.NewErrorHandler(log)),
//	))
//
// Bind and render failures, nil responses and panics are passed to the
// ErrorHandler. HTTPError lets a
// binder or handler choose the status code and client-facing message.
package handler
