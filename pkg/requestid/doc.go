// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware reuses a client-supplied X-Request-ID header when it is at most
// 128 characters of [a-zA-Z0-9_-]; otherwise it generates a UUIDv7. The ID is
// echoed back in the response header and stored in the request context,
// where FromContext reads it. LoggerExtractor plugs the ID into the
// logger package as a "request_id" attribute:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
