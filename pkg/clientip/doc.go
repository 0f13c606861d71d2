// Package clientip resolves the originating client address of an HTTP
// request behind the usual reverse proxies.
//
// Headers in ProxyHeaders are trusted as-is, so run the service behind a
// proxy that overwrites them. Middleware stores the address in the request
// context for rate limiting and logging:
//
//	r.Use(clientip.Middleware)
//	ip := clientip.FromContext(r.Context())
package clientip
