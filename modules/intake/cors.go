package intake

import (
	"net/http"
	"slices"
)

const (
	corsAllowMethods = "GET,OPTIONS,PATCH,DELETE,POST,PUT"
	corsAllowHeaders = "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version"
)

// CORS sets the cross-origin headers on every response and answers OPTIONS
// with 204 and an empty body.
//
// The allowed origin is the request Origin when it is listed in origins, "*"
// when origins is empty or contains "*", and the first listed origin
// otherwise.
func CORS(origins []string) func(http.Handler) http.Handler {
	wildcard := len(origins) == 0 || slices.Contains(origins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Origin", allowedOrigin(r.Header.Get("Origin"), origins, wildcard))
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			if !wildcard {
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func allowedOrigin(origin string, origins []string, wildcard bool) string {
	if wildcard {
		return "*"
	}
	if origin != "" && slices.Contains(origins, origin) {
		return origin
	}
	return origins[0]
}
