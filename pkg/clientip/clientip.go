package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ProxyHeaders are consulted in order before falling back to RemoteAddr.
// X-Forwarded-For contributes its left-most valid address.
var ProxyHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// FromRequest returns the normalized client address of r, or "" when
// neither the proxy headers nor RemoteAddr carry a valid IP.
func FromRequest(r *http.Request) string {
	for _, h := range ProxyHeaders {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := normalize(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

func normalize(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	// IPv4-mapped IPv6 and plain IPv4 share one key.
	return addr.Unmap().WithZone("").String()
}
