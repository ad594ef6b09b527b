package subdomain

import (
	"net/http"
	"strings"
)

// HostFunc extrai o hostname usado para resolver o subdomínio.
type HostFunc func(r *http.Request) string

func DefaultHostFunc(trustForwardedHost bool) HostFunc {
	return func(r *http.Request) string {
		if trustForwardedHost {
			// pega o primeiro host do X-Forwarded-Host (o que o cliente pediu)
			if xfh := r.Header.Get("X-Forwarded-Host"); xfh != "" {
				if host := strings.TrimSpace(strings.Split(xfh, ",")[0]); host != "" {
					return host
				}
			}
		}
		if r.Host != "" {
			return r.Host
		}
		if r.URL != nil {
			return r.URL.Host
		}
		return ""
	}
}
