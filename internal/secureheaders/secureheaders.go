// Package secureheaders provides the security header middleware and the
// production-only canonical HTTPS redirect.
package secureheaders

import (
	"net/http"
	"strings"
)

// HSTSValue is sent on every production response: two years, subdomains
// included, preload-list eligible.
const HSTSValue = "max-age=63072000; includeSubDomains; preload"

// Middleware sets the baseline security headers on every response,
// whatever the route or outcome.
func Middleware(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		header := response.Header()
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("X-Frame-Options", "DENY")
		header.Set("X-XSS-Protection", "1; mode=block")

		h.ServeHTTP(response, request)
	}

	return http.HandlerFunc(middleware)
}

// CanonicalHTTPSRedirect returns the production redirect middleware:
// every response carries the HSTS header, and GET requests that arrived
// insecurely or for a non-canonical host are answered with a permanent
// redirect to httpOrigin plus the original path, without reaching later
// handlers.
func CanonicalHTTPSRedirect(host, httpOrigin string) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		middleware := func(response http.ResponseWriter, request *http.Request) {
			response.Header().Set("Strict-Transport-Security", HSTSValue)

			if request.Method == http.MethodGet && (!isSecure(request) || request.Host != host) {
				http.Redirect(
					response,
					request,
					httpOrigin+request.URL.RequestURI(),
					http.StatusMovedPermanently,
				)

				return
			}

			h.ServeHTTP(response, request)
		}

		return http.HandlerFunc(middleware)
	}
}

// isSecure treats a request as secure when it terminated TLS locally or
// arrived through a proxy that did.
func isSecure(request *http.Request) bool {
	if request.TLS != nil {
		return true
	}

	return strings.EqualFold(request.Header.Get("X-Forwarded-Proto"), "https")
}
