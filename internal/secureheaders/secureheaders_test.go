package secureheaders

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareSetsSecurityHeaders(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/anything", nil)

	Middleware(okHandler()).ServeHTTP(recorder, request)

	assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", recorder.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", recorder.Header().Get("X-XSS-Protection"))
}

func TestCanonicalHTTPSRedirect(t *testing.T) {
	middleware := CanonicalHTTPSRedirect("example.com", "https://example.com")

	type tRequest struct {
		method    string
		host      string
		forwarded string
		path      string
	}
	type tWant struct {
		status   int
		location string
	}
	tests := []struct {
		name    string
		request tRequest
		want    tWant
	}{
		{
			name:    "insecure GET is redirected",
			request: tRequest{method: http.MethodGet, host: "example.com", path: "/some/page?x=1"},
			want:    tWant{status: http.StatusMovedPermanently, location: "https://example.com/some/page?x=1"},
		},
		{
			name:    "wrong host GET is redirected",
			request: tRequest{method: http.MethodGet, host: "www.example.com", forwarded: "https", path: "/"},
			want:    tWant{status: http.StatusMovedPermanently, location: "https://example.com/"},
		},
		{
			name:    "secure canonical GET passes through",
			request: tRequest{method: http.MethodGet, host: "example.com", forwarded: "https", path: "/"},
			want:    tWant{status: http.StatusOK},
		},
		{
			name:    "insecure POST passes through",
			request: tRequest{method: http.MethodPost, host: "example.com", path: "/"},
			want:    tWant{status: http.StatusOK},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(test.request.method, test.request.path, nil)
			request.Host = test.request.host
			if test.request.forwarded != "" {
				request.Header.Set("X-Forwarded-Proto", test.request.forwarded)
			}

			middleware(okHandler()).ServeHTTP(recorder, request)

			assert.Equal(t, test.want.status, recorder.Code)
			assert.Equal(t, HSTSValue, recorder.Header().Get("Strict-Transport-Security"))
			if test.want.location != "" {
				assert.Equal(t, test.want.location, recorder.Header().Get("Location"))
			}
		})
	}
}
