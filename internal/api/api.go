// Package api holds the registry backing the generic /api/{method}
// dispatch route. A method receives the request's query parameters and
// returns a JSON-serializable result or an error; errors created with
// httperr carry the HTTP status the client receives, and their message
// is echoed verbatim in the response body.
package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/patric-chuzhbe/homesite/internal/httperr"
	"github.com/patric-chuzhbe/homesite/internal/session"
)

// Method is one callable API method.
type Method func(ctx context.Context, params url.Values) (any, error)

// Registry maps method names to their implementations. A name missing
// from the registry falls through to the router's 404.
type Registry map[string]Method

// Default returns the built-in method set.
func Default() Registry {
	return Registry{
		"ping":   ping,
		"now":    now,
		"echo":   echo,
		"visits": visits,
	}
}

func ping(_ context.Context, _ url.Values) (any, error) {
	return "pong", nil
}

func now(_ context.Context, _ url.Values) (any, error) {
	return time.Now().UTC().Format(time.RFC3339), nil
}

func echo(_ context.Context, params url.Values) (any, error) {
	if len(params) == 0 {
		return nil, httperr.New(400, "echo requires at least one query parameter")
	}

	result := map[string]string{}
	for key := range params {
		result[key] = params.Get(key)
	}

	return result, nil
}

// visits counts requests per visitor in the session, so calling it is
// what first issues the session cookie.
func visits(ctx context.Context, _ url.Values) (any, error) {
	sess := session.FromContext(ctx)
	if sess == nil {
		return nil, httperr.New(500, "session middleware is not active")
	}

	count, _ := strconv.Atoi(sess.Get("visits"))
	count++
	sess.Set("visits", strconv.Itoa(count))

	return count, nil
}
