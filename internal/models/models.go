// Package models defines the JSON response envelopes shared by the
// router and its tests.
package models

// ResultResponse wraps a successful API method result.
type ResultResponse struct {
	Result any `json:"result"`
}

// APIErrorResponse carries a failed API method's message verbatim.
// Only API errors echo the original message; generic route errors use
// RouteErrorResponse instead so internal error text never leaks.
type APIErrorResponse struct {
	Error string `json:"error"`
}

// RouteErrorResponse carries the uniform "<code>: <reason phrase>" body
// produced by the terminal error handler and the 404 catch-all.
type RouteErrorResponse struct {
	Message string `json:"message"`
}
