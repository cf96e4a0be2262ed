// Package logger provides structured logging for the site
// using the Uber zap logging library.
package logger

import (
	"errors"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// Log is a global SugaredLogger instance from the zap logging library.
// It should be initialized via Init() before the first request is served.
var Log *zap.SugaredLogger

type capturedResponse struct {
	status int
	bytes  int
}

type capturingResponseWriter struct {
	http.ResponseWriter
	captured *capturedResponse
}

func (w *capturingResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.captured.bytes += n
	return n, err
}

func (w *capturingResponseWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.WriteHeader(statusCode)
	w.captured.status = statusCode
}

// Init initializes the global logger with the given level.
func Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zl.Sugar()

	return nil
}

// Sync flushes any buffered log entries to the output.
// It should be called on shutdown.
func Sync() error {
	if err := Log.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}

	return nil
}

// WithLoggingHTTPMiddleware logs method, URI, response status, duration
// and response size for every request passing through it.
func WithLoggingHTTPMiddleware(h http.Handler) http.Handler {
	logFn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		captured := &capturedResponse{}
		cw := capturingResponseWriter{
			ResponseWriter: w,
			captured:       captured,
		}
		h.ServeHTTP(&cw, r)

		Log.Infoln(
			"uri", r.RequestURI,
			"method", r.Method,
			"status", captured.status,
			"duration", time.Since(start),
			"size", captured.bytes,
		)
	}

	return http.HandlerFunc(logFn)
}
