// Package router assembles the HTTP pipeline: security headers, the
// production HTTPS redirect, response compression, static files,
// sessions and the route handlers, terminated by a single error handler
// that maps any handler error onto a JSON response.
package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/homesite/internal/api"
	"github.com/patric-chuzhbe/homesite/internal/config"
	"github.com/patric-chuzhbe/homesite/internal/gzippedhttp"
	"github.com/patric-chuzhbe/homesite/internal/httperr"
	"github.com/patric-chuzhbe/homesite/internal/logger"
	"github.com/patric-chuzhbe/homesite/internal/models"
	"github.com/patric-chuzhbe/homesite/internal/render"
	"github.com/patric-chuzhbe/homesite/internal/secureheaders"
	"github.com/patric-chuzhbe/homesite/internal/session"
	"github.com/patric-chuzhbe/homesite/internal/staticfiles"
)

type docProvider interface {
	Doc(u *url.URL) (template.HTML, error)
}

type handlers struct {
	renderer *render.Renderer
	methods  api.Registry
	docs     docProvider
}

// handlerFunc is a route handler that may fail; returned errors funnel
// into the terminal error handler instead of crashing the request.
type handlerFunc func(response http.ResponseWriter, request *http.Request) error

// New wires middleware and routes into the site's HTTP handler.
func New(
	cfg *config.Config,
	renderer *render.Renderer,
	methods api.Registry,
	docs docProvider,
	sessions *session.Manager,
) *chi.Mux {
	h := &handlers{
		renderer: renderer,
		methods:  methods,
		docs:     docs,
	}

	router := chi.NewRouter()

	router.Use(logger.WithLoggingHTTPMiddleware)
	router.Use(secureheaders.Middleware)
	if cfg.Production {
		router.Use(secureheaders.CanonicalHTTPSRedirect(cfg.Host, cfg.HTTPOrigin))
	}
	// Static responses carry their own Content-Length, so they are served
	// outside the gzip wrapper.
	router.Use(staticfiles.Serve(
		[]string{
			filepath.Join(cfg.Root, "static"),
			filepath.Join(cfg.Root, "thirdparty"),
		},
		cfg.StaticMaxAge,
	))
	router.Use(gzippedhttp.GzipResponse)
	router.Use(sessions.Middleware)

	router.Get(`/`, h.wrap(h.getIndex))
	router.Handle(`/api/{method}`, h.wrap(h.callAPIMethod))
	router.Handle(`/docs`, h.wrap(h.getDoc))
	router.Handle(`/docs/*`, h.wrap(h.getDoc))
	router.Get(`/500`, h.wrap(h.raiseError))
	router.NotFound(h.notFound)

	return router
}

func (h *handlers) wrap(fn handlerFunc) http.HandlerFunc {
	return func(response http.ResponseWriter, request *http.Request) {
		if err := fn(response, request); err != nil {
			h.handleError(response, err)
		}
	}
}

// handleError is the terminal error handler: every error a route handler
// returns ends up here and nowhere else.
func (h *handlers) handleError(response http.ResponseWriter, err error) {
	logger.Log.Errorln("unhandled route error:", zap.Error(err), zap.Stack("stack"))

	code := httperr.CodeOf(err)
	writeJSON(response, code, models.RouteErrorResponse{
		Message: httperr.ReasonPhrase(code),
	})
}

func (h *handlers) getIndex(response http.ResponseWriter, _ *http.Request) error {
	return h.renderIndex(response, "")
}

func (h *handlers) callAPIMethod(response http.ResponseWriter, request *http.Request) error {
	methodName := chi.URLParam(request, "method")
	method, found := h.methods[methodName]
	if !found {
		h.notFound(response, request)
		return nil
	}

	result, err := method(request.Context(), request.URL.Query())
	if err != nil {
		writeJSON(response, httperr.CodeOf(err), models.APIErrorResponse{
			Error: err.Error(),
		})
		return nil
	}

	writeJSON(response, http.StatusOK, models.ResultResponse{Result: result})
	return nil
}

func (h *handlers) getDoc(response http.ResponseWriter, request *http.Request) error {
	doc, err := h.docs.Doc(request.URL)
	if errors.Is(err, httperr.ErrNotFound) {
		h.notFound(response, request)
		return nil
	}
	if err != nil {
		return err
	}

	return h.renderIndex(response, doc)
}

// raiseError exists to verify the error handling wiring end to end.
func (h *handlers) raiseError(_ http.ResponseWriter, _ *http.Request) error {
	return errors.New("intentional error raised by GET /500")
}

func (h *handlers) notFound(response http.ResponseWriter, _ *http.Request) {
	writeJSON(response, http.StatusNotFound, models.RouteErrorResponse{
		Message: httperr.ReasonPhrase(http.StatusNotFound),
	})
}

// renderIndex buffers the render so a template failure can still become
// a clean 500 instead of a half-written page.
func (h *handlers) renderIndex(response http.ResponseWriter, content template.HTML) error {
	var buf bytes.Buffer
	if err := h.renderer.Index(&buf, content); err != nil {
		return err
	}

	response.Header().Set("Content-Type", "text/html; charset=utf-8")
	response.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(response); err != nil {
		logger.Log.Debugln("error while writing the rendered page:", zap.Error(err))
	}

	return nil
}

func writeJSON(response http.ResponseWriter, statusCode int, payload any) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(statusCode)
	if err := json.NewEncoder(response).Encode(payload); err != nil {
		logger.Log.Debugln("error while encoding the JSON response:", zap.Error(err))
	}
}
