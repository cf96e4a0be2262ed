package router_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/patric-chuzhbe/homesite/internal/api"
	"github.com/patric-chuzhbe/homesite/internal/assets"
	"github.com/patric-chuzhbe/homesite/internal/config"
	"github.com/patric-chuzhbe/homesite/internal/docs"
	"github.com/patric-chuzhbe/homesite/internal/logger"
	"github.com/patric-chuzhbe/homesite/internal/render"
	"github.com/patric-chuzhbe/homesite/internal/router"
	"github.com/patric-chuzhbe/homesite/internal/session"
	"github.com/patric-chuzhbe/homesite/internal/store/memorystore"
)

// ExampleNew assembles the full pipeline around an in-memory session
// store and serves one API request through it.
func ExampleNew() {
	if err := logger.Init("error"); err != nil {
		panic(err)
	}

	root, err := os.MkdirTemp("", "homesite-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(root)

	if err := os.MkdirAll(filepath.Join(root, "templates"), 0o755); err != nil {
		panic(err)
	}
	page := []byte(`<html><body>{{.Content}}</body></html>`)
	if err := os.WriteFile(filepath.Join(root, "templates", "index.html"), page, 0o644); err != nil {
		panic(err)
	}

	cfg := &config.Config{
		Host:         "localhost:8080",
		HTTPOrigin:   "https://localhost:8080",
		Root:         root,
		StaticMaxAge: 3600,
	}

	hashes, err := assets.New(cfg.Root, cfg.Production)
	if err != nil {
		panic(err)
	}

	renderer, err := render.New(cfg, hashes)
	if err != nil {
		panic(err)
	}

	sessionStore, err := memorystore.New()
	if err != nil {
		panic(err)
	}

	handler := router.New(
		cfg,
		renderer,
		api.Default(),
		docs.New(cfg.Root),
		session.New(sessionStore, "homesite_session", []byte("example-secret"), false),
	)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	fmt.Println(recorder.Code)
	fmt.Println(recorder.Body.String())

	// Output:
	// 200
	// {"result":"pong"}
}
