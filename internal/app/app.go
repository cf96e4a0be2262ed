// Package app initializes and runs the site: it configures logging,
// asset hashing, the session store, the share cron job and the HTTP
// pipeline, and handles graceful shutdown.
package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patric-chuzhbe/homesite/internal/api"
	"github.com/patric-chuzhbe/homesite/internal/assets"
	"github.com/patric-chuzhbe/homesite/internal/config"
	"github.com/patric-chuzhbe/homesite/internal/docs"
	"github.com/patric-chuzhbe/homesite/internal/logger"
	"github.com/patric-chuzhbe/homesite/internal/render"
	"github.com/patric-chuzhbe/homesite/internal/router"
	"github.com/patric-chuzhbe/homesite/internal/session"
	"github.com/patric-chuzhbe/homesite/internal/share"
	"github.com/patric-chuzhbe/homesite/internal/sharecron"
	"github.com/patric-chuzhbe/homesite/internal/store"
	"github.com/patric-chuzhbe/homesite/internal/store/memorystore"
	"github.com/patric-chuzhbe/homesite/internal/store/postgresstore"
	"github.com/patric-chuzhbe/homesite/internal/store/redisstore"
)

const storeConnectionTimeout = 10 * time.Second

// App encapsulates the configuration, HTTP handler, session store and
// the background share trigger needed to run the site.
type App struct {
	cfg          *config.Config
	sessionStore store.Store
	shareTrigger *sharecron.Trigger
	httpHandler  http.Handler
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing logger
// - computing the cache-busting asset hashes
// - selecting and setting up the session store
// - registering the daily share job
// - setting up the router and middleware
func New() (*App, error) {
	var err error
	app := &App{}

	app.cfg, err = config.New()
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	hashes, err := assets.New(app.cfg.Root, app.cfg.Production)
	if err != nil {
		return nil, err
	}

	renderer, err := render.New(app.cfg, hashes)
	if err != nil {
		return nil, err
	}

	app.sessionStore, err = getSessionStoreByType(app.cfg)
	if err != nil {
		return nil, err
	}

	sessionSigningSecret, err := base64.URLEncoding.DecodeString(app.cfg.SessionSecret)
	if err != nil {
		return nil, err
	}

	app.shareTrigger, err = sharecron.New(
		share.New(app.cfg.ShareWebhookURL, app.cfg.ShareToken),
		app.cfg.Production,
	)
	if err != nil {
		return nil, err
	}

	app.httpHandler = router.New(
		app.cfg,
		renderer,
		api.Default(),
		docs.New(app.cfg.Root),
		session.New(
			app.sessionStore,
			app.cfg.SessionCookieName,
			sessionSigningSecret,
			app.cfg.Production,
		),
	)

	return app, nil
}

// Run starts the share trigger and the HTTP server with graceful
// shutdown support. It listens for system signals and cleans up
// resources upon termination.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.shareTrigger.Start()

	logger.Log.Infoln("server running", "RunAddr", a.cfg.RunAddr, "production", a.cfg.Production)

	server := &http.Server{
		Addr:    a.cfg.RunAddr,
		Handler: a.httpHandler,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Stopping server and cron, closing session store...")
		<-a.shareTrigger.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return a.sessionStore.Close()

	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

func getSessionStoreByType(cfg *config.Config) (store.Store, error) {
	if cfg.RedisAddr != "" {
		return redisstore.New(context.Background(), cfg.RedisAddr)
	}

	if cfg.DatabaseDSN != "" {
		return postgresstore.New(
			context.Background(),
			cfg.DatabaseDSN,
			storeConnectionTimeout,
			cfg.MigrationsDir,
		)
	}

	return memorystore.New()
}
