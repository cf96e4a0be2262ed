// Package config assembles the runtime configuration of the site from
// defaults, command line flags and environment variables (in that order of
// precedence, environment winning).
package config

import (
	"flag"
	"log"
	"os"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/thoas/go-funk"
)

// Config carries every environment-derived constant the pipeline and the
// job trigger depend on. It is constructed once at startup and passed by
// reference; nothing mutates it afterwards.
type Config struct {
	RunAddr           string `env:"SERVER_ADDRESS" validate:"hostname_port"`
	Production        bool   `env:"PRODUCTION"`
	Host              string `env:"CANONICAL_HOST" validate:"required"`
	HTTPOrigin        string `env:"HTTPS_ORIGIN" validate:"url"`
	Root              string `env:"SITE_ROOT" validate:"dirpath"`
	StaticMaxAge      int    `env:"STATIC_MAX_AGE" validate:"min=0"`
	SessionSecret     string `env:"SESSION_SECRET" validate:"required,base64url"`
	SessionCookieName string `env:"SESSION_COOKIE_NAME" validate:"required"`
	RedisAddr         string `env:"REDIS_ADDR"`
	DatabaseDSN       string `env:"DATABASE_DSN"`
	MigrationsDir     string `env:"MIGRATIONS_DIR"`
	ShareWebhookURL   string `env:"SHARE_WEBHOOK_URL" validate:"omitempty,url"`
	ShareToken        string `env:"SHARE_TOKEN"`
	LogLevel          string `env:"LOG_LEVEL" validate:"loglevel"`
}

var defaultConfig = Config{
	RunAddr:           ":8080",
	Production:        false,
	Host:              "localhost:8080",
	HTTPOrigin:        "https://localhost:8080",
	Root:              ".",
	StaticMaxAge:      3600,
	SessionSecret:     "aG9tZXNpdGUtZGV2LXNlc3Npb24tc2VjcmV0", // dev only, override in production
	SessionCookieName: "homesite_session",
	MigrationsDir:     "cmd/homesite/migrations",
	LogLevel:          "info",
}

func validateDirPath(fieldLevel validator.FieldLevel) bool {
	info, err := os.Stat(fieldLevel.Field().String())

	return err == nil && info.IsDir()
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	allowedLogLevels := []string{"debug", "info", "warn", "error", "fatal"}

	return funk.ContainsString(allowedLogLevels, fieldLevel.Field().String())
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("dirpath", validateDirPath)
	if err != nil {
		return err
	}

	return validate.Struct(c)
}

// InitOption customizes New.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
}

// WithDisableFlagsParsing disables command line flag parsing, which is
// required when New is called from tests.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

func (c *Config) overlayEnv() error {
	var fromEnv Config
	err := env.Parse(&fromEnv)
	if err != nil {
		return err
	}

	if fromEnv.RunAddr != "" {
		c.RunAddr = fromEnv.RunAddr
	}

	if fromEnv.Production {
		c.Production = true
	}

	if fromEnv.Host != "" {
		c.Host = fromEnv.Host
	}

	if fromEnv.HTTPOrigin != "" {
		c.HTTPOrigin = fromEnv.HTTPOrigin
	}

	if fromEnv.Root != "" {
		c.Root = fromEnv.Root
	}

	if fromEnv.StaticMaxAge != 0 {
		c.StaticMaxAge = fromEnv.StaticMaxAge
	}

	if fromEnv.SessionSecret != "" {
		c.SessionSecret = fromEnv.SessionSecret
	}

	if fromEnv.SessionCookieName != "" {
		c.SessionCookieName = fromEnv.SessionCookieName
	}

	if fromEnv.RedisAddr != "" {
		c.RedisAddr = fromEnv.RedisAddr
	}

	if fromEnv.DatabaseDSN != "" {
		c.DatabaseDSN = fromEnv.DatabaseDSN
	}

	if fromEnv.MigrationsDir != "" {
		c.MigrationsDir = fromEnv.MigrationsDir
	}

	if fromEnv.ShareWebhookURL != "" {
		c.ShareWebhookURL = fromEnv.ShareWebhookURL
	}

	if fromEnv.ShareToken != "" {
		c.ShareToken = fromEnv.ShareToken
	}

	if fromEnv.LogLevel != "" {
		c.LogLevel = fromEnv.LogLevel
	}

	return nil
}

// New builds a validated Config from defaults, flags and environment.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	err := godotenv.Load()
	if err != nil {
		log.Printf("Unable to load .env file: %v", err)
	}

	values := defaultConfig

	if !options.disableFlagsParsing {
		flag.StringVar(&values.RunAddr, "a", values.RunAddr, "address and port to run server")
		flag.BoolVar(&values.Production, "p", values.Production, "enable production mode (HTTPS redirect, HSTS, asset hashing, cron)")
		flag.StringVar(&values.Host, "n", values.Host, "canonical host the site is served from")
		flag.StringVar(&values.HTTPOrigin, "o", values.HTTPOrigin, "canonical HTTPS origin used for redirects")
		flag.StringVar(&values.Root, "r", values.Root, "site root directory with templates, static files and docs")
		flag.IntVar(&values.StaticMaxAge, "m", values.StaticMaxAge, "static asset cache lifetime in seconds")
		flag.StringVar(&values.DatabaseDSN, "d", values.DatabaseDSN, "A string with the database connection details")
		flag.StringVar(&values.LogLevel, "l", values.LogLevel, "logger level")
		flag.Parse()
	}

	err = values.overlayEnv()
	if err != nil {
		return nil, err
	}

	err = values.validate()
	if err != nil {
		return nil, err
	}

	return &values, nil
}
