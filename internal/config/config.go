// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON config file,
// a .env file and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address" env:"SERVER_ADDRESS"`

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string `json:"database_dsn" env:"DATABASE_DSN"`

	// Config is the path to the Config file.
	Config string `json:"-" env:"CONFIG"`

	// JWTSecret is the HMAC key used to sign bearer tokens.
	JWTSecret string `json:"jwt_secret" env:"JWT_SECRET"`

	// TokenTTL is how long an issued token stays valid.
	TokenTTL time.Duration `json:"-" env:"TOKEN_TTL"`

	// LogLevel is passed to the zap logger ("debug", "info", ...).
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`

	// RateLimitRPS is the global request rate; 0 disables limiting.
	RateLimitRPS   int `json:"rate_limit_rps" env:"RATE_LIMIT_RPS"`
	RateLimitBurst int `json:"rate_limit_burst" env:"RATE_LIMIT_BURST"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `json:"max_body_bytes" env:"MAX_BODY_BYTES"`

	ShutdownTimeout time.Duration `json:"-" env:"SHUTDOWN_TIMEOUT"`

	// TLS is enabled when both files are set.
	TLSCertFile string `json:"tls_cert_file" env:"TLS_CERT_FILE"`
	TLSKeyFile  string `json:"tls_key_file" env:"TLS_KEY_FILE"`
}

// fileDurations carries duration settings of the JSON config file, which are
// written as strings ("72h").
type fileDurations struct {
	TokenTTL        string `json:"token_ttl"`
	ShutdownTimeout string `json:"shutdown_timeout"`
}

// TLSEnabled reports whether the server should listen with TLS.
func (o *Options) TLSEnabled() bool {
	return o.TLSCertFile != "" && o.TLSKeyFile != ""
}

// Parse reads configuration from os.Args, the config file and the
// environment. It terminates the process on invalid configuration.
func Parse() *Options {
	opts, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("error while loading config: %v", err)
	}
	return opts
}

// Load builds Options from command-line args, then overlays the JSON config
// file (if it exists) and finally environment variables. A .env file in the
// working directory is loaded into the environment first when present.
func Load(args []string) (*Options, error) {
	options := &Options{}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	fs.StringVar(&options.JWTSecret, "s", "", "secret used to sign tokens")
	fs.DurationVar(&options.TokenTTL, "t", 72*time.Hour, "token lifetime")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.IntVar(&options.RateLimitRPS, "rps", 100, "requests per second, 0 disables")
	fs.IntVar(&options.RateLimitBurst, "burst", 200, "rate limiter burst")
	fs.Int64Var(&options.MaxBodyBytes, "max-body", 1<<20, "maximum request body size in bytes")
	fs.DurationVar(&options.ShutdownTimeout, "shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	fs.StringVar(&options.TLSCertFile, "tls-cert", "", "TLS certificate file")
	fs.StringVar(&options.TLSKeyFile, "tls-key", "", "TLS key file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if err := loadFile(options); err != nil {
		return nil, err
	}

	if err := env.Parse(options); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

func loadFile(options *Options) error {
	if options.Config == "" {
		return nil
	}
	if _, err := os.Stat(options.Config); err != nil {
		return nil
	}

	data, err := os.ReadFile(options.Config)
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}
	if err := json.Unmarshal(data, options); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}

	var d fileDurations
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}
	if d.TokenTTL != "" {
		if options.TokenTTL, err = time.ParseDuration(d.TokenTTL); err != nil {
			return fmt.Errorf("token_ttl: %w", err)
		}
	}
	if d.ShutdownTimeout != "" {
		if options.ShutdownTimeout, err = time.ParseDuration(d.ShutdownTimeout); err != nil {
			return fmt.Errorf("shutdown_timeout: %w", err)
		}
	}
	return nil
}

// Validate checks that the options are usable by the server.
func (o *Options) Validate() error {
	if o.DatabaseDSN == "" {
		return errors.New("database DSN is required")
	}
	if o.JWTSecret == "" {
		return errors.New("JWT secret is required")
	}
	if o.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive, got %s", o.TokenTTL)
	}
	if (o.TLSCertFile == "") != (o.TLSKeyFile == "") {
		return errors.New("both TLS certificate and key files must be set")
	}
	return nil
}
