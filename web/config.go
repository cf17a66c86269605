// ABOUTME: Server configuration loaded from SECWEEKLY_* environment variables.
// ABOUTME: Enforces security constraint: remote access requires auth token.
package web

import (
	"errors"
	"fmt"
	"net"

	"github.com/caarlos0/env/v11"
)

var (
	ErrRemoteWithoutToken = errors.New(
		"SECWEEKLY_ALLOW_REMOTE is true but SECWEEKLY_AUTH_TOKEN is not set; refusing to start without authentication",
	)
	ErrNonLoopbackBind = errors.New(
		"SECWEEKLY_BIND is a non-loopback address but SECWEEKLY_ALLOW_REMOTE is not true; set SECWEEKLY_ALLOW_REMOTE=true and SECWEEKLY_AUTH_TOKEN to allow remote access",
	)
)

// Config holds preview server configuration loaded from environment variables.
type Config struct {
	Bind        string `env:"SECWEEKLY_BIND" envDefault:"127.0.0.1:8270"`
	AllowRemote bool   `env:"SECWEEKLY_ALLOW_REMOTE" envDefault:"false"`
	AuthToken   string `env:"SECWEEKLY_AUTH_TOKEN"`
	DistDir     string `env:"SECWEEKLY_DIST" envDefault:"dist"`
	IndexPath   string `env:"SECWEEKLY_INDEX" envDefault:"dist/index.db"`
}

// ConfigFromEnv loads configuration from SECWEEKLY_* environment variables
// and validates the bind address against the remote-access policy.
func ConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the security policy on the bind address.
func (c *Config) Validate() error {
	if c.AllowRemote && c.AuthToken == "" {
		return ErrRemoteWithoutToken
	}

	// Refuse non-loopback binds unless explicitly opting into remote access.
	// Checks both IP literals and hostnames; only 127.0.0.0/8, ::1, and
	// "localhost" are considered safe.
	if !c.AllowRemote {
		if host, _, err := net.SplitHostPort(c.Bind); err == nil && host != "" {
			ip := net.ParseIP(host)
			switch {
			case ip != nil && ip.IsLoopback():
			case ip != nil:
				return fmt.Errorf("%w: SECWEEKLY_BIND=%s", ErrNonLoopbackBind, c.Bind)
			case host == "localhost":
			default:
				return fmt.Errorf("%w: SECWEEKLY_BIND=%s", ErrNonLoopbackBind, c.Bind)
			}
		}
	}

	return nil
}
