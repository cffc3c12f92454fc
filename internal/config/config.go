// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Belov

package config

import (
	"time"

	"github.com/avbelov/gamedeck/models"
)

// StructuredConfig is the top-level configuration container for the
// gamedeck shell. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, an optional
// JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as session-token
	// parameters and the switch-protocol timing knobs.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the durable account store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Bus holds loopback event-bus settings shared by all windows.
	Bus Bus `envPrefix:"BUS_"`

	// Windows holds settings of the window coordinator and the runtime
	// parameters the coordinator passes to spawned window processes.
	Windows Windows `envPrefix:"WINDOWS_"`

	// Workers holds configuration for background maintenance workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control the session
// token lifecycle and the timing of the cross-window switch protocol.
type App struct {
	// TokenSignKey is the secret key used to sign and verify resumable
	// session tokens. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued session
	// token and validated when a session is restored.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a resumable session token remains
	// valid after issuance (e.g. "720h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// SettleDelay is the pause between showing the switching visual and
	// starting the store writes, letting the loading surface render first.
	// A UX tuning knob, not a correctness requirement.
	// Env: APP_SETTLE_DELAY
	SettleDelay time.Duration `env:"SETTLE_DELAY"`

	// StalenessBound is the maximum age of an unconsumed handoff token.
	// Older tokens are discarded silently on the next observation.
	// Env: APP_STALENESS_BOUND
	StalenessBound time.Duration `env:"STALENESS_BOUND"`

	// AuthDebounce is how long repeated switch requests to a logged-out
	// account are ignored while its auth window is opening.
	// Env: APP_AUTH_DEBOUNCE
	AuthDebounce time.Duration `env:"AUTH_DEBOUNCE"`

	// Version is the semantic version string of the running shell.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the durable account store shared by
// all window processes.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the account store backend.
type DB struct {
	// Driver selects the database driver: "sqlite3" for the default
	// per-installation store, "pgx" for a shared multi-seat store.
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the Data Source Name: a file path for sqlite3 or a
	// PostgreSQL connection string for pgx.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Bus holds settings of the loopback event bus every window participates in.
type Bus struct {
	// BindHost is the loopback host the event listener binds to; the
	// port is always ephemeral.
	// Env: BUS_BIND_HOST
	BindHost string `env:"BIND_HOST"`

	// PublishTimeout bounds a single fire-and-forget delivery attempt.
	// Env: BUS_PUBLISH_TIMEOUT
	PublishTimeout time.Duration `env:"PUBLISH_TIMEOUT"`

	// PeerTTL is how long a registered window stays eligible for
	// deliveries without a heartbeat before being pruned.
	// Env: BUS_PEER_TTL
	PeerTTL time.Duration `env:"PEER_TTL"`

	// HeartbeatInterval is how often a window refreshes its peer row.
	// Env: BUS_HEARTBEAT_INTERVAL
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL"`
}

// Windows holds window-coordinator settings plus the runtime parameters a
// spawned window process receives from its parent.
type Windows struct {
	// BinaryPath is the gamedeck executable the coordinator spawns for
	// new windows. Empty means "the currently running executable".
	// Env: WINDOWS_BINARY_PATH
	BinaryPath string `env:"BINARY_PATH"`

	// Kind is the window kind this process was started as.
	// Env: WINDOWS_KIND
	Kind models.WindowKind `env:"KIND"`

	// Prefill is the identifier pre-filled into the auth window's login
	// form when a slow-path switch routes the user to re-authentication.
	// Env: WINDOWS_PREFILL
	Prefill string `env:"PREFILL"`
}

// Workers holds configuration for background maintenance workers.
type Workers struct {
	// SweepInterval is how often stale handoff tokens and dead bus peers
	// are swept. Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`

	// RefreshInterval is how often a window re-syncs its session view
	// with the store, backstopping missed bus events.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// GetConfig loads, merges, and validates the shell configuration from all
// available sources in the following priority order (earlier sources win for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaults returns the built-in fallback configuration merged in last, so a
// bare `gamedeck` invocation works against a local SQLite store.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:    "gamedeck",
			TokenDuration:  720 * time.Hour,
			SettleDelay:    300 * time.Millisecond,
			StalenessBound: 15 * time.Second,
			AuthDebounce:   15 * time.Second,
		},
		Storage: Storage{
			DB: DB{
				Driver: "sqlite3",
				DSN:    "gamedeck.db",
			},
		},
		Bus: Bus{
			BindHost:          "127.0.0.1",
			PublishTimeout:    500 * time.Millisecond,
			PeerTTL:           30 * time.Second,
			HeartbeatInterval: 10 * time.Second,
		},
		Windows: Windows{
			Kind: models.WindowMain,
		},
		Workers: Workers{
			SweepInterval:   10 * time.Second,
			RefreshInterval: 30 * time.Second,
		},
	}
}
