// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Belov

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// shell invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.Driver != "sqlite3" && cfg.Storage.DB.Driver != "pgx" {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.App.StalenessBound <= 0 {
		return fmt.Errorf("%w: staleness bound must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.AuthDebounce <= 0 {
		return fmt.Errorf("%w: auth debounce must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.SettleDelay < 0 {
		return fmt.Errorf("%w: settle delay must not be negative", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Bus.PublishTimeout <= 0 || cfg.Bus.PeerTTL <= 0 {
		return fmt.Errorf("%w: publish timeout and peer TTL must be positive", ErrInvalidBusConfigs)
	}

	if !cfg.Windows.Kind.Valid() {
		return fmt.Errorf("%w: unknown window kind %q", ErrInvalidWindowConfigs, cfg.Windows.Kind)
	}

	if cfg.Workers.SweepInterval <= 0 || cfg.Workers.RefreshInterval <= 0 {
		return fmt.Errorf("%w: sweep and refresh intervals must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}
