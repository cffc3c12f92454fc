package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid account store settings
	// (for example, empty DSN or unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, non-positive staleness bound or token duration).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidBusConfigs indicates invalid event-bus settings
	// (for example, non-positive publish timeout or peer TTL).
	ErrInvalidBusConfigs = errors.New("invalid bus configuration")
	// ErrInvalidWindowConfigs indicates invalid window settings
	// (for example, an unknown window kind).
	ErrInvalidWindowConfigs = errors.New("invalid window configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sweep interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
