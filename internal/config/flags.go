package config

import (
	"flag"
	"time"

	"github.com/avbelov/gamedeck/models"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-window window kind to start as (main, switcher, auth)
//	-prefill identifier pre-filled into the auth window's login form
//	-d database DSN (sqlite file path or postgres connection string)
//	-driver database driver (sqlite3 or pgx)
//	-c/-config json file path with configs
//	-token-sign-key session token signing key
//	-token-issuer session token issuer name
//	-token-duration session token duration (e.g., "720h")
//	-settle-delay pause before store writes during a switch (e.g., "300ms")
//	-staleness-bound max age of an unconsumed handoff token (e.g., "15s")
//	-auth-debounce ignore window for repeated switch requests to a logged-out account (e.g., "15s")
//	-bus-host loopback host the event listener binds to
//	-publish-timeout timeout of a single event delivery (e.g., "500ms")
//	-peer-ttl how long a silent window stays a delivery target (e.g., "30s")
//	-binary gamedeck executable spawned for new windows
//	-sweep-interval stale token / dead peer sweep period (e.g., "10s")
//	-refresh-interval background session view refresh period (e.g., "30s")
func ParseFlags() *StructuredConfig {
	var windowKind string
	var prefill string
	var databaseDSN string
	var databaseDriver string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var settleDelay time.Duration
	var stalenessBound time.Duration
	var authDebounce time.Duration
	var busHost string
	var publishTimeout time.Duration
	var peerTTL time.Duration
	var binaryPath string
	var sweepInterval time.Duration
	var refreshInterval time.Duration

	flag.StringVar(&windowKind, "window", "", "Window kind: main, switcher or auth")
	flag.StringVar(&prefill, "prefill", "", "Identifier pre-filled into the auth form")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver (sqlite3 or pgx)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Session token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Session token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Session token duration (e.g., 720h)")
	flag.DurationVar(&settleDelay, "settle-delay", 0, "Settle delay before switch writes (e.g., 300ms)")
	flag.DurationVar(&stalenessBound, "staleness-bound", 0, "Handoff token staleness bound (e.g., 15s)")
	flag.DurationVar(&authDebounce, "auth-debounce", 0, "Repeated switch request ignore window (e.g., 15s)")
	flag.StringVar(&busHost, "bus-host", "", "Event bus bind host")
	flag.DurationVar(&publishTimeout, "publish-timeout", 0, "Event delivery timeout (e.g., 500ms)")
	flag.DurationVar(&peerTTL, "peer-ttl", 0, "Bus peer TTL (e.g., 30s)")
	flag.StringVar(&binaryPath, "binary", "", "Executable spawned for new windows")
	flag.DurationVar(&sweepInterval, "sweep-interval", 0, "Sweep period (e.g., 10s)")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Session view refresh period (e.g., 30s)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:   tokenSignKey,
			TokenIssuer:    tokenIssuer,
			TokenDuration:  tokenDuration,
			SettleDelay:    settleDelay,
			StalenessBound: stalenessBound,
			AuthDebounce:   authDebounce,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Bus: Bus{
			BindHost:       busHost,
			PublishTimeout: publishTimeout,
			PeerTTL:        peerTTL,
		},
		Windows: Windows{
			BinaryPath: binaryPath,
			Kind:       models.WindowKind(windowKind),
			Prefill:    prefill,
		},
		Workers: Workers{
			SweepInterval:   sweepInterval,
			RefreshInterval: refreshInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
