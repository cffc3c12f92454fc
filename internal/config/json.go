package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/avbelov/gamedeck/models"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
		SettleDelay    Duration `json:"settle_delay"`
		StalenessBound Duration `json:"staleness_bound"`
		AuthDebounce   Duration `json:"auth_debounce"`
		Version        string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Bus struct {
		BindHost          string   `json:"bind_host"`
		PublishTimeout    Duration `json:"publish_timeout"`
		PeerTTL           Duration `json:"peer_ttl"`
		HeartbeatInterval Duration `json:"heartbeat_interval"`
	} `json:"bus,omitempty"`

	Windows struct {
		BinaryPath string `json:"binary_path"`
	} `json:"windows,omitempty"`

	Workers struct {
		SweepInterval   Duration `json:"sweep_interval"`
		RefreshInterval Duration `json:"refresh_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:   jsonCfg.App.TokenSignKey,
			TokenIssuer:    jsonCfg.App.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.App.TokenDuration),
			SettleDelay:    time.Duration(jsonCfg.App.SettleDelay),
			StalenessBound: time.Duration(jsonCfg.App.StalenessBound),
			AuthDebounce:   time.Duration(jsonCfg.App.AuthDebounce),
			Version:        jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Bus: Bus{
			BindHost:          jsonCfg.Bus.BindHost,
			PublishTimeout:    time.Duration(jsonCfg.Bus.PublishTimeout),
			PeerTTL:           time.Duration(jsonCfg.Bus.PeerTTL),
			HeartbeatInterval: time.Duration(jsonCfg.Bus.HeartbeatInterval),
		},
		Windows: Windows{
			BinaryPath: jsonCfg.Windows.BinaryPath,
			Kind:       models.WindowKind(""),
		},
		Workers: Workers{
			SweepInterval:   time.Duration(jsonCfg.Workers.SweepInterval),
			RefreshInterval: time.Duration(jsonCfg.Workers.RefreshInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
