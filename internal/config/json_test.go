package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestParseJSON_AllFields(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{
			"token_sign_key":  "json_secret",
			"token_issuer":    "json_issuer",
			"token_duration":  "2h",
			"settle_delay":    "100ms",
			"staleness_bound": "30s",
			"version":         "1.2.3",
		},
		"storage": map[string]any{
			"db": map[string]any{
				"driver": "sqlite3",
				"dsn":    "/tmp/gamedeck.db",
			},
		},
		"bus": map[string]any{
			"bind_host":       "127.0.0.1",
			"publish_timeout": "400ms",
			"peer_ttl":        "25s",
		},
		"windows": map[string]any{
			"binary_path": "/usr/local/bin/gamedeck",
		},
		"workers": map[string]any{
			"sweep_interval": "8s",
		},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "json_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 100*time.Millisecond, cfg.App.SettleDelay)
	assert.Equal(t, 30*time.Second, cfg.App.StalenessBound)
	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "/tmp/gamedeck.db", cfg.Storage.DB.DSN)

	assert.Equal(t, "127.0.0.1", cfg.Bus.BindHost)
	assert.Equal(t, 400*time.Millisecond, cfg.Bus.PublishTimeout)
	assert.Equal(t, 25*time.Second, cfg.Bus.PeerTTL)

	assert.Equal(t, "/usr/local/bin/gamedeck", cfg.Windows.BinaryPath)
	assert.Equal(t, 8*time.Second, cfg.Workers.SweepInterval)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON("/no/such/file.json")
	require.Error(t, err)
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = parseJSON(f.Name())
	require.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "string duration", input: `"45s"`, expected: 45 * time.Second},
		{name: "numeric nanoseconds", input: `1000000000`, expected: time.Second},
		{name: "invalid string", input: `"bogus"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(out))
}
