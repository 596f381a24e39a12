package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/the-rent-must-flow/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 10, cfg.Dashboard.TopN)
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_FromYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
logging:
  level: debug
  format: json
dashboard:
  top_n: 25
export:
  dir: /tmp/rent-exports
server:
  addr: 127.0.0.1:9090
  max_upload_bytes: 2048
  read_timeout: 5s
`)))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 25, cfg.Dashboard.TopN)
	assert.Equal(t, "/tmp/rent-exports", cfg.Export.Dir)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, int64(2048), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		wantErr error
		values  map[string]any
		name    string
	}{
		{name: "unknown level", values: map[string]any{"logging.level": "loud"}, wantErr: common.ErrInvalidConfig},
		{name: "unknown format", values: map[string]any{"logging.format": "xml"}, wantErr: common.ErrInvalidConfig},
		{name: "zero top n", values: map[string]any{"dashboard.top_n": 0}, wantErr: common.ErrInvalidConfig},
		{name: "empty addr", values: map[string]any{"server.addr": ""}, wantErr: common.ErrMissingConfig},
		{name: "no upload room", values: map[string]any{"server.max_upload_bytes": 0}, wantErr: common.ErrInvalidConfig},
		{name: "negative timeout", values: map[string]any{"server.read_timeout": "-1s"}, wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.values {
				v.Set(k, val)
			}
			_, err := Load(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("RENT_TEST_DOTENV=from-file\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("RENT_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("RENT_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "")

	t.Run("nothing configured", func(t *testing.T) {
		_, err := LoadSheetsConfig(viper.New())
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})

	t.Run("viper keys", func(t *testing.T) {
		v := viper.New()
		v.Set("sheets.service_account_path", "/keys/sa.json")
		v.Set("sheets.spreadsheet_id", "abc123")
		v.Set("sheets.enable_formatting", false)

		cfg, err := LoadSheetsConfig(v)
		require.NoError(t, err)
		assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, "abc123", cfg.SpreadsheetID)
		assert.Equal(t, "Tenant Analysis", cfg.SpreadsheetName)
		assert.False(t, cfg.EnableFormatting)
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "client")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "secret")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "refresh")

		cfg, err := LoadSheetsConfig(viper.New())
		require.NoError(t, err)
		assert.Equal(t, "client", cfg.ClientID)
		assert.True(t, cfg.EnableFormatting)
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("RENT_TEST_DIR", "/data")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "exports"), ExpandPath("~/exports"))
	assert.Equal(t, "/data/exports", ExpandPath("$RENT_TEST_DIR/exports"))
}
