package sheets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "valid oauth config",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
		},
		{
			name: "valid service account config",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      3,
				RetryDelay:         time.Second,
			},
		},
		{
			name: "missing auth",
			config: Config{
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "partial oauth credentials",
			config: Config{
				ClientID:      "test-client",
				RefreshToken:  "test-token",
				BatchSize:     100,
				RetryAttempts: 3,
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "multiple auth methods",
			config: Config{
				ClientID:           "test-client",
				ClientSecret:       "test-secret",
				RefreshToken:       "test-token",
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
			wantErr: true,
			errMsg:  "multiple authentication methods configured",
		},
		{
			name: "invalid batch size",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          0,
			},
			wantErr: true,
			errMsg:  "batch size must be positive",
		},
		{
			name: "negative retry attempts",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      -1,
			},
			wantErr: true,
			errMsg:  "retry attempts cannot be negative",
		},
		{
			name: "negative retry delay",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryDelay:         -1 * time.Second,
			},
			wantErr: true,
			errMsg:  "retry delay cannot be negative",
		},
		{
			name: "unknown time zone",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				TimeZone:           "Mars/Olympus",
			},
			wantErr: true,
			errMsg:  "invalid time zone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_LoadFromViper(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "from-env")

	v := viper.New()
	v.Set("sheets.client_id", "from-config")
	v.Set("sheets.refresh_token", "refresh")
	v.Set("sheets.spreadsheet_name", "Family Book")
	v.Set("sheets.batch_size", 50)
	v.Set("sheets.formatting", false)

	cfg := DefaultConfig()
	cfg.LoadFromViper(v)

	assert.Equal(t, "from-config", cfg.ClientID)
	assert.Equal(t, "from-env", cfg.ClientSecret)
	assert.Equal(t, "Family Book", cfg.SpreadsheetName)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.False(t, cfg.EnableFormatting)
	assert.Equal(t, 3, cfg.RetryAttempts, "unset keys keep defaults")
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromViperTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheets-token.json")
	require.NoError(t, SaveToken(path, &oauth2.Token{RefreshToken: "saved-refresh"}))

	v := viper.New()
	v.Set("sheets.token_file", path)

	cfg := DefaultConfig()
	cfg.LoadFromViper(v)
	assert.Equal(t, "saved-refresh", cfg.RefreshToken)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
