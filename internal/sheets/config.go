// Package sheets exports a ledger's month report to Google Sheets.
package sheets

import (
	"fmt"
	"os"
	"time"

	"github.com/Veraticus/pocketbook/internal/config"
	"github.com/spf13/viper"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	TokenFile          string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  "Pocket Report",
		EnableFormatting: true,
		TimeZone:         "UTC",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// LoadFromViper fills c from the sheets.* keys, falling back to the
// GOOGLE_SHEETS_* environment variables for credentials. A refresh token
// saved by `pocket auth sheets` is picked up from sheets.token_file.
func (c *Config) LoadFromViper(v *viper.Viper) {
	c.ClientID = firstNonEmpty(v.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID"))
	c.ClientSecret = firstNonEmpty(v.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"))
	c.RefreshToken = firstNonEmpty(v.GetString("sheets.refresh_token"), os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN"))
	c.TokenFile = v.GetString("sheets.token_file")
	if c.RefreshToken == "" && c.TokenFile != "" {
		if token, err := LoadToken(config.ExpandPath(c.TokenFile)); err == nil {
			c.RefreshToken = token.RefreshToken
		}
	}
	c.ServiceAccountPath = firstNonEmpty(v.GetString("sheets.service_account_path"), os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"))
	c.SpreadsheetID = firstNonEmpty(v.GetString("sheets.spreadsheet_id"), os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))

	if name := v.GetString("sheets.spreadsheet_name"); name != "" {
		c.SpreadsheetName = name
	}
	if tz := v.GetString("sheets.timezone"); tz != "" {
		c.TimeZone = tz
	}
	if v.IsSet("sheets.batch_size") {
		c.BatchSize = v.GetInt("sheets.batch_size")
	}
	if v.IsSet("sheets.retry_attempts") {
		c.RetryAttempts = v.GetInt("sheets.retry_attempts")
	}
	if v.IsSet("sheets.retry_delay") {
		c.RetryDelay = v.GetDuration("sheets.retry_delay")
	}
	if v.IsSet("sheets.formatting") {
		c.EnableFormatting = v.GetBool("sheets.formatting")
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("no authentication method configured")
	}

	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("multiple authentication methods configured; use either OAuth2 or service account")
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts cannot be negative")
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative")
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
