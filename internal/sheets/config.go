// Package sheets exports aggregation results to Google Sheets.
package sheets

import (
	"fmt"
	"os"
	"time"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TimeZone:      "America/Sao_Paulo",
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// LoadFromEnv loads the configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	c.ClientID = os.Getenv("PATRIMONIO_SHEETS_CLIENT_ID")
	c.ClientSecret = os.Getenv("PATRIMONIO_SHEETS_CLIENT_SECRET")
	c.RefreshToken = os.Getenv("PATRIMONIO_SHEETS_REFRESH_TOKEN")
	c.ServiceAccountPath = os.Getenv("PATRIMONIO_SHEETS_SERVICE_ACCOUNT_PATH")
	c.SpreadsheetID = os.Getenv("PATRIMONIO_SHEETS_SPREADSHEET_ID")
	c.SpreadsheetName = os.Getenv("PATRIMONIO_SHEETS_SPREADSHEET_NAME")

	return c.Validate()
}

// Validate checks that at least one authentication method is configured.
func (c *Config) Validate() error {
	if c.ServiceAccountPath == "" && (c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "") {
		return fmt.Errorf("missing Google Sheets authentication: provide either service account path or OAuth2 credentials")
	}

	if c.SpreadsheetName == "" {
		c.SpreadsheetName = "Patrimônio"
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}

	return nil
}
