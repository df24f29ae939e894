package tui

import (
	"time"

	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Day     time.Time
	Theme   themes.Theme
	Ledger  string
	Ledgers []string
	Width   int
	Height  int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:   themes.Default,
		Ledgers: model.Ledgers,
		Ledger:  model.DefaultLedger(),
		Day:     time.Now(),
		Width:   80,
		Height:  24,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithLedger selects the ledger shown first.
func WithLedger(ledger string) Option {
	return func(c *Config) {
		c.Ledger = ledger
	}
}

// WithDay selects the day shown first.
func WithDay(day time.Time) Option {
	return func(c *Config) {
		c.Day = day
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithLedgers sets the ledgers tab cycles through.
func WithLedgers(ledgers []string) Option {
	return func(c *Config) {
		c.Ledgers = ledgers
	}
}
