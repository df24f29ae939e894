package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the browser and blocks until the user quits or ctx is done.
func Run(ctx context.Context, store Store, opts ...Option) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}

	p := tea.NewProgram(New(store, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
