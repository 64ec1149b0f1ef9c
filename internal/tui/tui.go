package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the configure-toolbar dialog and blocks until it is closed.
func Run(ctx context.Context, opts Options) error {
	if opts.Session == nil {
		return errors.New("tui: missing session")
	}
	applyColorProfilePreference()
	applyGlyphPreference()
	m := newDialogModel(ctx, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
