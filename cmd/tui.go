package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"salonctl/internal/shared"
	"salonctl/internal/ui"
)

// TUI launches the interactive terminal UI for booking an appointment.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: session store not initialized, run 'salonctl setup'", shared.ErrServiceUnavailable)
	}
	if r.flow == nil {
		return fmt.Errorf("%w: booking flow not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/salonctl-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.flow, r.store, r.config)
	p := tea.NewProgram(model)

	r.store.OnExpire(func() {
		p.Send(ui.SessionExpiredMsg{})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
