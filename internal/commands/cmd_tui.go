package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/steplock/internal/steplock"
	"github.com/hay-kot/steplock/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *steplock.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *steplock.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Run executes the runner TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(_ context.Context, _ *cli.Command) error {
	m := tui.New(
		tui.Deps{Items: cmd.app.Items},
		tui.Opts{},
	)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
