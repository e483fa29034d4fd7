package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/steplock/internal/core/styles"
	"github.com/hay-kot/steplock/internal/steplock"
)

type ResetCmd struct {
	flags *Flags
	app   *steplock.App

	yes bool
}

// NewResetCmd creates a new reset command
func NewResetCmd(flags *Flags, app *steplock.App) *ResetCmd {
	return &ResetCmd{flags: flags, app: app}
}

// Register adds the reset command to the application
func (cmd *ResetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "reset",
		Usage:     "Uncheck every item",
		UsageText: "steplock reset [--yes]",
		Description: `Clears all completion state so the checklist can be run again from the
top. Items and their dependencies are untouched.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ResetCmd) run(_ context.Context, c *cli.Command) error {
	stats := cmd.app.Items.Stats()
	if stats.Completed == 0 {
		fmt.Fprintln(c.Root().Writer, "Nothing checked off; nothing to reset.")
		return nil
	}

	if !cmd.yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Uncheck %d item(s)?", stats.Completed)).
			Value(&confirmed).
			WithTheme(styles.FormTheme()).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			return nil
		}
	}

	cmd.app.Items.ResetRunner()
	fmt.Fprintf(c.Root().Writer, "%s all items unchecked\n", styles.SuccessStyle.Render("Reset:"))
	return nil
}
