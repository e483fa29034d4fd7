package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/steplock/internal/core/checklist"
	"github.com/hay-kot/steplock/internal/core/styles"
	"github.com/hay-kot/steplock/internal/steplock"
	"github.com/hay-kot/steplock/pkg/iojson"
)

type ImportCmd struct {
	flags *Flags
	app   *steplock.App

	reader iojson.FileReader[checklist.Snapshot]
	yes    bool
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *steplock.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Replace the checklist from a JSON snapshot",
		UsageText: "steplock import [-f FILE]",
		Description: `Replaces all items and completion state with the contents of a snapshot
previously produced by export. Reads stdin when no file is given.

A malformed snapshot is rejected and the current checklist is left intact.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
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

func (cmd *ImportCmd) run(_ context.Context, c *cli.Command) error {
	snap, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	// Prompting is only possible when stdin is still a terminal, i.e. the
	// snapshot came from a file rather than a pipe.
	current := cmd.app.Items.Stats()
	if current.Total > 0 && !cmd.yes && term.IsTerminal(int(os.Stdin.Fd())) {
		var confirmed bool
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Replace the current %d item(s) with %d imported item(s)?", current.Total, len(snap.Items))).
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

	if err := cmd.app.Items.Import(snap); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "%s %d item(s)\n", styles.SuccessStyle.Render("Imported"), len(snap.Items))
	return nil
}
