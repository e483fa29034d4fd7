package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/steplock/internal/core/styles"
	"github.com/hay-kot/steplock/internal/steplock"
	"github.com/hay-kot/steplock/pkg/iojson"
)

type ExportCmd struct {
	flags *Flags
	app   *steplock.App

	output string
	stdout bool
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *steplock.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export the checklist as JSON",
		UsageText: "steplock export [--output FILE | --stdout]",
		Description: `Writes a snapshot of all items and completion state as JSON. The output
of export can be fed back to import unchanged.

Without flags, a date-stamped file is written to the current directory.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output file path",
				Destination: &cmd.output,
			},
			&cli.BoolFlag{
				Name:        "stdout",
				Usage:       "write to stdout instead of a file",
				Destination: &cmd.stdout,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(_ context.Context, c *cli.Command) error {
	snap := cmd.app.Items.Export()

	if cmd.stdout {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, snap)
	}

	path := cmd.output
	if path == "" {
		path = fmt.Sprintf("checklist-%s.json", time.Now().Format("2006-01-02"))
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "%s %d item(s) to %s\n", styles.SuccessStyle.Render("Exported"), len(snap.Items), path)
	return nil
}
