// Command docgen generates CLI reference documentation from the steplock
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/steplock/internal/commands"
	"github.com/hay-kot/steplock/internal/steplock"
)

func main() {
	flags := &commands.Flags{}
	app := &steplock.App{}

	root := &cli.Command{
		Name:      "steplock",
		Usage:     "A checklist where items unlock as their prerequisites complete",
		UsageText: "steplock [global options] command [command options]",
		Description: `Steplock manages dependency-gated checklists: items can name other items
as prerequisites, and stay hidden until every prerequisite is checked off.

Run 'steplock' with no arguments to open the interactive runner.
Run 'steplock new' to add items, 'steplock doc' for the dependencies guide.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("STEPLOCK_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (defaults to <data-dir>/steplock.log)",
				Sources: cli.EnvVars("STEPLOCK_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("STEPLOCK_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("STEPLOCK_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
		},
	}

	root = commands.NewNewCmd(flags, app).Register(root)
	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewDoneCmd(flags, app).Register(root)
	root = commands.NewEditCmd(flags, app).Register(root)
	root = commands.NewMoveCmd(flags, app).Register(root)
	root = commands.NewRmCmd(flags, app).Register(root)
	root = commands.NewResetCmd(flags, app).Register(root)
	root = commands.NewGenCmd(flags, app).Register(root)
	root = commands.NewExportCmd(flags, app).Register(root)
	root = commands.NewImportCmd(flags, app).Register(root)
	root = commands.NewDocCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
