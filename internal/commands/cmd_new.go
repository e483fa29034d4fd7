package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/steplock/internal/core/checklist"
	"github.com/hay-kot/steplock/internal/core/styles"
	"github.com/hay-kot/steplock/internal/steplock"
)

type NewCmd struct {
	flags *Flags
	app   *steplock.App

	// Command-specific flags
	deps []string
}

// NewNewCmd creates a new new command
func NewNewCmd(flags *Flags, app *steplock.App) *NewCmd {
	return &NewCmd{flags: flags, app: app}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Add a checklist item",
		UsageText: "steplock new [options] [title]",
		Description: `Adds a new item to the checklist.

Items can depend on other items with --dep. A dependent item stays hidden
until every one of its prerequisites is checked off. Dependencies are
referenced by item ID, ID prefix, or title.

When the title is omitted, an interactive form prompts for input.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "dep",
				Aliases:     []string{"d", "after"},
				Usage:       "prerequisite item (repeatable)",
				Destination: &cmd.deps,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NewCmd) run(_ context.Context, c *cli.Command) error {
	title := strings.Join(c.Args().Slice(), " ")

	if strings.TrimSpace(title) == "" {
		var err error
		title, err = cmd.runForm()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	depItems, err := resolveItems(cmd.app, cmd.deps)
	if err != nil {
		return err
	}

	depIDs := make([]string, 0, len(depItems))
	for _, d := range depItems {
		depIDs = append(depIDs, d.ID)
	}

	var item checklist.Item
	if len(depIDs) > 0 {
		item, err = cmd.app.Items.AddWithDependencies(title, depIDs)
	} else {
		item, err = cmd.app.Items.Add(title)
	}
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}

	out := c.Root().Writer
	fmt.Fprintf(out, "%s %s (%s)\n", styles.SuccessStyle.Render("Added"), item.Title, shortID(item.ID))

	if len(depItems) > 0 {
		names := make([]string, 0, len(depItems))
		for _, d := range depItems {
			names = append(names, d.Title)
		}
		fmt.Fprintf(out, "%s\n", styles.MutedStyle.Render("  waits for: "+strings.Join(names, ", ")))
	}

	return nil
}

func (cmd *NewCmd) runForm() (string, error) {
	var title string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Item title").
				Description("What needs to be done").
				Validate(validateTitle).
				Value(&title),
		),
	).WithTheme(styles.FormTheme()).Run()

	return title, err
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}
