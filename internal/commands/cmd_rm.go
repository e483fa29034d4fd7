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

type RmCmd struct {
	flags *Flags
	app   *steplock.App

	yes bool
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *steplock.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Delete an item",
		UsageText: "steplock rm [--yes] <item>...",
		Description: `Deletes one or more items. Items that depended on a deleted item keep
the reference; they stay hidden until the reference is edited away. The
command warns when a deletion leaves dependents behind.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		ShellComplete: ItemTitleCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(_ context.Context, c *cli.Command) error {
	refs := c.Args().Slice()
	if len(refs) == 0 {
		return fmt.Errorf("no item given; usage: steplock rm <item>...")
	}

	targets, err := resolveItems(cmd.app, refs)
	if err != nil {
		return err
	}

	if !cmd.yes {
		names := make([]string, 0, len(targets))
		for _, t := range targets {
			names = append(names, t.Title)
		}

		var confirmed bool
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s?", strings.Join(names, ", "))).
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

	out := c.Root().Writer
	for _, item := range targets {
		dependents := cmd.dependentsOf(item.ID, targets)

		if err := cmd.app.Items.Delete(item.ID); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		fmt.Fprintf(out, "%s %s\n", styles.ErrorStyle.Render("Deleted"), item.Title)

		if len(dependents) > 0 {
			fmt.Fprintf(out, "%s\n", styles.WarningStyle.Render(
				"  still waiting on it: "+strings.Join(dependents, ", ")+" (edit them to unblock)"))
		}
	}

	return nil
}

// dependentsOf lists titles of surviving items that reference id.
func (cmd *RmCmd) dependentsOf(id string, doomed []checklist.Item) []string {
	doomedIDs := make(map[string]struct{}, len(doomed))
	for _, d := range doomed {
		doomedIDs[d.ID] = struct{}{}
	}

	var titles []string
	for _, item := range cmd.app.Items.Items() {
		if _, gone := doomedIDs[item.ID]; gone {
			continue
		}
		for _, dep := range item.EffectiveDependencies() {
			if dep == id {
				titles = append(titles, item.Title)
				break
			}
		}
	}
	return titles
}
