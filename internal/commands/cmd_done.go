package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/steplock/internal/core/checklist"
	"github.com/hay-kot/steplock/internal/core/styles"
	"github.com/hay-kot/steplock/internal/steplock"
)

type DoneCmd struct {
	flags *Flags
	app   *steplock.App
}

// NewDoneCmd creates a new done command
func NewDoneCmd(flags *Flags, app *steplock.App) *DoneCmd {
	return &DoneCmd{flags: flags, app: app}
}

// Register adds the done command to the application
func (cmd *DoneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "done",
		Usage:     "Toggle items on or off",
		UsageText: "steplock done <item>...",
		Description: `Toggles completion for one or more items, referenced by ID, ID prefix,
or title. Checking an item may reveal items that depend on it; unchecking
hides them again without losing their own completion state.`,
		ShellComplete: ItemTitleCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *DoneCmd) run(_ context.Context, c *cli.Command) error {
	refs := c.Args().Slice()
	if len(refs) == 0 {
		return fmt.Errorf("no item given; usage: steplock done <item>...")
	}

	targets, err := resolveItems(cmd.app, refs)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	for _, item := range targets {
		if cmd.app.Items.Toggle(item.ID) {
			fmt.Fprintf(out, "%s %s\n", styles.SuccessStyle.Render(styles.IconDone), item.Title)
		} else {
			fmt.Fprintf(out, "%s %s\n", styles.IconPending, item.Title)
		}
	}

	// Surface anything the toggles just revealed.
	res := cmd.app.Items.Resolve()
	completed := cmd.app.Items.Completed()
	for _, item := range cmd.app.Items.Items() {
		if !res.IsVisible(item.ID) || completed.Contains(item.ID) {
			continue
		}
		if dependsOnAny(item.EffectiveDependencies(), targets) {
			fmt.Fprintf(out, "%s\n", styles.MutedStyle.Render("  unlocked: "+item.Title))
		}
	}

	return nil
}

func dependsOnAny(deps []string, targets []checklist.Item) bool {
	for _, dep := range deps {
		for _, t := range targets {
			if dep == t.ID {
				return true
			}
		}
	}
	return false
}
