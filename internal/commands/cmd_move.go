package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/steplock/internal/core/styles"
	"github.com/hay-kot/steplock/internal/steplock"
)

type MoveCmd struct {
	flags *Flags
	app   *steplock.App
}

// NewMoveCmd creates a new move command
func NewMoveCmd(flags *Flags, app *steplock.App) *MoveCmd {
	return &MoveCmd{flags: flags, app: app}
}

// Register adds the move command to the application
func (cmd *MoveCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "move",
		Usage:     "Move an item to a new position",
		UsageText: "steplock move <item> <position>",
		Description: `Moves an item to a 1-based position in the stored order. Ordering is
purely cosmetic; it never changes which items are visible.`,
		ShellComplete: ItemTitleCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *MoveCmd) run(_ context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("usage: steplock move <item> <position>")
	}

	item, err := resolveItem(cmd.app, c.Args().Get(0))
	if err != nil {
		return err
	}

	items := cmd.app.Items.Items()

	pos, err := strconv.Atoi(c.Args().Get(1))
	if err != nil || pos < 1 || pos > len(items) {
		return fmt.Errorf("position must be a number between 1 and %d", len(items))
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ID == item.ID {
			continue
		}
		ids = append(ids, it.ID)
	}
	idx := pos - 1
	ids = append(ids[:idx], append([]string{item.ID}, ids[idx:]...)...)

	if err := cmd.app.Items.Reorder(ids); err != nil {
		return fmt.Errorf("reorder: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "%s %s to position %d\n", styles.SuccessStyle.Render("Moved"), item.Title, pos)
	return nil
}
