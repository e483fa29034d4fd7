package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
)

type DocCmd struct {
	flags *Flags
	raw   bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Show the dependencies guide",
		Description: `Renders documentation on how dependency-gated checklists work.

Use --raw to print plain markdown, e.g. for piping into another tool.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print plain markdown without terminal rendering",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DocCmd) run(_ context.Context, c *cli.Command) error {
	w := c.Root().Writer

	if cmd.raw {
		_, err := fmt.Fprint(w, dependenciesGuide)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := r.Render(dependenciesGuide)
	if err != nil {
		return fmt.Errorf("render guide: %w", err)
	}

	_, err = fmt.Fprint(w, rendered)
	return err
}

const dependenciesGuide = `# Steplock Dependencies Guide

## The model

Every item can name other items as **prerequisites**. An item is *visible*
only when all of its prerequisites are checked off. Independent items are
always visible.

` + "```" + `
steplock new "Send invites" --dep "Pick a date"
` + "```" + `

"Send invites" stays hidden until "Pick a date" is done.

## Rules worth knowing

- **All prerequisites must be done.** An item with three prerequisites
  appears only after all three are checked.
- **Only direct prerequisites count.** Checking an item can reveal its
  dependents even when the item itself was hidden at the time.
- **Unchecking hides again.** Dependents disappear, but their own checkmarks
  are kept and come back when the chain is re-completed.
- **Deleting a prerequisite does not delete dependents.** They keep the
  dangling reference and stay hidden until you edit it away:

` + "```" + `
steplock edit "Send invites" --no-deps
` + "```" + `

- **Cycles never resolve.** If A waits for B and B waits for A, neither can
  ever appear. Steplock warns when a save creates a cycle; break it with
  'edit'.

## Everyday flow

| Command | Description |
|---------|-------------|
| ` + "`steplock`" + ` | Open the interactive runner |
| ` + "`steplock new TITLE -d DEP`" + ` | Add an item with a prerequisite |
| ` + "`steplock ls --all`" + ` | See everything, including hidden items |
| ` + "`steplock done ITEM`" + ` | Toggle an item |
| ` + "`steplock gen \"plan a launch\"`" + ` | Draft items with the generation service |
| ` + "`steplock gen steps ITEM`" + ` | Break an item into gated sub-steps |
| ` + "`steplock export`" + ` | Snapshot to JSON |
| ` + "`steplock reset`" + ` | Uncheck everything for a fresh run |

Items can be referenced by title, ID, or any unique ID prefix.
`
