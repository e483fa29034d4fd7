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
	"github.com/hay-kot/steplock/internal/data/stores"
	"github.com/hay-kot/steplock/internal/steplock"
)

type EditCmd struct {
	flags *Flags
	app   *steplock.App

	// Command-specific flags
	title  string
	deps   []string
	noDeps bool
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *steplock.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Edit an item's title or dependencies",
		UsageText: "steplock edit [options] <item>",
		Description: `Edits an existing item. With --dep the full dependency set is replaced;
repeat the flag to list every prerequisite. Use --no-deps to make the item
independent. Without flags an interactive form pre-filled with the current
values is shown.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "new title",
				Destination: &cmd.title,
			},
			&cli.StringSliceFlag{
				Name:        "dep",
				Aliases:     []string{"d", "deps"},
				Usage:       "prerequisite item, replaces the whole set (repeatable)",
				Destination: &cmd.deps,
			},
			&cli.BoolFlag{
				Name:        "no-deps",
				Usage:       "remove all dependencies",
				Destination: &cmd.noDeps,
			},
		},
		ShellComplete: ItemTitleCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(_ context.Context, c *cli.Command) error {
	ref := c.Args().First()
	if ref == "" {
		return fmt.Errorf("no item given; usage: steplock edit <item>")
	}
	if cmd.noDeps && len(cmd.deps) > 0 {
		return fmt.Errorf("--no-deps and --dep are mutually exclusive")
	}

	item, err := resolveItem(cmd.app, ref)
	if err != nil {
		return err
	}

	patch := stores.Patch{}

	if cmd.title == "" && len(cmd.deps) == 0 && !cmd.noDeps {
		patch, err = cmd.runForm(item)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	} else {
		if cmd.title != "" {
			patch.Title = &cmd.title
		}
		if cmd.noDeps {
			empty := []string{}
			patch.Dependencies = &empty
		}
		if len(cmd.deps) > 0 {
			depItems, err := resolveItems(cmd.app, cmd.deps)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(depItems))
			for _, d := range depItems {
				ids = append(ids, d.ID)
			}
			patch.Dependencies = &ids
		}
	}

	updated, err := cmd.app.Items.Update(item.ID, patch)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	out := c.Root().Writer
	fmt.Fprintf(out, "%s %s (%s)\n", styles.SuccessStyle.Render("Updated"), updated.Title, shortID(updated.ID))

	if deps := updated.EffectiveDependencies(); len(deps) > 0 {
		names := cmd.depTitles(deps)
		fmt.Fprintf(out, "%s\n", styles.MutedStyle.Render("  waits for: "+strings.Join(names, ", ")))
	}

	return nil
}

// runForm edits title and dependencies interactively. Dependency options
// exclude the item itself so a self-reference cannot be picked.
func (cmd *EditCmd) runForm(item checklist.Item) (stores.Patch, error) {
	title := item.Title
	selected := item.EffectiveDependencies()

	var options []huh.Option[string]
	for _, other := range cmd.app.Items.Items() {
		if other.ID == item.ID {
			continue
		}
		options = append(options, huh.NewOption(other.Title, other.ID))
	}

	group := []huh.Field{
		huh.NewInput().
			Title("Title").
			Validate(validateTitle).
			Value(&title),
	}
	if len(options) > 0 {
		group = append(group, huh.NewMultiSelect[string]().
			Title("Depends on").
			Description("Item stays hidden until all of these are done").
			Options(options...).
			Value(&selected))
	}

	err := huh.NewForm(huh.NewGroup(group...)).
		WithTheme(styles.FormTheme()).
		Run()
	if err != nil {
		return stores.Patch{}, err
	}

	if selected == nil {
		selected = []string{}
	}

	return stores.Patch{Title: &title, Dependencies: &selected}, nil
}

func (cmd *EditCmd) depTitles(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if dep, err := cmd.app.Items.Get(id); err == nil {
			names = append(names, dep.Title)
		} else {
			names = append(names, shortID(id)+"?")
		}
	}
	return names
}
