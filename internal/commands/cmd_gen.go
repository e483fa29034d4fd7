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
	"github.com/hay-kot/steplock/internal/core/taskgen"
	"github.com/hay-kot/steplock/internal/steplock"
)

type GenCmd struct {
	flags *Flags
	app   *steplock.App

	// Command-specific flags
	pick bool
}

// NewGenCmd creates a new gen command
func NewGenCmd(flags *Flags, app *steplock.App) *GenCmd {
	return &GenCmd{flags: flags, app: app}
}

// Register adds the gen command to the application
func (cmd *GenCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "gen",
		Usage:     "Generate checklist items from a prompt",
		UsageText: "steplock gen [--pick] <prompt>",
		Description: `Asks the configured generation service to draft checklist items for a
natural-language request and appends them to the checklist. Generated
items are independent; wire up dependencies afterwards with 'edit'.

Use --pick to review the drafts and choose which ones to keep.

Requires an API key in the environment variable named by
generator.api_key_env in the config (default STEPLOCK_API_KEY).`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "pick",
				Aliases:     []string{"p"},
				Usage:       "choose which drafted items to keep",
				Destination: &cmd.pick,
			},
		},
		Action: cmd.runGenerate,
		Commands: []*cli.Command{
			cmd.stepsCmd(),
			cmd.rewriteCmd(),
		},
	})

	return app
}

func (cmd *GenCmd) runGenerate(ctx context.Context, c *cli.Command) error {
	prompt := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("no prompt given; usage: steplock gen <prompt>")
	}

	out := c.Root().Writer

	if cmd.pick {
		titles, err := cmd.app.Gen.Suggest(ctx, prompt)
		if err != nil {
			return genError(err)
		}

		keep, err := cmd.pickTitles(titles)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("pick: %w", err)
		}
		if len(keep) == 0 {
			fmt.Fprintln(out, "Nothing selected; checklist unchanged.")
			return nil
		}

		added, err := cmd.app.Gen.AddTitles(keep)
		if err != nil {
			return genError(err)
		}
		cmd.printAdded(c, added)
		return nil
	}

	added, err := cmd.app.Gen.Generate(ctx, prompt)
	if err != nil {
		return genError(err)
	}
	cmd.printAdded(c, added)
	return nil
}

func (cmd *GenCmd) stepsCmd() *cli.Command {
	return &cli.Command{
		Name:      "steps",
		Usage:     "Break an item into dependent sub-steps",
		UsageText: "steplock gen steps <item>",
		Description: `Drafts sub-steps for an existing item. Each sub-step is added as a new
item that depends on the original, so they surface only after the
original is checked off.`,
		ShellComplete: ItemTitleCompleter(cmd.app),
		Action: func(ctx context.Context, c *cli.Command) error {
			ref := c.Args().First()
			if ref == "" {
				return fmt.Errorf("no item given; usage: steplock gen steps <item>")
			}

			item, err := resolveItem(cmd.app, ref)
			if err != nil {
				return err
			}

			added, err := cmd.app.Gen.BreakDown(ctx, item.ID)
			if err != nil {
				return genError(err)
			}

			out := c.Root().Writer
			fmt.Fprintf(out, "%s %d sub-step(s) under %s\n", styles.SuccessStyle.Render("Added"), len(added), item.Title)
			for _, sub := range added {
				fmt.Fprintf(out, "  %s %s\n", styles.IconBlocked, styles.MutedStyle.Render(sub.Title))
			}
			return nil
		},
	}
}

func (cmd *GenCmd) rewriteCmd() *cli.Command {
	return &cli.Command{
		Name:          "rewrite",
		Usage:         "Rewrite an item's title to be clearer",
		UsageText:     "steplock gen rewrite <item>",
		ShellComplete: ItemTitleCompleter(cmd.app),
		Action: func(ctx context.Context, c *cli.Command) error {
			ref := c.Args().First()
			if ref == "" {
				return fmt.Errorf("no item given; usage: steplock gen rewrite <item>")
			}

			item, err := resolveItem(cmd.app, ref)
			if err != nil {
				return err
			}

			updated, err := cmd.app.Gen.Rewrite(ctx, item.ID)
			if err != nil {
				return genError(err)
			}

			out := c.Root().Writer
			fmt.Fprintf(out, "%s %s\n", styles.MutedStyle.Render("was:"), item.Title)
			fmt.Fprintf(out, "%s %s\n", styles.SuccessStyle.Render("now:"), updated.Title)
			return nil
		},
	}
}

func (cmd *GenCmd) pickTitles(titles []string) ([]string, error) {
	options := make([]huh.Option[string], 0, len(titles))
	for _, t := range titles {
		options = append(options, huh.NewOption(t, t).Selected(true))
	}

	var keep []string
	err := huh.NewMultiSelect[string]().
		Title("Keep which items?").
		Options(options...).
		Value(&keep).
		WithTheme(styles.FormTheme()).
		Run()
	return keep, err
}

func (cmd *GenCmd) printAdded(c *cli.Command, added []checklist.Item) {
	out := c.Root().Writer
	fmt.Fprintf(out, "%s %d item(s)\n", styles.SuccessStyle.Render("Added"), len(added))
	for _, item := range added {
		fmt.Fprintf(out, "  %s %s\n", styles.IconPending, item.Title)
	}
}

// genError rewords generator failures by category so the user knows whether
// to retry, fix their key, or rephrase.
func genError(err error) error {
	switch taskgen.Classify(err) {
	case taskgen.CategoryRateLimited:
		return fmt.Errorf("the generation service is rate limiting requests; wait a moment and try again")
	case taskgen.CategoryInvalidKey:
		return fmt.Errorf("the API key was rejected; check the key in your environment (%w)", err)
	case taskgen.CategoryEmpty:
		return fmt.Errorf("the generator returned nothing usable; try rephrasing the prompt")
	case taskgen.CategoryTransient:
		return fmt.Errorf("the generation service is unavailable; try again shortly (%w)", err)
	default:
		return err
	}
}
