package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/steplock/internal/core/checklist"
	"github.com/hay-kot/steplock/internal/core/styles"
	"github.com/hay-kot/steplock/internal/steplock"
	"github.com/hay-kot/steplock/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *steplock.App

	// flags
	all        bool
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *steplock.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List checklist items",
		UsageText: "steplock ls [--all] [--json]",
		Description: `Displays the checklist grouped by dependency chains.

By default only visible items are shown, the same set the runner presents.
Use --all to include hidden items along with the prerequisites blocking them.
Use --json for machine-readable output with full item state.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "include hidden items and their blockers",
				Destination: &cmd.all,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON with full item state",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(_ context.Context, c *cli.Command) error {
	items := cmd.app.Items.Items()
	out := c.Root().Writer

	if len(items) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No items yet. Run 'steplock new' to add one.\n")
		}
		return nil
	}

	completed := cmd.app.Items.Completed()
	res := cmd.app.Items.Resolve()

	if cmd.jsonOutput {
		infos := make([]itemInfo, 0, len(items))
		for _, item := range items {
			infos = append(infos, cmd.buildItemInfo(item, completed, res))
		}
		return iojson.WriteWith(out, os.Stderr, infos)
	}

	groups, orphans := checklist.Groups(items)

	for _, g := range groups {
		cmd.printItem(out, g.Root, completed, res, 0)
		for _, d := range g.Descendants {
			cmd.printItem(out, d, completed, res, 1)
		}
	}

	if len(orphans) > 0 && cmd.all {
		fmt.Fprintln(out)
		fmt.Fprintln(out, styles.WarningStyle.Render("Unreachable (dependency cycle or missing prerequisite):"))
		for _, item := range orphans {
			fmt.Fprintf(out, "  %s %s\n", styles.IconBlocked, styles.MutedStyle.Render(item.Title))
		}
	}

	stats := cmd.app.Items.Stats()
	fmt.Fprintln(out)
	summary := fmt.Sprintf("%d/%d done", stats.Completed, stats.Total)
	if stats.Hidden > 0 {
		summary += fmt.Sprintf(", %d hidden", stats.Hidden)
	}
	fmt.Fprintln(out, styles.MutedStyle.Render(summary))

	return nil
}

func (cmd *LsCmd) printItem(w io.Writer, item checklist.Item, completed checklist.CompletedSet, res checklist.Resolution, depth int) {
	visible := res.IsVisible(item.ID)
	if !visible && !cmd.all {
		return
	}

	indent := strings.Repeat("  ", depth)

	switch {
	case completed.Contains(item.ID):
		fmt.Fprintf(w, "%s%s %s %s\n",
			indent,
			styles.SuccessStyle.Render(styles.IconDone),
			styles.DoneStyle.Render(item.Title),
			styles.MutedStyle.Render(shortID(item.ID)),
		)
	case visible:
		fmt.Fprintf(w, "%s%s %s %s\n",
			indent,
			styles.IconPending,
			item.Title,
			styles.MutedStyle.Render(shortID(item.ID)),
		)
	default:
		blockers := cmd.blockerTitles(item, completed)
		fmt.Fprintf(w, "%s%s %s %s\n",
			indent,
			styles.IconBlocked,
			styles.BlockedStyle.Render(item.Title),
			styles.MutedStyle.Render("waits for: "+strings.Join(blockers, ", ")),
		)
	}
}

// blockerTitles maps unmet prerequisite IDs to titles, keeping the raw ID
// when it references nothing.
func (cmd *LsCmd) blockerTitles(item checklist.Item, completed checklist.CompletedSet) []string {
	ids := checklist.Blockers(item, completed)
	titles := make([]string, 0, len(ids))
	for _, id := range ids {
		if dep, err := cmd.app.Items.Get(id); err == nil {
			titles = append(titles, dep.Title)
		} else {
			titles = append(titles, shortID(id)+"?")
		}
	}
	return titles
}

// itemInfo is the JSON output format for steplock ls --json.
type itemInfo struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Dependencies []string `json:"dependencies"`
	Done         bool     `json:"done"`
	Visible      bool     `json:"visible"`
	Blockers     []string `json:"blockers"`
}

func (cmd *LsCmd) buildItemInfo(item checklist.Item, completed checklist.CompletedSet, res checklist.Resolution) itemInfo {
	deps := item.EffectiveDependencies()
	if deps == nil {
		deps = []string{}
	}
	blockers := checklist.Blockers(item, completed)
	if blockers == nil {
		blockers = []string{}
	}
	return itemInfo{
		ID:           item.ID,
		Title:        item.Title,
		Dependencies: deps,
		Done:         completed.Contains(item.ID),
		Visible:      res.IsVisible(item.ID),
		Blockers:     blockers,
	}
}
