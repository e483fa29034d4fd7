package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/steplock/internal/core/checklist"
	"github.com/hay-kot/steplock/internal/steplock"
)

// resolveItem finds an item by exact ID, unique ID prefix, or unique
// case-insensitive title match. Ambiguous references list the candidates.
func resolveItem(app *steplock.App, ref string) (checklist.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return checklist.Item{}, fmt.Errorf("empty item reference")
	}

	items := app.Items.Items()

	for _, item := range items {
		if item.ID == ref {
			return item, nil
		}
	}

	var matches []checklist.Item
	for _, item := range items {
		if strings.HasPrefix(item.ID, ref) {
			matches = append(matches, item)
		}
	}

	if len(matches) == 0 {
		lower := strings.ToLower(ref)
		for _, item := range items {
			if strings.ToLower(item.Title) == lower {
				matches = append(matches, item)
			}
		}
	}
	if len(matches) == 0 {
		lower := strings.ToLower(ref)
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Title), lower) {
				matches = append(matches, item)
			}
		}
	}

	switch len(matches) {
	case 0:
		return checklist.Item{}, fmt.Errorf("no item matches %q: %w", ref, checklist.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, fmt.Sprintf("%s (%s)", m.Title, shortID(m.ID)))
		}
		return checklist.Item{}, fmt.Errorf("reference %q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

// resolveItems maps each reference through resolveItem, preserving order.
func resolveItems(app *steplock.App, refs []string) ([]checklist.Item, error) {
	out := make([]checklist.Item, 0, len(refs))
	for _, ref := range refs {
		item, err := resolveItem(app, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ItemTitleCompleter returns a ShellCompleteFunc that suggests item titles
// as positional completions. When the user's last typed argument starts with
// "-", it falls back to the default flag completion behavior.
func ItemTitleCompleter(app *steplock.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		w := cmd.Root().Writer
		for _, item := range app.Items.Items() {
			_, _ = fmt.Fprintln(w, item.Title)
		}
	}
}
