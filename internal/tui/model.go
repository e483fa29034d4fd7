// Package tui implements the interactive checklist runner.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/steplock/internal/core/styles"
	"github.com/hay-kot/steplock/internal/data/stores"
)

// Deps are the external dependencies the runner needs.
type Deps struct {
	Items *stores.ItemStore
}

// Opts are presentation options.
type Opts struct {
	// Title is shown in the header. Empty means a default.
	Title string
}

// Model is the checklist runner. It renders visible items grouped by
// dependency chain, lets the user toggle them, and reveals dependents as
// their prerequisites complete.
type Model struct {
	deps Deps
	opts Opts

	rows   []row
	cursor int

	showAll      bool
	confirmReset bool

	keys     keyMap
	help     help.Model
	progress progress.Model

	width  int
	height int
}

// New creates a runner model.
func New(deps Deps, opts Opts) Model {
	p := progress.New(
		progress.WithSolidFill(string(styles.Current.Primary)),
		progress.WithoutPercentage(),
	)
	p.Width = 40

	m := Model{
		deps:     deps,
		opts:     opts,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: p,
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - 10; w > 0 && w < 40 {
			m.progress.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirmReset {
			return m.updateConfirm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Toggle):
			if m.cursor < len(m.rows) {
				r := m.rows[m.cursor]
				if r.visible {
					m.deps.Items.Toggle(r.item.ID)
					m.reload()
				}
			}

		case key.Matches(msg, m.keys.ShowAll):
			m.showAll = !m.showAll
			m.reload()

		case key.Matches(msg, m.keys.Reset):
			if m.deps.Items.Stats().Completed > 0 {
				m.confirmReset = true
			}

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.deps.Items.ResetRunner()
		m.confirmReset = false
		m.reload()
	case "n", "N", "esc", "q":
		m.confirmReset = false
	}
	return m, nil
}

// reload rebuilds rows from the store and clamps the cursor. The cursor is
// kept on the same item when it survives the rebuild.
func (m *Model) reload() {
	var currentID string
	if m.cursor < len(m.rows) {
		currentID = m.rows[m.cursor].item.ID
	}

	items := m.deps.Items.Items()
	completed := m.deps.Items.Completed()
	res := m.deps.Items.Resolve()

	titleOf := func(id string) string {
		if item, err := m.deps.Items.Get(id); err == nil {
			return item.Title
		}
		return "(missing)"
	}

	m.rows = buildRows(items, completed, res, titleOf, m.showAll)

	m.cursor = 0
	for i, r := range m.rows {
		if r.item.ID == currentID {
			m.cursor = i
			break
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := m.opts.Title
	if title == "" {
		title = "steplock"
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")

	stats := m.deps.Items.Stats()
	var percent float64
	if stats.Total > 0 {
		percent = float64(stats.Completed) / float64(stats.Total)
	}
	bar := m.progress.ViewAs(percent)
	counter := styles.MutedStyle.Render(fmt.Sprintf(" %d/%d", stats.Completed, stats.Total))
	b.WriteString(bar + counter)
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		if stats.Total == 0 {
			b.WriteString(styles.MutedStyle.Render("No items yet. Quit and run 'steplock new' to add one."))
		} else {
			b.WriteString(styles.MutedStyle.Render("All remaining items are hidden. Press 'a' to peek."))
		}
		b.WriteString("\n")
	}

	for i, r := range m.rows {
		b.WriteString(m.renderRow(r, i == m.cursor))
		b.WriteString("\n")
	}

	if m.showAll && stats.Hidden > 0 {
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%d item(s) waiting on prerequisites", stats.Hidden)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.confirmReset {
		b.WriteString(styles.WarningStyle.Render("Uncheck everything? (y/n)"))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderRow(r row, selected bool) string {
	cursor := "  "
	if selected {
		cursor = styles.CursorStyle.Render("❯ ")
	}

	indent := strings.Repeat("  ", r.depth)

	var line string
	switch {
	case r.done:
		line = styles.SuccessStyle.Render(styles.IconDone) + " " + styles.DoneStyle.Render(r.item.Title)
	case r.visible:
		line = styles.IconPending + " " + r.item.Title
	default:
		line = styles.IconBlocked + " " + styles.BlockedStyle.Render(r.item.Title)
		if len(r.blockers) > 0 {
			line += styles.MutedStyle.Render("  waits for: " + strings.Join(r.blockers, ", "))
		}
	}

	rendered := cursor + indent + line
	if m.width > 0 {
		rendered = lipgloss.NewStyle().MaxWidth(m.width).Render(rendered)
	}
	return rendered
}
