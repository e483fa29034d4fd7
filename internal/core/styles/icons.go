package styles

var (
	IconDone    = "✓"
	IconPending = "○"
	IconBlocked = "◌"
)
