package display

import (
	"github.com/charmbracelet/glamour"
)

// Glamour style names accepted by RenderMarkdown. StyleAuto detects the
// terminal background and must not be used while Bubble Tea owns the
// terminal.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

// Lines wider than this are hard to read regardless of terminal size.
const maxReadableWidth = 100

// RenderMarkdown renders markdown with glamour, word-wrapped at width
// (capped at 100 columns, 80 when unknown). Returns the original text if
// rendering fails.
func RenderMarkdown(markdown, style string, width int) string {
	if width <= 0 {
		width = 80
	}
	if width > maxReadableWidth {
		width = maxReadableWidth
	}

	styleOpt := glamour.WithStandardStyle(style)
	if style == StyleAuto {
		styleOpt = glamour.WithAutoStyle()
	}

	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
