package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipebox/internal/view"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	navBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	navActiveStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#27272a")).
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Card title, soft mint.
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	// Descriptions.
	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Hints and metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// Status lines.
	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	// Failures, soft coral.
	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	noticeBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#fca5a5")).
			Padding(1, 3)

	inputEchoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))
)

// RenderList renders the list container content as recipe cards. A failure
// message replaces the cards.
func RenderList(l view.ListContent) string {
	if l.Message != "" {
		return urgentStyle.Render("  " + l.Message)
	}
	if len(l.Items) == 0 {
		return secondaryStyle.Render("  " + view.MsgNoRecipesFound)
	}

	var b strings.Builder
	for i, it := range l.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(titleStyle.Render(fmt.Sprintf("  [%d] %s", it.Position, it.Title)))
		b.WriteByte('\n')
		b.WriteString(primaryStyle.Render("      " + it.Description))
		b.WriteByte('\n')
		b.WriteString(secondaryStyle.Render(fmt.Sprintf("      %s: type %d", it.Action.Label, it.Position)))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderDetail renders the detail content as styled markdown followed by
// its back action.
func RenderDetail(d view.DetailContent, style string, width int) string {
	var b strings.Builder
	b.WriteString(RenderMarkdown(d.Markdown(), style, width))
	b.WriteString(secondaryStyle.Render(fmt.Sprintf("  [b] %s", d.Back.Label)))
	return b.String()
}

// RenderNotice renders a blocking notice box.
func RenderNotice(msg string) string {
	body := urgentStyle.Render(msg) + "\n\n" + secondaryStyle.Render("press enter to dismiss")
	return noticeBox.Render(body)
}

func renderNav(active string, width int) string {
	tabs := []struct{ key, label string }{
		{"list", "Recipes"},
		{"add", "Add Recipe"},
	}

	parts := []string{navActiveStyle.Render(" RecipeBox ")}
	for _, t := range tabs {
		label := fmt.Sprintf(" %s (%s) ", t.label, t.key)
		if t.key == active {
			parts = append(parts, navActiveStyle.Render(label))
		} else {
			parts = append(parts, navBg.Render(label))
		}
	}
	content := strings.Join(parts, sepStyle.Render("│"))

	if width <= 0 {
		width = 80
	}
	return navBg.Width(width).Render(content)
}
