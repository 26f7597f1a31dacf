package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"felt/internal/view"
)

// RenderHelp renders the context-sensitive help footer.
func RenderHelp(screen view.Screen, width int) string {
	switch screen {
	case view.ScreenDetail:
		return renderHelpLine([]string{
			helpKey("r", "rate"),
			helpKey("+", "suggest fix"),
			helpKey("j/k", "scroll"),
			helpKey("b/esc", "back"),
			helpKey("?", "help"),
		}, width)
	case view.ScreenRating, view.ScreenSuggest:
		return renderHelpLine([]string{
			helpKey("tab", "next field"),
			helpKey("ctrl+s", "submit"),
			helpKey("esc", "cancel"),
		}, width)
	default:
		return renderHelpLine([]string{
			helpKey("j/k", "navigate"),
			helpKey("enter", "open"),
			helpKey("/", "search"),
			helpKey("f", "neighborhood"),
			helpKey("o", "open now"),
			helpKey("s", "sort"),
			helpKey("tab", "list/map"),
			helpKey("?", "help"),
		}, width)
	}
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	return FooterStyle.Width(width).Render(strings.Join(keys, "  "))
}

// RenderHelpScreen renders the full help overlay.
func RenderHelpScreen(width, height int) string {
	content := lipgloss.NewStyle().Padding(1, 2)

	sections := []string{
		titleSection("Browsing"),
		helpSection([]helpItem{
			{"j / k", "Move through the list"},
			{"g / G", "Jump to top / bottom"},
			{"enter", "Open hall detail"},
			{"/", "Search name, neighborhood or address"},
			{"f", "Cycle neighborhood filter"},
			{"o", "Toggle open now"},
			{"s", "Cycle sort order"},
			{"L", "Sort by distance from here"},
			{"tab", "Switch list / map pane"},
			{"q", "Quit"},
		}),
		titleSection("Map"),
		helpSection([]helpItem{
			{"H / J / K / l", "Pan"},
			{"= / -", "Zoom"},
			{"x", "Close callout"},
		}),
		titleSection("Hall Detail"),
		helpSection([]helpItem{
			{"r", "Rate this hall"},
			{"+", "Suggest a correction"},
			{"j / k", "Scroll the card"},
			{"b / esc", "Back"},
		}),
		titleSection("Forms"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Next / previous field"},
			{"1-5 or ← →", "Score a category"},
			{"ctrl+s", "Submit"},
			{"esc", "Cancel"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
