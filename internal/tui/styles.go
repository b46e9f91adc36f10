package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the header wordmark.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "GHFINDER" as a slow wave of blue light.
// Deep navy (#0b2447) -> search-box blue (#007bff).
func renderShimmerLogo(frame int) string {
	const text = "GHFINDER"
	n := len(text)
	t := float64(frame)

	var out strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		phase := t*0.1 - x*3.0
		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)*0.8 + 0.2

		r := clampByte(11 + b*(0-11))
		g := clampByte(36 + b*(123-36))
		bl := clampByte(71 + b*(255-71))
		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(text[i])))
		if i < n-1 {
			out.WriteString(" ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Search input / accent
	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3d9bff")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#007bff"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3d9bff")).
			Underline(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e05555"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#606878")).
			Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#007bff")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	updateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	// Surface colors
	borderColor  = lipgloss.Color("#1e2a3a")
	surfaceColor = lipgloss.Color("#0f141c")

	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#16202e"))
)

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

var helpItems = []helpItem{
	{"Search syntax", "docs.github.com: searching users", "https://docs.github.com/en/search-github/searching-on-github/searching-users"},
	{"Rate limits", "docs.github.com: REST rate limits", "https://docs.github.com/en/rest/using-the-rest-api/rate-limits-for-the-rest-api"},
	{"Source", "github.com/naveenspark/ghfinder", "https://github.com/naveenspark/ghfinder"},
}

// helpView renders the interactive help overlay with a cursor.
func helpView(cursor int) string {
	title := searchStyle.Render("G H F I N D E R")
	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3d9bff"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	keys := []struct{ key, desc string }{
		{"type", "edit the query (search starts when you pause)"},
		{"esc / enter", "leave the input and browse results"},
		{"j/k", "move between rows"},
		{"enter / space", "expand or collapse a row"},
		{"h/l  ←/→", "previous / next page"},
		{"p", "full profile"},
		{"o", "open profile in browser"},
		{"c", "copy profile URL"},
		{"/", "back to the input"},
		{"q", "quit"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n  %s\n\n", title, descStyle.Render("Search GitHub accounts by login."))

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-14s", k.key)), descStyle.Render(k.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		label := cmdStyle.Render(fmt.Sprintf("%-14s", item.label))
		prefix := "    "
		if i == cursor {
			label = activeStyle.Render(fmt.Sprintf("%-14s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
