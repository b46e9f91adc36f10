package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/ghfinder/internal/search"
	"github.com/naveenspark/ghfinder/pkg/domain"
)

// showProfileMsg opens the profile overlay for a login.
type showProfileMsg struct {
	login string
}

type profileLoadedMsg struct {
	login string
	user  *domain.UserSummary
	err   error
}

type profileModel struct {
	dir       Directory
	login     string
	user      *domain.UserSummary
	closed    bool
	err       string
	statusMsg string
	width     int
}

func newProfileModel(dir Directory) profileModel {
	return profileModel{dir: dir}
}

func (m profileModel) load(login string) tea.Cmd {
	dir := m.dir
	return func() tea.Msg {
		user, err := dir.GetUser(context.Background(), login)
		return profileLoadedMsg{login: login, user: user, err: err}
	}
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.login != m.login {
			return m, nil
		}
		if msg.err != nil {
			m.err = search.FailureMessage
		} else {
			m.user = msg.user
		}
		return m, nil

	case openResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("open failed: %v", msg.err)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			m.closed = true
		case "o":
			if m.user != nil {
				u := m.user.HTMLURL
				return m, func() tea.Msg {
					return openResultMsg{err: openURL(u)}
				}
			}
		}
	}
	return m, nil
}

func (m profileModel) View() string {
	if m.err != "" {
		return "\n " + errorStyle.Render(m.err) + "\n " + dimStyle.Render("@"+m.login)
	}
	if m.user == nil {
		return "\n " + dimStyle.Render("loading @"+m.login+"...")
	}

	u := m.user
	cardWidth := max(min(60, m.width-4), 36)
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(surfaceColor).
		Padding(1, 2).
		Width(cardWidth)

	var sb strings.Builder
	title := u.Login
	if u.Name != nil {
		title = *u.Name
	}
	sb.WriteString(selectedStyle.Render(title) + "  " + dimStyle.Render("@"+u.Login) + "\n")
	sb.WriteString(linkStyle.Render(u.HTMLURL) + "\n")
	sb.WriteString(metaStyle.Render("---") + "\n")
	sb.WriteString(renderDetail(*u, ""))
	sb.WriteString(metaStyle.Render("---") + "\n")

	if m.statusMsg != "" {
		sb.WriteString(statusStyle.Render(m.statusMsg) + "\n")
	}
	sb.WriteString(helpKeyStyle.Render("o") + " " + helpLabelStyle.Render("open"))
	sb.WriteString("  " + helpKeyStyle.Render("esc") + " " + helpLabelStyle.Render("close"))

	return "\n" + border.Render(sb.String())
}
