package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/naveenspark/ghfinder/pkg/domain"
)

// Directory is the part of the GitHub client the TUI talks to.
type Directory interface {
	SearchUsers(ctx context.Context, query string, page, perPage int) (*domain.SearchPage, error)
	GetUser(ctx context.Context, login string) (*domain.UserSummary, error)
	LatestRelease(ctx context.Context, owner, repo string) (string, error)
}

// Options configures NewApp.
type Options struct {
	Version      string
	Debounce     time.Duration
	InitialQuery string
	Log          *zap.SugaredLogger
}

// App is the root Bubbletea model.
type App struct {
	dir         Directory
	search      searchModel
	profile     profileModel
	profileOpen bool
	helpOpen    bool
	helpCursor  int
	version     string
	latest      string // newer release tag, empty when current
	initQuery   string
	width       int
	height      int
	frame       int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(dir Directory, opts Options) App {
	return App{
		dir:       dir,
		search:    newSearchModel(dir, opts.Log, opts.Debounce),
		profile:   newProfileModel(dir),
		version:   opts.Version,
		initQuery: opts.InitialQuery,
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd(), checkVersion(a.dir, a.version)}
	if strings.TrimSpace(a.initQuery) != "" {
		q := a.initQuery
		cmds = append(cmds, func() tea.Msg { return initialQueryMsg{query: q} })
	}
	return tea.Batch(cmds...)
}

// initialQueryMsg seeds the search input from the command line.
type initialQueryMsg struct {
	query string
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + help(1) = 3 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3}
		a.search, _ = a.search.Update(bodyMsg)
		a.profile, _ = a.profile.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case versionCheckMsg:
		if msg.hasUpdate {
			a.latest = msg.latestVersion
		}
		return a, nil

	case initialQueryMsg:
		var cmd tea.Cmd
		a.search, cmd = a.search.setQuery(msg.query)
		a.search.editing = false
		return a, cmd

	case showProfileMsg:
		a.profileOpen = true
		a.profile = newProfileModel(a.dir)
		a.profile.login = msg.login
		a.profile.width = a.width
		return a, a.profile.load(msg.login)

	case profileLoadedMsg:
		a.profile, _ = a.profile.Update(msg)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "?", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				u := helpItems[a.helpCursor].url
				return a, func() tea.Msg {
					return openResultMsg{err: openURL(u)}
				}
			}
			return a, nil
		}

		// Profile overlay captures all keys when open
		if a.profileOpen {
			var cmd tea.Cmd
			a.profile, cmd = a.profile.Update(msg)
			if a.profile.closed {
				a.profileOpen = false
			}
			return a, cmd
		}

		// Global keys (only when not editing)
		if !a.search.editing {
			switch msg.String() {
			case "?":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q":
				return a, tea.Quit
			}
		}

	case openResultMsg:
		if a.profileOpen {
			a.profile, _ = a.profile.Update(msg)
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	logoPad := max((a.width-lipgloss.Width(logo))/2, 0)
	header := strings.Repeat(" ", logoPad) + logo

	sub := ""
	if a.latest != "" {
		sub = updateStyle.Render(fmt.Sprintf("%s available · github.com/%s/%s/releases", a.latest, releaseOwner, releaseRepo))
	} else if a.version != "" {
		sub = metaStyle.Render(a.version)
	}
	subPad := max((a.width-lipgloss.Width(sub))/2, 0)
	header += "\n" + strings.Repeat(" ", subPad) + sub

	body := a.search.View()
	help := " " + a.search.helpKeys()

	if a.profileOpen {
		body = a.profile.View()
		help = " " + helpEntry("o", "open") + "  " + helpEntry("esc", "close")
	}

	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-3), "\n")
	return fmt.Sprintf("%s\n%s\n%s", header, body, help)
}
