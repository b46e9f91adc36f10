package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/naveenspark/ghfinder/internal/browser"
	"github.com/naveenspark/ghfinder/internal/search"
	"github.com/naveenspark/ghfinder/pkg/client"
	"github.com/naveenspark/ghfinder/pkg/domain"
)

// debounceMsg fires once the quiet interval for req has elapsed.
type debounceMsg struct {
	req search.Request
}

// searchResultMsg carries the outcome of one fetch.
type searchResultMsg struct {
	req  search.Request
	page *domain.SearchPage
	err  error
}

type copyResultMsg struct{ err error }
type openResultMsg struct{ err error }

// clipboardWrite and openURL are swapped out in tests.
var (
	clipboardWrite = clipboard.WriteAll
	openURL        = browser.Open
)

type searchModel struct {
	dir       Directory
	log       *zap.SugaredLogger
	ctrl      *search.Controller
	debounce  time.Duration
	cancel    context.CancelFunc
	cursor    int
	editing   bool // true while typing in the query input
	width     int
	height    int
	statusMsg string
}

func newSearchModel(dir Directory, log *zap.SugaredLogger, debounce time.Duration) searchModel {
	if debounce <= 0 {
		debounce = search.DebounceInterval
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return searchModel{
		dir:      dir,
		log:      log,
		ctrl:     search.New(),
		debounce: debounce,
		editing:  true,
	}
}

// setQuery applies new input text and schedules a fetch if the query is
// not blank.
func (m searchModel) setQuery(text string) (searchModel, tea.Cmd) {
	m.abortInFlight()
	m.cursor = 0
	req, ok := m.ctrl.SetQuery(text)
	if !ok {
		return m, nil
	}
	return m, m.schedule(req)
}

// schedule starts the quiet interval for req. Superseded requests are
// rejected by the controller when their tick arrives.
func (m searchModel) schedule(req search.Request) tea.Cmd {
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{req: req}
	})
}

// abortInFlight cancels the fetch currently on the wire, if any. Its
// completion still arrives but is dropped as stale.
func (m *searchModel) abortInFlight() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m searchModel) fetch(ctx context.Context, req search.Request) tea.Cmd {
	dir := m.dir
	return func() tea.Msg {
		page, err := dir.SearchUsers(ctx, req.Query, req.Page, search.PerPage)
		return searchResultMsg{req: req, page: page, err: err}
	}
}

func (m searchModel) Update(msg tea.Msg) (searchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if !m.ctrl.Begin(msg.req) {
			m.log.Debugw("debounce superseded", "query", msg.req.Query, "page", msg.req.Page)
			return m, nil
		}
		m.abortInFlight()
		ctx, cancel := context.WithCancel(context.Background())
		m.cancel = cancel
		m.log.Debugw("fetch started", "query", msg.req.Query, "page", msg.req.Page)
		return m, m.fetch(ctx, msg.req)

	case searchResultMsg:
		var applied bool
		if msg.err != nil {
			applied = m.ctrl.Fail(msg.req, msg.err)
		} else {
			applied = m.ctrl.Commit(msg.req, msg.page)
		}
		if !applied {
			m.log.Debugw("stale result dropped", "query", msg.req.Query, "page", msg.req.Page, "error", msg.err)
			return m, nil
		}
		m.cancel = nil
		if msg.err != nil {
			m.log.Warnw("fetch failed",
				"query", msg.req.Query,
				"page", msg.req.Page,
				"kind", client.KindOf(msg.err),
				"error", msg.err,
			)
		}
		if n := len(m.ctrl.Results()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "copied!"
		}
		return m, nil

	case openResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("open failed: %v", msg.err)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		if m.editing {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m searchModel) updateInput(msg tea.KeyMsg) (searchModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "down", "tab":
		m.editing = false
		return m, nil
	}
	var text string
	if msg.Paste {
		text = appendText(m.ctrl.Query(), string(msg.Runes))
	} else {
		text = editRune(m.ctrl.Query(), msg.String())
	}
	if text == m.ctrl.Query() {
		return m, nil
	}
	return m.setQuery(text)
}

func (m searchModel) updateList(msg tea.KeyMsg) (searchModel, tea.Cmd) {
	results := m.ctrl.Results()
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(results)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter", " ":
		if m.cursor < len(results) {
			m.ctrl.ToggleExpand(results[m.cursor].ID)
		}
	case "l", "right", "n":
		if req, ok := m.ctrl.NextPage(); ok {
			m.abortInFlight()
			m.cursor = 0
			return m, m.schedule(req)
		}
	case "h", "left", "b":
		if req, ok := m.ctrl.PrevPage(); ok {
			m.abortInFlight()
			m.cursor = 0
			return m, m.schedule(req)
		}
	case "/", "i":
		m.editing = true
	case "o":
		if m.cursor < len(results) {
			u := results[m.cursor].HTMLURL
			return m, func() tea.Msg {
				return openResultMsg{err: openURL(u)}
			}
		}
	case "c":
		if m.cursor < len(results) {
			u := results[m.cursor].HTMLURL
			return m, func() tea.Msg {
				return copyResultMsg{err: clipboardWrite(u)}
			}
		}
	case "p":
		if m.cursor < len(results) {
			login := results[m.cursor].Login
			return m, func() tea.Msg {
				return showProfileMsg{login: login}
			}
		}
	}
	return m, nil
}

func (m searchModel) View() string {
	v := m.ctrl.Snapshot()
	var b strings.Builder

	if m.width >= 50 {
		b.WriteString(" " + labelStyle.Render("SEARCH") + "  " + dimStyle.Render("GitHub accounts by login") + "\n")
	} else {
		b.WriteString(" " + labelStyle.Render("SEARCH") + "\n")
	}

	switch {
	case m.editing:
		b.WriteString(" " + inputPromptStyle.Render("/ ") + searchStyle.Render(v.Query) + accentStyle.Render("█"))
	case v.Query != "":
		b.WriteString(" " + inputPromptStyle.Render("/ ") + dimStyle.Render(v.Query))
	default:
		b.WriteString(" " + inputPromptStyle.Render("/ ") + inputPlaceholderStyle.Render("search GitHub users by login..."))
	}
	b.WriteString("\n")

	sepW := max(m.width-2, 4)
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	switch {
	case v.Loading:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
	case v.Err != "":
		b.WriteString(" " + errorStyle.Render(v.Err) + "\n")
	case strings.TrimSpace(v.Query) == "":
		b.WriteString(" " + dimStyle.Render("type to search") + "\n")
	case len(v.Results) == 0:
		b.WriteString(" " + dimStyle.Render("no users found") + "\n")
	default:
		b.WriteString(m.viewRows(v))
	}

	b.WriteString("\n" + m.viewPager(v) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + statusStyle.Render(m.statusMsg) + "\n")
	}
	return truncateToHeight(b.String(), m.height)
}

func (m searchModel) viewRows(v search.View) string {
	var b strings.Builder
	for i, u := range v.Results {
		cursor := "  "
		nameStyle := dimStyle
		if i == m.cursor && !m.editing {
			cursor = accentStyle.Render("▸") + " "
			nameStyle = normalStyle.Bold(true)
		}

		arrow := "▸"
		expanded := v.HasExpanded && v.ExpandedID == u.ID
		if expanded {
			arrow = "▾"
		}

		urlWidth := max(m.width-24, 10)
		line := cursor + metaStyle.Render(arrow) + " " +
			nameStyle.Render(fmt.Sprintf("%-18s", truncStr(u.Login, 18))) + " " +
			linkStyle.Render(truncStr(u.HTMLURL, urlWidth))

		if i == m.cursor && !m.editing {
			padded := line + strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0))
			b.WriteString(selectedRowBg.Render(padded) + "\n")
		} else {
			b.WriteString(line + "\n")
		}

		if expanded {
			b.WriteString(renderDetail(u, "      "))
		}
	}
	return b.String()
}

// renderDetail renders the full field list for one user, each line
// prefixed with indent. Absent fields show the placeholder.
func renderDetail(u domain.UserSummary, indent string) string {
	rows := []struct{ label, value string }{
		{"Name", domain.OrPlaceholder(u.Name)},
		{"Location", domain.OrPlaceholder(u.Location)},
		{"Email", domain.OrPlaceholder(u.Email)},
		{"Public Repos", fmt.Sprintf("%d", u.PublicRepos)},
		{"Account Created", domain.FormatDate(u.CreatedAt)},
		{"Last Updated", domain.FormatDate(u.UpdatedAt)},
		{"Avatar", domain.OrPlaceholder(&u.AvatarURL)},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(indent + labelStyle.Render(fmt.Sprintf("%-16s", r.label)) + normalStyle.Render(r.value) + "\n")
	}
	return b.String()
}

func (m searchModel) viewPager(v search.View) string {
	prev := metaStyle.Render("‹ prev")
	if v.CanGoPrev {
		prev = helpKeyStyle.Render("‹ prev")
	}
	next := metaStyle.Render("next ›")
	if v.CanGoNext {
		next = helpKeyStyle.Render("next ›")
	}
	info := fmt.Sprintf("page %d of %d", v.Page, v.TotalPages)
	if v.TotalCount > 0 {
		info += fmt.Sprintf(" · %s %s", formatNum(v.TotalCount), plural(v.TotalCount, "result", "results"))
	}
	return " " + prev + "   " + dimStyle.Render(info) + "   " + next
}

func (m searchModel) helpKeys() string {
	if m.editing {
		return helpEntry("type", "search") + "  " + helpEntry("esc", "browse") + "  " + helpEntry("ctrl+u", "clear") + "  " + helpEntry("ctrl+c", "quit")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "expand") + "  " + helpEntry("h/l", "page") + "  " +
		helpEntry("p", "profile") + "  " + helpEntry("o", "open") + "  " + helpEntry("c", "copy") + "  " +
		helpEntry("/", "search") + "  " + helpEntry("?", "help") + "  " + helpEntry("q", "quit")
}
