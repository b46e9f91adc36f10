// Package search holds the state machine behind the user search view:
// query and page state, the result store, pagination bounds, the single
// expanded row and the staleness check for in-flight fetches.
//
// A Controller is not safe for concurrent use. It is meant to be driven from
// one event loop; fetches run elsewhere and report back through Commit/Fail.
package search

import (
	"strings"
	"time"

	"github.com/naveenspark/ghfinder/pkg/domain"
)

// DebounceInterval is the default quiet period before a fetch is issued.
const DebounceInterval = 300 * time.Millisecond

// FailureMessage is shown for every fetch failure, whatever its kind.
const FailureMessage = "Unable to fetch results"

// Request identifies one scheduled fetch. Gen is the controller generation
// at the time the request was created.
type Request struct {
	Gen   uint64
	Query string
	Page  int
}

// View is the state exposed to the rendering layer.
type View struct {
	Query       string
	Loading     bool
	Err         string
	Results     []domain.UserSummary
	Page        int
	TotalCount  int
	TotalPages  int
	CanGoPrev   bool
	CanGoNext   bool
	ExpandedID  int64
	HasExpanded bool
}

// Controller owns query, page and result state for one search view.
type Controller struct {
	query       string
	page        int
	totalCount  int
	results     []domain.UserSummary
	loading     bool
	errMsg      string
	expandedID  int64
	hasExpanded bool
	gen         uint64
}

// New returns a controller with an empty query on page 1.
func New() *Controller {
	return &Controller{page: 1}
}

// SetQuery records new input text. The page resets to 1 and any pending
// request is superseded. A blank query clears results synchronously and
// returns ok=false: nothing should be fetched.
func (c *Controller) SetQuery(text string) (req Request, ok bool) {
	c.query = text
	c.page = 1
	c.errMsg = ""
	c.collapse()
	c.gen++
	if isBlank(text) {
		c.results = nil
		c.totalCount = 0
		c.loading = false
		return Request{}, false
	}
	return c.current(), true
}

// NextPage advances one page if the last fetch reported more results.
func (c *Controller) NextPage() (Request, bool) {
	if isBlank(c.query) || !c.Bounds().CanGoNext {
		return Request{}, false
	}
	c.page++
	return c.turn(), true
}

// PrevPage goes back one page unless already on page 1.
func (c *Controller) PrevPage() (Request, bool) {
	if isBlank(c.query) || !c.Bounds().CanGoPrev {
		return Request{}, false
	}
	c.page--
	return c.turn(), true
}

// Begin is called when the quiet interval for req has elapsed. It returns
// false when req has since been superseded, in which case no fetch should
// be issued.
func (c *Controller) Begin(req Request) bool {
	if !c.isCurrent(req) {
		return false
	}
	c.loading = true
	c.errMsg = ""
	return true
}

// Commit stores a successful result, keeping at most PerPage rows and never
// more rows than the reported total. Completions for superseded requests
// are dropped and Commit returns false.
func (c *Controller) Commit(req Request, page *domain.SearchPage) bool {
	if !c.isCurrent(req) {
		return false
	}
	c.loading = false
	c.errMsg = ""
	if page == nil {
		c.results = nil
		c.totalCount = 0
		return true
	}
	c.totalCount = max(page.TotalCount, 0)
	items := page.Items
	if n := min(PerPage, c.totalCount); len(items) > n {
		items = items[:n]
	}
	c.results = items
	return true
}

// Fail records a failed fetch: results are cleared, the total is zeroed and
// the generic failure message is set. Stale failures are dropped.
func (c *Controller) Fail(req Request, _ error) bool {
	if !c.isCurrent(req) {
		return false
	}
	c.loading = false
	c.errMsg = FailureMessage
	c.results = nil
	c.totalCount = 0
	c.collapse()
	return true
}

// ToggleExpand expands the row with id, or collapses it if it is already
// the expanded one. At most one row is expanded at a time.
func (c *Controller) ToggleExpand(id int64) {
	if c.hasExpanded && c.expandedID == id {
		c.collapse()
		return
	}
	c.expandedID = id
	c.hasExpanded = true
}

// ExpandedID returns the expanded row id, if any.
func (c *Controller) ExpandedID() (int64, bool) {
	return c.expandedID, c.hasExpanded
}

// Query returns the current query text.
func (c *Controller) Query() string { return c.query }

// Page returns the current page number.
func (c *Controller) Page() int { return c.page }

// Results returns the rows of the current page.
func (c *Controller) Results() []domain.UserSummary { return c.results }

// Bounds reports whether prev/next moves are allowed.
func (c *Controller) Bounds() Bounds {
	return Paginate(c.page, PerPage, c.totalCount)
}

// Snapshot returns the state to render.
func (c *Controller) Snapshot() View {
	b := c.Bounds()
	return View{
		Query:       c.query,
		Loading:     c.loading,
		Err:         c.errMsg,
		Results:     c.results,
		Page:        c.page,
		TotalCount:  c.totalCount,
		TotalPages:  TotalPages(PerPage, c.totalCount),
		CanGoPrev:   b.CanGoPrev,
		CanGoNext:   b.CanGoNext,
		ExpandedID:  c.expandedID,
		HasExpanded: c.hasExpanded,
	}
}

func (c *Controller) turn() Request {
	c.gen++
	c.errMsg = ""
	c.collapse()
	return c.current()
}

func (c *Controller) current() Request {
	return Request{Gen: c.gen, Query: c.query, Page: c.page}
}

func (c *Controller) isCurrent(req Request) bool {
	return req.Gen == c.gen && req.Query == c.query && req.Page == c.page && !isBlank(c.query)
}

func (c *Controller) collapse() {
	c.expandedID = 0
	c.hasExpanded = false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
