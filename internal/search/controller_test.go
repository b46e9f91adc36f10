package search

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/ghfinder/pkg/domain"
)

func makeUsers(n int, startID int64) []domain.UserSummary {
	users := make([]domain.UserSummary, n)
	for i := range users {
		id := startID + int64(i)
		users[i] = domain.UserSummary{ID: id, Login: fmt.Sprintf("user%d", id)}
	}
	return users
}

func TestNewControllerDefaults(t *testing.T) {
	c := New()
	v := c.Snapshot()
	assert.Equal(t, "", v.Query)
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 0, v.TotalCount)
	assert.Empty(t, v.Results)
	assert.False(t, v.Loading)
	assert.False(t, v.CanGoPrev)
	assert.False(t, v.CanGoNext)
	assert.False(t, v.HasExpanded)
}

func TestSetQueryReturnsRequest(t *testing.T) {
	c := New()
	req, ok := c.SetQuery("octocat")
	require.True(t, ok)
	assert.Equal(t, "octocat", req.Query)
	assert.Equal(t, 1, req.Page)
}

func TestEmptyQueryClearsWithoutFetch(t *testing.T) {
	c := New()
	req, ok := c.SetQuery("octocat")
	require.True(t, ok)
	require.True(t, c.Begin(req))
	require.True(t, c.Commit(req, &domain.SearchPage{Items: makeUsers(5, 1), TotalCount: 40}))

	for _, blank := range []string{"", "   ", "\t"} {
		_, ok = c.SetQuery(blank)
		assert.False(t, ok, "blank query %q must not schedule a fetch", blank)
		v := c.Snapshot()
		assert.Empty(t, v.Results)
		assert.Equal(t, 0, v.TotalCount)
		assert.False(t, v.Loading)
	}

	// The earlier request can no longer commit.
	assert.False(t, c.Commit(req, &domain.SearchPage{Items: makeUsers(1, 1), TotalCount: 1}))
}

func TestNewQueryResetsPage(t *testing.T) {
	c := New()
	req, _ := c.SetQuery("go")
	c.Begin(req)
	c.Commit(req, &domain.SearchPage{Items: makeUsers(5, 1), TotalCount: 30})

	_, ok := c.NextPage()
	require.True(t, ok)
	_, ok = c.NextPage()
	require.True(t, ok)
	require.Equal(t, 3, c.Page())

	req, ok = c.SetQuery("gopher")
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 1, c.Page())
}

func TestDebounceSupersedesEarlierRequest(t *testing.T) {
	c := New()
	first, _ := c.SetQuery("abc")
	second, _ := c.SetQuery("abcd")

	fetches := 0
	for _, req := range []Request{first, second} {
		if c.Begin(req) {
			fetches++
			assert.Equal(t, "abcd", req.Query)
		}
	}
	assert.Equal(t, 1, fetches, "exactly one fetch per settled query")
}

func TestStalePageResultDropped(t *testing.T) {
	c := New()
	req1, _ := c.SetQuery("octo")
	require.True(t, c.Begin(req1))
	require.True(t, c.Commit(req1, &domain.SearchPage{Items: makeUsers(5, 1), TotalCount: 12}))

	// Move to page 2 and request page 1 again before page 2 lands.
	req2, ok := c.NextPage()
	require.True(t, ok)
	require.True(t, c.Begin(req2))
	page2 := makeUsers(5, 100)
	require.True(t, c.Commit(req2, &domain.SearchPage{Items: page2, TotalCount: 12}))

	// A late completion for page 1 must not overwrite page 2.
	assert.False(t, c.Commit(req1, &domain.SearchPage{Items: makeUsers(5, 1), TotalCount: 12}))
	assert.False(t, c.Fail(req1, errors.New("late")))
	v := c.Snapshot()
	assert.Equal(t, 2, v.Page)
	assert.Equal(t, page2, v.Results)
	assert.Empty(t, v.Err)
}

func TestCommitRespectsPageSize(t *testing.T) {
	c := New()
	req, _ := c.SetQuery("a")
	c.Begin(req)
	require.True(t, c.Commit(req, &domain.SearchPage{Items: makeUsers(8, 1), TotalCount: 100}))
	v := c.Snapshot()
	assert.LessOrEqual(t, len(v.Results), PerPage)
	assert.Equal(t, 100, v.TotalCount)
	assert.Equal(t, 20, v.TotalPages)
}

func TestCommitNeverExceedsTotal(t *testing.T) {
	tests := []struct {
		name  string
		items int
		total int
		want  int
	}{
		{"more rows than total", 4, 2, 2},
		{"rows with zero total", 3, 0, 0},
		{"negative total", 2, -1, 0},
		{"consistent page", 5, 12, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			req, _ := c.SetQuery("a")
			c.Begin(req)
			require.True(t, c.Commit(req, &domain.SearchPage{Items: makeUsers(tc.items, 1), TotalCount: tc.total}))
			v := c.Snapshot()
			assert.Len(t, v.Results, tc.want)
			assert.LessOrEqual(t, len(v.Results), v.TotalCount)
		})
	}
}

func TestOctocatScenario(t *testing.T) {
	c := New()
	req, ok := c.SetQuery("octocat")
	require.True(t, ok)
	require.True(t, c.Begin(req))
	assert.True(t, c.Snapshot().Loading)

	users := []domain.UserSummary{{ID: 1, Login: "octocat"}}
	require.True(t, c.Commit(req, &domain.SearchPage{Items: users, TotalCount: 1}))

	v := c.Snapshot()
	assert.False(t, v.Loading)
	assert.False(t, v.CanGoNext)
	assert.False(t, v.CanGoPrev)
	require.Len(t, v.Results, 1)
	assert.Equal(t, "octocat", v.Results[0].Login)
	assert.LessOrEqual(t, len(v.Results), v.TotalCount)
}

func TestFailClearsState(t *testing.T) {
	c := New()
	req, _ := c.SetQuery("a")
	c.Begin(req)
	c.Commit(req, &domain.SearchPage{Items: makeUsers(5, 1), TotalCount: 50})

	req, ok := c.NextPage()
	require.True(t, ok)
	c.Begin(req)
	require.True(t, c.Fail(req, errors.New("HTTP 500")))

	v := c.Snapshot()
	assert.Equal(t, FailureMessage, v.Err)
	assert.Empty(t, v.Results)
	assert.Equal(t, 0, v.TotalCount)
	assert.False(t, v.Loading)
	assert.False(t, v.CanGoNext)

	// A new keystroke is the recovery path and clears the error.
	_, ok = c.SetQuery("ab")
	require.True(t, ok)
	assert.Empty(t, c.Snapshot().Err)
}

func TestPageMovesAreNoOpsAtBounds(t *testing.T) {
	c := New()
	_, ok := c.PrevPage()
	assert.False(t, ok, "prev on page 1")
	_, ok = c.NextPage()
	assert.False(t, ok, "next with empty query")

	req, _ := c.SetQuery("a")
	c.Begin(req)
	c.Commit(req, &domain.SearchPage{Items: makeUsers(5, 1), TotalCount: 5})

	_, ok = c.NextPage()
	assert.False(t, ok, "next when page*5 >= total")
	assert.Equal(t, 1, c.Page())
	_, ok = c.PrevPage()
	assert.False(t, ok)
	assert.Equal(t, 1, c.Page())
}

func TestPrevPage(t *testing.T) {
	c := New()
	req, _ := c.SetQuery("a")
	c.Begin(req)
	c.Commit(req, &domain.SearchPage{Items: makeUsers(5, 1), TotalCount: 12})
	req, ok := c.NextPage()
	require.True(t, ok)
	c.Begin(req)
	c.Commit(req, &domain.SearchPage{Items: makeUsers(5, 6), TotalCount: 12})

	req, ok = c.PrevPage()
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, "a", req.Query)
}

func TestToggleExpand(t *testing.T) {
	c := New()

	c.ToggleExpand(42)
	id, ok := c.ExpandedID()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	c.ToggleExpand(42)
	_, ok = c.ExpandedID()
	assert.False(t, ok, "toggling the same id collapses it")

	c.ToggleExpand(42)
	c.ToggleExpand(7)
	id, ok = c.ExpandedID()
	require.True(t, ok)
	assert.Equal(t, int64(7), id, "only one row expanded at a time")
}

func TestBeginAfterBlankQueryIsRejected(t *testing.T) {
	c := New()
	req, _ := c.SetQuery("a")
	c.SetQuery("a ")
	c.SetQuery("")
	assert.False(t, c.Begin(req))
	assert.False(t, c.Snapshot().Loading)
}
