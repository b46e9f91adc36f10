package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v73/github"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/naveenspark/ghfinder/pkg/domain"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com/"

const (
	defaultTimeout    = 10 * time.Second
	detailConcurrency = 5
)

// Client is the GitHub user-directory client.
type Client struct {
	gh      *github.Client
	log     *zap.SugaredLogger
	timeout time.Duration
	details bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for per-request logging.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithTimeout bounds every HTTP request. Expiry surfaces as ErrNetwork.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithDetails controls whether search hits missing profile fields are
// completed with one users/{login} call each.
func WithDetails(enabled bool) Option {
	return func(c *Client) { c.details = enabled }
}

// New creates a client for baseURL (DefaultBaseURL when empty). An empty
// token makes unauthenticated requests.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	c := &Client{
		log:     zap.NewNop().Sugar(),
		timeout: defaultTimeout,
		details: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	var transport http.RoundTripper = http.DefaultTransport
	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}
	httpClient := &http.Client{
		Timeout:   c.timeout,
		Transport: &loggingTransport{next: transport, log: c.log},
	}

	c.gh = github.NewClient(httpClient)
	if baseURL != "" && baseURL != DefaultBaseURL {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("client.New: parse base url: %w", err)
		}
		c.gh.BaseURL = u
	}
	return c, nil
}

// SearchUsers runs a login search and returns one page of results.
// The request is `search/users?q=<query> in:login&per_page=<perPage>&page=<page>`.
func (c *Client) SearchUsers(ctx context.Context, query string, page, perPage int) (*domain.SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("client.SearchUsers: %w", ErrEmptyQuery)
	}
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{Page: page, PerPage: perPage},
	}
	res, _, err := c.gh.Search.Users(ctx, query+" in:login", opts)
	if err != nil {
		return nil, fmt.Errorf("client.SearchUsers: %w", classify(err))
	}
	if res.Total == nil {
		return nil, fmt.Errorf("client.SearchUsers: %w: missing total_count", ErrMalformedBody)
	}
	if res.Users == nil {
		return nil, fmt.Errorf("client.SearchUsers: %w: missing items", ErrMalformedBody)
	}
	for _, u := range res.Users {
		if u == nil || u.ID == nil || u.Login == nil {
			return nil, fmt.Errorf("client.SearchUsers: %w: item without id or login", ErrMalformedBody)
		}
	}

	items, err := c.complete(ctx, res.Users)
	if err != nil {
		return nil, fmt.Errorf("client.SearchUsers: %w", err)
	}
	return &domain.SearchPage{Items: items, TotalCount: res.GetTotal()}, nil
}

// GetUser fetches the full profile for login.
func (c *Client) GetUser(ctx context.Context, login string) (*domain.UserSummary, error) {
	u, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("client.GetUser: %w", classify(err))
	}
	if u.ID == nil || u.Login == nil {
		return nil, fmt.Errorf("client.GetUser: %w: missing id or login", ErrMalformedBody)
	}
	s := toSummary(u)
	return &s, nil
}

// LatestRelease returns the tag name of the latest published release.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) (string, error) {
	rel, _, err := c.gh.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return "", fmt.Errorf("client.LatestRelease: %w", classify(err))
	}
	return rel.GetTagName(), nil
}

// complete converts search hits, fetching full profiles for hits that lack
// them. Order is preserved; any failed lookup fails the whole page.
func (c *Client) complete(ctx context.Context, users []*github.User) ([]domain.UserSummary, error) {
	out := make([]domain.UserSummary, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailConcurrency)
	for i, u := range users {
		if !c.details || u.CreatedAt != nil {
			out[i] = toSummary(u)
			continue
		}
		g.Go(func() error {
			full, _, err := c.gh.Users.Get(gctx, u.GetLogin())
			if err != nil {
				return fmt.Errorf("users/%s: %w", u.GetLogin(), classify(err))
			}
			out[i] = toSummary(full)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func toSummary(u *github.User) domain.UserSummary {
	return domain.UserSummary{
		ID:          u.GetID(),
		Login:       u.GetLogin(),
		AvatarURL:   u.GetAvatarURL(),
		HTMLURL:     u.GetHTMLURL(),
		Name:        optional(u.Name),
		Location:    optional(u.Location),
		Email:       optional(u.Email),
		PublicRepos: u.GetPublicRepos(),
		CreatedAt:   u.GetCreatedAt().Time,
		UpdatedAt:   u.GetUpdatedAt().Time,
	}
}

// optional treats an empty string the same as an absent field.
func optional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

// requestIDHeader carries the id that ties a log line to an outgoing request.
const requestIDHeader = "X-Request-Id"

// loggingTransport tags each request with a correlation id and logs one line
// per request, including GitHub's own request id when the response has one.
type loggingTransport struct {
	next http.RoundTripper
	log  *zap.SugaredLogger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	reqID := uuid.NewString()
	req = req.Clone(req.Context())
	req.Header.Set(requestIDHeader, reqID)

	resp, err := t.next.RoundTrip(req)
	dur := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		t.log.Warnw("github request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", dur,
			"request_id", reqID,
			"error", err,
		)
		return nil, err
	}
	t.log.Debugw("github request",
		"method", req.Method,
		"path", req.URL.Path,
		"query", req.URL.RawQuery,
		"status", resp.StatusCode,
		"duration_ms", dur,
		"request_id", reqID,
		"github_request_id", resp.Header.Get("X-GitHub-Request-Id"),
	)
	return resp, nil
}
