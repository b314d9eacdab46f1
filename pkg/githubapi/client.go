// Package githubapi provides a hand-written GitHub REST API client covering
// the endpoints this server exposes as tools.
package githubapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"
	userAgent      = "mcp-github"
	tracerName     = "mcpgithub/server/pkg/githubapi"
)

// TokenSource supplies the bearer token for each request. A nil TokenSource
// means anonymous access (heavily rate-limited by the upstream).
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed token (a personal access token).
type StaticTokenSource struct {
	token string
}

func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

func (s *StaticTokenSource) Token(_ context.Context) (string, error) {
	return s.token, nil
}

// APIError is a non-2xx upstream response.
type APIError struct {
	StatusCode int
	Message    string
	Route      string
}

func (e *APIError) Error() string {
	return "GitHub API error (status " + strconv.Itoa(e.StatusCode) + "): " + e.Message
}

// NotFound reports whether the addressed resource does not exist.
func (e *APIError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// Unauthorized reports whether the upstream rejected our credentials.
func (e *APIError) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// Client talks to the GitHub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests and GHE deployments).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient creates a GitHub API client. tokens may be nil for anonymous
// access.
func NewClient(tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET against a pre-built route (path plus query string) and
// decodes the JSON response into out. Callers interpolating values into the
// route are responsible for sanitizing them first.
func (c *Client) Get(ctx context.Context, route string, out any) error {
	ctx, span := c.tracer.Start(ctx, "githubapi.get",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.route", route)),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+route, nil)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			span.RecordError(err)
			return errors.Wrap(err, "resolve token")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "read response")
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: apiMessage(body), Route: route}
		span.SetStatus(codes.Error, apiErr.Message)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			span.RecordError(err)
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}

// apiMessage extracts the upstream error message from a response body,
// falling back to the (truncated) raw body.
func apiMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	const max = 200
	if len(body) > max {
		body = body[:max]
	}
	return string(body)
}

// -- Typed endpoints (structured URL building; no caller sanitization needed
// for the path segments, which are percent-escaped here) --

// ListOrgRepos lists repositories of an organization.
func (c *Client) ListOrgRepos(ctx context.Context, org string, perPage int) ([]Repository, error) {
	route := "/orgs/" + url.PathEscape(org) + "/repos?" + pageQuery(perPage).Encode()
	var repos []Repository
	if err := c.Get(ctx, route, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// ListUserRepos lists repositories of an individual user account.
func (c *Client) ListUserRepos(ctx context.Context, user string, perPage int) ([]Repository, error) {
	route := "/users/" + url.PathEscape(user) + "/repos?" + pageQuery(perPage).Encode()
	var repos []Repository
	if err := c.Get(ctx, route, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// GetRepo fetches a single repository.
func (c *Client) GetRepo(ctx context.Context, owner, repo string) (*Repository, error) {
	route := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
	var r Repository
	if err := c.Get(ctx, route, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListIssuesOptions are the optional filters for ListIssues.
type ListIssuesOptions struct {
	State   string // open, closed, or all; empty means no state filter
	Labels  string // comma-separated label names
	PerPage int
}

// ListIssues lists issues in a repository.
func (c *Client) ListIssues(ctx context.Context, owner, repo string, opt ListIssuesOptions) ([]Issue, error) {
	q := pageQuery(opt.PerPage)
	if opt.State != "" {
		q.Set("state", opt.State)
	}
	if opt.Labels != "" {
		q.Set("labels", opt.Labels)
	}
	route := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/issues?" + q.Encode()
	var issues []Issue
	if err := c.Get(ctx, route, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// GetIssue fetches a single issue.
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int64) (*Issue, error) {
	route := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) +
		"/issues/" + strconv.FormatInt(number, 10)
	var issue Issue
	if err := c.Get(ctx, route, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// ListIssueComments lists the comments on an issue.
func (c *Client) ListIssueComments(ctx context.Context, owner, repo string, number int64) ([]IssueComment, error) {
	route := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) +
		"/issues/" + strconv.FormatInt(number, 10) + "/comments"
	var comments []IssueComment
	if err := c.Get(ctx, route, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ListPullsOptions are the optional filters for ListPulls.
type ListPullsOptions struct {
	State   string // open, closed, or all; empty means no state filter
	PerPage int
}

// ListPulls lists pull requests in a repository.
func (c *Client) ListPulls(ctx context.Context, owner, repo string, opt ListPullsOptions) ([]PullRequest, error) {
	q := pageQuery(opt.PerPage)
	if opt.State != "" {
		q.Set("state", opt.State)
	}
	route := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/pulls?" + q.Encode()
	var pulls []PullRequest
	if err := c.Get(ctx, route, &pulls); err != nil {
		return nil, err
	}
	return pulls, nil
}

// GetPull fetches a single pull request.
func (c *Client) GetPull(ctx context.Context, owner, repo string, number int64) (*PullRequest, error) {
	route := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) +
		"/pulls/" + strconv.FormatInt(number, 10)
	var pr PullRequest
	if err := c.Get(ctx, route, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// SearchCode runs a code search with GitHub's search syntax. The query is
// passed as a raw query-string value; it is URL-encoded here.
func (c *Client) SearchCode(ctx context.Context, query string, perPage int) (*CodeSearchResult, error) {
	q := pageQuery(perPage)
	q.Set("q", query)
	route := "/search/code?" + q.Encode()
	var result CodeSearchResult
	if err := c.Get(ctx, route, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func pageQuery(perPage int) url.Values {
	q := url.Values{}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	return q
}
