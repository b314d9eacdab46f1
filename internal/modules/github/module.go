// Package github implements the GitHub module: a read-only façade that maps
// MCP tool calls onto GitHub REST API endpoints. Every handler follows the
// same pipeline: resolve the owner, sanitize anything destined for a
// hand-built route, issue the upstream call, normalize the response, and
// render a pretty-printed JSON envelope.
package github

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-faster/errors"

	"mcpgithub/server/internal/modules"
	"mcpgithub/server/pkg/githubapi"
)

const githubAPIVersion = "2022-11-28"

// upstreamMax is the page-size ceiling enforced by the GitHub API.
const upstreamMax = 100

// Config is the module's process-wide configuration. It is built once at
// startup and never mutated.
type Config struct {
	// DefaultOwner is used when a tool call does not name an owner.
	DefaultOwner string
	// MaxResults is the default page size for list tools.
	MaxResults int
}

type handlerFunc func(ctx context.Context, params map[string]any) (string, error)

// Module implements modules.Module for the GitHub API.
type Module struct {
	client   *githubapi.Client
	cfg      Config
	handlers map[string]handlerFunc
}

// New creates the GitHub module around an injected API client.
func New(client *githubapi.Client, cfg Config) *Module {
	m := &Module{client: client, cfg: cfg}
	m.handlers = map[string]handlerFunc{
		"list_repos":        m.listRepos,
		"get_repo":          m.getRepo,
		"list_issues":       m.listIssues,
		"get_issue":         m.getIssue,
		"list_pulls":        m.listPulls,
		"get_pull":          m.getPull,
		"search_code":       m.searchCode,
		"list_actions_runs": m.listActionsRuns,
		"list_commits":      m.listCommits,
		"get_commit":        m.getCommit,
		"list_branches":     m.listBranches,
		"get_file_contents": m.getFileContents,
		"list_releases":     m.listReleases,
		"list_tags":         m.listTags,
	}
	return m
}

func (m *Module) Name() string { return "github" }

func (m *Module) Description() string {
	return "GitHub API - repository, issue, PR, commit, branch, release, search, and Actions lookups (read-only)"
}

func (m *Module) APIVersion() string { return githubAPIVersion }

func (m *Module) Tools() []modules.Tool { return toolDefinitions }

// ExecuteTool executes a tool by name and returns the rendered result text.
func (m *Module) ExecuteTool(ctx context.Context, name string, params map[string]any) (string, error) {
	handler, ok := m.handlers[name]
	if !ok {
		return "", modules.Otherf("unknown tool: %s", name)
	}
	return handler(ctx, params)
}

// resolveOwner merges the per-call owner with the configured default.
// Explicit always wins; neither present is a missing-parameter error.
func (m *Module) resolveOwner(params map[string]any) (string, error) {
	if owner := strParam(params, "owner"); owner != "" {
		return owner, nil
	}
	if m.cfg.DefaultOwner != "" {
		return m.cfg.DefaultOwner, nil
	}
	return "", modules.MissingParamf("owner is required (or configure a default owner)")
}

// cappedPerPage picks the effective page size: the per-call value if given,
// else the configured default, clamped to the upstream maximum. Oversized
// requests are clamped, never rejected.
func (m *Module) cappedPerPage(params map[string]any) int {
	perPage := m.cfg.MaxResults
	if v, ok := intParam(params, "per_page"); ok && v > 0 {
		perPage = v
	}
	if perPage > upstreamMax {
		perPage = upstreamMax
	}
	return perPage
}

// -- Param accessors. Params have passed schema validation; types here are
// trusted, absence maps to the zero value. --

func strParam(params map[string]any, key string) string {
	s, _ := params[key].(string)
	return s
}

func intParam(params map[string]any, key string) (int, bool) {
	// JSON numbers arrive as float64.
	f, ok := params[key].(float64)
	return int(f), ok
}

func int64Param(params map[string]any, key string) int64 {
	f, _ := params[key].(float64)
	return int64(f)
}

// trimLabels normalizes a comma-separated label list: each name is trimmed,
// empties preserved as the upstream treats them (it ignores them).
func trimLabels(labels string) string {
	parts := strings.Split(labels, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ",")
}

// prettyJSON renders an envelope as indented JSON for the result text.
func prettyJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshal result")
	}
	return string(b), nil
}

// upstreamError folds a client error into the tool-error taxonomy: 404 is a
// not-found (client-input) error, 401 means bad or missing credentials,
// anything else from the upstream stays an upstream failure.
func upstreamError(err error) error {
	var apiErr *githubapi.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.NotFound():
			return modules.NotFoundf("%s", apiErr.Message)
		case apiErr.Unauthorized():
			return modules.Unauthenticated()
		default:
			return modules.Upstreamf("%s", apiErr.Error())
		}
	}
	return modules.Upstreamf("%s", err.Error())
}
