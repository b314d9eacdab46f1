package github

import (
	"context"
	"fmt"

	"mcpgithub/server/pkg/githubapi"
)

// Envelope types rendered as the tool result text. Count fields are always
// the length of the normalized array, computed after normalization.

type listReposEnvelope struct {
	Owner string        `json:"owner"`
	Repos []repoSummary `json:"repos"`
	Count int           `json:"count"`
}

// listRepos tries the org endpoint first; on any failure it retries once
// against the user endpoint and surfaces only that second outcome.
func (m *Module) listRepos(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}

	perPage := m.cappedPerPage(nil)

	repos, orgErr := m.client.ListOrgRepos(ctx, owner, perPage)
	if orgErr != nil {
		repos, err = m.client.ListUserRepos(ctx, owner, perPage)
		if err != nil {
			return "", upstreamError(err)
		}
	}

	results := make([]repoSummary, 0, len(repos))
	for _, r := range repos {
		results = append(results, normalizeRepoSummary(r))
	}

	return prettyJSON(listReposEnvelope{Owner: owner, Repos: results, Count: len(results)})
}

func (m *Module) getRepo(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}

	repo, err := m.client.GetRepo(ctx, owner, strParam(params, "repo"))
	if err != nil {
		return "", upstreamError(err)
	}

	return prettyJSON(normalizeRepoDetail(repo))
}

type listIssuesEnvelope struct {
	Repo   string         `json:"repo"`
	Issues []issueSummary `json:"issues"`
	Count  int            `json:"count"`
}

func (m *Module) listIssues(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}
	repo := strParam(params, "repo")

	opt := githubapi.ListIssuesOptions{PerPage: m.cappedPerPage(params)}
	// An unrecognized state value is silently ignored: no filter is applied.
	switch state := strParam(params, "state"); state {
	case "open", "closed", "all":
		opt.State = state
	}
	if labels := strParam(params, "labels"); labels != "" {
		opt.Labels = trimLabels(labels)
	}

	issues, err := m.client.ListIssues(ctx, owner, repo, opt)
	if err != nil {
		return "", upstreamError(err)
	}

	results := make([]issueSummary, 0, len(issues))
	for _, i := range issues {
		results = append(results, normalizeIssueSummary(i))
	}

	return prettyJSON(listIssuesEnvelope{
		Repo:   fmt.Sprintf("%s/%s", owner, repo),
		Issues: results,
		Count:  len(results),
	})
}

func (m *Module) getIssue(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}
	repo := strParam(params, "repo")
	number := int64Param(params, "issue_number")

	issue, err := m.client.GetIssue(ctx, owner, repo, number)
	if err != nil {
		return "", upstreamError(err)
	}

	comments, err := m.client.ListIssueComments(ctx, owner, repo, number)
	if err != nil {
		return "", upstreamError(err)
	}

	return prettyJSON(normalizeIssueDetail(issue, comments))
}

type listPullsEnvelope struct {
	Repo  string        `json:"repo"`
	Pulls []pullSummary `json:"pulls"`
	Count int           `json:"count"`
}

func (m *Module) listPulls(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}
	repo := strParam(params, "repo")

	opt := githubapi.ListPullsOptions{PerPage: m.cappedPerPage(params)}
	switch state := strParam(params, "state"); state {
	case "open", "closed", "all":
		opt.State = state
	}

	pulls, err := m.client.ListPulls(ctx, owner, repo, opt)
	if err != nil {
		return "", upstreamError(err)
	}

	results := make([]pullSummary, 0, len(pulls))
	for _, p := range pulls {
		results = append(results, normalizePullSummary(p))
	}

	return prettyJSON(listPullsEnvelope{
		Repo:  fmt.Sprintf("%s/%s", owner, repo),
		Pulls: results,
		Count: len(results),
	})
}

func (m *Module) getPull(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}

	pr, err := m.client.GetPull(ctx, owner, strParam(params, "repo"), int64Param(params, "pr_number"))
	if err != nil {
		return "", upstreamError(err)
	}

	return prettyJSON(normalizePullDetail(pr))
}

type searchCodeEnvelope struct {
	Query   string      `json:"query"`
	Results []searchHit `json:"results"`
	Count   int         `json:"count"`
}

// searchCode extends the raw query with a scope qualifier when an owner (or
// owner+repo) is in play: "repo:{owner}/{repo}" when a repo is named,
// "org:{owner}" otherwise.
func (m *Module) searchCode(ctx context.Context, params map[string]any) (string, error) {
	query := strParam(params, "query")

	effective := query
	owner := strParam(params, "owner")
	if owner == "" {
		owner = m.cfg.DefaultOwner
	}
	if owner != "" {
		if repo := strParam(params, "repo"); repo != "" {
			effective = fmt.Sprintf("%s repo:%s/%s", effective, owner, repo)
		} else {
			effective = fmt.Sprintf("%s org:%s", effective, owner)
		}
	}

	result, err := m.client.SearchCode(ctx, effective, m.cappedPerPage(params))
	if err != nil {
		return "", upstreamError(err)
	}

	hits := make([]searchHit, 0, len(result.Items))
	for _, item := range result.Items {
		hits = append(hits, normalizeSearchHit(item))
	}

	return prettyJSON(searchCodeEnvelope{Query: query, Results: hits, Count: len(hits)})
}

type listActionsRunsEnvelope struct {
	Repo  string        `json:"repo"`
	Runs  []workflowRun `json:"runs"`
	Count int           `json:"count"`
}

func (m *Module) listActionsRuns(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}
	repo := strParam(params, "repo")

	// Raw route: validate owner and repo before interpolation.
	if err := validateName(owner, "owner"); err != nil {
		return "", err
	}
	if err := validateName(repo, "repo"); err != nil {
		return "", err
	}

	route := fmt.Sprintf("/repos/%s/%s/actions/runs?per_page=%d", owner, repo, m.cappedPerPage(params))
	if status := strParam(params, "status"); status != "" {
		if err := validatePathValue(status, "status"); err != nil {
			return "", err
		}
		route += "&status=" + status
	}

	var wire wireWorkflowRuns
	if err := m.client.Get(ctx, route, &wire); err != nil {
		return "", upstreamError(err)
	}

	runs := make([]workflowRun, 0, len(wire.WorkflowRuns))
	for _, r := range wire.WorkflowRuns {
		runs = append(runs, normalizeWorkflowRun(r))
	}

	return prettyJSON(listActionsRunsEnvelope{
		Repo:  fmt.Sprintf("%s/%s", owner, repo),
		Runs:  runs,
		Count: len(runs),
	})
}

type listCommitsEnvelope struct {
	Repo    string          `json:"repo"`
	Commits []commitSummary `json:"commits"`
	Count   int             `json:"count"`
}

func (m *Module) listCommits(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}
	repo := strParam(params, "repo")

	if err := validateName(owner, "owner"); err != nil {
		return "", err
	}
	if err := validateName(repo, "repo"); err != nil {
		return "", err
	}

	route := fmt.Sprintf("/repos/%s/%s/commits?per_page=%d", owner, repo, m.cappedPerPage(params))
	if sha := strParam(params, "sha"); sha != "" {
		if err := validatePathValue(sha, "sha"); err != nil {
			return "", err
		}
		route += "&sha=" + sha
	}
	if author := strParam(params, "author"); author != "" {
		if err := validatePathValue(author, "author"); err != nil {
			return "", err
		}
		route += "&author=" + author
	}

	var wire []wireCommit
	if err := m.client.Get(ctx, route, &wire); err != nil {
		return "", upstreamError(err)
	}

	commits := make([]commitSummary, 0, len(wire))
	for _, c := range wire {
		commits = append(commits, normalizeCommitSummary(c))
	}

	return prettyJSON(listCommitsEnvelope{
		Repo:    fmt.Sprintf("%s/%s", owner, repo),
		Commits: commits,
		Count:   len(commits),
	})
}

func (m *Module) getCommit(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}
	repo := strParam(params, "repo")
	ref := strParam(params, "ref")

	if err := validateName(owner, "owner"); err != nil {
		return "", err
	}
	if err := validateName(repo, "repo"); err != nil {
		return "", err
	}
	if err := validatePathValue(ref, "ref"); err != nil {
		return "", err
	}

	route := fmt.Sprintf("/repos/%s/%s/commits/%s", owner, repo, ref)

	var wire wireCommit
	if err := m.client.Get(ctx, route, &wire); err != nil {
		return "", upstreamError(err)
	}

	return prettyJSON(normalizeCommitDetail(wire))
}

type listBranchesEnvelope struct {
	Repo     string       `json:"repo"`
	Branches []branchInfo `json:"branches"`
	Count    int          `json:"count"`
}

func (m *Module) listBranches(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}
	repo := strParam(params, "repo")

	if err := validateName(owner, "owner"); err != nil {
		return "", err
	}
	if err := validateName(repo, "repo"); err != nil {
		return "", err
	}

	route := fmt.Sprintf("/repos/%s/%s/branches?per_page=%d", owner, repo, m.cappedPerPage(params))

	var wire []wireBranch
	if err := m.client.Get(ctx, route, &wire); err != nil {
		return "", upstreamError(err)
	}

	branches := make([]branchInfo, 0, len(wire))
	for _, b := range wire {
		branches = append(branches, normalizeBranch(b))
	}

	return prettyJSON(listBranchesEnvelope{
		Repo:     fmt.Sprintf("%s/%s", owner, repo),
		Branches: branches,
		Count:    len(branches),
	})
}

func (m *Module) getFileContents(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}
	repo := strParam(params, "repo")
	path := strParam(params, "path")

	if err := validateName(owner, "owner"); err != nil {
		return "", err
	}
	if err := validateName(repo, "repo"); err != nil {
		return "", err
	}
	if err := validatePathValue(path, "path"); err != nil {
		return "", err
	}

	route := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path)
	if ref := strParam(params, "ref"); ref != "" {
		if err := validatePathValue(ref, "ref"); err != nil {
			return "", err
		}
		route += "?ref=" + ref
	}

	var wire wireContent
	if err := m.client.Get(ctx, route, &wire); err != nil {
		return "", upstreamError(err)
	}

	return prettyJSON(normalizeFileContent(wire))
}

type listReleasesEnvelope struct {
	Repo     string        `json:"repo"`
	Releases []releaseInfo `json:"releases"`
	Count    int           `json:"count"`
}

func (m *Module) listReleases(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}
	repo := strParam(params, "repo")

	if err := validateName(owner, "owner"); err != nil {
		return "", err
	}
	if err := validateName(repo, "repo"); err != nil {
		return "", err
	}

	route := fmt.Sprintf("/repos/%s/%s/releases?per_page=%d", owner, repo, m.cappedPerPage(params))

	var wire []wireRelease
	if err := m.client.Get(ctx, route, &wire); err != nil {
		return "", upstreamError(err)
	}

	releases := make([]releaseInfo, 0, len(wire))
	for _, r := range wire {
		releases = append(releases, normalizeRelease(r))
	}

	return prettyJSON(listReleasesEnvelope{
		Repo:     fmt.Sprintf("%s/%s", owner, repo),
		Releases: releases,
		Count:    len(releases),
	})
}

type listTagsEnvelope struct {
	Repo  string    `json:"repo"`
	Tags  []tagInfo `json:"tags"`
	Count int       `json:"count"`
}

func (m *Module) listTags(ctx context.Context, params map[string]any) (string, error) {
	owner, err := m.resolveOwner(params)
	if err != nil {
		return "", err
	}
	repo := strParam(params, "repo")

	if err := validateName(owner, "owner"); err != nil {
		return "", err
	}
	if err := validateName(repo, "repo"); err != nil {
		return "", err
	}

	route := fmt.Sprintf("/repos/%s/%s/tags?per_page=%d", owner, repo, m.cappedPerPage(params))

	var wire []wireTag
	if err := m.client.Get(ctx, route, &wire); err != nil {
		return "", upstreamError(err)
	}

	tags := make([]tagInfo, 0, len(wire))
	for _, t := range wire {
		tags = append(tags, normalizeTag(t))
	}

	return prettyJSON(listTagsEnvelope{
		Repo:  fmt.Sprintf("%s/%s", owner, repo),
		Tags:  tags,
		Count: len(tags),
	})
}
