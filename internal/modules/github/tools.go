package github

import "mcpgithub/server/internal/modules"

// toolDefinitions is the full read-only tool catalog.
var toolDefinitions = []modules.Tool{
	{
		Name:        "list_repos",
		Description: "List repositories for a user or organization",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": {Type: "string", Description: "GitHub user or organization name"},
			},
		},
	},
	{
		Name:        "get_repo",
		Description: "Get repository info including description, stars, forks, language, and default branch",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": {Type: "string", Description: "Repository owner (user or org)"},
				"repo":  {Type: "string", Description: "Repository name"},
			},
			Required: []string{"repo"},
		},
	},
	{
		Name:        "list_issues",
		Description: "List issues in a repository, optionally filtered by state and labels",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":    {Type: "string", Description: "Repository owner (user or org)"},
				"repo":     {Type: "string", Description: "Repository name"},
				"state":    {Type: "string", Description: "Filter by state: open, closed, or all (default: open)"},
				"labels":   {Type: "string", Description: "Filter by comma-separated label names"},
				"per_page": {Type: "number", Description: "Maximum number of results"},
			},
			Required: []string{"repo"},
		},
	},
	{
		Name:        "get_issue",
		Description: "Get issue details including body and comments",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":        {Type: "string", Description: "Repository owner (user or org)"},
				"repo":         {Type: "string", Description: "Repository name"},
				"issue_number": {Type: "number", Description: "Issue number"},
			},
			Required: []string{"repo", "issue_number"},
		},
	},
	{
		Name:        "list_pulls",
		Description: "List pull requests in a repository",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":    {Type: "string", Description: "Repository owner (user or org)"},
				"repo":     {Type: "string", Description: "Repository name"},
				"state":    {Type: "string", Description: "Filter by state: open, closed, or all (default: open)"},
				"per_page": {Type: "number", Description: "Maximum number of results"},
			},
			Required: []string{"repo"},
		},
	},
	{
		Name:        "get_pull",
		Description: "Get pull request details including review summary and changed files count",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":     {Type: "string", Description: "Repository owner (user or org)"},
				"repo":      {Type: "string", Description: "Repository name"},
				"pr_number": {Type: "number", Description: "Pull request number"},
			},
			Required: []string{"repo", "pr_number"},
		},
	},
	{
		Name:        "search_code",
		Description: "Search code across GitHub repositories using GitHub's code search syntax",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"query":    {Type: "string", Description: "Search query (GitHub code search syntax)"},
				"owner":    {Type: "string", Description: "Scope search to this owner/org"},
				"repo":     {Type: "string", Description: "Scope search to this repository"},
				"per_page": {Type: "number", Description: "Maximum number of results"},
			},
			Required: []string{"query"},
		},
	},
	{
		Name:        "list_actions_runs",
		Description: "List recent GitHub Actions workflow runs for a repository",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":    {Type: "string", Description: "Repository owner (user or org)"},
				"repo":     {Type: "string", Description: "Repository name"},
				"status":   {Type: "string", Description: "Filter by status: completed, in_progress, queued"},
				"per_page": {Type: "number", Description: "Maximum number of results"},
			},
			Required: []string{"repo"},
		},
	},
	{
		Name:        "list_commits",
		Description: "List commits on a branch or tag",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":    {Type: "string", Description: "Repository owner (user or org)"},
				"repo":     {Type: "string", Description: "Repository name"},
				"sha":      {Type: "string", Description: "Branch or tag name (default: repo's default branch)"},
				"author":   {Type: "string", Description: "Filter commits by author (GitHub username or email)"},
				"per_page": {Type: "number", Description: "Maximum number of results"},
			},
			Required: []string{"repo"},
		},
	},
	{
		Name:        "get_commit",
		Description: "Get full commit details including changed files",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": {Type: "string", Description: "Repository owner (user or org)"},
				"repo":  {Type: "string", Description: "Repository name"},
				"ref":   {Type: "string", Description: "Commit SHA, branch name, or tag"},
			},
			Required: []string{"repo", "ref"},
		},
	},
	{
		Name:        "list_branches",
		Description: "List branches in a repository",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":    {Type: "string", Description: "Repository owner (user or org)"},
				"repo":     {Type: "string", Description: "Repository name"},
				"per_page": {Type: "number", Description: "Maximum number of results"},
			},
			Required: []string{"repo"},
		},
	},
	{
		Name:        "get_file_contents",
		Description: "Get file content from a repository at a specific ref",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": {Type: "string", Description: "Repository owner (user or org)"},
				"repo":  {Type: "string", Description: "Repository name"},
				"path":  {Type: "string", Description: "File path within the repository"},
				"ref":   {Type: "string", Description: "Git ref (branch, tag, or SHA). Defaults to the repo's default branch"},
			},
			Required: []string{"repo", "path"},
		},
	},
	{
		Name:        "list_releases",
		Description: "List releases for a repository",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":    {Type: "string", Description: "Repository owner (user or org)"},
				"repo":     {Type: "string", Description: "Repository name"},
				"per_page": {Type: "number", Description: "Maximum number of results"},
			},
			Required: []string{"repo"},
		},
	},
	{
		Name:        "list_tags",
		Description: "List tags in a repository",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":    {Type: "string", Description: "Repository owner (user or org)"},
				"repo":     {Type: "string", Description: "Repository name"},
				"per_page": {Type: "number", Description: "Maximum number of results"},
			},
			Required: []string{"repo"},
		},
	},
}
