package githubapi

// Typed models for the endpoints the client exposes as dedicated methods.
// Fields the upstream omits decode to their zero value; callers treat zero as
// the documented default rather than as an error.

// User is the minimal account shape embedded in issues, comments, and PRs.
type User struct {
	Login string `json:"login"`
}

// Label is an issue/PR label.
type Label struct {
	Name string `json:"name"`
}

// Repository is the subset of the upstream repository object this server
// consumes.
type Repository struct {
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	DefaultBranch   string `json:"default_branch"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	OpenIssuesCount int    `json:"open_issues_count"`
	Private         bool   `json:"private"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// Issue is an issue as returned by the issues endpoints.
type Issue struct {
	Number    int64   `json:"number"`
	Title     string  `json:"title"`
	State     string  `json:"state"`
	User      User    `json:"user"`
	Labels    []Label `json:"labels"`
	Comments  int64   `json:"comments"`
	Body      string  `json:"body"`
	CreatedAt string  `json:"created_at"`
}

// IssueComment is a single comment on an issue.
type IssueComment struct {
	User      User   `json:"user"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// GitRef is the head/base of a pull request.
type GitRef struct {
	Ref string `json:"ref"`
}

// PullRequest is a pull request as returned by the pulls endpoints.
// Mergeable is a pointer: the upstream reports null while the merge state is
// still being computed, and that null is part of the contract.
type PullRequest struct {
	Number       int64  `json:"number"`
	Title        string `json:"title"`
	State        string `json:"state"`
	User         User   `json:"user"`
	Body         string `json:"body"`
	Head         GitRef `json:"head"`
	Base         GitRef `json:"base"`
	Draft        bool   `json:"draft"`
	Mergeable    *bool  `json:"mergeable"`
	Additions    int64  `json:"additions"`
	Deletions    int64  `json:"deletions"`
	ChangedFiles int64  `json:"changed_files"`
	Commits      int64  `json:"commits"`
	CreatedAt    string `json:"created_at"`
	MergedAt     string `json:"merged_at"`
}

// CodeSearchItem is one hit from the code search endpoint.
type CodeSearchItem struct {
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	Repository Repository `json:"repository"`
	HTMLURL    string     `json:"html_url"`
}

// CodeSearchResult is the code search response envelope.
type CodeSearchResult struct {
	TotalCount int64            `json:"total_count"`
	Items      []CodeSearchItem `json:"items"`
}
