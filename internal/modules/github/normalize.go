package github

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"mcpgithub/server/pkg/githubapi"
)

// Normalized output shapes. Every field is always present in the rendered
// JSON: missing upstream values become the zero default, never a missing key.
// Struct order is the rendered key order.

type repoSummary struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Private     bool   `json:"private"`
}

func normalizeRepoSummary(r githubapi.Repository) repoSummary {
	return repoSummary{
		Name:        r.Name,
		FullName:    r.FullName,
		Description: r.Description,
		Language:    r.Language,
		Stars:       r.StargazersCount,
		Forks:       r.ForksCount,
		Private:     r.Private,
	}
}

type repoDetail struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	Language      string `json:"language"`
	DefaultBranch string `json:"default_branch"`
	Stars         int    `json:"stars"`
	Forks         int    `json:"forks"`
	OpenIssues    int    `json:"open_issues"`
	Private       bool   `json:"private"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func normalizeRepoDetail(r *githubapi.Repository) repoDetail {
	return repoDetail{
		Name:          r.Name,
		FullName:      r.FullName,
		Description:   r.Description,
		Language:      r.Language,
		DefaultBranch: r.DefaultBranch,
		Stars:         r.StargazersCount,
		Forks:         r.ForksCount,
		OpenIssues:    r.OpenIssuesCount,
		Private:       r.Private,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type issueSummary struct {
	Number    int64    `json:"number"`
	Title     string   `json:"title"`
	State     string   `json:"state"`
	Author    string   `json:"author"`
	Labels    []string `json:"labels"`
	Comments  int64    `json:"comments"`
	CreatedAt string   `json:"created_at"`
}

func normalizeIssueSummary(i githubapi.Issue) issueSummary {
	return issueSummary{
		Number:    i.Number,
		Title:     i.Title,
		State:     formatState(i.State),
		Author:    i.User.Login,
		Labels:    labelNames(i.Labels),
		Comments:  i.Comments,
		CreatedAt: i.CreatedAt,
	}
}

type commentItem struct {
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

type issueDetail struct {
	Number    int64         `json:"number"`
	Title     string        `json:"title"`
	State     string        `json:"state"`
	Author    string        `json:"author"`
	Labels    []string      `json:"labels"`
	Body      string        `json:"body"`
	Comments  []commentItem `json:"comments"`
	CreatedAt string        `json:"created_at"`
}

func normalizeIssueDetail(i *githubapi.Issue, comments []githubapi.IssueComment) issueDetail {
	items := make([]commentItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, commentItem{Author: c.User.Login, Body: c.Body, CreatedAt: c.CreatedAt})
	}
	return issueDetail{
		Number:    i.Number,
		Title:     i.Title,
		State:     formatState(i.State),
		Author:    i.User.Login,
		Labels:    labelNames(i.Labels),
		Body:      i.Body,
		Comments:  items,
		CreatedAt: i.CreatedAt,
	}
}

type pullSummary struct {
	Number    int64  `json:"number"`
	Title     string `json:"title"`
	State     string `json:"state"`
	Author    string `json:"author"`
	Head      string `json:"head"`
	Base      string `json:"base"`
	Draft     bool   `json:"draft"`
	CreatedAt string `json:"created_at"`
}

func normalizePullSummary(p githubapi.PullRequest) pullSummary {
	return pullSummary{
		Number:    p.Number,
		Title:     p.Title,
		State:     formatState(p.State),
		Author:    authorLogin(p.User),
		Head:      p.Head.Ref,
		Base:      p.Base.Ref,
		Draft:     p.Draft,
		CreatedAt: p.CreatedAt,
	}
}

type pullDetail struct {
	Number       int64  `json:"number"`
	Title        string `json:"title"`
	State        string `json:"state"`
	Author       string `json:"author"`
	Body         string `json:"body"`
	Head         string `json:"head"`
	Base         string `json:"base"`
	Draft        bool   `json:"draft"`
	Mergeable    *bool  `json:"mergeable"`
	Additions    int64  `json:"additions"`
	Deletions    int64  `json:"deletions"`
	ChangedFiles int64  `json:"changed_files"`
	Commits      int64  `json:"commits"`
	CreatedAt    string `json:"created_at"`
	MergedAt     string `json:"merged_at"`
}

func normalizePullDetail(p *githubapi.PullRequest) pullDetail {
	return pullDetail{
		Number:       p.Number,
		Title:        p.Title,
		State:        formatState(p.State),
		Author:       authorLogin(p.User),
		Body:         p.Body,
		Head:         p.Head.Ref,
		Base:         p.Base.Ref,
		Draft:        p.Draft,
		Mergeable:    p.Mergeable,
		Additions:    p.Additions,
		Deletions:    p.Deletions,
		ChangedFiles: p.ChangedFiles,
		Commits:      p.Commits,
		CreatedAt:    p.CreatedAt,
		MergedAt:     p.MergedAt,
	}
}

type searchHit struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Repository string `json:"repository"`
	URL        string `json:"url"`
}

func normalizeSearchHit(item githubapi.CodeSearchItem) searchHit {
	return searchHit{
		Name:       item.Name,
		Path:       item.Path,
		Repository: item.Repository.FullName,
		URL:        item.HTMLURL,
	}
}

// -- Wire shapes for raw-route calls. These are the typed intermediates for
// endpoints reached by string-interpolated routes; absent fields decode to
// zero values, which the normalized shapes carry through as defaults. --

type wireWorkflowRuns struct {
	WorkflowRuns []wireWorkflowRun `json:"workflow_runs"`
}

type wireWorkflowRun struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	HeadBranch string `json:"head_branch"`
	Event      string `json:"event"`
	CreatedAt  string `json:"created_at"`
}

type workflowRun struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	Branch     string `json:"branch"`
	Event      string `json:"event"`
	CreatedAt  string `json:"created_at"`
}

func normalizeWorkflowRun(r wireWorkflowRun) workflowRun {
	return workflowRun{
		ID:         r.ID,
		Name:       r.Name,
		Status:     r.Status,
		Conclusion: r.Conclusion,
		Branch:     r.HeadBranch,
		Event:      r.Event,
		CreatedAt:  r.CreatedAt,
	}
}

type wireCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Author *struct {
		Login string `json:"login"`
	} `json:"author"`
	Parents []struct {
		SHA string `json:"sha"`
	} `json:"parents"`
	Stats json.RawMessage `json:"stats"`
	Files []struct {
		Filename  string `json:"filename"`
		Status    string `json:"status"`
		Additions int64  `json:"additions"`
		Deletions int64  `json:"deletions"`
		Changes   int64  `json:"changes"`
	} `json:"files"`
}

type commitSummary struct {
	SHA         string `json:"sha"`
	Message     string `json:"message"`
	Author      string `json:"author"`
	AuthorLogin string `json:"author_login"`
	Date        string `json:"date"`
}

func normalizeCommitSummary(c wireCommit) commitSummary {
	login := ""
	if c.Author != nil {
		login = c.Author.Login
	}
	return commitSummary{
		SHA:         c.SHA,
		Message:     c.Commit.Message,
		Author:      c.Commit.Author.Name,
		AuthorLogin: login,
		Date:        c.Commit.Author.Date,
	}
}

type changedFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int64  `json:"additions"`
	Deletions int64  `json:"deletions"`
	Changes   int64  `json:"changes"`
}

type commitDetail struct {
	SHA         string          `json:"sha"`
	Message     string          `json:"message"`
	Author      string          `json:"author"`
	AuthorLogin string          `json:"author_login"`
	Date        string          `json:"date"`
	Parents     []string        `json:"parents"`
	Stats       json.RawMessage `json:"stats"`
	Files       []changedFile   `json:"files"`
	FileCount   int             `json:"file_count"`
}

func normalizeCommitDetail(c wireCommit) commitDetail {
	summary := normalizeCommitSummary(c)
	parents := make([]string, 0, len(c.Parents))
	for _, p := range c.Parents {
		parents = append(parents, p.SHA)
	}
	files := make([]changedFile, 0, len(c.Files))
	for _, f := range c.Files {
		files = append(files, changedFile(f))
	}
	stats := c.Stats
	if stats == nil {
		stats = json.RawMessage("null")
	}
	return commitDetail{
		SHA:         summary.SHA,
		Message:     summary.Message,
		Author:      summary.Author,
		AuthorLogin: summary.AuthorLogin,
		Date:        summary.Date,
		Parents:     parents,
		Stats:       stats,
		Files:       files,
		FileCount:   len(files),
	}
}

type wireBranch struct {
	Name   string `json:"name"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
	Protected bool `json:"protected"`
}

type branchInfo struct {
	Name      string `json:"name"`
	SHA       string `json:"sha"`
	Protected bool   `json:"protected"`
}

func normalizeBranch(b wireBranch) branchInfo {
	return branchInfo{Name: b.Name, SHA: b.Commit.SHA, Protected: b.Protected}
}

type wireContent struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
	SHA      string `json:"sha"`
}

type fileContent struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
	SHA      string `json:"sha"`
}

// binarySentinel replaces file content that does not decode to valid UTF-8.
// A binary file must not abort the read; callers get the sentinel instead.
const binarySentinel = "[binary content]"

func normalizeFileContent(c wireContent) fileContent {
	return fileContent{
		Path:     c.Path,
		Name:     c.Name,
		Size:     c.Size,
		Encoding: c.Encoding,
		Content:  decodeFileContent(c.Content),
		SHA:      c.SHA,
	}
}

// decodeFileContent decodes the upstream base64 payload. GitHub embeds
// newlines in the base64 stream, so all whitespace is stripped first.
func decodeFileContent(content string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, content)

	decoded, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil || !utf8.Valid(decoded) {
		return binarySentinel
	}
	return string(decoded)
}

type wireRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Author  struct {
		Login string `json:"login"`
	} `json:"author"`
	Prerelease  bool              `json:"prerelease"`
	Draft       bool              `json:"draft"`
	PublishedAt string            `json:"published_at"`
	Assets      []json.RawMessage `json:"assets"`
}

type releaseInfo struct {
	Tag         string `json:"tag"`
	Name        string `json:"name"`
	Author      string `json:"author"`
	Prerelease  bool   `json:"prerelease"`
	Draft       bool   `json:"draft"`
	PublishedAt string `json:"published_at"`
	AssetCount  int    `json:"asset_count"`
}

func normalizeRelease(r wireRelease) releaseInfo {
	return releaseInfo{
		Tag:         r.TagName,
		Name:        r.Name,
		Author:      r.Author.Login,
		Prerelease:  r.Prerelease,
		Draft:       r.Draft,
		PublishedAt: r.PublishedAt,
		AssetCount:  len(r.Assets),
	}
}

type wireTag struct {
	Name   string `json:"name"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

type tagInfo struct {
	Name string `json:"name"`
	SHA  string `json:"sha"`
}

func normalizeTag(t wireTag) tagInfo {
	return tagInfo{Name: t.Name, SHA: t.Commit.SHA}
}

// -- Shared helpers --

// formatState reduces an issue/PR state to the closed lowercase set; anything
// outside it becomes "unknown" rather than failing.
func formatState(state string) string {
	switch state {
	case "open", "closed":
		return state
	default:
		return "unknown"
	}
}

func labelNames(labels []githubapi.Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}

func authorLogin(u githubapi.User) string {
	if u.Login == "" {
		return "unknown"
	}
	return u.Login
}
