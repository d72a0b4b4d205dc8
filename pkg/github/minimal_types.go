package github

// MinimalRepository is the trimmed output type for repository list entries.
type MinimalRepository struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	UpdatedAt   string `json:"updated_at,omitempty"`
	Private     bool   `json:"private"`
}

// ListReposResult is the list_repos response envelope.
type ListReposResult struct {
	Owner string              `json:"owner"`
	Repos []MinimalRepository `json:"repos"`
	Count int                 `json:"count"`
}

// RepositoryDetails is the get_repo response.
type RepositoryDetails struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description,omitempty"`
	Language      string `json:"language,omitempty"`
	DefaultBranch string `json:"default_branch,omitempty"`
	Stars         int    `json:"stars"`
	Forks         int    `json:"forks"`
	OpenIssues    int    `json:"open_issues"`
	Visibility    string `json:"visibility,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// MinimalIssue is the trimmed output type for issue list entries.
type MinimalIssue struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	State     string   `json:"state"`
	Author    string   `json:"author,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Comments  int      `json:"comments"`
	CreatedAt string   `json:"created_at,omitempty"`
}

// ListIssuesResult is the list_issues response envelope.
type ListIssuesResult struct {
	Repo   string         `json:"repo"`
	Issues []MinimalIssue `json:"issues"`
	Count  int            `json:"count"`
}

// IssueComment is one comment in a get_issue response.
type IssueComment struct {
	Author    string `json:"author,omitempty"`
	Body      string `json:"body,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// IssueDetails is the get_issue response: the issue merged with its comments.
type IssueDetails struct {
	Number    int            `json:"number"`
	Title     string         `json:"title"`
	State     string         `json:"state"`
	Author    string         `json:"author,omitempty"`
	Labels    []string       `json:"labels,omitempty"`
	Body      string         `json:"body,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	Comments  []IssueComment `json:"comments"`
}

// MinimalPullRequest is the trimmed output type for pull request list entries.
type MinimalPullRequest struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	State     string `json:"state"`
	Author    string `json:"author,omitempty"`
	Head      string `json:"head"`
	Base      string `json:"base"`
	Draft     bool   `json:"draft"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ListPullsResult is the list_pulls response envelope.
type ListPullsResult struct {
	Repo  string               `json:"repo"`
	Pulls []MinimalPullRequest `json:"pulls"`
	Count int                  `json:"count"`
}

// PullRequestDetails is the get_pull response, including the diff stats and a
// review summary keyed by review verdict.
type PullRequestDetails struct {
	Number       int            `json:"number"`
	Title        string         `json:"title"`
	State        string         `json:"state"`
	Author       string         `json:"author,omitempty"`
	Body         string         `json:"body,omitempty"`
	Head         string         `json:"head"`
	Base         string         `json:"base"`
	Draft        bool           `json:"draft"`
	Mergeable    *bool          `json:"mergeable,omitempty"`
	Additions    int            `json:"additions"`
	Deletions    int            `json:"deletions"`
	ChangedFiles int            `json:"changed_files"`
	Commits      int            `json:"commits"`
	Reviews      map[string]int `json:"reviews"`
	CreatedAt    string         `json:"created_at,omitempty"`
	MergedAt     string         `json:"merged_at,omitempty"`
}

// MinimalCodeMatch is one code search hit.
type MinimalCodeMatch struct {
	Repository string `json:"repository"`
	Path       string `json:"path"`
	Snippet    string `json:"snippet,omitempty"`
}

// SearchCodeResult is the search_code response envelope.
type SearchCodeResult struct {
	Query   string             `json:"query"`
	Results []MinimalCodeMatch `json:"results"`
	Count   int                `json:"count"`
}

// MinimalWorkflowRun is the trimmed output type for workflow run entries.
type MinimalWorkflowRun struct {
	ID           int64  `json:"id"`
	WorkflowName string `json:"workflow_name"`
	Status       string `json:"status,omitempty"`
	Conclusion   string `json:"conclusion,omitempty"`
	Branch       string `json:"branch,omitempty"`
	Event        string `json:"event,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// ListActionsRunsResult is the list_actions_runs response envelope.
type ListActionsRunsResult struct {
	Repo  string               `json:"repo"`
	Runs  []MinimalWorkflowRun `json:"runs"`
	Count int                  `json:"count"`
}

// JobLogsResult is the get_job_logs response: the tail of one job's log.
type JobLogsResult struct {
	JobID      int    `json:"job_id"`
	TailLines  int    `json:"tail_lines"`
	TotalLines int    `json:"total_lines"`
	Content    string `json:"content"`
}

// MinimalCommit is the trimmed output type for commit list entries.
type MinimalCommit struct {
	SHA         string `json:"sha"`
	Message     string `json:"message,omitempty"`
	Author      string `json:"author,omitempty"`
	AuthorLogin string `json:"author_login,omitempty"`
	Date        string `json:"date,omitempty"`
}

// ListCommitsResult is the list_commits response envelope.
type ListCommitsResult struct {
	Repo    string          `json:"repo"`
	Commits []MinimalCommit `json:"commits"`
	Count   int             `json:"count"`
}

// MinimalCommitFile represents a file changed in a commit.
type MinimalCommitFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status,omitempty"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
}

// CommitDetails is the get_commit response including stats and changed files.
type CommitDetails struct {
	SHA         string              `json:"sha"`
	Message     string              `json:"message,omitempty"`
	Author      string              `json:"author,omitempty"`
	AuthorLogin string              `json:"author_login,omitempty"`
	Date        string              `json:"date,omitempty"`
	Parents     []string            `json:"parents,omitempty"`
	Additions   int                 `json:"additions"`
	Deletions   int                 `json:"deletions"`
	Files       []MinimalCommitFile `json:"files"`
	FileCount   int                 `json:"file_count"`
}

// MinimalBranch is the trimmed output type for branch entries.
type MinimalBranch struct {
	Name      string `json:"name"`
	SHA       string `json:"sha,omitempty"`
	Protected bool   `json:"protected"`
}

// ListBranchesResult is the list_branches response envelope.
type ListBranchesResult struct {
	Repo     string          `json:"repo"`
	Branches []MinimalBranch `json:"branches"`
	Count    int             `json:"count"`
}

// MinimalTag is the trimmed output type for tag entries.
type MinimalTag struct {
	Name string `json:"name"`
	SHA  string `json:"sha,omitempty"`
}

// ListTagsResult is the list_tags response envelope.
type ListTagsResult struct {
	Repo  string       `json:"repo"`
	Tags  []MinimalTag `json:"tags"`
	Count int          `json:"count"`
}

// MinimalRelease is the trimmed output type for release entries.
type MinimalRelease struct {
	Tag         string `json:"tag"`
	Name        string `json:"name,omitempty"`
	Author      string `json:"author,omitempty"`
	Prerelease  bool   `json:"prerelease"`
	Draft       bool   `json:"draft"`
	PublishedAt string `json:"published_at,omitempty"`
	AssetCount  int    `json:"asset_count"`
}

// ListReleasesResult is the list_releases response envelope.
type ListReleasesResult struct {
	Repo     string           `json:"repo"`
	Releases []MinimalRelease `json:"releases"`
	Count    int              `json:"count"`
}

// FileContents is the get_file_contents response. Content is the decoded file
// body, or a placeholder when the file is not valid UTF-8 text.
type FileContents struct {
	Path    string `json:"path"`
	Name    string `json:"name"`
	Size    int    `json:"size"`
	SHA     string `json:"sha,omitempty"`
	Content string `json:"content"`
}
