package github

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/go-github/v69/github"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mcptools/mcp-github/pkg/translations"
)

func formatTime(ts github.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(time.RFC3339)
}

// ListRepos creates a tool to list repositories for a user or organization.
func ListRepos(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_repos",
			mcp.WithDescription(t("TOOL_LIST_REPOS_DESCRIPTION", "List repositories for a user or organization")),
			mcp.WithString("owner",
				mcp.Description("GitHub user or organization name"),
			),
			mcp.WithNumber("per_page",
				mcp.Description("Maximum number of results"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			owner, err := cfg.resolveOwner(request)
			if err != nil {
				return invalidArgs(err), nil
			}
			limit, err := cfg.resultLimit(request)
			if err != nil {
				return invalidArgs(err), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			// Try the owner as an organization first, then as a user,
			// matching how GitHub scopes its repository listings.
			repos, err := paginate(limit, func(page, perPage int) ([]*github.Repository, *github.Response, error) {
				opts := &github.RepositoryListByOrgOptions{
					ListOptions: github.ListOptions{Page: page, PerPage: perPage},
				}
				return client.Repositories.ListByOrg(ctx, owner, opts)
			})
			if err != nil {
				repos, err = paginate(limit, func(page, perPage int) ([]*github.Repository, *github.Response, error) {
					opts := &github.RepositoryListByUserOptions{
						ListOptions: github.ListOptions{Page: page, PerPage: perPage},
					}
					return client.Repositories.ListByUser(ctx, owner, opts)
				})
				if err != nil {
					return classifyError("failed to list repositories", err), nil
				}
			}

			result := ListReposResult{Owner: owner, Repos: make([]MinimalRepository, 0, len(repos))}
			for _, repo := range repos {
				result.Repos = append(result.Repos, MinimalRepository{
					Name:        repo.GetName(),
					FullName:    repo.GetFullName(),
					Description: repo.GetDescription(),
					Language:    repo.GetLanguage(),
					Stars:       repo.GetStargazersCount(),
					Forks:       repo.GetForksCount(),
					UpdatedAt:   formatTime(repo.GetUpdatedAt()),
					Private:     repo.GetPrivate(),
				})
			}
			result.Count = len(result.Repos)

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}

// GetRepo creates a tool to get details of a single repository.
func GetRepo(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_repo",
			mcp.WithDescription(t("TOOL_GET_REPO_DESCRIPTION", "Get repository info including description, stars, forks, language, and default branch")),
			mcp.WithString("owner",
				mcp.Description("Repository owner (user or org)"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			owner, err := cfg.resolveOwner(request)
			if err != nil {
				return invalidArgs(err), nil
			}
			repo, err := requiredRepo(request)
			if err != nil {
				return invalidArgs(err), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			repository, resp, err := client.Repositories.Get(ctx, owner, repo)
			if err != nil {
				return classifyError(fmt.Sprintf("failed to get repository %s/%s", owner, repo), err), nil
			}
			defer func() { _ = resp.Body.Close() }()

			result := RepositoryDetails{
				Name:          repository.GetName(),
				FullName:      repository.GetFullName(),
				Description:   repository.GetDescription(),
				Language:      repository.GetLanguage(),
				DefaultBranch: repository.GetDefaultBranch(),
				Stars:         repository.GetStargazersCount(),
				Forks:         repository.GetForksCount(),
				OpenIssues:    repository.GetOpenIssuesCount(),
				Visibility:    repository.GetVisibility(),
				CreatedAt:     formatTime(repository.GetCreatedAt()),
				UpdatedAt:     formatTime(repository.GetUpdatedAt()),
			}

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}

// ListBranches creates a tool to list branches in a repository.
func ListBranches(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_branches",
			mcp.WithDescription(t("TOOL_LIST_BRANCHES_DESCRIPTION", "List branches in a repository")),
			mcp.WithString("owner",
				mcp.Description("Repository owner (user or org)"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
			mcp.WithNumber("per_page",
				mcp.Description("Maximum number of results"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			owner, err := cfg.resolveOwner(request)
			if err != nil {
				return invalidArgs(err), nil
			}
			repo, err := requiredRepo(request)
			if err != nil {
				return invalidArgs(err), nil
			}
			limit, err := cfg.resultLimit(request)
			if err != nil {
				return invalidArgs(err), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			branches, err := paginate(limit, func(page, perPage int) ([]*github.Branch, *github.Response, error) {
				opts := &github.BranchListOptions{
					ListOptions: github.ListOptions{Page: page, PerPage: perPage},
				}
				return client.Repositories.ListBranches(ctx, owner, repo, opts)
			})
			if err != nil {
				return classifyError(fmt.Sprintf("failed to list branches for %s/%s", owner, repo), err), nil
			}

			result := ListBranchesResult{Repo: owner + "/" + repo, Branches: make([]MinimalBranch, 0, len(branches))}
			for _, branch := range branches {
				result.Branches = append(result.Branches, MinimalBranch{
					Name:      branch.GetName(),
					SHA:       branch.GetCommit().GetSHA(),
					Protected: branch.GetProtected(),
				})
			}
			result.Count = len(result.Branches)

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}

// ListTags creates a tool to list tags in a repository.
func ListTags(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_tags",
			mcp.WithDescription(t("TOOL_LIST_TAGS_DESCRIPTION", "List tags in a repository")),
			mcp.WithString("owner",
				mcp.Description("Repository owner (user or org)"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
			mcp.WithNumber("per_page",
				mcp.Description("Maximum number of results"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			owner, err := cfg.resolveOwner(request)
			if err != nil {
				return invalidArgs(err), nil
			}
			repo, err := requiredRepo(request)
			if err != nil {
				return invalidArgs(err), nil
			}
			limit, err := cfg.resultLimit(request)
			if err != nil {
				return invalidArgs(err), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			tags, err := paginate(limit, func(page, perPage int) ([]*github.RepositoryTag, *github.Response, error) {
				opts := &github.ListOptions{Page: page, PerPage: perPage}
				return client.Repositories.ListTags(ctx, owner, repo, opts)
			})
			if err != nil {
				return classifyError(fmt.Sprintf("failed to list tags for %s/%s", owner, repo), err), nil
			}

			result := ListTagsResult{Repo: owner + "/" + repo, Tags: make([]MinimalTag, 0, len(tags))}
			for _, tag := range tags {
				result.Tags = append(result.Tags, MinimalTag{
					Name: tag.GetName(),
					SHA:  tag.GetCommit().GetSHA(),
				})
			}
			result.Count = len(result.Tags)

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}

// ListReleases creates a tool to list releases in a repository.
func ListReleases(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_releases",
			mcp.WithDescription(t("TOOL_LIST_RELEASES_DESCRIPTION", "List releases for a repository")),
			mcp.WithString("owner",
				mcp.Description("Repository owner (user or org)"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
			mcp.WithNumber("per_page",
				mcp.Description("Maximum number of results"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			owner, err := cfg.resolveOwner(request)
			if err != nil {
				return invalidArgs(err), nil
			}
			repo, err := requiredRepo(request)
			if err != nil {
				return invalidArgs(err), nil
			}
			limit, err := cfg.resultLimit(request)
			if err != nil {
				return invalidArgs(err), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			releases, err := paginate(limit, func(page, perPage int) ([]*github.RepositoryRelease, *github.Response, error) {
				opts := &github.ListOptions{Page: page, PerPage: perPage}
				return client.Repositories.ListReleases(ctx, owner, repo, opts)
			})
			if err != nil {
				return classifyError(fmt.Sprintf("failed to list releases for %s/%s", owner, repo), err), nil
			}

			result := ListReleasesResult{Repo: owner + "/" + repo, Releases: make([]MinimalRelease, 0, len(releases))}
			for _, release := range releases {
				result.Releases = append(result.Releases, MinimalRelease{
					Tag:         release.GetTagName(),
					Name:        release.GetName(),
					Author:      release.GetAuthor().GetLogin(),
					Prerelease:  release.GetPrerelease(),
					Draft:       release.GetDraft(),
					PublishedAt: formatTime(release.GetPublishedAt()),
					AssetCount:  len(release.Assets),
				})
			}
			result.Count = len(result.Releases)

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}

// GetFileContents creates a tool to read a file from a repository.
func GetFileContents(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_file_contents",
			mcp.WithDescription(t("TOOL_GET_FILE_CONTENTS_DESCRIPTION", "Get file content from a repository at a specific ref")),
			mcp.WithString("owner",
				mcp.Description("Repository owner (user or org)"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("File path within the repository"),
			),
			mcp.WithString("ref",
				mcp.Description("Git ref (branch, tag, or SHA). Defaults to the repo's default branch"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			owner, err := cfg.resolveOwner(request)
			if err != nil {
				return invalidArgs(err), nil
			}
			repo, err := requiredRepo(request)
			if err != nil {
				return invalidArgs(err), nil
			}
			path, err := RequiredParam[string](request, "path")
			if err != nil {
				return invalidArgs(err), nil
			}
			if err := sanitizeRef(path, "path"); err != nil {
				return invalidArgs(err), nil
			}
			ref, err := OptionalParam[string](request, "ref")
			if err != nil {
				return invalidArgs(err), nil
			}
			if ref != "" {
				if err := sanitizeRef(ref, "ref"); err != nil {
					return invalidArgs(err), nil
				}
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			opts := &github.RepositoryContentGetOptions{Ref: ref}
			fileContent, _, resp, err := client.Repositories.GetContents(ctx, owner, repo, path, opts)
			if err != nil {
				return classifyError(fmt.Sprintf("failed to get contents of %s/%s/%s", owner, repo, path), err), nil
			}
			defer func() { _ = resp.Body.Close() }()

			if fileContent == nil {
				return invalidArgs(fmt.Errorf("%s is a directory, not a file", path)), nil
			}

			content, err := fileContent.GetContent()
			if err != nil || !utf8.ValidString(content) {
				content = "[binary content]"
			}

			result := FileContents{
				Path:    fileContent.GetPath(),
				Name:    fileContent.GetName(),
				Size:    fileContent.GetSize(),
				SHA:     fileContent.GetSHA(),
				Content: content,
			}

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}
