package github

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/go-github/v69/github"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mcptools/mcp-github/pkg/translations"
)

// ListCommits creates a tool to list commits on a branch or ref.
func ListCommits(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_commits",
			mcp.WithDescription(t("TOOL_LIST_COMMITS_DESCRIPTION", "List commits in a repository, newest first")),
			mcp.WithString("owner",
				mcp.Description("Repository owner (user or org)"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
			mcp.WithString("ref",
				mcp.Description("Branch, tag, or commit SHA to list from (default: the default branch)"),
			),
			mcp.WithString("author",
				mcp.Description("Only commits by this author login or email"),
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
			ref, err := OptionalParam[string](request, "ref")
			if err != nil {
				return invalidArgs(err), nil
			}
			if ref != "" {
				if err := sanitizeRef(ref, "ref"); err != nil {
					return invalidArgs(err), nil
				}
			}
			author, err := OptionalParam[string](request, "author")
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

			commits, err := paginate(limit, func(page, perPage int) ([]*github.RepositoryCommit, *github.Response, error) {
				opts := &github.CommitsListOptions{
					SHA:         ref,
					Author:      author,
					ListOptions: github.ListOptions{Page: page, PerPage: perPage},
				}
				return client.Repositories.ListCommits(ctx, owner, repo, opts)
			})
			if err != nil {
				return classifyError(fmt.Sprintf("failed to list commits for %s/%s", owner, repo), err), nil
			}

			result := ListCommitsResult{Repo: owner + "/" + repo, Commits: make([]MinimalCommit, 0, len(commits))}
			for _, commit := range commits {
				result.Commits = append(result.Commits, MinimalCommit{
					SHA:         commit.GetSHA(),
					Message:     commit.GetCommit().GetMessage(),
					Author:      commit.GetCommit().GetAuthor().GetName(),
					AuthorLogin: commit.GetAuthor().GetLogin(),
					Date:        formatTime(commit.GetCommit().GetAuthor().GetDate()),
				})
			}
			result.Count = len(result.Commits)

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}

// GetCommit creates a tool to get a single commit with its diff stats and
// changed files.
func GetCommit(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_commit",
			mcp.WithDescription(t("TOOL_GET_COMMIT_DESCRIPTION", "Get commit details including stats and changed files")),
			mcp.WithString("owner",
				mcp.Description("Repository owner (user or org)"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
			mcp.WithString("sha",
				mcp.Required(),
				mcp.Description("Commit SHA, branch name, or tag name"),
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
			sha, err := RequiredParam[string](request, "sha")
			if err != nil {
				return invalidArgs(err), nil
			}
			if err := sanitizeRef(sha, "sha"); err != nil {
				return invalidArgs(err), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			commit, resp, err := client.Repositories.GetCommit(ctx, owner, repo, sha, nil)
			if err != nil {
				return classifyError(fmt.Sprintf("failed to get commit %s in %s/%s", sha, owner, repo), err), nil
			}
			defer func() { _ = resp.Body.Close() }()

			result := CommitDetails{
				SHA:         commit.GetSHA(),
				Message:     commit.GetCommit().GetMessage(),
				Author:      commit.GetCommit().GetAuthor().GetName(),
				AuthorLogin: commit.GetAuthor().GetLogin(),
				Date:        formatTime(commit.GetCommit().GetAuthor().GetDate()),
				Additions:   commit.GetStats().GetAdditions(),
				Deletions:   commit.GetStats().GetDeletions(),
				Files:       make([]MinimalCommitFile, 0, len(commit.Files)),
			}
			for _, parent := range commit.Parents {
				result.Parents = append(result.Parents, parent.GetSHA())
			}
			for _, file := range commit.Files {
				result.Files = append(result.Files, MinimalCommitFile{
					Filename:  file.GetFilename(),
					Status:    file.GetStatus(),
					Additions: file.GetAdditions(),
					Deletions: file.GetDeletions(),
					Changes:   file.GetChanges(),
				})
			}
			result.FileCount = len(result.Files)

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}
