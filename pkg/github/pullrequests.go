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

// ListPulls creates a tool to list pull requests in a repository.
func ListPulls(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_pulls",
			mcp.WithDescription(t("TOOL_LIST_PULLS_DESCRIPTION", "List pull requests in a repository")),
			mcp.WithString("owner",
				mcp.Description("Repository owner (user or org)"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
			mcp.WithString("state",
				mcp.Description("Filter by state: open, closed, or all (default: open)"),
				mcp.Enum("open", "closed", "all"),
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
			state, err := OptionalParam[string](request, "state")
			if err != nil {
				return invalidArgs(err), nil
			}
			switch state {
			case "", "open", "closed", "all":
			default:
				return invalidArgs(fmt.Errorf("invalid value for state parameter: %s", state)), nil
			}
			limit, err := cfg.resultLimit(request)
			if err != nil {
				return invalidArgs(err), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			pulls, err := paginate(limit, func(page, perPage int) ([]*github.PullRequest, *github.Response, error) {
				opts := &github.PullRequestListOptions{
					State:       state,
					ListOptions: github.ListOptions{Page: page, PerPage: perPage},
				}
				return client.PullRequests.List(ctx, owner, repo, opts)
			})
			if err != nil {
				return classifyError(fmt.Sprintf("failed to list pull requests for %s/%s", owner, repo), err), nil
			}

			result := ListPullsResult{Repo: owner + "/" + repo, Pulls: make([]MinimalPullRequest, 0, len(pulls))}
			for _, pull := range pulls {
				result.Pulls = append(result.Pulls, MinimalPullRequest{
					Number:    pull.GetNumber(),
					Title:     pull.GetTitle(),
					State:     pull.GetState(),
					Author:    pull.GetUser().GetLogin(),
					Head:      pull.GetHead().GetRef(),
					Base:      pull.GetBase().GetRef(),
					Draft:     pull.GetDraft(),
					CreatedAt: formatTime(pull.GetCreatedAt()),
				})
			}
			result.Count = len(result.Pulls)

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}

// GetPull creates a tool to get a pull request with its diff stats and a
// summary of submitted reviews, counted by verdict.
func GetPull(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_pull",
			mcp.WithDescription(t("TOOL_GET_PULL_DESCRIPTION", "Get pull request details including review summary and changed files count")),
			mcp.WithString("owner",
				mcp.Description("Repository owner (user or org)"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
			mcp.WithNumber("pr_number",
				mcp.Required(),
				mcp.Description("Pull request number"),
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
			prNumber, err := RequiredInt(request, "pr_number")
			if err != nil {
				return invalidArgs(err), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			pull, resp, err := client.PullRequests.Get(ctx, owner, repo, prNumber)
			if err != nil {
				return classifyError(fmt.Sprintf("failed to get pull request %s/%s#%d", owner, repo, prNumber), err), nil
			}
			defer func() { _ = resp.Body.Close() }()

			reviews, err := paginate(cfg.commentLimit(), func(page, perPage int) ([]*github.PullRequestReview, *github.Response, error) {
				opts := &github.ListOptions{Page: page, PerPage: perPage}
				return client.PullRequests.ListReviews(ctx, owner, repo, prNumber, opts)
			})
			if err != nil {
				return classifyError(fmt.Sprintf("failed to list reviews for %s/%s#%d", owner, repo, prNumber), err), nil
			}

			reviewCounts := make(map[string]int)
			for _, review := range reviews {
				if state := review.GetState(); state != "" {
					reviewCounts[state]++
				}
			}

			result := PullRequestDetails{
				Number:       pull.GetNumber(),
				Title:        pull.GetTitle(),
				State:        pull.GetState(),
				Author:       pull.GetUser().GetLogin(),
				Body:         pull.GetBody(),
				Head:         pull.GetHead().GetRef(),
				Base:         pull.GetBase().GetRef(),
				Draft:        pull.GetDraft(),
				Mergeable:    pull.Mergeable,
				Additions:    pull.GetAdditions(),
				Deletions:    pull.GetDeletions(),
				ChangedFiles: pull.GetChangedFiles(),
				Commits:      pull.GetCommits(),
				Reviews:      reviewCounts,
				CreatedAt:    formatTime(pull.GetCreatedAt()),
				MergedAt:     formatTime(pull.GetMergedAt()),
			}

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}
