package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/go-github/v69/github"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mcptools/mcp-github/pkg/translations"
)

// issueLabels flattens issue labels to their names.
func issueLabels(labels []*github.Label) []string {
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		names = append(names, label.GetName())
	}
	return names
}

// ListIssues creates a tool to list issues in a repository.
func ListIssues(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_issues",
			mcp.WithDescription(t("TOOL_LIST_ISSUES_DESCRIPTION", "List issues in a repository, optionally filtered by state and labels")),
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
			mcp.WithString("labels",
				mcp.Description("Filter by comma-separated label names"),
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
			labels, err := OptionalParam[string](request, "labels")
			if err != nil {
				return invalidArgs(err), nil
			}
			limit, err := cfg.resultLimit(request)
			if err != nil {
				return invalidArgs(err), nil
			}

			var labelList []string
			if labels != "" {
				for _, label := range strings.Split(labels, ",") {
					labelList = append(labelList, strings.TrimSpace(label))
				}
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			issues, err := paginate(limit, func(page, perPage int) ([]*github.Issue, *github.Response, error) {
				opts := &github.IssueListByRepoOptions{
					State:       state,
					Labels:      labelList,
					ListOptions: github.ListOptions{Page: page, PerPage: perPage},
				}
				return client.Issues.ListByRepo(ctx, owner, repo, opts)
			})
			if err != nil {
				return classifyError(fmt.Sprintf("failed to list issues for %s/%s", owner, repo), err), nil
			}

			result := ListIssuesResult{Repo: owner + "/" + repo, Issues: make([]MinimalIssue, 0, len(issues))}
			for _, issue := range issues {
				result.Issues = append(result.Issues, MinimalIssue{
					Number:    issue.GetNumber(),
					Title:     issue.GetTitle(),
					State:     issue.GetState(),
					Author:    issue.GetUser().GetLogin(),
					Labels:    issueLabels(issue.Labels),
					Comments:  issue.GetComments(),
					CreatedAt: formatTime(issue.GetCreatedAt()),
				})
			}
			result.Count = len(result.Issues)

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}

// GetIssue creates a tool to get a single issue merged with its comments.
func GetIssue(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_issue",
			mcp.WithDescription(t("TOOL_GET_ISSUE_DESCRIPTION", "Get issue details including body and comments")),
			mcp.WithString("owner",
				mcp.Description("Repository owner (user or org)"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
			mcp.WithNumber("issue_number",
				mcp.Required(),
				mcp.Description("Issue number"),
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
			issueNumber, err := RequiredInt(request, "issue_number")
			if err != nil {
				return invalidArgs(err), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			issue, resp, err := client.Issues.Get(ctx, owner, repo, issueNumber)
			if err != nil {
				return classifyError(fmt.Sprintf("failed to get issue %s/%s#%d", owner, repo, issueNumber), err), nil
			}
			defer func() { _ = resp.Body.Close() }()

			comments, err := paginate(cfg.commentLimit(), func(page, perPage int) ([]*github.IssueComment, *github.Response, error) {
				opts := &github.IssueListCommentsOptions{
					ListOptions: github.ListOptions{Page: page, PerPage: perPage},
				}
				return client.Issues.ListComments(ctx, owner, repo, issueNumber, opts)
			})
			if err != nil {
				return classifyError(fmt.Sprintf("failed to list comments for %s/%s#%d", owner, repo, issueNumber), err), nil
			}

			result := IssueDetails{
				Number:    issue.GetNumber(),
				Title:     issue.GetTitle(),
				State:     issue.GetState(),
				Author:    issue.GetUser().GetLogin(),
				Labels:    issueLabels(issue.Labels),
				Body:      issue.GetBody(),
				CreatedAt: formatTime(issue.GetCreatedAt()),
				Comments:  make([]IssueComment, 0, len(comments)),
			}
			for _, comment := range comments {
				result.Comments = append(result.Comments, IssueComment{
					Author:    comment.GetUser().GetLogin(),
					Body:      comment.GetBody(),
					CreatedAt: formatTime(comment.GetCreatedAt()),
				})
			}

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}
