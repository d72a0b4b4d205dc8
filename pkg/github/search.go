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

// SearchCode creates a tool to search code via the GitHub code search syntax.
// The query is scoped to a repository when repo is given, otherwise to the
// resolved owner.
func SearchCode(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("search_code",
			mcp.WithDescription(t("TOOL_SEARCH_CODE_DESCRIPTION", "Search code across repositories using GitHub code search syntax")),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Search query using GitHub code search syntax"),
			),
			mcp.WithString("owner",
				mcp.Description("Scope the search to this owner's repositories"),
			),
			mcp.WithString("repo",
				mcp.Description("Scope the search to a single repository"),
			),
			mcp.WithNumber("per_page",
				mcp.Description("Maximum number of results"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			query, err := RequiredParam[string](request, "query")
			if err != nil {
				return invalidArgs(err), nil
			}
			owner, err := cfg.resolveOwner(request)
			if err != nil {
				return invalidArgs(err), nil
			}
			repo, err := OptionalParam[string](request, "repo")
			if err != nil {
				return invalidArgs(err), nil
			}
			if repo != "" {
				if err := sanitizeName(repo, "repo"); err != nil {
					return invalidArgs(err), nil
				}
			}
			limit, err := cfg.resultLimit(request)
			if err != nil {
				return invalidArgs(err), nil
			}

			var scoped string
			if repo != "" {
				scoped = fmt.Sprintf("%s repo:%s/%s", query, owner, repo)
			} else {
				scoped = fmt.Sprintf("%s user:%s", query, owner)
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			matches, err := paginate(limit, func(page, perPage int) ([]*github.CodeResult, *github.Response, error) {
				opts := &github.SearchOptions{
					TextMatch:   true,
					ListOptions: github.ListOptions{Page: page, PerPage: perPage},
				}
				searchResult, resp, err := client.Search.Code(ctx, scoped, opts)
				if err != nil {
					return nil, resp, err
				}
				return searchResult.CodeResults, resp, nil
			})
			if err != nil {
				return classifyError(fmt.Sprintf("failed to search code for %q", scoped), err), nil
			}

			result := SearchCodeResult{Query: scoped, Results: make([]MinimalCodeMatch, 0, len(matches))}
			for _, match := range matches {
				entry := MinimalCodeMatch{
					Repository: match.GetRepository().GetFullName(),
					Path:       match.GetPath(),
				}
				if len(match.TextMatches) > 0 {
					entry.Snippet = match.TextMatches[0].GetFragment()
				}
				result.Results = append(result.Results, entry)
			}
			result.Count = len(result.Results)

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}
