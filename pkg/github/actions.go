package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/go-github/v69/github"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mcptools/mcp-github/pkg/buffer"
	"github.com/mcptools/mcp-github/pkg/translations"
)

const defaultTailLines = 500

// ListActionsRuns creates a tool to list workflow runs for a repository,
// newest first, optionally filtered by run status.
func ListActionsRuns(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_actions_runs",
			mcp.WithDescription(t("TOOL_LIST_ACTIONS_RUNS_DESCRIPTION", "List recent GitHub Actions workflow runs for a repository")),
			mcp.WithString("owner",
				mcp.Description("Repository owner (user or org)"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
			mcp.WithString("status",
				mcp.Description("Filter by run status or conclusion"),
				mcp.Enum("queued", "in_progress", "completed", "success", "failure", "cancelled"),
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
			status, err := OptionalParam[string](request, "status")
			if err != nil {
				return invalidArgs(err), nil
			}
			switch status {
			case "", "queued", "in_progress", "completed", "success", "failure", "cancelled":
			default:
				return invalidArgs(fmt.Errorf("invalid value for status parameter: %s", status)), nil
			}
			limit, err := cfg.resultLimit(request)
			if err != nil {
				return invalidArgs(err), nil
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			runs, err := paginate(limit, func(page, perPage int) ([]*github.WorkflowRun, *github.Response, error) {
				opts := &github.ListWorkflowRunsOptions{
					Status:      status,
					ListOptions: github.ListOptions{Page: page, PerPage: perPage},
				}
				workflowRuns, resp, err := client.Actions.ListRepositoryWorkflowRuns(ctx, owner, repo, opts)
				if err != nil {
					return nil, resp, err
				}
				return workflowRuns.WorkflowRuns, resp, nil
			})
			if err != nil {
				return classifyError(fmt.Sprintf("failed to list workflow runs for %s/%s", owner, repo), err), nil
			}

			result := ListActionsRunsResult{Repo: owner + "/" + repo, Runs: make([]MinimalWorkflowRun, 0, len(runs))}
			for _, run := range runs {
				result.Runs = append(result.Runs, MinimalWorkflowRun{
					ID:           run.GetID(),
					WorkflowName: run.GetName(),
					Status:       run.GetStatus(),
					Conclusion:   run.GetConclusion(),
					Branch:       run.GetHeadBranch(),
					Event:        run.GetEvent(),
					CreatedAt:    formatTime(run.GetCreatedAt()),
				})
			}
			result.Count = len(result.Runs)

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}

// GetJobLogs creates a tool to fetch the tail of a workflow job's log. Logs
// are downloaded from the redirect target GitHub hands out and tailed through
// a bounded buffer, so huge logs never sit in memory whole.
func GetJobLogs(getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_job_logs",
			mcp.WithDescription(t("TOOL_GET_JOB_LOGS_DESCRIPTION", "Get the tail of a workflow job's log")),
			mcp.WithString("owner",
				mcp.Description("Repository owner (user or org)"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
			mcp.WithNumber("job_id",
				mcp.Required(),
				mcp.Description("Workflow job ID"),
			),
			mcp.WithNumber("tail_lines",
				mcp.Description("Number of log lines to return from the end (default: 500)"),
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
			jobID, err := RequiredInt(request, "job_id")
			if err != nil {
				return invalidArgs(err), nil
			}
			tailLines, err := OptionalIntParam(request, "tail_lines")
			if err != nil {
				return invalidArgs(err), nil
			}
			if tailLines < 0 {
				return invalidArgs(fmt.Errorf("tail_lines must be positive")), nil
			}
			if tailLines == 0 {
				tailLines = defaultTailLines
			}

			client, err := getClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get GitHub client: %w", err)
			}

			logURL, resp, err := client.Actions.GetWorkflowJobLogs(ctx, owner, repo, int64(jobID), 1)
			if err != nil {
				return classifyError(fmt.Sprintf("failed to get logs for job %d in %s/%s", jobID, owner, repo), err), nil
			}
			defer func() { _ = resp.Body.Close() }()

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, logURL.String(), nil)
			if err != nil {
				return nil, fmt.Errorf("failed to build log download request: %w", err)
			}
			logResp, err := client.Client().Do(req)
			if err != nil {
				return classifyError(fmt.Sprintf("failed to download logs for job %d", jobID), err), nil
			}
			defer func() { _ = logResp.Body.Close() }()
			if logResp.StatusCode != http.StatusOK {
				return errorResult(KindServerError, "failed to download logs for job %d: HTTP %d", jobID, logResp.StatusCode), nil
			}

			content, totalLines, err := buffer.Tail(logResp.Body, tailLines)
			if err != nil {
				return classifyError(fmt.Sprintf("failed to read logs for job %d", jobID), err), nil
			}

			result := JobLogsResult{
				JobID:      jobID,
				TailLines:  tailLines,
				TotalLines: totalLines,
				Content:    content,
			}

			r, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}

			return mcp.NewToolResultText(string(r)), nil
		}
}
