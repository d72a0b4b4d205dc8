package github

import (
	"github.com/mcptools/mcp-github/pkg/toolsets"
	"github.com/mcptools/mcp-github/pkg/translations"
)

// InitToolsets builds the toolset group with every tool wired to the given
// client factory and enables the requested toolsets.
func InitToolsets(passedToolsets []string, getClient GetClientFn, cfg Config, t translations.TranslationHelperFunc) (*toolsets.ToolsetGroup, error) {
	tsg := toolsets.NewToolsetGroup()

	repos := toolsets.NewToolset("repos", "GitHub Repository related tools").
		AddReadTools(
			toolsets.NewServerTool(ListRepos(getClient, cfg, t)),
			toolsets.NewServerTool(GetRepo(getClient, cfg, t)),
			toolsets.NewServerTool(ListCommits(getClient, cfg, t)),
			toolsets.NewServerTool(GetCommit(getClient, cfg, t)),
			toolsets.NewServerTool(ListBranches(getClient, cfg, t)),
			toolsets.NewServerTool(ListTags(getClient, cfg, t)),
			toolsets.NewServerTool(ListReleases(getClient, cfg, t)),
			toolsets.NewServerTool(GetFileContents(getClient, cfg, t)),
			toolsets.NewServerTool(SearchCode(getClient, cfg, t)),
		)
	issues := toolsets.NewToolset("issues", "GitHub Issues related tools").
		AddReadTools(
			toolsets.NewServerTool(ListIssues(getClient, cfg, t)),
			toolsets.NewServerTool(GetIssue(getClient, cfg, t)),
		)
	pullRequests := toolsets.NewToolset("pull_requests", "GitHub Pull Request related tools").
		AddReadTools(
			toolsets.NewServerTool(ListPulls(getClient, cfg, t)),
			toolsets.NewServerTool(GetPull(getClient, cfg, t)),
		)
	actions := toolsets.NewToolset("actions", "GitHub Actions workflow related tools").
		AddReadTools(
			toolsets.NewServerTool(ListActionsRuns(getClient, cfg, t)),
			toolsets.NewServerTool(GetJobLogs(getClient, cfg, t)),
		)

	tsg.AddToolset(repos)
	tsg.AddToolset(issues)
	tsg.AddToolset(pullRequests)
	tsg.AddToolset(actions)

	if err := tsg.EnableToolsets(passedToolsets); err != nil {
		return nil, err
	}

	return tsg, nil
}
