package github

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-github/v69/github"
	"github.com/mcptools/mcp-github/pkg/translations"
	"github.com/migueleliasweb/go-github-mock/src/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ListIssues(t *testing.T) {
	mockClient := github.NewClient(nil)
	tool, _ := ListIssues(stubGetClientFn(mockClient), Config{}, translations.NullTranslationHelper)

	assert.Equal(t, "list_issues", tool.Name)
	assert.NotEmpty(t, tool.Description)
	assert.Contains(t, tool.InputSchema.Properties, "state")
	assert.Contains(t, tool.InputSchema.Properties, "labels")
	assert.ElementsMatch(t, tool.InputSchema.Required, []string{"repo"})

	mockIssues := []*github.Issue{
		{
			Number:    github.Ptr(42),
			Title:     github.Ptr("crash on start"),
			State:     github.Ptr("open"),
			User:      &github.User{Login: github.Ptr("octocat")},
			Labels:    []*github.Label{{Name: github.Ptr("bug")}, {Name: github.Ptr("p1")}},
			Comments:  github.Ptr(3),
			CreatedAt: &github.Timestamp{Time: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		},
		{
			Number: github.Ptr(43),
			Title:  github.Ptr("docs typo"),
			State:  github.Ptr("open"),
		},
	}

	tests := []struct {
		name           string
		mockedClient   *http.Client
		requestArgs    map[string]interface{}
		expectedKind   ErrorKind
		expectedIssues int
	}{
		{
			name: "lists open issues by default",
			mockedClient: mock.NewMockedHTTPClient(
				mock.WithRequestMatch(mock.GetReposIssuesByOwnerByRepo, mockIssues),
			),
			requestArgs:    map[string]interface{}{"owner": "octo-org", "repo": "alpha"},
			expectedIssues: 2,
		},
		{
			name: "passes state and labels filters through",
			mockedClient: mock.NewMockedHTTPClient(
				mock.WithRequestMatchHandler(
					mock.GetReposIssuesByOwnerByRepo,
					expectQueryParams(t, map[string]string{
						"state":  "closed",
						"labels": "bug,p1",
					}).andThen(
						mockResponse(t, http.StatusOK, mockIssues),
					),
				),
			),
			requestArgs: map[string]interface{}{
				"owner":  "octo-org",
				"repo":   "alpha",
				"state":  "closed",
				"labels": "bug, p1",
			},
			expectedIssues: 2,
		},
		{
			name:         "invalid state value",
			mockedClient: mock.NewMockedHTTPClient(),
			requestArgs: map[string]interface{}{
				"owner": "octo-org",
				"repo":  "alpha",
				"state": "sleeping",
			},
			expectedKind: KindInvalidArgs,
		},
		{
			name: "repository not found",
			mockedClient: mock.NewMockedHTTPClient(
				mock.WithRequestMatchHandler(
					mock.GetReposIssuesByOwnerByRepo,
					mockResponse(t, http.StatusNotFound, map[string]string{"message": "Not Found"}),
				),
			),
			requestArgs:  map[string]interface{}{"owner": "octo-org", "repo": "gone"},
			expectedKind: KindNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := github.NewClient(tc.mockedClient)
			_, handler := ListIssues(stubGetClientFn(client), Config{}, translations.NullTranslationHelper)

			result, err := handler(context.Background(), createMCPRequest(tc.requestArgs))
			require.NoError(t, err)

			if tc.expectedKind != "" {
				assert.Equal(t, tc.expectedKind, getToolError(t, result).Kind)
				return
			}

			var listResult ListIssuesResult
			require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &listResult))
			assert.Len(t, listResult.Issues, tc.expectedIssues)
			if tc.expectedIssues > 0 {
				assert.Equal(t, []string{"bug", "p1"}, listResult.Issues[0].Labels)
			}
		})
	}
}

func Test_GetIssue(t *testing.T) {
	mockClient := github.NewClient(nil)
	tool, _ := GetIssue(stubGetClientFn(mockClient), Config{}, translations.NullTranslationHelper)

	assert.Equal(t, "get_issue", tool.Name)
	assert.NotEmpty(t, tool.Description)
	assert.ElementsMatch(t, tool.InputSchema.Required, []string{"repo", "issue_number"})

	mockIssue := &github.Issue{
		Number: github.Ptr(42),
		Title:  github.Ptr("crash on start"),
		State:  github.Ptr("open"),
		User:   &github.User{Login: github.Ptr("octocat")},
		Body:   github.Ptr("stack trace attached"),
	}
	mockComments := []*github.IssueComment{
		{
			User: &github.User{Login: github.Ptr("hubber")},
			Body: github.Ptr("can reproduce"),
		},
		{
			User: &github.User{Login: github.Ptr("octocat")},
			Body: github.Ptr("fix incoming"),
		},
	}

	t.Run("merges issue with its comments", func(t *testing.T) {
		client := github.NewClient(mock.NewMockedHTTPClient(
			mock.WithRequestMatch(mock.GetReposIssuesByOwnerByRepoByIssueNumber, mockIssue),
			mock.WithRequestMatch(mock.GetReposIssuesCommentsByOwnerByRepoByIssueNumber, mockComments),
		))
		_, handler := GetIssue(stubGetClientFn(client), Config{}, translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{
			"owner":        "octo-org",
			"repo":         "alpha",
			"issue_number": float64(42),
		}))
		require.NoError(t, err)

		var details IssueDetails
		require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result).Text), &details))
		assert.Equal(t, 42, details.Number)
		assert.Equal(t, "stack trace attached", details.Body)
		require.Len(t, details.Comments, 2)
		assert.Equal(t, "hubber", details.Comments[0].Author)
	})

	t.Run("issue not found", func(t *testing.T) {
		client := github.NewClient(mock.NewMockedHTTPClient(
			mock.WithRequestMatchHandler(
				mock.GetReposIssuesByOwnerByRepoByIssueNumber,
				mockResponse(t, http.StatusNotFound, map[string]string{"message": "Not Found"}),
			),
		))
		_, handler := GetIssue(stubGetClientFn(client), Config{}, translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{
			"owner":        "octo-org",
			"repo":         "alpha",
			"issue_number": float64(9999),
		}))
		require.NoError(t, err)
		assert.Equal(t, KindNotFound, getToolError(t, result).Kind)
	})

	t.Run("missing issue_number", func(t *testing.T) {
		client := github.NewClient(mock.NewMockedHTTPClient())
		_, handler := GetIssue(stubGetClientFn(client), Config{}, translations.NullTranslationHelper)

		result, err := handler(context.Background(), createMCPRequest(map[string]interface{}{
			"owner": "octo-org",
			"repo":  "alpha",
		}))
		require.NoError(t, err)
		toolErr := getToolError(t, result)
		assert.Equal(t, KindInvalidArgs, toolErr.Kind)
		assert.Contains(t, toolErr.Message, "issue_number")
	})
}
