package github

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-github/v69/github"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

func stubGetClientFn(client *github.Client) GetClientFn {
	return func(_ context.Context) (*github.Client, error) {
		return client, nil
	}
}

func createMCPRequest(args map[string]interface{}) mcp.CallToolRequest {
	r := mcp.CallToolRequest{}
	r.Params.Arguments = args
	return r
}

func getTextResult(t *testing.T, result *mcp.CallToolResult) mcp.TextContent {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return textContent
}

// getToolError unmarshals an error tool result into its structured form.
func getToolError(t *testing.T, result *mcp.CallToolResult) ToolError {
	t.Helper()
	require.NotNil(t, result)
	require.True(t, result.IsError, "expected an error result")
	textContent := getTextResult(t, result)
	var toolErr ToolError
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &toolErr))
	return toolErr
}

// expectQueryParams returns a partialMock that asserts the given query
// parameters were sent, before handing the request to the next handler.
func expectQueryParams(t *testing.T, expectedQueryParams map[string]string) *partialMock {
	return &partialMock{
		t:                   t,
		expectedQueryParams: expectedQueryParams,
	}
}

type partialMock struct {
	t                   *testing.T
	expectedQueryParams map[string]string
}

func (p *partialMock) andThen(responseHandler http.HandlerFunc) http.HandlerFunc {
	p.t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		for k, v := range p.expectedQueryParams {
			require.Equal(p.t, v, r.URL.Query().Get(k))
		}
		responseHandler(w, r)
	}
}

// mockResponse returns a handler that writes the given body as JSON with the
// given status code.
func mockResponse(t *testing.T, code int, body interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		b, err := json.Marshal(body)
		require.NoError(t, err)
		_, _ = w.Write(b)
	}
}

// rateLimitedResponse simulates a primary rate limit rejection, which the
// client library recognizes via the remaining-requests header.
func rateLimitedResponse(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Ratelimit-Limit", "60")
		w.Header().Set("X-Ratelimit-Remaining", "0")
		w.Header().Set("X-Ratelimit-Reset", "1700000000")
		w.WriteHeader(http.StatusForbidden)
		b, err := json.Marshal(map[string]string{"message": "API rate limit exceeded"})
		require.NoError(t, err)
		_, _ = w.Write(b)
	}
}
