package ghmcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ResolveToken(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		tokenEnv string
		env      map[string]string
		expected string
	}{
		{
			name:     "explicit token wins over everything",
			explicit: "ghp_explicit",
			tokenEnv: "MY_TOKEN",
			env:      map[string]string{"MY_TOKEN": "ghp_custom", "GITHUB_TOKEN": "ghp_default"},
			expected: "ghp_explicit",
		},
		{
			name:     "named env var wins over GITHUB_TOKEN",
			tokenEnv: "MY_TOKEN",
			env:      map[string]string{"MY_TOKEN": "ghp_custom", "GITHUB_TOKEN": "ghp_default"},
			expected: "ghp_custom",
		},
		{
			name:     "falls back to GITHUB_TOKEN when named var is unset",
			tokenEnv: "MY_TOKEN",
			env:      map[string]string{"GITHUB_TOKEN": "ghp_default"},
			expected: "ghp_default",
		},
		{
			name:     "GITHUB_TOKEN used when no env var is named",
			env:      map[string]string{"GITHUB_TOKEN": "ghp_default"},
			expected: "ghp_default",
		},
		{
			name:     "empty when nothing is configured",
			expected: "",
		},
		{
			name:     "naming GITHUB_TOKEN does not read it twice",
			tokenEnv: "GITHUB_TOKEN",
			env:      map[string]string{"GITHUB_TOKEN": "ghp_default"},
			expected: "ghp_default",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", "")
			t.Setenv("MY_TOKEN", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tc.expected, ResolveToken(tc.explicit, tc.tokenEnv))
		})
	}
}

func Test_NewMCPServer(t *testing.T) {
	t.Run("builds with defaults", func(t *testing.T) {
		s, err := NewMCPServer(MCPServerConfig{Version: "test"})
		require.NoError(t, err)
		require.NotNil(t, s)
	})

	t.Run("rejects unknown toolsets", func(t *testing.T) {
		_, err := NewMCPServer(MCPServerConfig{
			Version:         "test",
			EnabledToolsets: []string{"nonexistent"},
		})
		require.Error(t, err)
	})
}

// jsonRPCRequest builds one line of client input for the stdio transport.
func jsonRPCRequest(t *testing.T, id int, method string, params map[string]interface{}) string {
	t.Helper()
	req := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		req["params"] = params
	}
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return string(b)
}

func Test_StdioServerDispatch(t *testing.T) {
	mcpServer, err := NewMCPServer(MCPServerConfig{Version: "test"})
	require.NoError(t, err)

	// Requests that never reach the network: tool calls below fail argument
	// validation before any client request is issued.
	lines := []string{
		jsonRPCRequest(t, 1, "initialize", map[string]interface{}{
			"protocolVersion": "2025-03-26",
			"capabilities":    map[string]interface{}{},
			"clientInfo":      map[string]interface{}{"name": "test-client", "version": "0.0.1"},
		}),
		jsonRPCRequest(t, 2, "tools/list", nil),
		jsonRPCRequest(t, 3, "tools/call", map[string]interface{}{
			"name":      "get_repo",
			"arguments": map[string]interface{}{},
		}),
		jsonRPCRequest(t, 4, "tools/call", map[string]interface{}{
			"name":      "list_issues",
			"arguments": map[string]interface{}{"owner": "octo-org", "repo": "alpha", "state": "sleeping"},
		}),
	}

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stdioServer := server.NewStdioServer(mcpServer)
	// Listen returns once stdin is exhausted.
	err = stdioServer.Listen(ctx, in, &out)
	if err != nil {
		require.ErrorIs(t, err, context.DeadlineExceeded)
	}

	var ids []float64
	toolCount := 0
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var resp struct {
			ID     interface{} `json:"id"`
			Result struct {
				Tools []struct {
					Name string `json:"name"`
				} `json:"tools"`
			} `json:"result"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		if id, ok := resp.ID.(float64); ok {
			ids = append(ids, id)
		}
		if len(resp.Result.Tools) > 0 {
			toolCount = len(resp.Result.Tools)
		}
	}

	// Responses come back in request order on a single stdio stream.
	assert.Equal(t, []float64{1, 2, 3, 4}, ids)
	assert.GreaterOrEqual(t, toolCount, 8)
}
