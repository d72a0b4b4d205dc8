package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/go-github/v69/github"
	"github.com/mark3labs/mcp-go/mcp"
)

// ErrorKind classifies a failed tool call so clients can react without
// parsing error prose.
type ErrorKind string

const (
	KindInvalidArgs  ErrorKind = "invalid_args"
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindRateLimited  ErrorKind = "rate_limited"
	KindServerError  ErrorKind = "server_error"
	KindNetwork      ErrorKind = "network"
	KindMalformed    ErrorKind = "malformed"
)

// ToolError is the structured payload carried inside an error tool result.
type ToolError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// errorResult packs a classified error into an error tool result. Tool
// handlers return these instead of Go errors so the failure reaches the
// client as a result rather than a protocol fault.
func errorResult(kind ErrorKind, format string, args ...any) *mcp.CallToolResult {
	toolErr := ToolError{Kind: kind, Message: fmt.Sprintf(format, args...)}
	b, err := json.Marshal(toolErr)
	if err != nil {
		return mcp.NewToolResultError(toolErr.Message)
	}
	return mcp.NewToolResultError(string(b))
}

func invalidArgs(err error) *mcp.CallToolResult {
	return errorResult(KindInvalidArgs, "%s", err.Error())
}

// classifyError maps a GitHub client error onto the error taxonomy. Rate
// limit errors are checked before the generic response error because they
// arrive as dedicated types wrapping a 403.
func classifyError(op string, err error) *mcp.CallToolResult {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var urlErr *url.Error

	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return errorResult(KindRateLimited, "%s: rate limit exceeded: %v", op, err)
	case errors.As(err, &respErr):
		kind := KindServerError
		switch code := respErr.Response.StatusCode; {
		case code == http.StatusNotFound:
			kind = KindNotFound
		case code == http.StatusUnauthorized:
			kind = KindUnauthorized
		case code == http.StatusForbidden:
			kind = KindForbidden
		case code == http.StatusUnprocessableEntity:
			kind = KindInvalidArgs
		case code >= 500:
			kind = KindServerError
		}
		return errorResult(kind, "%s: %s", op, respErr.Message)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return errorResult(KindMalformed, "%s: malformed response: %v", op, err)
	case errors.As(err, &urlErr):
		return errorResult(KindNetwork, "%s: %v", op, err)
	default:
		return errorResult(KindNetwork, "%s: %v", op, err)
	}
}
