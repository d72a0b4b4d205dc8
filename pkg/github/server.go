package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-github/v69/github"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetClientFn returns the GitHub client a handler should use for the request.
type GetClientFn func(context.Context) (*github.Client, error)

// DefaultTools enables every toolset unless the user narrows the selection.
var DefaultTools = []string{"all"}

const (
	defaultMaxResults = 30
	// maxPerPage is the GitHub API ceiling for the per_page parameter.
	maxPerPage = 100
)

// Config carries the per-process settings every handler needs: the default
// owner and the result cap. Both are immutable after startup.
type Config struct {
	// Owner is used when a tool call omits the owner argument. Empty means
	// the argument is mandatory.
	Owner string
	// MaxResults bounds how many items list tools return. Zero falls back
	// to defaultMaxResults.
	MaxResults int
}

// resolveOwner returns the owner argument, falling back to the configured
// default owner, and validates it for use in a request path.
func (c Config) resolveOwner(r mcp.CallToolRequest) (string, error) {
	owner, err := OptionalParam[string](r, "owner")
	if err != nil {
		return "", err
	}
	if owner == "" {
		owner = c.Owner
	}
	if owner == "" {
		return "", errors.New("owner is required (pass owner or start the server with --owner)")
	}
	if err := sanitizeName(owner, "owner"); err != nil {
		return "", err
	}
	return owner, nil
}

// resultLimit returns how many items the caller wants in total, defaulting to
// the configured maximum. The limit bounds accumulated items across pages,
// not a single page.
func (c Config) resultLimit(r mcp.CallToolRequest) (int, error) {
	v, err := OptionalIntParam(r, "per_page")
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.New("per_page must be positive")
	}
	if v == 0 {
		v = c.MaxResults
	}
	if v == 0 {
		v = defaultMaxResults
	}
	return v, nil
}

// commentLimit bounds nested comment and review fetches, which have no
// per-request override.
func (c Config) commentLimit() int {
	if c.MaxResults > 0 {
		return c.MaxResults
	}
	return defaultMaxResults
}

// requiredRepo fetches and validates the repo argument.
func requiredRepo(r mcp.CallToolRequest) (string, error) {
	repo, err := RequiredParam[string](r, "repo")
	if err != nil {
		return "", err
	}
	if err := sanitizeName(repo, "repo"); err != nil {
		return "", err
	}
	return repo, nil
}

// sanitizeName rejects owner and repository names containing characters that
// would alter the request URL.
func sanitizeName(name, field string) error {
	if name == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if strings.ContainsAny(name, "/?#%\x00 \n\t") {
		return fmt.Errorf("%s contains an invalid character", field)
	}
	return nil
}

// sanitizeRef is like sanitizeName but allows slashes, for branch names like
// feature/foo and file paths.
func sanitizeRef(value, field string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if strings.ContainsAny(value, "?#&\x00\n\r\t") {
		return fmt.Errorf("%s contains an invalid character", field)
	}
	return nil
}

// paginate collects list results page by page until limit items have
// accumulated or the API reports no further pages. The loop is additionally
// bounded by ceil(limit/perPage) fetches, so the worst-case call count stays
// finite even if the service keeps advertising continuation pages.
func paginate[T any](limit int, fetch func(page, perPage int) ([]T, *github.Response, error)) ([]T, error) {
	perPage := limit
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	maxPages := (limit + perPage - 1) / perPage

	var items []T
	page := 1
	for fetched := 0; fetched < maxPages; fetched++ {
		batch, resp, err := fetch(page, perPage)
		if err != nil {
			return nil, err
		}
		_ = resp.Body.Close()
		items = append(items, batch...)
		if len(items) >= limit || resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// RequiredParam is a helper function that can be used to fetch a requested parameter from the request.
// It does the following checks:
// 1. Checks if the parameter is present in the request.
// 2. Checks if the parameter is of the expected type.
// 3. Checks if the parameter is not empty, i.e: non-zero value
func RequiredParam[T comparable](r mcp.CallToolRequest, p string) (T, error) {
	var zero T

	// Check if the parameter is present in the request
	if _, ok := r.Params.Arguments[p]; !ok {
		return zero, fmt.Errorf("missing required parameter: %s", p)
	}

	// Check if the parameter is of the expected type
	if _, ok := r.Params.Arguments[p].(T); !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T", p, zero)
	}

	if r.Params.Arguments[p].(T) == zero {
		return zero, fmt.Errorf("missing required parameter: %s", p)
	}

	return r.Params.Arguments[p].(T), nil
}

// RequiredInt is a helper function that can be used to fetch a requested parameter from the request.
// It does the following checks:
// 1. Checks if the parameter is present in the request.
// 2. Checks if the parameter is of the expected type.
// 3. Checks if the parameter is not empty, i.e: non-zero value
func RequiredInt(r mcp.CallToolRequest, p string) (int, error) {
	v, err := RequiredParam[float64](r, p)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// OptionalParam is a helper function that can be used to fetch a requested parameter from the request.
// It does the following checks:
// 1. Checks if the parameter is present in the request, if not, it returns its zero-value
// 2. If it is present, it checks if the parameter is of the expected type and returns it
func OptionalParam[T any](r mcp.CallToolRequest, p string) (T, error) {
	var zero T

	// Check if the parameter is present in the request
	if _, ok := r.Params.Arguments[p]; !ok {
		return zero, nil
	}

	// Check if the parameter is of the expected type
	if _, ok := r.Params.Arguments[p].(T); !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T, is %T", p, zero, r.Params.Arguments[p])
	}

	return r.Params.Arguments[p].(T), nil
}

// OptionalIntParam is a helper function that can be used to fetch a requested parameter from the request.
// It does the following checks:
// 1. Checks if the parameter is present in the request, if not, it returns its zero-value
// 2. If it is present, it checks if the parameter is of the expected type and returns it
func OptionalIntParam(r mcp.CallToolRequest, p string) (int, error) {
	v, err := OptionalParam[float64](r, p)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// OptionalStringArrayParam is a helper function that can be used to fetch a requested parameter from the request.
// It does the following checks:
// 1. Checks if the parameter is present in the request, if not, it returns its zero-value
// 2. If it is present, iterates the elements and checks each is a string
func OptionalStringArrayParam(r mcp.CallToolRequest, p string) ([]string, error) {
	// Check if the parameter is present in the request
	if _, ok := r.Params.Arguments[p]; !ok {
		return []string{}, nil
	}

	switch v := r.Params.Arguments[p].(type) {
	case []string:
		return v, nil
	case []any:
		strSlice := make([]string, len(v))
		for i, v := range v {
			s, ok := v.(string)
			if !ok {
				return []string{}, fmt.Errorf("parameter %s is not of type string, is %T", p, v)
			}
			strSlice[i] = s
		}
		return strSlice, nil
	default:
		return []string{}, fmt.Errorf("parameter %s could not be coerced to []string, is %T", p, r.Params.Arguments[p])
	}
}
