package github

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-github/v69/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RequiredParam(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]interface{}
		expectError bool
		expected    string
	}{
		{
			name:     "present and non-empty",
			args:     map[string]interface{}{"name": "value"},
			expected: "value",
		},
		{
			name:        "missing",
			args:        map[string]interface{}{},
			expectError: true,
		},
		{
			name:        "empty string",
			args:        map[string]interface{}{"name": ""},
			expectError: true,
		},
		{
			name:        "wrong type",
			args:        map[string]interface{}{"name": 42},
			expectError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := RequiredParam[string](createMCPRequest(tc.args), "name")
			if tc.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}
}

func Test_OptionalParam(t *testing.T) {
	v, err := OptionalParam[string](createMCPRequest(map[string]interface{}{}), "name")
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = OptionalParam[string](createMCPRequest(map[string]interface{}{"name": "value"}), "name")
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	_, err = OptionalParam[string](createMCPRequest(map[string]interface{}{"name": 42}), "name")
	require.Error(t, err)
}

func Test_OptionalIntParam(t *testing.T) {
	// JSON numbers arrive as float64
	v, err := OptionalIntParam(createMCPRequest(map[string]interface{}{"count": float64(30)}), "count")
	require.NoError(t, err)
	assert.Equal(t, 30, v)

	v, err = OptionalIntParam(createMCPRequest(map[string]interface{}{}), "count")
	require.NoError(t, err)
	assert.Zero(t, v)
}

func Test_resolveOwner(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		args        map[string]interface{}
		expected    string
		expectError bool
	}{
		{
			name:     "explicit owner wins over default",
			cfg:      Config{Owner: "default-org"},
			args:     map[string]interface{}{"owner": "octo-org"},
			expected: "octo-org",
		},
		{
			name:     "default owner fills in",
			cfg:      Config{Owner: "default-org"},
			args:     map[string]interface{}{},
			expected: "default-org",
		},
		{
			name:        "no owner anywhere",
			args:        map[string]interface{}{},
			expectError: true,
		},
		{
			name:        "owner with slash",
			args:        map[string]interface{}{"owner": "a/b"},
			expectError: true,
		},
		{
			name:        "owner with space",
			args:        map[string]interface{}{"owner": "a b"},
			expectError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			owner, err := tc.cfg.resolveOwner(createMCPRequest(tc.args))
			if tc.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, owner)
		})
	}
}

func Test_resultLimit(t *testing.T) {
	cfg := Config{MaxResults: 50}

	limit, err := cfg.resultLimit(createMCPRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.Equal(t, 50, limit)

	limit, err = cfg.resultLimit(createMCPRequest(map[string]interface{}{"per_page": float64(5)}))
	require.NoError(t, err)
	assert.Equal(t, 5, limit)

	limit, err = Config{}.resultLimit(createMCPRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.Equal(t, defaultMaxResults, limit)

	_, err = cfg.resultLimit(createMCPRequest(map[string]interface{}{"per_page": float64(-1)}))
	require.Error(t, err)
}

func Test_sanitizeRef(t *testing.T) {
	assert.NoError(t, sanitizeRef("feature/foo", "ref"))
	assert.NoError(t, sanitizeRef("v1.2.3", "ref"))
	assert.Error(t, sanitizeRef("", "ref"))
	assert.Error(t, sanitizeRef("main?x=1", "ref"))
	assert.Error(t, sanitizeRef("main#frag", "ref"))
}

func Test_paginate(t *testing.T) {
	page := func(start, n int) []int {
		items := make([]int, n)
		for i := range items {
			items[i] = start + i
		}
		return items
	}
	response := func(next int) *github.Response {
		return &github.Response{
			Response: &http.Response{Body: http.NoBody},
			NextPage: next,
		}
	}

	t.Run("stops at the limit across pages", func(t *testing.T) {
		calls := 0
		items, err := paginate(150, func(pageNum, perPage int) ([]int, *github.Response, error) {
			calls++
			assert.Equal(t, maxPerPage, perPage)
			next := pageNum + 1
			return page((pageNum-1)*perPage, perPage), response(next), nil
		})
		require.NoError(t, err)
		assert.Len(t, items, 150)
		assert.Equal(t, 2, calls)
	})

	t.Run("stops when the API has no more pages", func(t *testing.T) {
		items, err := paginate(100, func(pageNum, perPage int) ([]int, *github.Response, error) {
			return page(0, 10), response(0), nil
		})
		require.NoError(t, err)
		assert.Len(t, items, 10)
	})

	t.Run("bounded even if the API keeps advertising pages", func(t *testing.T) {
		calls := 0
		_, err := paginate(100, func(pageNum, perPage int) ([]int, *github.Response, error) {
			calls++
			// Keep returning a next page without ever yielding items.
			return nil, response(pageNum + 1), nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		_, err := paginate(30, func(pageNum, perPage int) ([]int, *github.Response, error) {
			return nil, nil, errors.New("boom")
		})
		require.Error(t, err)
	})
}
