package translations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NullTranslationHelper(t *testing.T) {
	assert.Equal(t, "fallback", NullTranslationHelper("SOME_KEY", "fallback"))
}

func Test_TranslationHelper(t *testing.T) {
	t.Run("returns the default when no override exists", func(t *testing.T) {
		helper, _ := TranslationHelper()
		assert.Equal(t, "List repositories", helper("TOOL_LIST_REPOS_DESCRIPTION", "List repositories"))
	})

	t.Run("environment overrides win", func(t *testing.T) {
		t.Setenv("MCP_GITHUB_TOOL_LIST_REPOS_DESCRIPTION", "Repos auflisten")
		helper, _ := TranslationHelper()
		assert.Equal(t, "Repos auflisten", helper("TOOL_LIST_REPOS_DESCRIPTION", "List repositories"))
	})

	t.Run("values are memoized per helper", func(t *testing.T) {
		helper, _ := TranslationHelper()
		first := helper("TOOL_GET_REPO_DESCRIPTION", "Get a repository")
		// A changed default after the first lookup does not replace the
		// memoized value.
		second := helper("TOOL_GET_REPO_DESCRIPTION", "different default")
		assert.Equal(t, first, second)
	})
}
