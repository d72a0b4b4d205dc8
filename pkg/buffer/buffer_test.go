package buffer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Tail(t *testing.T) {
	t.Run("short stream is returned whole", func(t *testing.T) {
		got, total, err := Tail(strings.NewReader("a\nb\nc"), 10)
		require.NoError(t, err)
		assert.Equal(t, "a\nb\nc", got)
		assert.Equal(t, 3, total)
	})

	t.Run("long stream keeps only the last lines in order", func(t *testing.T) {
		var sb strings.Builder
		for i := 1; i <= 100; i++ {
			fmt.Fprintf(&sb, "line %d\n", i)
		}
		got, total, err := Tail(strings.NewReader(sb.String()), 3)
		require.NoError(t, err)
		assert.Equal(t, "line 98\nline 99\nline 100", got)
		assert.Equal(t, 100, total)
	})

	t.Run("exact fit does not wrap", func(t *testing.T) {
		got, total, err := Tail(strings.NewReader("a\nb\nc"), 3)
		require.NoError(t, err)
		assert.Equal(t, "a\nb\nc", got)
		assert.Equal(t, 3, total)
	})

	t.Run("empty stream", func(t *testing.T) {
		got, total, err := Tail(strings.NewReader(""), 5)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, total)
	})

	t.Run("rejects non-positive maxLines", func(t *testing.T) {
		_, _, err := Tail(strings.NewReader("a"), 0)
		require.Error(t, err)
	})
}
