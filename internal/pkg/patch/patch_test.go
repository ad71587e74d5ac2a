//go:build unit

package patch_test

import (
	"testing"

	"perfect-widget/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	t.Run("nil source keeps the current value", func(t *testing.T) {
		name := "Ada"
		assert.False(t, patch.Apply(&name, nil))
		assert.Equal(t, "Ada", name)
	})

	t.Run("set source overwrites, including with a zero value", func(t *testing.T) {
		name, empty := "Ada", ""
		assert.True(t, patch.Apply(&name, &empty))
		assert.Empty(t, name)
	})
}
