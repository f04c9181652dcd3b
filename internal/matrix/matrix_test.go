package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/envgrid/internal/config"
)

func testAxes() []config.Axis {
	return []config.Axis{
		{Name: "python", Labels: []string{"py27", "py38"}},
		{Name: "redis", Labels: []string{"3.2", "4.0", "latest"}},
	}
}

func TestNew(t *testing.T) {
	t.Run("valid axes", func(t *testing.T) {
		m, err := New(testAxes())
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Len(t, m.Axes(), 2)
	})

	t.Run("empty axis list", func(t *testing.T) {
		_, err := New(nil)
		require.Error(t, err)
		var cfgErr *config.Error
		assert.ErrorAs(t, err, &cfgErr)
		assert.ErrorContains(t, err, "no axes declared")
	})

	t.Run("axis without labels", func(t *testing.T) {
		_, err := New([]config.Axis{{Name: "python"}})
		assert.ErrorContains(t, err, "has no labels")
	})

	t.Run("axis without name", func(t *testing.T) {
		_, err := New([]config.Axis{{Labels: []string{"py38"}}})
		assert.ErrorContains(t, err, "has no name")
	})

	t.Run("empty label", func(t *testing.T) {
		_, err := New([]config.Axis{{Name: "python", Labels: []string{"py38", ""}}})
		assert.ErrorContains(t, err, "empty label")
	})

	t.Run("label containing separator", func(t *testing.T) {
		_, err := New([]config.Axis{{Name: "python", Labels: []string{"py-38"}}})
		assert.ErrorContains(t, err, "must not contain")
	})

	t.Run("duplicate label within one axis", func(t *testing.T) {
		_, err := New([]config.Axis{{Name: "python", Labels: []string{"py38", "py38"}}})
		assert.ErrorContains(t, err, "declared on both")
	})

	t.Run("duplicate label across axes", func(t *testing.T) {
		_, err := New([]config.Axis{
			{Name: "python", Labels: []string{"py38"}},
			{Name: "redis", Labels: []string{"py38"}},
		})
		assert.ErrorContains(t, err, `label "py38" declared on both axis "python" and axis "redis"`)
	})
}

func TestExpand(t *testing.T) {
	m, err := New(testAxes())
	require.NoError(t, err)

	ids := m.Expand()

	t.Run("cardinality is the product of axis sizes", func(t *testing.T) {
		assert.Len(t, ids, 6)
		assert.Equal(t, 6, m.Size())
	})

	t.Run("first axis varies slowest", func(t *testing.T) {
		want := []string{
			"py27-3.2", "py27-4.0", "py27-latest",
			"py38-3.2", "py38-4.0", "py38-latest",
		}
		assert.Equal(t, want, ids)
	})

	t.Run("identifiers are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, id := range ids {
			assert.False(t, seen[id], "duplicate identifier %s", id)
			seen[id] = true
		}
	})

	t.Run("single axis expands to its labels", func(t *testing.T) {
		single, err := New([]config.Axis{{Name: "redis", Labels: []string{"4.0", "latest"}}})
		require.NoError(t, err)
		assert.Equal(t, []string{"4.0", "latest"}, single.Expand())
	})
}

func TestDecompose(t *testing.T) {
	m, err := New(testAxes())
	require.NoError(t, err)

	t.Run("maps each factor to its axis", func(t *testing.T) {
		factors, err := m.Decompose("py38-4.0")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"python": "py38", "redis": "4.0"}, factors)
	})

	t.Run("factor order does not matter", func(t *testing.T) {
		factors, err := m.Decompose("4.0-py38")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"python": "py38", "redis": "4.0"}, factors)
	})

	t.Run("unknown factor", func(t *testing.T) {
		_, err := m.Decompose("py38-9.9")
		require.Error(t, err)
		var resErr *config.ResolveError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "py38-9.9", resErr.ID)
		assert.ErrorContains(t, err, "unknown factor")
	})

	t.Run("two labels from the same axis", func(t *testing.T) {
		_, err := m.Decompose("py27-py38")
		assert.ErrorContains(t, err, `two labels from axis "python"`)
	})

	t.Run("missing axis", func(t *testing.T) {
		_, err := m.Decompose("py38")
		assert.ErrorContains(t, err, `no label from axis "redis"`)
	})
}

func TestHasLabel(t *testing.T) {
	m, err := New(testAxes())
	require.NoError(t, err)

	assert.True(t, m.HasLabel("py27"))
	assert.True(t, m.HasLabel("latest"))
	assert.False(t, m.HasLabel("py39"))
}
