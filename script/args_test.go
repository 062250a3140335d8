package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs_Map(t *testing.T) {
	var src, dst, extra string
	args := &Args{Positional: []string{"from", "to"}}

	require.NoError(t, args.Map(2, &src, &dst))
	assert.Equal(t, "from", src)
	assert.Equal(t, "to", dst)

	t.Run("Not enough arguments", func(t *testing.T) {
		short := &Args{Positional: []string{"only"}}
		assert.ErrorIs(t, short.Map(2, &src, &dst), ErrArgMap)
	})
	t.Run("Not enough targets", func(t *testing.T) {
		assert.ErrorIs(t, args.Map(2, &src), ErrArgMap)
	})
	t.Run("Nil target", func(t *testing.T) {
		assert.ErrorIs(t, args.Map(2, &src, nil), ErrArgMap)
	})
	t.Run("Extra targets are fine", func(t *testing.T) {
		extra = "untouched"
		require.NoError(t, args.Map(2, &src, &dst, &extra))
		assert.Equal(t, "untouched", extra)
	})
}

func TestMustGet(t *testing.T) {
	s, _, _, _ := newTestScript(t)
	assert.False(t, MustGet(s.Flags().GetBool("debug")))
	assert.Panics(t, func() {
		MustGet(s.Flags().GetBool("not-a-flag"))
	})
}
