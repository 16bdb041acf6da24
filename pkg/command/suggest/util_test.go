package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	assert.Equal(t, 1.0, Score("st", "stone"))
	assert.Equal(t, 1.0, Score("ST", "stone"))
	assert.Equal(t, 0.0, Score("xy", "stone"))
	assert.InDelta(t, 0.5, Score("sx", "stone"), 0.001)
	assert.Less(t, Score("stonex", "stone"), 1.0)
}

func TestRank(t *testing.T) {
	candidates := []string{"dirt", "stone", "sand", "stone_bricks"}

	require.Equal(t, candidates, Rank("", candidates, DefaultMinimumSimilarityScore))
	require.Equal(t, []string{"stone", "stone_bricks"}, Rank("st", candidates, 0.6))
	require.Equal(t, []string{"sand", "stone", "stone_bricks", "dirt"}, Rank("sa", candidates, 0))
	require.Len(t, Rank("zz", candidates, 1), len(candidates), "minScore 1 drops nothing")
	require.Empty(t, Rank("zz", candidates, DefaultMinimumSimilarityScore))
}
