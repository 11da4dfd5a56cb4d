package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreOf(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      int
	}{
		{
			name:      "Exact match",
			query:     "Iron Sword",
			candidate: "Iron Sword",
			want:      ScoreExact,
		},
		{
			name:      "Exact match case insensitive",
			query:     "iron sword",
			candidate: "Iron Sword",
			want:      ScoreExact,
		},
		{
			name:      "Exact match with surrounding whitespace",
			query:     "  iron sword  ",
			candidate: "Iron Sword",
			want:      ScoreExact,
		},
		{
			name:      "Substring match",
			query:     "sword",
			candidate: "Iron Sword",
			want:      ScoreContains,
		},
		{
			name:      "Prefix is also a substring",
			query:     "iron",
			candidate: "Iron Sword",
			want:      ScoreContains,
		},
		{
			name:      "Single query token overlap",
			query:     "ironsword",
			candidate: "Iron Sword",
			want:      70,
		},
		{
			name:      "Half of query tokens overlap",
			query:     "iron shield",
			candidate: "Iron Ore",
			want:      35,
		},
		{
			name:      "Edit distance fallback",
			query:     "sord",
			candidate: "Sword",
			want:      80,
		},
		{
			name:      "No similarity",
			query:     "xyz",
			candidate: "Iron Ore",
			want:      0,
		},
		{
			name:      "Empty query",
			query:     "",
			candidate: "Iron Ore",
			want:      0,
		},
		{
			name:      "Empty candidate",
			query:     "iron",
			candidate: "",
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreOf(tt.query, tt.candidate))
		})
	}
}

func TestRank(t *testing.T) {
	candidates := []string{"Steel Sword", "Iron Ore", "Iron Sword", "Egg"}

	t.Run("Exact match first", func(t *testing.T) {
		matches := Rank("iron sword", candidates, 10)
		require.NotEmpty(t, matches)
		assert.Equal(t, "Iron Sword", matches[0].Name)
		assert.Equal(t, ScoreExact, matches[0].Score)
	})

	t.Run("Zero scores excluded", func(t *testing.T) {
		matches := Rank("iron sword", candidates, 10)
		for _, m := range matches {
			assert.Greater(t, m.Score, 0)
		}
		assert.NotContains(t, names(matches), "Egg")
	})

	t.Run("Ties broken by shorter name then lexical", func(t *testing.T) {
		matches := Rank("iron sword", []string{"Steel Sword", "Iron Ore"}, 10)
		require.Len(t, matches, 2)
		// Both score the token-overlap value; the shorter name wins.
		assert.Equal(t, matches[0].Score, matches[1].Score)
		assert.Equal(t, "Iron Ore", matches[0].Name)
		assert.Equal(t, "Steel Sword", matches[1].Name)
	})

	t.Run("Lexical tie-break at equal length", func(t *testing.T) {
		matches := Rank("ore", []string{"Iron Ore", "Gold Ore"}, 10)
		require.Len(t, matches, 2)
		assert.Equal(t, matches[0].Score, matches[1].Score)
		assert.Equal(t, "Gold Ore", matches[0].Name)
	})

	t.Run("Truncates to limit", func(t *testing.T) {
		matches := Rank("iron", []string{"Iron Ore", "Iron Bar", "Iron Sword", "Iron Shield"}, 2)
		assert.Len(t, matches, 2)
	})

	t.Run("Zero limit returns all", func(t *testing.T) {
		matches := Rank("iron", []string{"Iron Ore", "Iron Bar", "Iron Sword"}, 0)
		assert.Len(t, matches, 3)
	})

	t.Run("No candidates", func(t *testing.T) {
		assert.Empty(t, Rank("iron", nil, 10))
	})
}

func names(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Name
	}
	return out
}
