// Package search is a general-purpose ranked approximate-match utility over
// an in-memory candidate list. It backs item and recipe lookup but has no
// knowledge of either entity type.
package search

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// Score bounds and per-rule values. Rules are evaluated in priority order and
// the first one that applies wins.
const (
	ScoreExact     = 100
	ScoreContains  = 90
	ScorePrefix    = 80
	TokenRuleValue = 70
)

// Match is one scored candidate.
type Match struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ScoreOf scores a candidate name against a free-text query on a 0-100 scale.
func ScoreOf(query, candidate string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(strings.TrimSpace(candidate))
	if q == "" || c == "" {
		return 0
	}

	if q == c {
		return ScoreExact
	}
	if strings.Contains(c, q) {
		return ScoreContains
	}
	if strings.HasPrefix(c, q) {
		return ScorePrefix
	}

	if score := tokenOverlapScore(q, c); score > 0 {
		return score
	}

	return editDistanceScore(q, c)
}

// tokenOverlapScore splits both strings on whitespace and credits each query
// token that appears inside any candidate token (or vice versa).
func tokenOverlapScore(query, candidate string) int {
	queryTokens := strings.Fields(query)
	candidateTokens := strings.Fields(candidate)
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return 0
	}

	matched := 0
	for _, qt := range queryTokens {
		for _, ct := range candidateTokens {
			if strings.Contains(ct, qt) || strings.Contains(qt, ct) {
				matched++
				break
			}
		}
	}

	return matched * TokenRuleValue / len(queryTokens)
}

// editDistanceScore converts Levenshtein distance into a 0-100 similarity,
// floored at 0.
func editDistanceScore(query, candidate string) int {
	longest := len(query)
	if len(candidate) > longest {
		longest = len(candidate)
	}
	if longest == 0 {
		return 0
	}

	distance := matchr.Levenshtein(query, candidate)
	score := 100 - distance*100/longest
	if score < 0 {
		return 0
	}
	return score
}

// Rank scores every candidate, drops zero scores, and returns up to limit
// results ordered by score descending, ties broken by shorter name then
// lexical order.
func Rank(query string, candidates []string, limit int) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, candidate := range candidates {
		if score := ScoreOf(query, candidate); score > 0 {
			matches = append(matches, Match{Name: candidate, Score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if len(matches[i].Name) != len(matches[j].Name) {
			return len(matches[i].Name) < len(matches[j].Name)
		}
		return matches[i].Name < matches[j].Name
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
