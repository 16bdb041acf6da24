// Package suggest ranks completion candidates by their similarity
// to what the invoker has typed so far.
package suggest

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agext/levenshtein"
	"go.minekube.com/brigodier"
)

const DefaultMinimumSimilarityScore = 0.2

// Similar calls SimilarScore with DefaultMinimumSimilarityScore.
func Similar(builder *brigodier.SuggestionsBuilder, candidates []string) *brigodier.SuggestionsBuilder {
	return SimilarScore(builder, candidates, DefaultMinimumSimilarityScore)
}

// SimilarScore suggests the candidates ranked by similarity to the
// last word of the builder input, see Rank.
func SimilarScore(builder *brigodier.SuggestionsBuilder, candidates []string, minScore float64) *brigodier.SuggestionsBuilder {
	given := builder.Input[strings.LastIndex(builder.Input, " ")+1:]
	for _, text := range Rank(given, candidates, minScore) {
		builder.Suggest(text)
	}
	return builder
}

// Rank sorts and filters candidates by their levenshtein similarity
// score to given, best first. Equally scored candidates keep their order.
//
// A candidate Score below minScore is dropped. No candidates are dropped
// when minScore >= 1 or given is empty.
func Rank(given string, candidates []string, minScore float64) []string {
	if given == "" {
		return slices.Clone(candidates)
	}
	type scored struct {
		text  string
		score float64
	}
	result := make([]scored, 0, len(candidates))
	for _, text := range candidates {
		score := Score(given, text)
		if score < minScore && minScore < 1 {
			continue
		}
		result = append(result, scored{text: text, score: score})
	}
	slices.SortStableFunc(result, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
	ranked := make([]string, len(result))
	for i, s := range result {
		ranked[i] = s.text
	}
	return ranked
}

// Score calculates the similarity score in the range of 0..1 of two strings.
// Only the prefix of suggestion as long as given is compared, ignoring case.
// A score of 1 means the prefix is identical, and 0 means they have nothing in common.
func Score(given, suggestion string) float64 {
	i := min(len(given), len(suggestion))
	return levenshtein.Similarity(strings.ToLower(given), strings.ToLower(suggestion[:i]), nil)
}
