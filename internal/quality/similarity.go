package quality

import (
	"context"
	"strings"
)

// SimilarityScorer rates how alike two question texts are, from 0 to 1.
type SimilarityScorer interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// JaccardScorer stands in for embedding similarity.
type JaccardScorer struct{}

func (JaccardScorer) Similarity(_ context.Context, a, b string) (float64, error) {
	return Jaccard(a, b), nil
}

// Jaccard is |A∩B| / |A∪B| over lower-cased, whitespace-separated words.
// Two texts without words score 0.
func Jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}
