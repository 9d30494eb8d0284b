package matching

import (
	"context"
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`\b\w\w+\b`)

// TermFrequencyStrategy compares raw term counts over the vocabulary of the
// batch. It needs no external service.
type TermFrequencyStrategy struct{}

func NewTermFrequencyStrategy() *TermFrequencyStrategy {
	return &TermFrequencyStrategy{}
}

func (TermFrequencyStrategy) Name() string { return "term-frequency" }

func (TermFrequencyStrategy) Score(_ context.Context, resumeText string, jobTexts []string) ([]float64, error) {
	docs := make([]map[string]int, 0, len(jobTexts)+1)
	index := make(map[string]int)
	for _, text := range append([]string{resumeText}, jobTexts...) {
		counts := make(map[string]int)
		for _, tok := range tokenRe.FindAllString(strings.ToLower(text), -1) {
			counts[tok]++
			if _, ok := index[tok]; !ok {
				index[tok] = len(index)
			}
		}
		docs = append(docs, counts)
	}

	vec := func(counts map[string]int) []float64 {
		v := make([]float64, len(index))
		for tok, n := range counts {
			v[index[tok]] = float64(n)
		}
		return v
	}

	resumeVec := vec(docs[0])
	scores := make([]float64, len(jobTexts))
	for i := range jobTexts {
		scores[i] = cosine(resumeVec, vec(docs[i+1]))
	}
	return scores, nil
}
