package matching

import (
	"context"
	"math"
)

// Strategy scores a resume against a batch of job texts. Scores are cosine
// similarities clamped to [0,1], one per job text and in the same order.
type Strategy interface {
	Name() string
	Score(ctx context.Context, resumeText string, jobTexts []string) ([]float64, error)
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
