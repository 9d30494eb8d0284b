package matching

import "strings"

// Listing categories for exact-overlap percentages.
const (
	CategoryStrong  = "strong match"
	CategoryPartial = "partial match"
	CategoryNone    = "no match"
)

// OverlapResult is the exact skill overlap between a candidate and one job.
type OverlapResult struct {
	Required   []string `json:"required_skills"`
	Matching   []string `json:"matching_skills"`
	Missing    []string `json:"missing_skills"`
	Percentage float64  `json:"match_percentage"`
	// Undetermined is set when the description names no known skill, so the
	// 0% score says nothing about the candidate.
	Undetermined bool `json:"undetermined"`
}

// Overlap computes 100*|matching|/|required|. Matching keeps the order of
// userSkills, Missing keeps the order of required. Comparison ignores case.
func Overlap(userSkills, required []string) OverlapResult {
	res := OverlapResult{Required: required}
	if len(required) == 0 {
		res.Undetermined = true
		return res
	}

	req := make(map[string]bool, len(required))
	for _, r := range required {
		req[strings.ToLower(r)] = true
	}
	have := make(map[string]bool, len(userSkills))
	for _, s := range userSkills {
		s = strings.ToLower(s)
		if req[s] && !have[s] {
			res.Matching = append(res.Matching, s)
		}
		have[s] = true
	}
	for _, r := range required {
		if !have[strings.ToLower(r)] {
			res.Missing = append(res.Missing, r)
		}
	}
	res.Percentage = 100 * float64(len(res.Matching)) / float64(len(required))
	return res
}

// Category buckets an overlap percentage for job listings.
func Category(pct float64) string {
	switch {
	case pct >= 70:
		return CategoryStrong
	case pct >= 30:
		return CategoryPartial
	default:
		return CategoryNone
	}
}
