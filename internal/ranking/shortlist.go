// Package ranking orders a job's applicants and splits them into shortlisted
// and rejected groups.
package ranking

import (
	"sort"
	"strings"

	"github.com/justsurfingit/job-portal/internal/matching"
)

const (
	ShortlistThreshold = 70.0

	CategoryShortlisted = "shortlisted"
	CategoryRejected    = "rejected"

	ReasonNoResume     = "No resume uploaded"
	ReasonManualReview = "Manual review needed"
)

// Candidate is one applicant with whatever was extracted from their resume.
type Candidate struct {
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	ApplicationID uint   `json:"application_id"`
	HasResume     bool   `json:"has_resume"`
	// Skills and ATSScore are ignored when HasResume is false.
	Skills   []string `json:"skills"`
	ATSScore int      `json:"ats_score"`
}

// Decision is the scored outcome for one candidate.
type Decision struct {
	Candidate
	MatchPercentage float64  `json:"match_percentage"`
	MatchingSkills  []string `json:"matching_skills"`
	MissingSkills   []string `json:"missing_skills"`
	ExperienceLevel string   `json:"experience_level"`
	OverallScore    float64  `json:"overall_score"`
	Reason          string   `json:"shortlist_reason"`
	Category        string   `json:"category"`
}

type Summary struct {
	TotalApplicants    int     `json:"total_applicants"`
	ShortlistedCount   int     `json:"shortlisted_count"`
	RejectedCount      int     `json:"rejected_count"`
	AvgMatchPercentage float64 `json:"avg_match_percentage"`
	AvgATSScore        float64 `json:"avg_ats_score"`
}

type Result struct {
	Shortlisted []Decision `json:"shortlisted"`
	Rejected    []Decision `json:"rejected"`
	Summary     Summary    `json:"summary"`
}

// OverallScore weighs match, ATS and breadth of skills. It is not capped.
func OverallScore(matchPct float64, atsScore, skillCount int) float64 {
	return 0.6*matchPct + 0.3*float64(atsScore) + 2*float64(skillCount)
}

// ExperienceLevel guesses seniority from the number of recognised skills.
func ExperienceLevel(skillCount int) string {
	switch {
	case skillCount > 8:
		return "Senior"
	case skillCount > 5:
		return "Mid Level"
	default:
		return "Entry Level"
	}
}

// Reason joins the criteria a candidate satisfies.
func Reason(matchPct float64, atsScore, skillCount int) string {
	var parts []string
	switch {
	case matchPct >= 80:
		parts = append(parts, "Excellent skill match")
	case matchPct >= 60:
		parts = append(parts, "Good skill match")
	}
	switch {
	case atsScore >= 80:
		parts = append(parts, "High ATS compatibility")
	case atsScore >= 60:
		parts = append(parts, "Good ATS compatibility")
	}
	if skillCount >= 8 {
		parts = append(parts, "Strong technical background")
	}
	if len(parts) == 0 {
		return ReasonManualReview
	}
	return strings.Join(parts, ", ")
}

// Decide scores one candidate against the job's required skills.
func Decide(c Candidate, required []string) Decision {
	d := Decision{Candidate: c}
	if !c.HasResume {
		d.Skills = nil
		d.ATSScore = 0
		d.ExperienceLevel = "Unknown"
		d.Reason = ReasonNoResume
		d.Category = CategoryRejected
		return d
	}

	overlap := matching.Overlap(c.Skills, required)
	d.MatchPercentage = overlap.Percentage
	d.MatchingSkills = overlap.Matching
	d.MissingSkills = overlap.Missing
	d.ExperienceLevel = ExperienceLevel(len(c.Skills))
	d.OverallScore = OverallScore(overlap.Percentage, c.ATSScore, len(c.Skills))
	d.Reason = Reason(overlap.Percentage, c.ATSScore, len(c.Skills))
	d.Category = CategoryRejected
	if d.OverallScore >= ShortlistThreshold {
		d.Category = CategoryShortlisted
	}
	return d
}

// Shortlist decides every candidate and returns both groups sorted by
// overall score, highest first.
func Shortlist(required []string, candidates []Candidate) Result {
	res := Result{Shortlisted: []Decision{}, Rejected: []Decision{}}
	for _, c := range candidates {
		d := Decide(c, required)
		if d.Category == CategoryShortlisted {
			res.Shortlisted = append(res.Shortlisted, d)
		} else {
			res.Rejected = append(res.Rejected, d)
		}
	}
	byScore := func(ds []Decision) {
		sort.SliceStable(ds, func(i, j int) bool { return ds[i].OverallScore > ds[j].OverallScore })
	}
	byScore(res.Shortlisted)
	byScore(res.Rejected)

	res.Summary = Summary{
		TotalApplicants:  len(candidates),
		ShortlistedCount: len(res.Shortlisted),
		RejectedCount:    len(res.Rejected),
	}
	if n := len(res.Shortlisted); n > 0 {
		var match, ats float64
		for _, d := range res.Shortlisted {
			match += d.MatchPercentage
			ats += float64(d.ATSScore)
		}
		res.Summary.AvgMatchPercentage = match / float64(n)
		res.Summary.AvgATSScore = ats / float64(n)
	}
	return res
}

// RankByMatch orders candidates by exact skill overlap only, highest first.
func RankByMatch(required []string, candidates []Candidate) []Decision {
	out := make([]Decision, 0, len(candidates))
	for _, c := range candidates {
		d := Decision{Candidate: c}
		if c.HasResume {
			o := matching.Overlap(c.Skills, required)
			d.MatchPercentage = o.Percentage
			d.MatchingSkills = o.Matching
			d.MissingSkills = o.Missing
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchPercentage > out[j].MatchPercentage })
	return out
}
