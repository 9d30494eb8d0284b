package matching

import (
	"context"
	"fmt"
	"sort"

	"github.com/justsurfingit/job-portal/internal/logger"
	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/resume"
)

const (
	TierExcellent = "excellent"
	TierGood      = "good"
	TierPartial   = "partial"
	TierLow       = "low"
)

// MatchResult is one job scored against one resume.
type MatchResult struct {
	Job            models.Job `json:"job"`
	Score          int        `json:"score"`
	Tier           string     `json:"tier"`
	Explanation    string     `json:"explanation"`
	MatchingSkills []string   `json:"matching_skills"`
	MissingSkills  []string   `json:"missing_skills"`
}

// Matcher derives required skills from job descriptions and ranks jobs for a resume.
type Matcher struct {
	skills   *resume.TermSet
	strategy Strategy
	fallback Strategy
}

// NewMatcher uses strategy for semantic ranking. A nil strategy means term frequency.
func NewMatcher(vocab resume.Vocabulary, strategy Strategy) *Matcher {
	fallback := NewTermFrequencyStrategy()
	if strategy == nil {
		strategy = fallback
	}
	return &Matcher{
		skills:   resume.NewTermSet(vocab.Skills),
		strategy: strategy,
		fallback: fallback,
	}
}

func (m *Matcher) Strategy() Strategy { return m.strategy }

// RequiredSkills returns the vocabulary skills named in description, in vocabulary order.
func (m *Matcher) RequiredSkills(description string) []string {
	return m.skills.Find(description)
}

// Match computes the exact overlap between userSkills and the skills the job asks for.
func (m *Matcher) Match(userSkills []string, description string) OverlapResult {
	return Overlap(userSkills, m.RequiredSkills(description))
}

// RankJobs scores every job description against resumeText, highest first.
// Equal scores keep the input order.
func (m *Matcher) RankJobs(ctx context.Context, resumeText string, jobs []models.Job) ([]MatchResult, error) {
	if len(jobs) == 0 {
		return nil, nil
	}
	texts := make([]string, len(jobs))
	for i, j := range jobs {
		texts[i] = j.Description
	}

	scores, err := m.strategy.Score(ctx, resumeText, texts)
	if err != nil && m.strategy != m.fallback {
		logger.Ctx(ctx).Warn().Err(err).Str("strategy", m.strategy.Name()).Msg("semantic matching failed, falling back to term frequency")
		scores, err = m.fallback.Score(ctx, resumeText, texts)
	}
	if err != nil {
		return nil, fmt.Errorf("rank jobs: %w", err)
	}

	userSkills := m.skills.Find(resumeText)
	results := make([]MatchResult, len(jobs))
	for i, j := range jobs {
		pct := int(clamp(scores[i]) * 100)
		tier, explanation := Tier(pct)
		overlap := m.Match(userSkills, j.Description)
		results[i] = MatchResult{
			Job:            j,
			Score:          pct,
			Tier:           tier,
			Explanation:    explanation,
			MatchingSkills: overlap.Matching,
			MissingSkills:  overlap.Missing,
		}
	}
	sort.SliceStable(results, func(a, b int) bool { return results[a].Score > results[b].Score })
	return results, nil
}

// Tier labels a 0-100 similarity score. Bounds are exclusive: 80 is "good".
func Tier(score int) (label, explanation string) {
	switch {
	case score > 80:
		return TierExcellent, "Excellent match: Your skills and experience closely align with the job requirements."
	case score > 60:
		return TierGood, "Good match: You meet most requirements, but could improve by adding more relevant skills or experience."
	case score > 40:
		return TierPartial, "Partial match: Some important skills or experience are missing."
	default:
		return TierLow, "Low match: Resume and job description have little overlap. Consider tailoring your resume."
	}
}
