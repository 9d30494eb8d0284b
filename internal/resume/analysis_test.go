package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzer_Analyze(t *testing.T) {
	a := NewAnalyzer(DefaultVocabulary())
	got := a.Analyze(sampleResume)

	assert.Equal(t, 100, got.ATSScore)
	assert.Len(t, got.ATS, 7)
	assert.Equal(t, got.Profile.Skills, got.Buckets.Have)
	assert.Len(t, got.Buckets.Gap, len(DefaultVocabulary().Skills)-len(got.Profile.Skills))
	assert.Equal(t, []string{"java", "c++", "machine learning", "data analysis", "excel"}, got.Buckets.Suggested)
	assert.Equal(t, got.Buckets.Suggested, got.Feedback.MissingSkills)
	assert.Equal(t, "You have strengths in python, sql, communication.", got.Feedback.Summary)

	assert.Equal(t, []string{"data", "cloud"}, got.Persona.Domains)
	assert.Equal(t, []string{"Data Analyst", "Cloud Engineer"}, got.Persona.IdealRoles)
	assert.Contains(t, got.Persona.Personality, "Team Player")
	assert.Contains(t, got.Persona.Personality, "Good Communicator")

	assert.False(t, got.Counseling.GapAnalysis.HasGaps)
	assert.Equal(t, "Advanced", got.Plan.CurrentAssessment.SkillLevel)
}

func TestAnalyzer_EmptyText(t *testing.T) {
	a := NewAnalyzer(DefaultVocabulary())
	got := a.Analyze("")

	assert.Empty(t, got.Profile.Skills)
	assert.Equal(t, 0, got.ATSScore)
	assert.Equal(t, []string{"python", "java", "c++", "machine learning", "data analysis"}, got.Buckets.Suggested)
	assert.Equal(t, []string{"Analytical"}, got.Persona.Personality)
	assert.Equal(t, []string{"Generalist/Entry-level roles"}, got.Persona.IdealRoles)
	assert.Contains(t, got.Feedback.Suggestions, "Add your email/contact information.")
	assert.True(t, got.Counseling.GapAnalysis.HasGaps)
	assert.Equal(t, "Beginner", got.Plan.CurrentAssessment.SkillLevel)
}
