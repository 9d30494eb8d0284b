package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounselor_AnalyzeGaps(t *testing.T) {
	c := NewCounselor(DefaultVocabulary())

	t.Run("experience suppresses limited experience flag", func(t *testing.T) {
		a := c.AnalyzeGaps("Worked as an engineer since 2019", []string{"engineer at Acme"})
		assert.False(t, a.HasGaps)
		assert.Empty(t, a.Gaps)
		assert.Equal(t, []string{"2019"}, a.Dates)
	})

	t.Run("no experience entries", func(t *testing.T) {
		a := c.AnalyzeGaps("Recent student", nil)
		require.True(t, a.HasGaps)
		assert.Equal(t, []string{"Limited work experience detected"}, a.Gaps)
	})

	t.Run("indicators carry category advice", func(t *testing.T) {
		a := c.AnalyzeGaps("Took a sabbatical for family reasons in Mar 2020", []string{"x"})
		assert.Equal(t, []string{"Career gap mentioned: sabbatical", "Career gap mentioned: family"}, a.Gaps)
		assert.Equal(t, []string{
			"Highlight the skills and experiences gained during your time away.",
			"Focus on your return to work and how you've stayed current with industry trends.",
		}, a.Advice)
		assert.Contains(t, a.Dates, "Mar 2020")
	})

	t.Run("education without work", func(t *testing.T) {
		a := c.AnalyzeGaps("Education: graduated with a degree", []string{"x"})
		assert.Equal(t, []string{"Gap between education and work experience"}, a.Gaps)
	})
}

func TestAdviseOnGaps(t *testing.T) {
	none := AdviseOnGaps(GapAnalysis{})
	assert.Equal(t, "Great! No significant career gaps detected in your resume.", none.Message)
	assert.Len(t, none.Suggestions, 3)
	assert.Empty(t, none.SpecificAdvice)

	some := AdviseOnGaps(GapAnalysis{HasGaps: true, Advice: []string{"be positive"}})
	assert.Len(t, some.Suggestions, 8)
	assert.Equal(t, []string{"be positive"}, some.SpecificAdvice)
}

func TestCounselor_Counsel(t *testing.T) {
	c := NewCounselor(DefaultVocabulary())
	p := SkillProfile{
		Skills:     []string{"python", "data analysis", "aws"},
		SoftSkills: []string{"leadership", "teamwork"},
		Experience: []string{"Analyst at X", "Engineer at Y"},
	}

	got := c.Counsel(p, "", "python analyst")

	assert.Equal(t, []string{"Analytical thinking and technical skills", "Leadership and initiative"}, got.Strengths)
	assert.Equal(t, []string{"Collaborative"}, got.Attitude)

	roles := make([]string, 0, len(got.CareerAdvice))
	for _, p := range got.CareerAdvice {
		roles = append(roles, p.Role)
	}
	assert.Equal(t, []string{"Data Analyst", "Project Manager", "Cloud Engineer"}, roles)
	assert.Contains(t, got.ResumeFeedback, "Add certifications or online courses to boost your profile.")
	assert.Len(t, got.Improvements, 3)
}

func TestCounselor_PlanSkillLevel(t *testing.T) {
	c := NewCounselor(DefaultVocabulary())
	tests := []struct {
		skills []string
		want   string
	}{
		{nil, "Beginner"},
		{[]string{"a", "b", "c"}, "Intermediate"},
		{[]string{"a", "b", "c", "d", "e", "f"}, "Advanced"},
	}
	for _, tt := range tests {
		plan := c.Plan(SkillProfile{Skills: tt.skills, Experience: []string{"x"}}, "")
		assert.Equal(t, tt.want, plan.CurrentAssessment.SkillLevel)
		assert.Len(t, plan.ActionItems, 5)
	}
}

func TestCareerAdvice(t *testing.T) {
	assert.Equal(t,
		"Explore more projects and upskill to discover your interests and improve your profile.",
		CareerAdvice(nil, nil, nil))
	assert.Equal(t,
		"You are suited for Data Scientist or ML Engineer roles. Consider Frontend or Backend Developer positions. To improve your job prospects, consider learning: sql.",
		CareerAdvice([]string{"machine learning", "html", "css"}, []string{"sql"}, nil))
}
