package resume

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestATSEvaluator_FullResume(t *testing.T) {
	e := NewATSEvaluator(DefaultPredicates(DefaultVocabulary()))
	checks := e.Evaluate(sampleResume)

	sections := make([]string, 0, len(checks))
	for _, c := range checks {
		sections = append(sections, c.Section)
		assert.True(t, c.Present, c.Section)
	}
	assert.Equal(t, []string{"Contact Info", "Education", "Certifications", "Skills", "Projects", "Achievements", "LinkedIn"}, sections)
	assert.Equal(t, 100, ATSScore(checks))
}

func TestATSEvaluator_Partial(t *testing.T) {
	e := NewATSEvaluator(DefaultPredicates(DefaultVocabulary()))

	checks := e.Evaluate("Contact: me@example.com\nSkills: Go\nProjects: a CLI")
	assert.Equal(t, 43, ATSScore(checks)) // 3 of 7

	assert.Equal(t, 0, ATSScore(e.Evaluate("")))
}

func TestATSScore(t *testing.T) {
	tests := []struct {
		name    string
		present int
		total   int
		want    int
	}{
		{name: "empty checklist", present: 0, total: 0, want: 0},
		{name: "none present", present: 0, total: 7, want: 0},
		{name: "one of seven", present: 1, total: 7, want: 14},
		{name: "four of seven", present: 4, total: 7, want: 57},
		{name: "one of three rounds down", present: 1, total: 3, want: 33},
		{name: "two of three rounds up", present: 2, total: 3, want: 67},
		{name: "all present", present: 5, total: 5, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := make([]ATSCheck, tt.total)
			for i := 0; i < tt.present; i++ {
				checks[i].Present = true
			}
			got := ATSScore(checks)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
			if tt.total > 0 {
				assert.Equal(t, int(math.Round(100*float64(tt.present)/float64(tt.total))), got)
			}
		})
	}
}

func TestATSEvaluator_CustomPredicates(t *testing.T) {
	e := NewATSEvaluator([]Predicate{
		{Section: "Has Go", Check: func(l string) bool { return l == "go" }},
	})
	assert.Equal(t, []ATSCheck{{Section: "Has Go", Present: true}}, e.Evaluate("GO"))
	assert.Equal(t, 0, ATSScore(NewATSEvaluator(nil).Evaluate("anything")))
}
