package resume

import (
	"math"
	"regexp"
	"strings"
)

var contactRe = regexp.MustCompile(`@|\bphone\b|\bemail\b`)

// ATSCheck reports whether one named resume section was detected.
type ATSCheck struct {
	Section string `json:"section"`
	Present bool   `json:"present"`
}

// Predicate is one named section test. Check receives lowercased resume text.
type Predicate struct {
	Section string
	Check   func(lower string) bool
}

// DefaultPredicates is the standard checklist built from the vocabulary.
func DefaultPredicates(v Vocabulary) []Predicate {
	return []Predicate{
		{Section: "Contact Info", Check: contactRe.MatchString},
		{Section: "Education", Check: func(l string) bool { return containsAny(l, v.Education) }},
		{Section: "Certifications", Check: func(l string) bool { return containsAny(l, v.Certifications) }},
		{Section: "Skills", Check: func(l string) bool { return strings.Contains(l, "skill") }},
		{Section: "Projects", Check: func(l string) bool { return strings.Contains(l, "project") }},
		{Section: "Achievements", Check: func(l string) bool { return containsAny(l, v.Achievements) }},
		{Section: "LinkedIn", Check: func(l string) bool { return strings.Contains(l, "linkedin.com") }},
	}
}

// ATSEvaluator runs an ordered list of section predicates.
type ATSEvaluator struct {
	predicates []Predicate
}

func NewATSEvaluator(predicates []Predicate) *ATSEvaluator {
	return &ATSEvaluator{predicates: predicates}
}

// Evaluate returns one check per predicate, in predicate order.
func (e *ATSEvaluator) Evaluate(text string) []ATSCheck {
	lower := strings.ToLower(text)
	checks := make([]ATSCheck, 0, len(e.predicates))
	for _, p := range e.predicates {
		checks = append(checks, ATSCheck{Section: p.Section, Present: p.Check(lower)})
	}
	return checks
}

// ATSScore is round(100 * present / total), and 0 for an empty checklist.
func ATSScore(checks []ATSCheck) int {
	if len(checks) == 0 {
		return 0
	}
	present := 0
	for _, c := range checks {
		if c.Present {
			present++
		}
	}
	return int(math.Round(100 * float64(present) / float64(len(checks))))
}
