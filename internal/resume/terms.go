package resume

import (
	"regexp"
	"strings"
)

// TermSet finds vocabulary terms in free text on token boundaries, so "java"
// does not match inside "javascript". '+', '#' and '.' count as word characters,
// which keeps "c++", "c#" and "node.js" whole; a trailing sentence dot is allowed.
type TermSet struct {
	terms    []string
	patterns []*regexp.Regexp
}

const (
	termPrefix = `(?:^|[^\pL\pN+#.])`
	termSuffix = `(?:$|[^\pL\pN+#.]|\.(?:$|[^\pL\pN]))`
)

// NewTermSet compiles one boundary pattern per term. Terms keep their order.
func NewTermSet(terms []string) *TermSet {
	ts := &TermSet{
		terms:    make([]string, 0, len(terms)),
		patterns: make([]*regexp.Regexp, 0, len(terms)),
	}
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		ts.terms = append(ts.terms, t)
		ts.patterns = append(ts.patterns, regexp.MustCompile(termPrefix+regexp.QuoteMeta(t)+termSuffix))
	}
	return ts
}

// Terms returns the configured terms in order.
func (ts *TermSet) Terms() []string {
	return ts.terms
}

// Find returns the terms present in text, in configuration order.
func (ts *TermSet) Find(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for i, p := range ts.patterns {
		if p.MatchString(lower) {
			found = append(found, ts.terms[i])
		}
	}
	return found
}

// containsAny reports whether lower contains any keyword as a plain substring.
func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
