package resume

import (
	"regexp"
	"strings"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+\s+|\n+`)
	linkedinRe      = regexp.MustCompile(`https?://[\w.]*linkedin\.com[\w\-/?=&#%]*`)
	githubRe        = regexp.MustCompile(`https?://[\w.]*github\.com[\w\-/?=&#%]*`)
	emailRe         = regexp.MustCompile(`[\w.+\-]+@[\w\-]+\.[\w.\-]+`)
)

// SkillProfile is everything the extractor recognises in one resume.
// Skills and SoftSkills follow vocabulary order; the other lists follow source order.
type SkillProfile struct {
	Skills         []string `json:"skills"`
	SoftSkills     []string `json:"soft_skills"`
	Education      []string `json:"education"`
	Experience     []string `json:"experience"`
	Certifications []string `json:"certifications"`
	Projects       []string `json:"projects"`
	Achievements   []string `json:"achievements"`
	ContactLinks   []string `json:"contact_links"`
	LinkedIn       string   `json:"linkedin,omitempty"`
}

// Extractor turns resume text into a SkillProfile. It holds no mutable state.
type Extractor struct {
	vocab  Vocabulary
	skills *TermSet
}

// NewExtractor builds an extractor over the given vocabulary.
func NewExtractor(vocab Vocabulary) *Extractor {
	return &Extractor{
		vocab:  vocab,
		skills: NewTermSet(vocab.Skills),
	}
}

// Vocabulary returns the vocabulary the extractor was built with.
func (e *Extractor) Vocabulary() Vocabulary {
	return e.vocab
}

// SkillTerms exposes the compiled skill matcher so job descriptions are scanned the same way.
func (e *Extractor) SkillTerms() *TermSet {
	return e.skills
}

// Extract scans text and returns the matched terms per category.
func (e *Extractor) Extract(text string) SkillProfile {
	lower := strings.ToLower(text)

	p := SkillProfile{
		Skills:         e.skills.Find(lower),
		SoftSkills:     substringTerms(lower, e.vocab.SoftSkills),
		Education:      matchingSentences(text, e.vocab.Education),
		Experience:     matchingSentences(text, e.vocab.Experience),
		Certifications: matchingLines(text, e.vocab.Certifications),
		Projects:       matchingLines(text, e.vocab.Projects),
		Achievements:   matchingLines(text, e.vocab.Achievements),
		ContactLinks:   contactLinks(text),
	}
	if m := linkedinRe.FindString(text); m != "" {
		p.LinkedIn = m
	}
	return p
}

func substringTerms(lower string, terms []string) []string {
	var found []string
	for _, t := range terms {
		if strings.Contains(lower, t) {
			found = append(found, t)
		}
	}
	return found
}

func sentences(text string) []string {
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func matchingSentences(text string, keywords []string) []string {
	var out []string
	for _, s := range sentences(text) {
		if containsAny(strings.ToLower(s), keywords) {
			out = append(out, s)
		}
	}
	return out
}

// matchingLines keeps each trimmed line once, in source order.
func matchingLines(text string, keywords []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		if containsAny(strings.ToLower(line), keywords) {
			seen[line] = true
			out = append(out, line)
		}
	}
	return out
}

func contactLinks(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		for _, re := range []*regexp.Regexp{emailRe, linkedinRe, githubRe} {
			for _, m := range re.FindAllString(line, -1) {
				if !seen[m] {
					seen[m] = true
					out = append(out, m)
				}
			}
		}
	}
	return out
}
