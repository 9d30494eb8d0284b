package resume

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// RoleDomain groups skills that point at a career domain and the role suggested for it.
type RoleDomain struct {
	Label    string   `yaml:"label" json:"label"`
	Role     string   `yaml:"role" json:"role"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Vocabulary is the keyword configuration shared by the extractor, the ATS
// checklist and the matcher. Entries are stored lowercased.
type Vocabulary struct {
	Skills         []string     `yaml:"skills"`
	SoftSkills     []string     `yaml:"soft_skills"`
	Certifications []string     `yaml:"certifications"`
	Education      []string     `yaml:"education"`
	Experience     []string     `yaml:"experience"`
	Projects       []string     `yaml:"projects"`
	Achievements   []string     `yaml:"achievements"`
	GapIndicators  []string     `yaml:"gap_indicators"`
	RoleDomains    []RoleDomain `yaml:"role_domains"`
}

// DefaultVocabulary returns the vocabulary bundled with the binary.
func DefaultVocabulary() Vocabulary {
	v, err := ParseVocabulary(defaultVocabularyYAML)
	if err != nil {
		panic(fmt.Sprintf("resume: embedded vocabulary is invalid: %v", err))
	}
	return v
}

// LoadVocabulary reads a YAML vocabulary file. An empty path yields the default vocabulary.
func LoadVocabulary(path string) (Vocabulary, error) {
	if path == "" {
		return DefaultVocabulary(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	return ParseVocabulary(data)
}

// ParseVocabulary decodes YAML and normalises every keyword list.
func ParseVocabulary(data []byte) (Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary: %w", err)
	}
	if len(v.Skills) == 0 {
		return Vocabulary{}, fmt.Errorf("parse vocabulary: skills list is empty")
	}

	v.Skills = normalize(v.Skills)
	v.SoftSkills = normalize(v.SoftSkills)
	v.Certifications = normalize(v.Certifications)
	v.Education = normalize(v.Education)
	v.Experience = normalize(v.Experience)
	v.Projects = normalize(v.Projects)
	v.Achievements = normalize(v.Achievements)
	v.GapIndicators = normalize(v.GapIndicators)
	for i := range v.RoleDomains {
		v.RoleDomains[i].Keywords = normalize(v.RoleDomains[i].Keywords)
	}
	return v, nil
}

// normalize lowercases, trims and de-duplicates while keeping the first occurrence order.
func normalize(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
