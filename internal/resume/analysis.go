package resume

import (
	"fmt"
	"slices"
	"strings"
)

// SkillBuckets splits the vocabulary into skills the candidate has and the rest.
type SkillBuckets struct {
	Have      []string `json:"have"`
	Gap       []string `json:"gap"`
	Suggested []string `json:"suggested"`
}

// Feedback is the written review of a resume.
type Feedback struct {
	Summary       string   `json:"summary"`
	Strengths     []string `json:"strengths"`
	MissingSkills []string `json:"missing_skills"`
	Suggestions   []string `json:"suggestions"`
	Formatting    []string `json:"formatting"`
}

// Persona is the inferred personality, domains and roles for a candidate.
type Persona struct {
	Personality []string `json:"personality"`
	Domains     []string `json:"domains"`
	IdealRoles  []string `json:"ideal_roles"`
}

// Analysis is the full, derived view of one resume. It is never persisted.
type Analysis struct {
	Profile    SkillProfile `json:"profile"`
	ATS        []ATSCheck   `json:"ats"`
	ATSScore   int          `json:"ats_score"`
	Buckets    SkillBuckets `json:"skill_buckets"`
	Feedback   Feedback     `json:"feedback"`
	Persona    Persona      `json:"persona"`
	Counseling Counseling   `json:"career_counseling"`
	Plan       CareerPlan   `json:"career_plan"`
}

// Analyzer wires the extractor, the ATS checklist and the counselor together.
type Analyzer struct {
	extractor *Extractor
	ats       *ATSEvaluator
	counselor *Counselor
}

// NewAnalyzer builds an analyzer with the default ATS checklist for vocab.
func NewAnalyzer(vocab Vocabulary) *Analyzer {
	return &Analyzer{
		extractor: NewExtractor(vocab),
		ats:       NewATSEvaluator(DefaultPredicates(vocab)),
		counselor: NewCounselor(vocab),
	}
}

func (a *Analyzer) Extractor() *Extractor { return a.extractor }

func (a *Analyzer) Counselor() *Counselor { return a.counselor }

// ATS evaluates the checklist and returns it with its score.
func (a *Analyzer) ATS(text string) ([]ATSCheck, int) {
	checks := a.ats.Evaluate(text)
	return checks, ATSScore(checks)
}

// Analyze runs every heuristic over text. Empty text yields an all-empty analysis with zero scores.
func (a *Analyzer) Analyze(text string) Analysis {
	p := a.extractor.Extract(text)
	checks, score := a.ATS(text)
	vocab := a.extractor.Vocabulary()

	var gap []string
	for _, s := range vocab.Skills {
		if !slices.Contains(p.Skills, s) {
			gap = append(gap, s)
		}
	}
	buckets := SkillBuckets{Have: p.Skills, Gap: gap, Suggested: firstN(gap, 5)}

	return Analysis{
		Profile:    p,
		ATS:        checks,
		ATSScore:   score,
		Buckets:    buckets,
		Feedback:   buildFeedback(p, text, buckets),
		Persona:    inferPersona(p, text, vocab.RoleDomains),
		Counseling: a.counselor.Counsel(p, "", text),
		Plan:       a.counselor.Plan(p, text),
	}
}

func buildFeedback(p SkillProfile, text string, b SkillBuckets) Feedback {
	f := Feedback{
		Summary:       fmt.Sprintf("You have strengths in %s.", strings.Join(firstN(b.Have, 3), ", ")),
		MissingSkills: b.Suggested,
	}

	if len(p.Skills) > 0 {
		f.Strengths = append(f.Strengths, "Good technical skills: "+strings.Join(p.Skills, ", "))
	}
	if len(p.SoftSkills) > 0 {
		f.Strengths = append(f.Strengths, "Soft skills: "+strings.Join(p.SoftSkills, ", "))
	}
	if len(p.Education) > 0 {
		f.Strengths = append(f.Strengths, "Education section found")
	}
	if len(p.Experience) > 0 {
		f.Strengths = append(f.Strengths, "Experience section found")
	}
	if len(p.Certifications) > 0 {
		f.Strengths = append(f.Strengths, "Certifications: "+strings.Join(p.Certifications, ", "))
	}
	if len(p.Projects) > 0 {
		f.Strengths = append(f.Strengths, "Projects: "+strings.Join(firstN(p.Projects, 2), ", "))
	}
	if len(p.Achievements) > 0 {
		f.Strengths = append(f.Strengths, "Achievements: "+strings.Join(firstN(p.Achievements, 2), ", "))
	}

	if len(p.Skills) < 5 {
		f.Suggestions = append(f.Suggestions, "Add more technical or soft skills relevant to your field.")
	}
	if len(p.Education) == 0 {
		f.Suggestions = append(f.Suggestions, "Add an education section with your degrees and institutions.")
	}
	if len(p.Experience) == 0 {
		f.Suggestions = append(f.Suggestions, "Add an experience section with your work or projects.")
	}
	if len(p.Certifications) == 0 {
		f.Suggestions = append(f.Suggestions, "Add certifications or online courses to boost your profile.")
	}
	if len(p.Projects) == 0 {
		f.Suggestions = append(f.Suggestions, "Add a Projects section with 2-3 key projects.")
	}
	if len(p.Achievements) == 0 {
		f.Suggestions = append(f.Suggestions, "Add an Achievements section and quantify your impact.")
	}
	if p.LinkedIn == "" {
		f.Suggestions = append(f.Suggestions, "Add your LinkedIn profile link.")
	}
	if len(text) < 500 {
		f.Suggestions = append(f.Suggestions, "Resume is too short. Add more details about your skills, education, and experience.")
	}
	if !strings.Contains(text, "@") {
		f.Suggestions = append(f.Suggestions, "Add your email/contact information.")
	}

	lower := strings.ToLower(text)
	if len(strings.Split(text, "\n")) > 50 {
		f.Formatting = append(f.Formatting, "Consider shortening your resume to 1-2 pages.")
	}
	if !strings.Contains(lower, "summary") && !strings.Contains(lower, "objective") {
		f.Formatting = append(f.Formatting, "Add a summary/objective section at the top.")
	}
	return f
}

func inferPersona(p SkillProfile, text string, domains []RoleDomain) Persona {
	lower := strings.ToLower(text)
	all := append(slices.Clone(p.Skills), p.SoftSkills...)
	has := func(s string) bool { return slices.Contains(all, s) }

	var persona Persona
	if has("leadership") || strings.Contains(lower, "lead") {
		persona.Personality = append(persona.Personality, "Leadership")
	}
	if has("teamwork") || strings.Contains(lower, "team") {
		persona.Personality = append(persona.Personality, "Team Player")
	}
	if has("problem solving") || strings.Contains(lower, "problem") {
		persona.Personality = append(persona.Personality, "Problem Solver")
	}
	if has("communication") || strings.Contains(lower, "communicat") {
		persona.Personality = append(persona.Personality, "Good Communicator")
	}
	if len(persona.Personality) == 0 {
		persona.Personality = append(persona.Personality, "Analytical")
	}

	for _, d := range domains {
		if slices.ContainsFunc(d.Keywords, has) {
			persona.Domains = append(persona.Domains, d.Label)
			persona.IdealRoles = append(persona.IdealRoles, d.Role)
		}
	}
	if len(persona.IdealRoles) == 0 {
		persona.IdealRoles = append(persona.IdealRoles, "Generalist/Entry-level roles")
	}
	return persona
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
