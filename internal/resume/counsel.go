package resume

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
	regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
}

// GapAnalysis lists lexical hints of employment gaps found in a resume.
type GapAnalysis struct {
	Gaps    []string `json:"gaps"`
	Advice  []string `json:"advice"`
	Dates   []string `json:"dates"`
	HasGaps bool     `json:"has_gaps"`
}

// GapAdvice is the canned guidance shown next to a GapAnalysis.
type GapAdvice struct {
	Message        string   `json:"message"`
	Suggestions    []string `json:"suggestions"`
	SpecificAdvice []string `json:"specific_advice,omitempty"`
}

// CareerPath is one suggested role with the reasoning behind it.
type CareerPath struct {
	Role     string `json:"role"`
	Why      string `json:"why"`
	Learn    string `json:"learn"`
	Industry string `json:"industry"`
}

// Counseling is the rule-based career guidance for one resume.
type Counseling struct {
	Strengths      []string     `json:"strengths"`
	Attitude       []string     `json:"attitude"`
	CareerAdvice   []CareerPath `json:"career_advice"`
	ResumeFeedback []string     `json:"resume_feedback"`
	Improvements   []string     `json:"improvements"`
	GapAnalysis    GapAnalysis  `json:"gap_analysis"`
	GapAdvice      GapAdvice    `json:"gap_advice"`
}

// Assessment summarises where the candidate stands today.
type Assessment struct {
	Strengths  []string `json:"strengths"`
	Attitude   []string `json:"attitude"`
	SkillLevel string   `json:"skill_level"`
}

// Timeline groups plan steps by horizon.
type Timeline struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

// CareerPlan is the long-form plan derived from Counseling.
type CareerPlan struct {
	CurrentAssessment Assessment   `json:"current_assessment"`
	CareerPaths       []CareerPath `json:"career_paths"`
	GapAnalysis       GapAnalysis  `json:"gap_analysis"`
	GapAdvice         GapAdvice    `json:"gap_advice"`
	ActionItems       []string     `json:"action_items"`
	Timeline          Timeline     `json:"timeline"`
}

// Counselor produces gap analysis and advice. Indicators come from the vocabulary.
type Counselor struct {
	indicators []string
}

func NewCounselor(v Vocabulary) *Counselor {
	return &Counselor{indicators: v.GapIndicators}
}

// AnalyzeGaps scans text for gap indicators and date patterns. Any experience
// entry suppresses the limited-experience flag.
func (c *Counselor) AnalyzeGaps(text string, experience []string) GapAnalysis {
	var a GapAnalysis
	lower := strings.ToLower(text)

	for _, re := range datePatterns {
		a.Dates = append(a.Dates, re.FindAllString(text, -1)...)
	}

	if len(experience) == 0 {
		a.Gaps = append(a.Gaps, "Limited work experience detected")
		a.Advice = append(a.Advice, "Focus on building projects and gaining practical experience through internships or freelance work.")
	}

	for _, indicator := range c.indicators {
		if !strings.Contains(lower, indicator) {
			continue
		}
		a.Gaps = append(a.Gaps, "Career gap mentioned: "+indicator)
		switch indicator {
		case "health", "family":
			a.Advice = append(a.Advice, "Focus on your return to work and how you've stayed current with industry trends.")
		case "travel", "sabbatical":
			a.Advice = append(a.Advice, "Highlight the skills and experiences gained during your time away.")
		default:
			a.Advice = append(a.Advice, "Emphasize your readiness to return to work and any upskilling you've done.")
		}
	}

	if strings.Contains(lower, "education") &&
		(strings.Contains(lower, "graduated") || strings.Contains(lower, "degree")) &&
		!containsAny(lower, []string{"experience", "work", "job", "employed"}) {
		a.Gaps = append(a.Gaps, "Gap between education and work experience")
		a.Advice = append(a.Advice, "Consider internships, certifications, or freelance work to bridge the gap.")
	}

	a.HasGaps = len(a.Gaps) > 0
	return a
}

// AdviseOnGaps turns an analysis into user-facing guidance.
func AdviseOnGaps(a GapAnalysis) GapAdvice {
	if !a.HasGaps {
		return GapAdvice{
			Message: "Great! No significant career gaps detected in your resume.",
			Suggestions: []string{
				"Continue building on your current experience",
				"Focus on skill development and certifications",
				"Network within your industry",
			},
		}
	}
	return GapAdvice{
		Message: "Don't worry about career gaps! Here's how to address them positively:",
		Suggestions: []string{
			"Be honest and positive about your gap in interviews",
			"Focus on what you learned or accomplished during the gap",
			"Show how you've stayed current with industry trends",
			"Emphasize your readiness and enthusiasm to return to work",
			"Consider temporary or contract work to rebuild experience",
			"Update your skills through online courses and certifications",
			"Network actively to find opportunities",
			"Volunteer or freelance to demonstrate current skills",
		},
		SpecificAdvice: a.Advice,
	}
}

// Counsel builds strengths, attitude, career paths and resume feedback for a profile.
func (c *Counselor) Counsel(p SkillProfile, summary, text string) Counseling {
	skills, soft := p.Skills, p.SoftSkills

	var strengths []string
	if slices.Contains(skills, "python") || slices.Contains(skills, "data analysis") {
		strengths = append(strengths, "Analytical thinking and technical skills")
	}
	if slices.Contains(skills, "machine learning") {
		strengths = append(strengths, "Curiosity for AI/ML and research")
	}
	if slices.Contains(soft, "leadership") {
		strengths = append(strengths, "Leadership and initiative")
	}
	if slices.Contains(soft, "communication") {
		strengths = append(strengths, "Communication and teamwork")
	}
	if len(p.Certifications) > 0 {
		strengths = append(strengths, "Commitment to continuous learning")
	}
	if len(strengths) == 0 {
		strengths = append(strengths, "Eager to learn and adaptable")
	}

	var attitude []string
	if slices.Contains(soft, "teamwork") {
		attitude = append(attitude, "Collaborative")
	}
	if slices.Contains(soft, "problem solving") {
		attitude = append(attitude, "Solution-oriented")
	}
	if slices.Contains(soft, "adaptability") {
		attitude = append(attitude, "Flexible and open to change")
	}
	if len(attitude) == 0 {
		attitude = append(attitude, "Motivated and diligent")
	}

	gaps := c.AnalyzeGaps(text, p.Experience)

	feedback := resumeFeedback(p, summary)
	improvements := []string{
		`Use more action verbs and quantify achievements (e.g., "Improved process efficiency by 20%").`,
		"Add more detail about your impact and responsibilities in work experience.",
		"Format your resume for clarity and easy reading.",
	}
	if gaps.HasGaps {
		feedback = append(feedback,
			"Address career gaps positively in your resume and interviews.",
			"Show how you've stayed current during any gaps.")
		improvements = append(improvements,
			"Include a brief, positive explanation of any career gaps.",
			"Highlight any learning or personal development during gaps.")
	}

	return Counseling{
		Strengths:      strengths,
		Attitude:       attitude,
		CareerAdvice:   careerPaths(skills, soft),
		ResumeFeedback: feedback,
		Improvements:   improvements,
		GapAnalysis:    gaps,
		GapAdvice:      AdviseOnGaps(gaps),
	}
}

// Plan wraps Counsel output into a staged career plan.
func (c *Counselor) Plan(p SkillProfile, text string) CareerPlan {
	counsel := c.Counsel(p, "", text)

	level := "Advanced"
	switch n := len(p.Skills); {
	case n < 3:
		level = "Beginner"
	case n < 6:
		level = "Intermediate"
	}

	return CareerPlan{
		CurrentAssessment: Assessment{
			Strengths:  counsel.Strengths,
			Attitude:   counsel.Attitude,
			SkillLevel: level,
		},
		CareerPaths: counsel.CareerAdvice,
		GapAnalysis: counsel.GapAnalysis,
		GapAdvice:   counsel.GapAdvice,
		ActionItems: []string{
			"Update your resume with the suggested improvements",
			"Start working on the recommended certifications",
			"Build projects to demonstrate your skills",
			"Network actively in your target industry",
			"Practice explaining any career gaps positively",
		},
		Timeline: Timeline{
			Immediate: []string{"Update resume", "Start skill development"},
			ShortTerm: []string{"Get certifications", "Build portfolio"},
			LongTerm:  []string{"Apply for target roles", "Continue learning"},
		},
	}
}

// CareerAdvice is the one-paragraph advice shown on the counseling page.
func CareerAdvice(skills, missing, education []string) string {
	var advice []string
	if slices.Contains(skills, "machine learning") {
		advice = append(advice, "You are suited for Data Scientist or ML Engineer roles.")
	}
	for _, s := range []string{"web development", "html", "css", "javascript"} {
		if slices.Contains(skills, s) {
			advice = append(advice, "Consider Frontend or Backend Developer positions.")
			break
		}
	}
	if len(missing) > 0 {
		advice = append(advice, fmt.Sprintf("To improve your job prospects, consider learning: %s.", strings.Join(missing, ", ")))
	}
	if len(education) > 0 {
		advice = append(advice, fmt.Sprintf("Your education background: %s.", strings.Join(education, ", ")))
	}
	if len(advice) == 0 {
		advice = append(advice, "Explore more projects and upskill to discover your interests and improve your profile.")
	}
	return strings.Join(advice, " ")
}

func careerPaths(skills, soft []string) []CareerPath {
	has := func(s string) bool { return slices.Contains(skills, s) }

	var paths []CareerPath
	if has("python") && has("data analysis") {
		paths = append(paths, CareerPath{
			Role:     "Data Analyst",
			Why:      "Strong analytical and programming skills make you a great fit for data roles.",
			Learn:    "Deepen SQL and data visualization skills (Tableau, Power BI).",
			Industry: "Tech, finance, analytics teams in large companies.",
		})
	}
	if has("machine learning") {
		paths = append(paths, CareerPath{
			Role:     "Machine Learning Engineer",
			Why:      "Your ML exposure and technical foundation are ideal for ML engineering.",
			Learn:    "Build end-to-end ML projects, learn cloud deployment, contribute to open-source.",
			Industry: "AI startups, research labs, innovation teams.",
		})
	}
	if has("web development") || has("javascript") || has("html") {
		paths = append(paths, CareerPath{
			Role:     "Web Developer",
			Why:      "Your web development skills are in high demand.",
			Learn:    "Learn modern frameworks (React, Vue, Angular) and backend technologies.",
			Industry: "Tech companies, agencies, startups.",
		})
	}
	if has("project management") || slices.Contains(soft, "leadership") {
		paths = append(paths, CareerPath{
			Role:     "Project Manager",
			Why:      "Leadership and organization skills suit project management roles.",
			Learn:    "Get certified (PMP/Scrum), improve stakeholder communication.",
			Industry: "Consulting, IT, enterprise project teams.",
		})
	}
	if has("cloud") || has("aws") || has("azure") {
		paths = append(paths, CareerPath{
			Role:     "Cloud Engineer",
			Why:      "Cloud skills are highly valued in today's market.",
			Learn:    "Get cloud certifications (AWS, Azure, GCP) and learn DevOps practices.",
			Industry: "Tech companies, consulting firms, enterprises.",
		})
	}
	if len(paths) == 0 {
		paths = append(paths, CareerPath{
			Role:     "Entry-level Analyst or Developer",
			Why:      "Your profile is versatile; start in analyst or developer roles to build experience.",
			Learn:    "Focus on building a portfolio and gaining practical experience.",
			Industry: "Tech, business, or consulting firms.",
		})
	}
	return paths
}

func resumeFeedback(p SkillProfile, summary string) []string {
	var out []string
	if len(p.Certifications) == 0 {
		out = append(out, "Add certifications or online courses to boost your profile.")
	}
	if len(p.Education) == 0 {
		out = append(out, "Add an education section with your degrees and institutions.")
	}
	if len(p.Experience) == 0 {
		out = append(out, "Add an experience section with your work or projects.")
	}
	if len(p.Skills) < 5 {
		out = append(out, "Add more technical or soft skills relevant to your field.")
	}
	if summary != "" && len(summary) < 30 {
		out = append(out, "Add a summary/objective at the top to quickly convey your career goals.")
	}
	return out
}
