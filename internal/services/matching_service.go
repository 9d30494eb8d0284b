package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/justsurfingit/job-portal/internal/dtos"
	"github.com/justsurfingit/job-portal/internal/logger"
	"github.com/justsurfingit/job-portal/internal/matching"
	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/resume"
)

const DefaultRecommendations = 10

// MatchingService lists jobs for a student, annotated with how well their resume fits.
type MatchingService struct {
	DB      *gorm.DB
	Matcher *matching.Matcher
	Resumes *ResumeService
}

func NewMatchingService(db *gorm.DB, matcher *matching.Matcher, resumes *ResumeService) *MatchingService {
	return &MatchingService{DB: db, Matcher: matcher, Resumes: resumes}
}

// userSkills returns the skills of the user's resume. An unreadable resume counts as no skills.
func (s *MatchingService) userSkills(ctx context.Context, user models.User) []string {
	if user.Resume == "" {
		return nil
	}
	skills, err := s.Resumes.Skills(ctx, user)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Uint("user_id", user.ID).Msg("could not read resume skills")
		return nil
	}
	return skills
}

func (s *MatchingService) annotate(job models.Job, skills []string) dtos.JobMatch {
	overlap := s.Matcher.Match(skills, job.Description)
	return dtos.JobMatch{Job: job, OverlapResult: overlap, Category: matching.Category(overlap.Percentage)}
}

func (s *MatchingService) activeJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).Where("is_active = ?", true).Order("posted_date DESC").Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// CategorizedJobs splits every active job into strong, partial and no matches,
// each sorted by match percentage.
func (s *MatchingService) CategorizedJobs(ctx context.Context, user models.User) (*dtos.CategorizedJobs, error) {
	jobs, err := s.activeJobs(ctx)
	if err != nil {
		return nil, err
	}
	skills := s.userSkills(ctx, user)

	out := &dtos.CategorizedJobs{
		StrongMatches:  []dtos.JobMatch{},
		PartialMatches: []dtos.JobMatch{},
		NoMatches:      []dtos.JobMatch{},
		UserSkills:     skills,
		HasResume:      user.Resume != "",
	}
	for _, j := range jobs {
		m := s.annotate(j, skills)
		switch m.Category {
		case matching.CategoryStrong:
			out.StrongMatches = append(out.StrongMatches, m)
		case matching.CategoryPartial:
			out.PartialMatches = append(out.PartialMatches, m)
		default:
			out.NoMatches = append(out.NoMatches, m)
		}
	}
	byMatch(out.StrongMatches)
	byMatch(out.PartialMatches)
	byMatch(out.NoMatches)
	return out, nil
}

func byMatch(ms []dtos.JobMatch) {
	sort.SliceStable(ms, func(a, b int) bool { return ms[a].Percentage > ms[b].Percentage })
}

// Search filters active jobs in the database, then annotates and filters by match.
func (s *MatchingService) Search(ctx context.Context, user models.User, q dtos.JobSearchQuery) (*dtos.JobSearchResponse, error) {
	tx := s.DB.WithContext(ctx).Model(&models.Job{}).Where("is_active = ?", true)

	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(company_name) LIKE ? OR LOWER(requirements) LIKE ?",
			like, like, like, like)
	}
	if loc := strings.TrimSpace(q.Location); loc != "" {
		tx = tx.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(loc)+"%")
	}
	if q.JobType != "" {
		tx = tx.Where("job_type = ?", q.JobType)
	}
	if q.RemoteWork != "" {
		tx = tx.Where("remote_work = ?", q.RemoteWork)
	}
	if q.ExperienceLevel != "" {
		tx = tx.Where("experience_level = ?", q.ExperienceLevel)
	}
	if ind := strings.TrimSpace(q.Industry); ind != "" {
		tx = tx.Where("LOWER(industry) LIKE ?", "%"+strings.ToLower(ind)+"%")
	}
	if q.SalaryMin != nil {
		tx = tx.Where("salary_max >= ?", *q.SalaryMin)
	}
	if q.SalaryMax != nil {
		tx = tx.Where("salary_min <= ?", *q.SalaryMax)
	}

	switch q.SortBy {
	case "salary":
		tx = tx.Order("salary_max IS NULL").Order("salary_max DESC")
	default:
		tx = tx.Order("posted_date DESC")
	}
	tx = tx.Order("id DESC")

	var jobs []models.Job
	if err := tx.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}

	skills := s.userSkills(ctx, user)
	out := &dtos.JobSearchResponse{Jobs: []dtos.JobMatch{}, UserSkills: skills, HasResume: user.Resume != ""}
	for _, j := range jobs {
		m := s.annotate(j, skills)
		if m.Percentage < q.MinMatch {
			continue
		}
		out.Jobs = append(out.Jobs, m)
	}
	if q.SortBy == "match" || q.SortBy == "relevance" || q.SortBy == "" {
		byMatch(out.Jobs)
	}
	return out, nil
}

// Recommendations ranks active jobs by semantic similarity to the user's resume.
// An unreadable resume ranks as empty text.
func (s *MatchingService) Recommendations(ctx context.Context, user models.User, limit int) (*dtos.RecommendationsResponse, error) {
	if user.Resume == "" {
		return nil, ErrNoResume
	}
	text := s.Resumes.ResumeText(ctx, user)
	jobs, err := s.activeJobs(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.Matcher.RankJobs(ctx, text, jobs)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecommendations
	}
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []matching.MatchResult{}
	}
	return &dtos.RecommendationsResponse{Strategy: s.Matcher.Strategy().Name(), Matches: results}, nil
}

// CounselingReport is the career guidance view for a student.
type CounselingReport struct {
	Skills        []string          `json:"skills"`
	MissingSkills []string          `json:"missing_skills"`
	Counseling    resume.Counseling `json:"counseling"`
	Plan          resume.CareerPlan `json:"career_plan"`
	Advice        string            `json:"advice"`
}

// Counseling collects the skills every active job asks for that the user lacks,
// and the rule-based advice for the user's resume.
func (s *MatchingService) Counseling(ctx context.Context, user models.User) (*CounselingReport, error) {
	if user.Resume == "" {
		return nil, ErrNoResume
	}
	text := s.Resumes.ResumeText(ctx, user)
	profile := s.Resumes.Analyzer.Extractor().Extract(text)

	jobs, err := s.activeJobs(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	missing := []string{}
	for _, j := range jobs {
		for _, m := range s.Matcher.Match(profile.Skills, j.Description).Missing {
			if !seen[m] {
				seen[m] = true
				missing = append(missing, m)
			}
		}
	}

	counselor := s.Resumes.Analyzer.Counselor()
	return &CounselingReport{
		Skills:        profile.Skills,
		MissingSkills: missing,
		Counseling:    counselor.Counsel(profile, "", text),
		Plan:          counselor.Plan(profile, text),
		Advice:        resume.CareerAdvice(profile.Skills, missing, profile.Education),
	}, nil
}
