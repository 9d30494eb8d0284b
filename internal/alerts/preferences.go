package alerts

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"gorm.io/datatypes"

	"github.com/justsurfingit/job-portal/internal/logger"
	"github.com/justsurfingit/job-portal/internal/models"
)

const (
	jobTypePenalty     = 0.8
	locationPenalty    = 0.9
	salaryLowPenalty   = 0.7
	salaryHighPenalty  = 0.8
	maxMatchPercentage = 100.0
)

// ApplyPreferences scales base by the user's stored preferences. Penalties
// compound and the result is capped at 100. A preference list that is empty
// or not a JSON array of strings is ignored.
func ApplyPreferences(ctx context.Context, user models.User, job models.Job, base float64) float64 {
	adjusted := base
	log := logger.Ctx(ctx).With().Uint("user_id", user.ID).Uint("job_id", job.ID).Logger()

	if types, ok := stringList(user.PreferredJobTypes); ok {
		if job.JobType != "" && !slices.Contains(types, job.JobType) {
			adjusted *= jobTypePenalty
		}
	} else if len(user.PreferredJobTypes) > 0 {
		log.Debug().Msg("ignoring malformed preferred job types")
	}

	if locations, ok := stringList(user.PreferredLocations); ok {
		if job.Location != "" && !matchesLocation(job.Location, locations) {
			adjusted *= locationPenalty
		}
	} else if len(user.PreferredLocations) > 0 {
		log.Debug().Msg("ignoring malformed preferred locations")
	}

	if positive(user.SalaryRangeMin) && positive(job.SalaryMax) && *job.SalaryMax < *user.SalaryRangeMin {
		adjusted *= salaryLowPenalty
	}
	if positive(user.SalaryRangeMax) && positive(job.SalaryMin) && *job.SalaryMin > *user.SalaryRangeMax {
		adjusted *= salaryHighPenalty
	}

	return min(adjusted, maxMatchPercentage)
}

func stringList(raw datatypes.JSON) ([]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || len(out) == 0 {
		return nil, false
	}
	return out, true
}

func matchesLocation(location string, preferred []string) bool {
	location = strings.ToLower(location)
	for _, p := range preferred {
		if strings.Contains(location, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func positive(v *int) bool {
	return v != nil && *v > 0
}
