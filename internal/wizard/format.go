package wizard

import (
	"fmt"
	"time"

	"talentmatch-backend/internal/domain"
)

// ============================================================================
// Display formatting
// ============================================================================

// FormatYears renders an experience duration ("1 an", "7 ans").
// All duration rendering goes through here so singular/plural never drifts.
func FormatYears(years int) string {
	if years == 1 {
		return "1 an"
	}
	return fmt.Sprintf("%d ans", years)
}

// FormatYearsLong is the long form used by the summary recap
// ("1 année d'expérience", "7 années d'expérience").
func FormatYearsLong(years int) string {
	if years > 1 {
		return fmt.Sprintf("%d années d'expérience", years)
	}
	return fmt.Sprintf("%d année d'expérience", years)
}

// ============================================================================
// Availability dates
// ============================================================================

const dateLayout = "2006-01-02"

// ImmediateAvailabilityDate is today's date
func ImmediateAvailabilityDate(now time.Time) string {
	return now.Format(dateLayout)
}

// DefaultFutureAvailabilityDate is the default when switching to future
// availability without a chosen date: 30 days out.
func DefaultFutureAvailabilityDate(now time.Time) string {
	return now.AddDate(0, 0, 30).Format(dateLayout)
}

// ============================================================================
// Rating aggregation
// ============================================================================

// Averages are plain arithmetic means. Unrated rows count as zero rather
// than being excluded; an empty list averages to zero, and the summary only
// shows an aggregate when it is strictly positive.

// AverageSkillRating averages the per-skill HR ratings
func AverageSkillRating(skills []domain.SkillEntry) float64 {
	if len(skills) == 0 {
		return 0
	}
	var sum float64
	for _, s := range skills {
		if s.HRRating != nil {
			sum += float64(*s.HRRating)
		}
	}
	return sum / float64(len(skills))
}

// ProjectRating is the mean of a project's three qualification axes
func ProjectRating(p domain.ProjectEntry) float64 {
	var sum float64
	if p.ComplexityRating != nil {
		sum += float64(*p.ComplexityRating)
	}
	if p.ImpactRating != nil {
		sum += float64(*p.ImpactRating)
	}
	if p.AutonomyRating != nil {
		sum += float64(*p.AutonomyRating)
	}
	return sum / 3
}

// AverageProjectRating averages the per-project ratings
func AverageProjectRating(projects []domain.ProjectEntry) float64 {
	if len(projects) == 0 {
		return 0
	}
	var sum float64
	for _, p := range projects {
		sum += ProjectRating(p)
	}
	return sum / float64(len(projects))
}

// AverageSoftSkillRating averages the soft-skill ratings
func AverageSoftSkillRating(skills []domain.SoftSkillEntry) float64 {
	if len(skills) == 0 {
		return 0
	}
	var sum float64
	for _, s := range skills {
		if s.Rating != nil {
			sum += float64(*s.Rating)
		}
	}
	return sum / float64(len(skills))
}

// ============================================================================
// Summary recap
// ============================================================================

// Summary is the read-only recap shown by the final step before validation
type Summary struct {
	FullName            string   `json:"full_name"`
	Title               string   `json:"title"`
	ExperienceText      string   `json:"experience_text,omitempty"`
	AvailabilityDate    string   `json:"availability_date,omitempty"`
	SkillCount          int      `json:"skill_count"`
	ProjectCount        int      `json:"project_count"`
	SoftSkillCount      int      `json:"soft_skill_count"`
	SkillsRating        float64  `json:"skills_rating"`
	ProjectsRating      float64  `json:"projects_rating"`
	SoftSkillsRating    float64  `json:"soft_skills_rating"`
	PotentialEvaluation *int     `json:"potential_evaluation,omitempty"`
	HRStatus            string   `json:"hr_status"`
	HRNotes             string   `json:"hr_notes,omitempty"`
	AutoFilledFields    []string `json:"auto_filled_fields,omitempty"`
}

// BuildSummary aggregates the state for the summary step
func BuildSummary(c *Container) Summary {
	state := c.Snapshot()
	summary := Summary{
		FullName:            state.FirstName + " " + state.LastName,
		Title:               state.Title,
		AvailabilityDate:    state.AvailabilityDate,
		SkillCount:          len(state.Skills),
		ProjectCount:        len(state.Projects),
		SoftSkillCount:      len(state.SoftSkills),
		SkillsRating:        AverageSkillRating(state.Skills),
		ProjectsRating:      AverageProjectRating(state.Projects),
		SoftSkillsRating:    AverageSoftSkillRating(state.SoftSkills),
		PotentialEvaluation: state.PotentialEvaluation,
		HRStatus:            string(state.HRStatus),
		HRNotes:             state.HRNotes,
		AutoFilledFields:    c.AutoFilled(),
	}
	if state.ExperienceYears != nil {
		summary.ExperienceText = FormatYearsLong(*state.ExperienceYears)
	}
	return summary
}
