package wizard

import (
	"strings"

	"talentmatch-backend/internal/domain"
)

// ============================================================================
// CV Prefill Adapter
// ============================================================================

// ApplyCvAnalysis copies a CV analysis result into the form state and
// returns the names of the fields it filled. Every CV field is optional;
// a nil or empty result fills nothing. Prefill never invents HR
// qualification data and never fails the wizard.
//
// Rules:
//   - name splits on whitespace; a single token fills neither name field
//   - skills keep their level/years/category, defaulting category to
//     "Technique"; hr_rating stays empty for HR to fill
//   - each experience becomes a project titled "{role} @ {company}"
//   - the title is guessed from the most recent experience
func ApplyCvAnalysis(c *Container, result *domain.CvAnalysisResult) []string {
	if c == nil || result == nil {
		return nil
	}

	var autoFilled []string
	state := c.State()
	candidate := result.Candidate

	if parts := strings.Fields(candidate.Name); len(parts) >= 2 {
		state.FirstName = parts[0]
		state.LastName = strings.Join(parts[1:], " ")
		autoFilled = append(autoFilled, "first_name", "last_name")
	}

	if candidate.Email != "" {
		state.Email = candidate.Email
		autoFilled = append(autoFilled, "email")
	}
	if candidate.Phone != "" {
		state.Phone = candidate.Phone
		autoFilled = append(autoFilled, "phone")
	}

	if len(candidate.Skills) > 0 {
		skills := make([]domain.SkillEntry, 0, len(candidate.Skills))
		for _, skill := range candidate.Skills {
			category := skill.Category
			if category == "" {
				category = "Technique"
			}
			skills = append(skills, domain.SkillEntry{
				Name:     skill.Name,
				Level:    skill.Level,
				Years:    skill.Years,
				Category: category,
			})
		}
		state.Skills = skills
		autoFilled = append(autoFilled, "skills")
	}

	if len(candidate.Experience) > 0 {
		projects := make([]domain.ProjectEntry, 0, len(candidate.Experience))
		for _, exp := range candidate.Experience {
			projects = append(projects, domain.ProjectEntry{
				Title:       exp.Role + " @ " + exp.Company,
				Description: exp.Description,
				Period:      exp.Period,
			})
		}
		state.Projects = projects
		autoFilled = append(autoFilled, "projects")

		state.Title = candidate.Experience[0].Role
		autoFilled = append(autoFilled, "title")
	}

	c.MarkAutoFilled(autoFilled)
	return autoFilled
}
