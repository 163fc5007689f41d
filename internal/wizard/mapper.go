package wizard

import "talentmatch-backend/internal/domain"

// ============================================================================
// Submission Mapper
// ============================================================================

// MapHRStatusToAvailability collapses the internal qualification state onto
// the public availability status. IN_QUALIFICATION is still SOURCED from the
// outside; only QUALIFIED promotes. Unset defaults to SOURCED.
func MapHRStatusToAvailability(status domain.HRStatus) domain.AvailabilityStatus {
	switch status {
	case domain.HRStatusQualified:
		return domain.StatusQualified
	case domain.HRStatusSourced, domain.HRStatusInQualification:
		return domain.StatusSourced
	default:
		return domain.StatusSourced
	}
}

// PrepareConsultantData maps the full form state onto the creation payload.
// HR qualification fields never cross this boundary: per-skill hr_rating,
// project ratings, soft-skill ratings, notes, salary data and the raw
// hr_status are all stripped. user_id is always null at creation.
func PrepareConsultantData(state domain.WizardFormState) *domain.ConsultantCreate {
	return &domain.ConsultantCreate{
		UserID:             nil,
		CompanyID:          state.CompanyID,
		FirstName:          state.FirstName,
		LastName:           state.LastName,
		Title:              state.Title,
		ExperienceYears:    state.ExperienceYears,
		AvailabilityStatus: MapHRStatusToAvailability(state.HRStatus),
		AvailabilityDate:   optionalString(state.AvailabilityDate),
		DailyRate:          state.DailyRate,
		Bio:                state.Bio,
		Location:           state.Location,
		RemoteWork:         state.RemoteWork,
		MaxTravelDistance:  state.MaxTravelDistance,
		Skills:             mapSkills(state.Skills),
		PhotoURL:           state.PhotoURL,
	}
}

// PrepareMinimumData maps a partial form state onto a draft payload for
// save-and-exit. Drafts always carry availability SOURCED and fall back to
// the placeholder title when none was entered yet.
func PrepareMinimumData(state domain.WizardFormState) *domain.ConsultantCreate {
	title := state.Title
	if title == "" {
		title = "Candidat en qualification"
	}
	return &domain.ConsultantCreate{
		UserID:             nil,
		CompanyID:          state.CompanyID,
		FirstName:          state.FirstName,
		LastName:           state.LastName,
		Title:              title,
		AvailabilityStatus: domain.StatusSourced,
		AvailabilityDate:   optionalString(state.AvailabilityDate),
		Bio:                state.Bio,
		Skills:             mapSkills(state.Skills),
	}
}

// mapSkills drops rows without a name and strips the HR rating
func mapSkills(entries []domain.SkillEntry) []domain.Skill {
	if len(entries) == 0 {
		return nil
	}
	skills := make([]domain.Skill, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			continue
		}
		skills = append(skills, domain.Skill{
			Name:     entry.Name,
			Level:    entry.Level,
			Years:    entry.Years,
			Category: entry.Category,
		})
	}
	return skills
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
