package wizard

import "talentmatch-backend/internal/domain"

// ============================================================================
// Step Sequencer
// ============================================================================

// NextStep advances one step. The second return is false when the cursor is
// already on the last step; advancing past it is finalization, not navigation.
func NextStep(s domain.WizardStep) (domain.WizardStep, bool) {
	if s >= domain.StepSummary {
		return s, false
	}
	return s + 1, true
}

// PreviousStep steps back one step; on the first step it stays put
func PreviousStep(s domain.WizardStep) (domain.WizardStep, bool) {
	if s <= domain.StepIdentity {
		return s, false
	}
	return s - 1, true
}

// Progress returns the 1-based position for display ("Étape 2 sur 5")
func Progress(s domain.WizardStep) (current, total int) {
	return int(s) + 1, domain.TotalSteps
}

// stepField binds a form field's wire name to its Go field on
// domain.WizardFormState. One table feeds both the step views and the
// strict-mode StructPartial validation so the two subsets cannot drift.
type stepField struct {
	name string
	attr string
}

var stepFields = map[domain.WizardStep][]stepField{
	domain.StepIdentity: {
		{"first_name", "FirstName"},
		{"last_name", "LastName"},
		{"title", "Title"},
		{"experience_years", "ExperienceYears"},
		{"availability_date", "AvailabilityDate"},
		{"bio", "Bio"},
		{"phone", "Phone"},
		{"email", "Email"},
	},
	domain.StepSkills: {
		{"skills", "Skills"},
	},
	domain.StepProjects: {
		{"projects", "Projects"},
	},
	domain.StepSoftSkills: {
		{"soft_skills", "SoftSkills"},
		{"location", "Location"},
		{"remote_work", "RemoteWork"},
		{"max_travel_distance", "MaxTravelDistance"},
		{"daily_rate", "DailyRate"},
		{"driving_license", "DrivingLicense"},
		{"own_vehicle", "OwnVehicle"},
	},
}

// FieldsForStep returns the wire names of the form fields owned by a
// step. The summary step owns no fields and is always passable.
func FieldsForStep(s domain.WizardStep) []string {
	fields := stepFields[s]
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// StructFieldsForStep returns the same subset as FieldsForStep, as the
// Go field names validator.StructPartial expects
func StructFieldsForStep(s domain.WizardStep) []string {
	fields := stepFields[s]
	if len(fields) == 0 {
		return nil
	}
	attrs := make([]string, len(fields))
	for i, f := range fields {
		attrs[i] = f.attr
	}
	return attrs
}

// ============================================================================
// Qualification sidecar routing
// ============================================================================

// QualificationPanel identifies which HR sidecar panel accompanies a step
type QualificationPanel string

const (
	PanelIdentity   QualificationPanel = "identity"
	PanelSkills     QualificationPanel = "skills"
	PanelProjects   QualificationPanel = "projects"
	PanelSoftSkills QualificationPanel = "soft_skills"
)

// PanelForStep routes the sidecar. The summary step has no panel; the
// second return is false there.
func PanelForStep(s domain.WizardStep) (QualificationPanel, bool) {
	switch s {
	case domain.StepIdentity:
		return PanelIdentity, true
	case domain.StepSkills:
		return PanelSkills, true
	case domain.StepProjects:
		return PanelProjects, true
	case domain.StepSoftSkills:
		return PanelSoftSkills, true
	default:
		return "", false
	}
}

// PanelFields returns the sidecar fields editable on a panel. The
// identity panel carries the global qualification block; the list panels
// edit per-row ratings through list paths ("skills.0.hr_rating"), so
// their entries use a "*" placeholder for the row index.
func PanelFields(p QualificationPanel) []string {
	switch p {
	case PanelIdentity:
		return []string{"potential_evaluation", "candidate_status", "expectations", "salary_expectations", "salary_details", "hr_notes", "hr_status"}
	case PanelSkills:
		return []string{"skills.*.hr_rating"}
	case PanelProjects:
		return []string{"projects.*.complexity_rating", "projects.*.impact_rating", "projects.*.autonomy_rating"}
	case PanelSoftSkills:
		return []string{"soft_skills.*.rating"}
	default:
		return nil
	}
}

// ============================================================================
// Catalogs
// ============================================================================

// List-builder defaults applied when a row is appended without them
const (
	DefaultSkillLevel = "Intermédiaire"
	DefaultSkillYears = 1
)

// SkillLevels in ascending order
var SkillLevels = []string{"Débutant", "Intermédiaire", "Avancé", "Expert"}

// SkillCategories offered by the skills step
var SkillCategories = []string{
	"Frontend",
	"Backend",
	"DevOps",
	"Database",
	"Mobile",
	"Cloud",
	"Architecture",
	"Méthodes",
	"Fonctionnel",
	"Langues",
	"Outils",
	"Autre",
}

// DefaultSkillCategory is used when a skill arrives without one
const DefaultSkillCategory = "Autre"

// CommonSoftSkills is the suggested-tag list of the soft-skills step
var CommonSoftSkills = []string{
	"Communication",
	"Travail d'équipe",
	"Adaptabilité",
	"Résolution de problèmes",
	"Gestion du temps",
	"Leadership",
	"Créativité",
	"Esprit critique",
	"Attitude positive",
	"Autonomie",
	"Sens du détail",
	"Orientation client",
}
