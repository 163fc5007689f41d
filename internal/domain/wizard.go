package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a wizard session id is unknown or expired
var ErrSessionNotFound = errors.New("wizard session not found")

// ============================================================================
// Wizard Steps
// ============================================================================

// WizardStep is a closed enum over the five talent-creation steps.
// Navigation and panel routing switch exhaustively over these values;
// never compare against raw integers outside this package.
type WizardStep int

const (
	StepIdentity WizardStep = iota
	StepSkills
	StepProjects
	StepSoftSkills
	StepSummary
)

// TotalSteps is the fixed number of wizard steps.
const TotalSteps = 5

// ValidWizardSteps returns all steps in navigation order
func ValidWizardSteps() []WizardStep {
	return []WizardStep{StepIdentity, StepSkills, StepProjects, StepSoftSkills, StepSummary}
}

// IsValid checks if the step is within [StepIdentity, StepSummary]
func (s WizardStep) IsValid() bool {
	return s >= StepIdentity && s <= StepSummary
}

func (s WizardStep) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepSkills:
		return "skills"
	case StepProjects:
		return "projects"
	case StepSoftSkills:
		return "soft_skills"
	case StepSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Title returns the display title of the step
func (s WizardStep) Title() string {
	switch s {
	case StepIdentity:
		return "Identité & Disponibilité"
	case StepSkills:
		return "Compétences"
	case StepProjects:
		return "Projets"
	case StepSoftSkills:
		return "Soft Skills & Préférences"
	case StepSummary:
		return "Synthèse & Validation"
	default:
		return ""
	}
}

// Description returns the display subtitle of the step
func (s WizardStep) Description() string {
	switch s {
	case StepIdentity:
		return "Informations de base et disponibilité"
	case StepSkills:
		return "Compétences techniques et fonctionnelles"
	case StepProjects:
		return "Références de projets et réalisations"
	case StepSoftSkills:
		return "Compétences comportementales et mobilité"
	case StepSummary:
		return "Récapitulatif et validation finale"
	default:
		return ""
	}
}

// ============================================================================
// HR Status (internal qualification state, never sent to clients as-is)
// ============================================================================

type HRStatus string

const (
	HRStatusSourced         HRStatus = "SOURCED"
	HRStatusInQualification HRStatus = "IN_QUALIFICATION"
	HRStatusQualified       HRStatus = "QUALIFIED"
)

// ValidHRStatuses returns all valid HR qualification statuses
func ValidHRStatuses() []HRStatus {
	return []HRStatus{HRStatusSourced, HRStatusInQualification, HRStatusQualified}
}

// IsValid checks if the HR status is valid
func (s HRStatus) IsValid() bool {
	for _, valid := range ValidHRStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// ============================================================================
// Wizard Form State
// ============================================================================

// SkillEntry is one row of the skills list builder. Name is the only
// required sub-field; HRRating is internal-use-only and is stripped
// before submission.
type SkillEntry struct {
	Name     string `json:"name" validate:"required"`
	Level    string `json:"level,omitempty"`
	Years    *int   `json:"years,omitempty" validate:"omitempty,min=0"`
	Category string `json:"category,omitempty"`
	HRRating *int   `json:"hr_rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// ProjectEntry is one project reference. The three ratings are the HR
// qualification axes, edited through the sidecar panel.
type ProjectEntry struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description,omitempty"`
	Period           string `json:"period,omitempty"`
	ComplexityRating *int   `json:"complexity_rating,omitempty" validate:"omitempty,min=1,max=5"`
	ImpactRating     *int   `json:"impact_rating,omitempty" validate:"omitempty,min=1,max=5"`
	AutonomyRating   *int   `json:"autonomy_rating,omitempty" validate:"omitempty,min=1,max=5"`
}

type SoftSkillEntry struct {
	Name   string `json:"name" validate:"required"`
	Rating *int   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// WizardFormState is the single source of truth for one talent-creation
// session. It is owned by exactly one wizard session, mutated in place by
// the step and qualification views, read wholly by the submission mapper
// on finalization, and discarded when the session ends.
type WizardFormState struct {
	// Identity & Availability
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	Title            string `json:"title" validate:"required"`
	ExperienceYears  *int   `json:"experience_years,omitempty" validate:"omitempty,min=0,max=50"`
	AvailabilityDate string `json:"availability_date,omitempty"`
	Bio              string `json:"bio,omitempty"`

	// Contact & Mobility
	Phone          string `json:"phone,omitempty" validate:"omitempty,valid_phone"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	DrivingLicense bool   `json:"driving_license,omitempty"`
	OwnVehicle     bool   `json:"own_vehicle,omitempty"`

	// Lists
	Skills     []SkillEntry     `json:"skills" validate:"omitempty,dive"`
	Projects   []ProjectEntry   `json:"projects" validate:"omitempty,dive"`
	SoftSkills []SoftSkillEntry `json:"soft_skills" validate:"omitempty,dive"`

	// Preferences
	Location          string   `json:"location,omitempty"`
	RemoteWork        bool     `json:"remote_work"`
	MaxTravelDistance *int     `json:"max_travel_distance,omitempty" validate:"omitempty,min=0"`
	DailyRate         *float64 `json:"daily_rate,omitempty" validate:"omitempty,min=0"`

	// HR qualification sidecar (internal use only)
	PotentialEvaluation *int     `json:"potential_evaluation,omitempty" validate:"omitempty,min=1,max=5"`
	CandidateStatus     string   `json:"candidate_status,omitempty"`
	Expectations        string   `json:"expectations,omitempty" validate:"max=500"`
	SalaryExpectations  string   `json:"salary_expectations,omitempty"`
	SalaryDetails       string   `json:"salary_details,omitempty" validate:"max=300"`
	HRNotes             string   `json:"hr_notes,omitempty" validate:"max=1000"`
	HRStatus            HRStatus `json:"hr_status,omitempty" validate:"omitempty,oneof=SOURCED IN_QUALIFICATION QUALIFIED"`

	// Linkage (not user-editable)
	CompanyID int64  `json:"company_id" validate:"required"`
	UserID    *int64 `json:"user_id"` // always nil at creation
	PhotoURL  string `json:"photo_url,omitempty"`
}

// ============================================================================
// Wizard Session
// ============================================================================

// WizardSession binds one WizardFormState to a navigation position.
// Sessions are short-lived drafts keyed by uuid; they are never shared
// across concurrent callers.
type WizardSession struct {
	ID                string          `json:"id"`
	CompanyID         int64           `json:"company_id"`
	CurrentStep       WizardStep      `json:"current_step"`
	State             WizardFormState `json:"state"`
	AutoFilledFields  []string        `json:"auto_filled_fields,omitempty"`
	TouchedFields     []string        `json:"touched_fields,omitempty"`
	SavedConsultantID *int64          `json:"saved_consultant_id,omitempty"`
	LastSavedAt       *time.Time      `json:"last_saved_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// WizardRepository stores in-progress wizard sessions
type WizardRepository interface {
	Save(ctx context.Context, session *WizardSession) error
	Get(ctx context.Context, id string) (*WizardSession, error)
	Delete(ctx context.Context, id string) error
}

// PhotoUpload carries a profile photo selected during finalization
type PhotoUpload struct {
	Filename string
	Data     []byte
}

// FinalizeResult reports the outcome of a wizard submission
type FinalizeResult struct {
	Consultant *Consultant `json:"consultant"`
	Message    string      `json:"message"`
	// PhotoWarning is set when the photo upload failed server-side and
	// the consultant was created without it (non-blocking failure).
	PhotoWarning string `json:"photo_warning,omitempty"`
}

// WizardUsecase drives the talent-creation wizard
type WizardUsecase interface {
	Start(ctx context.Context, companyID int64, cv *CvAnalysisResult) (*WizardSession, error)
	Get(ctx context.Context, id string) (*WizardSession, error)
	SetValue(ctx context.Context, id, path string, value interface{}) (*WizardSession, error)
	AppendEntry(ctx context.Context, id, list string, entry interface{}) (*WizardSession, error)
	RemoveEntry(ctx context.Context, id, list string, index int) (*WizardSession, error)
	Next(ctx context.Context, id string) (*WizardSession, error)
	Previous(ctx context.Context, id string) (*WizardSession, error)
	SaveAndExit(ctx context.Context, id string) (*WizardSession, error)
	Finalize(ctx context.Context, id string, photo *PhotoUpload) (*FinalizeResult, error)
	Cancel(ctx context.Context, id string) error
}
