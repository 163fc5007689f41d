package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"talentmatch-backend/internal/domain"
)

// ============================================================================
// Form State Container
// ============================================================================

// Container is the single owner of one WizardFormState. Fields are read and
// written through dotted/indexed paths matching the JSON field names
// (e.g. "first_name", "skills.2.hr_rating"). Writes mark the field touched.
// Validation is not enforced here; step validation and the final submission
// schema live with the usecase.
type Container struct {
	state      domain.WizardFormState
	touched    map[string]bool
	autoFilled []string
	sealed     bool
}

// NewContainer creates an empty container with the wizard defaults applied
func NewContainer(companyID int64) *Container {
	return &Container{
		state: domain.WizardFormState{
			Skills:     []domain.SkillEntry{},
			Projects:   []domain.ProjectEntry{},
			SoftSkills: []domain.SoftSkillEntry{},
			HRStatus:   domain.HRStatusSourced,
			CompanyID:  companyID,
			UserID:     nil,
		},
		touched: map[string]bool{},
	}
}

// Restore rebuilds a container from a persisted session
func Restore(session *domain.WizardSession) *Container {
	c := &Container{
		state:      session.State,
		touched:    map[string]bool{},
		autoFilled: append([]string(nil), session.AutoFilledFields...),
		sealed:     len(session.AutoFilledFields) > 0,
	}
	for _, f := range session.TouchedFields {
		c.touched[f] = true
	}
	return c
}

// Snapshot returns a copy of the whole state, used by the summary view and
// the submission mapper.
func (c *Container) Snapshot() domain.WizardFormState {
	return c.state
}

// State returns the live state for in-place mutation by this package
func (c *Container) State() *domain.WizardFormState {
	return &c.state
}

// Touched lists the fields written so far, in no particular order
func (c *Container) Touched() []string {
	out := make([]string, 0, len(c.touched))
	for f := range c.touched {
		out = append(out, f)
	}
	return out
}

// MarkAutoFilled records which fields came from CV prefill. The set is
// write-once per session; later calls are ignored. It drives highlighting
// only and never participates in validation or submission.
func (c *Container) MarkAutoFilled(fields []string) {
	if c.sealed || len(fields) == 0 {
		return
	}
	c.autoFilled = append([]string(nil), fields...)
	c.sealed = true
}

// AutoFilled returns the prefilled field names
func (c *Container) AutoFilled() []string {
	return append([]string(nil), c.autoFilled...)
}

// ============================================================================
// List operations
// ============================================================================

// AppendSkill adds a skill row, applying the list-builder defaults
// (level "Intermédiaire", 1 year) when the caller left them empty.
func (c *Container) AppendSkill(entry domain.SkillEntry) error {
	entry.Name = strings.TrimSpace(entry.Name)
	if entry.Name == "" {
		return fmt.Errorf("skill name is required")
	}
	if entry.Level == "" {
		entry.Level = DefaultSkillLevel
	}
	if entry.Years == nil {
		years := DefaultSkillYears
		entry.Years = &years
	}
	c.state.Skills = append(c.state.Skills, entry)
	c.touched["skills"] = true
	return nil
}

// RemoveSkill deletes the row at index; subsequent rows are renumbered
func (c *Container) RemoveSkill(index int) error {
	if index < 0 || index >= len(c.state.Skills) {
		return fmt.Errorf("skill index %d out of range", index)
	}
	c.state.Skills = append(c.state.Skills[:index], c.state.Skills[index+1:]...)
	c.touched["skills"] = true
	return nil
}

func (c *Container) AppendProject(entry domain.ProjectEntry) error {
	entry.Title = strings.TrimSpace(entry.Title)
	if entry.Title == "" {
		return fmt.Errorf("project title is required")
	}
	c.state.Projects = append(c.state.Projects, entry)
	c.touched["projects"] = true
	return nil
}

func (c *Container) RemoveProject(index int) error {
	if index < 0 || index >= len(c.state.Projects) {
		return fmt.Errorf("project index %d out of range", index)
	}
	c.state.Projects = append(c.state.Projects[:index], c.state.Projects[index+1:]...)
	c.touched["projects"] = true
	return nil
}

// AppendSoftSkill adds a soft-skill row, deduplicating by case-insensitive
// name so clicking a suggested tag twice is a no-op.
func (c *Container) AppendSoftSkill(entry domain.SoftSkillEntry) error {
	entry.Name = strings.TrimSpace(entry.Name)
	if entry.Name == "" {
		return fmt.Errorf("soft skill name is required")
	}
	for _, existing := range c.state.SoftSkills {
		if strings.EqualFold(existing.Name, entry.Name) {
			return nil
		}
	}
	c.state.SoftSkills = append(c.state.SoftSkills, entry)
	c.touched["soft_skills"] = true
	return nil
}

func (c *Container) RemoveSoftSkill(index int) error {
	if index < 0 || index >= len(c.state.SoftSkills) {
		return fmt.Errorf("soft skill index %d out of range", index)
	}
	c.state.SoftSkills = append(c.state.SoftSkills[:index], c.state.SoftSkills[index+1:]...)
	c.touched["soft_skills"] = true
	return nil
}

// ============================================================================
// Path access
// ============================================================================

// SetValue writes a single field by path. Paths use the JSON field names;
// list entries are addressed by position ("skills.2.hr_rating"). Unknown
// paths and out-of-range indices are errors; linkage fields (company_id,
// user_id) are not writable through here.
func (c *Container) SetValue(path string, value interface{}) error {
	parts := strings.Split(path, ".")
	head := parts[0]

	switch head {
	case "skills", "projects", "soft_skills":
		if len(parts) != 3 {
			return fmt.Errorf("path %q: list fields are addressed as %s.<index>.<field>", path, head)
		}
		index, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("path %q: invalid index %q", path, parts[1])
		}
		if err := c.setListValue(head, index, parts[2], value); err != nil {
			return err
		}
	default:
		if len(parts) != 1 {
			return fmt.Errorf("unknown path %q", path)
		}
		if err := c.setScalarValue(head, value); err != nil {
			return err
		}
	}

	c.touched[head] = true
	return nil
}

func (c *Container) setScalarValue(field string, value interface{}) error {
	switch field {
	case "first_name":
		return setString(&c.state.FirstName, field, value)
	case "last_name":
		return setString(&c.state.LastName, field, value)
	case "title":
		return setString(&c.state.Title, field, value)
	case "experience_years":
		return setIntPtr(&c.state.ExperienceYears, field, value)
	case "availability_date":
		return setString(&c.state.AvailabilityDate, field, value)
	case "bio":
		return setString(&c.state.Bio, field, value)
	case "phone":
		return setString(&c.state.Phone, field, value)
	case "email":
		return setString(&c.state.Email, field, value)
	case "driving_license":
		return setBool(&c.state.DrivingLicense, field, value)
	case "own_vehicle":
		return setBool(&c.state.OwnVehicle, field, value)
	case "location":
		return setString(&c.state.Location, field, value)
	case "remote_work":
		return setBool(&c.state.RemoteWork, field, value)
	case "max_travel_distance":
		return setIntPtr(&c.state.MaxTravelDistance, field, value)
	case "daily_rate":
		return setFloatPtr(&c.state.DailyRate, field, value)
	case "potential_evaluation":
		return setIntPtr(&c.state.PotentialEvaluation, field, value)
	case "candidate_status":
		return setString(&c.state.CandidateStatus, field, value)
	case "expectations":
		return setString(&c.state.Expectations, field, value)
	case "salary_expectations":
		return setString(&c.state.SalaryExpectations, field, value)
	case "salary_details":
		return setString(&c.state.SalaryDetails, field, value)
	case "hr_notes":
		return setString(&c.state.HRNotes, field, value)
	case "hr_status":
		s, ok := asString(value)
		if !ok {
			return typeError(field, "string", value)
		}
		status := domain.HRStatus(s)
		if !status.IsValid() {
			return fmt.Errorf("field %q: invalid HR status %q", field, s)
		}
		c.state.HRStatus = status
		return nil
	case "photo_url":
		return setString(&c.state.PhotoURL, field, value)
	default:
		return fmt.Errorf("unknown path %q", field)
	}
}

func (c *Container) setListValue(list string, index int, field string, value interface{}) error {
	switch list {
	case "skills":
		if index < 0 || index >= len(c.state.Skills) {
			return fmt.Errorf("skill index %d out of range", index)
		}
		entry := &c.state.Skills[index]
		switch field {
		case "name":
			return setString(&entry.Name, field, value)
		case "level":
			return setString(&entry.Level, field, value)
		case "years":
			return setIntPtr(&entry.Years, field, value)
		case "category":
			return setString(&entry.Category, field, value)
		case "hr_rating":
			return setIntPtr(&entry.HRRating, field, value)
		}
	case "projects":
		if index < 0 || index >= len(c.state.Projects) {
			return fmt.Errorf("project index %d out of range", index)
		}
		entry := &c.state.Projects[index]
		switch field {
		case "title":
			return setString(&entry.Title, field, value)
		case "description":
			return setString(&entry.Description, field, value)
		case "period":
			return setString(&entry.Period, field, value)
		case "complexity_rating":
			return setIntPtr(&entry.ComplexityRating, field, value)
		case "impact_rating":
			return setIntPtr(&entry.ImpactRating, field, value)
		case "autonomy_rating":
			return setIntPtr(&entry.AutonomyRating, field, value)
		}
	case "soft_skills":
		if index < 0 || index >= len(c.state.SoftSkills) {
			return fmt.Errorf("soft skill index %d out of range", index)
		}
		entry := &c.state.SoftSkills[index]
		switch field {
		case "name":
			return setString(&entry.Name, field, value)
		case "rating":
			return setIntPtr(&entry.Rating, field, value)
		}
	}
	return fmt.Errorf("unknown path %q", list+"."+strconv.Itoa(index)+"."+field)
}

// Watch reads a single field by path; an empty path returns the whole
// state snapshot.
func (c *Container) Watch(path string) (interface{}, error) {
	if path == "" {
		return c.Snapshot(), nil
	}

	parts := strings.Split(path, ".")
	switch parts[0] {
	case "skills":
		if len(parts) == 1 {
			return c.state.Skills, nil
		}
	case "projects":
		if len(parts) == 1 {
			return c.state.Projects, nil
		}
	case "soft_skills":
		if len(parts) == 1 {
			return c.state.SoftSkills, nil
		}
	}

	if len(parts) == 1 {
		return c.watchScalar(parts[0])
	}

	// List sub-fields are read through a snapshot of the row
	if len(parts) >= 2 {
		index, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("path %q: invalid index %q", path, parts[1])
		}
		switch parts[0] {
		case "skills":
			if index < 0 || index >= len(c.state.Skills) {
				return nil, fmt.Errorf("skill index %d out of range", index)
			}
			return c.state.Skills[index], nil
		case "projects":
			if index < 0 || index >= len(c.state.Projects) {
				return nil, fmt.Errorf("project index %d out of range", index)
			}
			return c.state.Projects[index], nil
		case "soft_skills":
			if index < 0 || index >= len(c.state.SoftSkills) {
				return nil, fmt.Errorf("soft skill index %d out of range", index)
			}
			return c.state.SoftSkills[index], nil
		}
	}

	return nil, fmt.Errorf("unknown path %q", path)
}

func (c *Container) watchScalar(field string) (interface{}, error) {
	switch field {
	case "first_name":
		return c.state.FirstName, nil
	case "last_name":
		return c.state.LastName, nil
	case "title":
		return c.state.Title, nil
	case "experience_years":
		return c.state.ExperienceYears, nil
	case "availability_date":
		return c.state.AvailabilityDate, nil
	case "bio":
		return c.state.Bio, nil
	case "phone":
		return c.state.Phone, nil
	case "email":
		return c.state.Email, nil
	case "driving_license":
		return c.state.DrivingLicense, nil
	case "own_vehicle":
		return c.state.OwnVehicle, nil
	case "location":
		return c.state.Location, nil
	case "remote_work":
		return c.state.RemoteWork, nil
	case "max_travel_distance":
		return c.state.MaxTravelDistance, nil
	case "daily_rate":
		return c.state.DailyRate, nil
	case "potential_evaluation":
		return c.state.PotentialEvaluation, nil
	case "candidate_status":
		return c.state.CandidateStatus, nil
	case "expectations":
		return c.state.Expectations, nil
	case "salary_expectations":
		return c.state.SalaryExpectations, nil
	case "salary_details":
		return c.state.SalaryDetails, nil
	case "hr_notes":
		return c.state.HRNotes, nil
	case "hr_status":
		return c.state.HRStatus, nil
	case "company_id":
		return c.state.CompanyID, nil
	case "user_id":
		return c.state.UserID, nil
	case "photo_url":
		return c.state.PhotoURL, nil
	default:
		return nil, fmt.Errorf("unknown path %q", field)
	}
}

// ============================================================================
// Value coercion
// ============================================================================

// JSON numbers arrive as float64; integers are accepted when whole.

func typeError(field, want string, got interface{}) error {
	return fmt.Errorf("field %q: expected %s, got %T", field, want, got)
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func setString(dst *string, field string, v interface{}) error {
	if v == nil {
		*dst = ""
		return nil
	}
	s, ok := asString(v)
	if !ok {
		return typeError(field, "string", v)
	}
	*dst = s
	return nil
}

func setBool(dst *bool, field string, v interface{}) error {
	if v == nil {
		*dst = false
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return typeError(field, "bool", v)
	}
	*dst = b
	return nil
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func setIntPtr(dst **int, field string, v interface{}) error {
	if v == nil {
		*dst = nil
		return nil
	}
	n, ok := asInt(v)
	if !ok {
		return typeError(field, "integer", v)
	}
	*dst = &n
	return nil
}

func setFloatPtr(dst **float64, field string, v interface{}) error {
	if v == nil {
		*dst = nil
		return nil
	}
	switch n := v.(type) {
	case float64:
		*dst = &n
		return nil
	case int:
		f := float64(n)
		*dst = &f
		return nil
	default:
		return typeError(field, "number", v)
	}
}
