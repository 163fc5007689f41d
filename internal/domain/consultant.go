package domain

import (
	"context"
	"time"
)

// ============================================================================
// Availability Status
// ============================================================================

// AvailabilityStatus represents the externally visible status of a consultant
type AvailabilityStatus string

const (
	StatusSourced            AvailabilityStatus = "SOURCED"
	StatusQualified          AvailabilityStatus = "QUALIFIED"
	StatusAvailable          AvailabilityStatus = "AVAILABLE"
	StatusPartiallyAvailable AvailabilityStatus = "PARTIALLY_AVAILABLE"
	StatusOnMission          AvailabilityStatus = "ON_MISSION"
	StatusUnavailable        AvailabilityStatus = "UNAVAILABLE"
)

// ValidAvailabilityStatuses returns all valid availability statuses
func ValidAvailabilityStatuses() []AvailabilityStatus {
	return []AvailabilityStatus{
		StatusSourced, StatusQualified, StatusAvailable,
		StatusPartiallyAvailable, StatusOnMission, StatusUnavailable,
	}
}

// IsValid checks if the availability status is valid
func (s AvailabilityStatus) IsValid() bool {
	for _, valid := range ValidAvailabilityStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// ============================================================================
// Consultant Aggregate
// ============================================================================

type Skill struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name" validate:"required"`
	Level    string `json:"level,omitempty"`
	Years    *int   `json:"years,omitempty"`
	Category string `json:"category,omitempty"`
}

type Experience struct {
	ID          int64  `json:"id,omitempty"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	ID          int64  `json:"id,omitempty"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
}

type Consultant struct {
	ID                 int64              `json:"id"`
	UserID             *int64             `json:"user_id"`
	CompanyID          int64              `json:"company_id"`
	FirstName          string             `json:"first_name"`
	LastName           string             `json:"last_name"`
	Title              string             `json:"title"`
	ExperienceYears    *int               `json:"experience_years,omitempty"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status"`
	AvailabilityDate   *string            `json:"availability_date,omitempty"`
	DailyRate          *float64           `json:"daily_rate,omitempty"`
	Bio                string             `json:"bio,omitempty"`
	Location           string             `json:"location,omitempty"`
	RemoteWork         bool               `json:"remote_work"`
	MaxTravelDistance  *int               `json:"max_travel_distance,omitempty"`
	PhotoURL           string             `json:"photo_url,omitempty"`
	Skills             []Skill            `json:"skills"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ConsultantCreate is the payload accepted by POST /v1/consultants.
// Consultants are created without a linked user; user_id stays null until
// the profile is claimed later.
type ConsultantCreate struct {
	UserID             *int64             `json:"user_id"`
	CompanyID          int64              `json:"company_id" validate:"required"`
	FirstName          string             `json:"first_name" validate:"required,valid_name"`
	LastName           string             `json:"last_name" validate:"required,valid_name"`
	Title              string             `json:"title" validate:"required"`
	ExperienceYears    *int               `json:"experience_years,omitempty" validate:"omitempty,min=0,max=50"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status,omitempty"`
	AvailabilityDate   *string            `json:"availability_date,omitempty"`
	DailyRate          *float64           `json:"daily_rate,omitempty" validate:"omitempty,min=0"`
	Bio                string             `json:"bio,omitempty" validate:"max=2000"`
	Location           string             `json:"location,omitempty"`
	RemoteWork         bool               `json:"remote_work,omitempty"`
	MaxTravelDistance  *int               `json:"max_travel_distance,omitempty" validate:"omitempty,min=0"`
	Skills             []Skill            `json:"skills,omitempty"`
	PhotoURL           string             `json:"photo_url,omitempty"`
}

type ConsultantFilters struct {
	Search   string
	Statuses []AvailabilityStatus
	Limit    int
	Offset   int
}

// ============================================================================
// Repository Interface
// ============================================================================

type ConsultantRepository interface {
	Create(ctx context.Context, payload *ConsultantCreate) (*Consultant, error)
	Update(ctx context.Context, id int64, payload *ConsultantCreate) (*Consultant, error)
	GetByID(ctx context.Context, id int64) (*Consultant, error)
	List(ctx context.Context, filters ConsultantFilters) ([]Consultant, error)
	Delete(ctx context.Context, id int64) error
}

// ============================================================================
// Usecase Interface
// ============================================================================

type ConsultantUsecase interface {
	Create(ctx context.Context, payload *ConsultantCreate) (*Consultant, error)
	Update(ctx context.Context, id int64, payload *ConsultantCreate) (*Consultant, error)
	Get(ctx context.Context, id int64) (*Consultant, error)
	List(ctx context.Context, filters ConsultantFilters) ([]Consultant, error)
	Delete(ctx context.Context, id int64) error
}
