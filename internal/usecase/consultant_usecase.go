package usecase

import (
	"context"
	"net/http"
	"strings"

	"talentmatch-backend/internal/domain"
	"talentmatch-backend/pkg/apperror"
	"talentmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type consultantUsecase struct {
	repo     domain.ConsultantRepository
	validate *validator.Validate
}

func NewConsultantUsecase(repo domain.ConsultantRepository, validate *validator.Validate) domain.ConsultantUsecase {
	return &consultantUsecase{
		repo:     repo,
		validate: validate,
	}
}

func (u *consultantUsecase) Create(ctx context.Context, payload *domain.ConsultantCreate) (*domain.Consultant, error) {
	if err := u.validatePayload(payload); err != nil {
		return nil, err
	}

	// Consultants are always created without a linked user
	payload.UserID = nil
	if payload.AvailabilityStatus == "" {
		payload.AvailabilityStatus = domain.StatusSourced
	}
	if !payload.AvailabilityStatus.IsValid() {
		return nil, apperror.BadRequest("Statut de disponibilité invalide")
	}

	consultant, err := u.repo.Create(ctx, payload)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return consultant, nil
}

func (u *consultantUsecase) Update(ctx context.Context, id int64, payload *domain.ConsultantCreate) (*domain.Consultant, error) {
	if err := u.validatePayload(payload); err != nil {
		return nil, err
	}
	if payload.AvailabilityStatus != "" && !payload.AvailabilityStatus.IsValid() {
		return nil, apperror.BadRequest("Statut de disponibilité invalide")
	}

	consultant, err := u.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if consultant == nil {
		return nil, apperror.NotFound("Consultant introuvable")
	}
	return consultant, nil
}

func (u *consultantUsecase) Get(ctx context.Context, id int64) (*domain.Consultant, error) {
	consultant, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if consultant == nil {
		return nil, apperror.NotFound("Consultant introuvable")
	}
	return consultant, nil
}

func (u *consultantUsecase) List(ctx context.Context, filters domain.ConsultantFilters) ([]domain.Consultant, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 50
	}
	for _, s := range filters.Statuses {
		if !s.IsValid() {
			return nil, apperror.BadRequest("Statut de disponibilité invalide: " + string(s))
		}
	}

	consultants, err := u.repo.List(ctx, filters)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return consultants, nil
}

func (u *consultantUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *consultantUsecase) validatePayload(payload *domain.ConsultantCreate) error {
	if err := u.validate.Struct(payload); err != nil {
		messages := validation.FormatValidationErrors(err)
		return apperror.New(http.StatusBadRequest, apperror.CategoryValidation, strings.Join(messages, "; "), err)
	}
	return nil
}
