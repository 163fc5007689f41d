package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"talentmatch-backend/internal/domain"
	"talentmatch-backend/internal/usecase"
	"talentmatch-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validConsultantPayload() *domain.ConsultantCreate {
	return &domain.ConsultantCreate{
		CompanyID: 42,
		FirstName: "Martin",
		LastName:  "Dupont",
		Title:     "Développeur Full Stack",
		Skills:    []domain.Skill{{Name: "Go", Level: "Avancé"}},
	}
}

func TestConsultantCreate(t *testing.T) {
	t.Run("Should create with defaults applied", func(t *testing.T) {
		mockRepo := new(MockConsultantRepo)
		uc := usecase.NewConsultantUsecase(mockRepo, newValidator())

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.ConsultantCreate) bool {
			return p.UserID == nil && p.AvailabilityStatus == domain.StatusSourced
		})).Return(&domain.Consultant{ID: 1, FirstName: "Martin"}, nil)

		created, err := uc.Create(context.Background(), validConsultantPayload())
		assert.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should strip any linked user from the payload", func(t *testing.T) {
		mockRepo := new(MockConsultantRepo)
		uc := usecase.NewConsultantUsecase(mockRepo, newValidator())

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.ConsultantCreate) bool {
			return p.UserID == nil
		})).Return(&domain.Consultant{ID: 2}, nil)

		payload := validConsultantPayload()
		userID := int64(99)
		payload.UserID = &userID

		_, err := uc.Create(context.Background(), payload)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should reject a payload with missing required fields", func(t *testing.T) {
		mockRepo := new(MockConsultantRepo)
		uc := usecase.NewConsultantUsecase(mockRepo, newValidator())

		payload := validConsultantPayload()
		payload.FirstName = ""

		_, err := uc.Create(context.Background(), payload)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, apperror.CategoryValidation, appErr.Category)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should reject an unknown availability status", func(t *testing.T) {
		mockRepo := new(MockConsultantRepo)
		uc := usecase.NewConsultantUsecase(mockRepo, newValidator())

		payload := validConsultantPayload()
		payload.AvailabilityStatus = "PENDING"

		_, err := uc.Create(context.Background(), payload)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CategoryValidation, appErr.Category)
	})
}

func TestConsultantUpdate(t *testing.T) {
	t.Run("Should return not found for an unknown consultant", func(t *testing.T) {
		mockRepo := new(MockConsultantRepo)
		uc := usecase.NewConsultantUsecase(mockRepo, newValidator())

		mockRepo.On("Update", mock.Anything, int64(7), mock.Anything).Return(nil, nil)

		_, err := uc.Update(context.Background(), 7, validConsultantPayload())
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
		assert.Equal(t, "Consultant introuvable", appErr.Message)
	})

	t.Run("Should update an existing consultant", func(t *testing.T) {
		mockRepo := new(MockConsultantRepo)
		uc := usecase.NewConsultantUsecase(mockRepo, newValidator())

		mockRepo.On("Update", mock.Anything, int64(7), mock.Anything).
			Return(&domain.Consultant{ID: 7, Title: "Architecte"}, nil)

		updated, err := uc.Update(context.Background(), 7, validConsultantPayload())
		assert.NoError(t, err)
		assert.Equal(t, "Architecte", updated.Title)
	})
}

func TestConsultantGet(t *testing.T) {
	t.Run("Should return not found when missing", func(t *testing.T) {
		mockRepo := new(MockConsultantRepo)
		uc := usecase.NewConsultantUsecase(mockRepo, newValidator())

		mockRepo.On("GetByID", mock.Anything, int64(5)).Return(nil, nil)

		_, err := uc.Get(context.Background(), 5)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})

	t.Run("Should wrap repository failures as internal", func(t *testing.T) {
		mockRepo := new(MockConsultantRepo)
		uc := usecase.NewConsultantUsecase(mockRepo, newValidator())

		mockRepo.On("GetByID", mock.Anything, int64(5)).Return(nil, errors.New("connection refused"))

		_, err := uc.Get(context.Background(), 5)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		assert.Equal(t, apperror.MessageUnexpected, appErr.Message)
	})
}

func TestConsultantList(t *testing.T) {
	t.Run("Should clamp the page size", func(t *testing.T) {
		mockRepo := new(MockConsultantRepo)
		uc := usecase.NewConsultantUsecase(mockRepo, newValidator())

		mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.ConsultantFilters) bool {
			return f.Limit == 50
		})).Return([]domain.Consultant{}, nil)

		_, err := uc.List(context.Background(), domain.ConsultantFilters{Limit: 500})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should reject an invalid status filter", func(t *testing.T) {
		mockRepo := new(MockConsultantRepo)
		uc := usecase.NewConsultantUsecase(mockRepo, newValidator())

		_, err := uc.List(context.Background(), domain.ConsultantFilters{
			Statuses: []domain.AvailabilityStatus{"BUSY"},
		})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		mockRepo.AssertNotCalled(t, "List")
	})

	t.Run("Should pass status filters through", func(t *testing.T) {
		mockRepo := new(MockConsultantRepo)
		uc := usecase.NewConsultantUsecase(mockRepo, newValidator())

		filters := domain.ConsultantFilters{
			Statuses: []domain.AvailabilityStatus{domain.StatusQualified, domain.StatusAvailable},
			Limit:    10,
		}
		mockRepo.On("List", mock.Anything, filters).Return([]domain.Consultant{{ID: 1}, {ID: 2}}, nil)

		consultants, err := uc.List(context.Background(), filters)
		assert.NoError(t, err)
		assert.Len(t, consultants, 2)
	})
}

func TestConsultantDelete(t *testing.T) {
	t.Run("Should delete through the repository", func(t *testing.T) {
		mockRepo := new(MockConsultantRepo)
		uc := usecase.NewConsultantUsecase(mockRepo, newValidator())

		mockRepo.On("Delete", mock.Anything, int64(3)).Return(nil)

		assert.NoError(t, uc.Delete(context.Background(), 3))
		mockRepo.AssertExpectations(t)
	})
}
