package usecase_test

import (
	"context"
	"sync"
	"testing"

	"talentmatch-backend/internal/domain"
	"talentmatch-backend/internal/usecase"
	"talentmatch-backend/pkg/apperror"
	"talentmatch-backend/pkg/upload"
	"talentmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// In-memory session store
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.WizardSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.WizardSession{}}
}

func (r *fakeSessionRepo) Save(_ context.Context, s *domain.WizardSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	r.sessions[s.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) Get(_ context.Context, id string) (*domain.WizardSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Mock consultant repository
type MockConsultantRepo struct {
	mock.Mock
}

func (m *MockConsultantRepo) Create(ctx context.Context, payload *domain.ConsultantCreate) (*domain.Consultant, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consultant), args.Error(1)
}

func (m *MockConsultantRepo) Update(ctx context.Context, id int64, payload *domain.ConsultantCreate) (*domain.Consultant, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consultant), args.Error(1)
}

func (m *MockConsultantRepo) GetByID(ctx context.Context, id int64) (*domain.Consultant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consultant), args.Error(1)
}

func (m *MockConsultantRepo) List(ctx context.Context, filters domain.ConsultantFilters) ([]domain.Consultant, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Consultant), args.Error(1)
}

func (m *MockConsultantRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// Mock photo uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func newWizardUsecase(repo *MockConsultantRepo, uploader *MockUploader, opts usecase.Options) (domain.WizardUsecase, *fakeSessionRepo) {
	sessions := newFakeSessionRepo()
	uc := usecase.NewWizardUsecase(sessions, repo, uploader, upload.NewValidator(5, nil), newValidator(), opts)
	return uc, sessions
}

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func TestWizardStart(t *testing.T) {
	uc, _ := newWizardUsecase(new(MockConsultantRepo), new(MockUploader), usecase.Options{})
	ctx := context.Background()

	t.Run("Should start on the identity step with defaults", func(t *testing.T) {
		session, err := uc.Start(ctx, 7, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, domain.StepIdentity, session.CurrentStep)
		assert.Equal(t, domain.HRStatusSourced, session.State.HRStatus)
		assert.Equal(t, int64(7), session.State.CompanyID)
		assert.Nil(t, session.State.UserID)
	})

	t.Run("Should prefill from a CV analysis result", func(t *testing.T) {
		session, err := uc.Start(ctx, 7, &domain.CvAnalysisResult{
			Candidate: domain.CvCandidate{
				Name:   "Martin Dupont",
				Skills: []domain.Skill{{Name: "Go"}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "Martin", session.State.FirstName)
		assert.Equal(t, "Dupont", session.State.LastName)
		assert.Contains(t, session.AutoFilledFields, "skills")
	})

	t.Run("Should refuse to start without a company", func(t *testing.T) {
		_, err := uc.Start(ctx, 0, nil)
		assert.Error(t, err)
	})
}

func TestWizardFieldEdits(t *testing.T) {
	uc, _ := newWizardUsecase(new(MockConsultantRepo), new(MockUploader), usecase.Options{})
	ctx := context.Background()

	session, err := uc.Start(ctx, 1, nil)
	require.NoError(t, err)

	t.Run("Should persist scalar writes", func(t *testing.T) {
		updated, err := uc.SetValue(ctx, session.ID, "first_name", "Ana")
		require.NoError(t, err)
		assert.Equal(t, "Ana", updated.State.FirstName)
		assert.Contains(t, updated.TouchedFields, "first_name")
	})

	t.Run("Should append and remove list entries", func(t *testing.T) {
		updated, err := uc.AppendEntry(ctx, session.ID, "skills", map[string]interface{}{"name": "Go"})
		require.NoError(t, err)
		require.Len(t, updated.State.Skills, 1)
		assert.Equal(t, "Intermédiaire", updated.State.Skills[0].Level)

		updated, err = uc.RemoveEntry(ctx, session.ID, "skills", 0)
		require.NoError(t, err)
		assert.Empty(t, updated.State.Skills)
	})

	t.Run("Should rate a skill through its sidecar path", func(t *testing.T) {
		_, err := uc.AppendEntry(ctx, session.ID, "skills", map[string]interface{}{"name": "React"})
		require.NoError(t, err)
		updated, err := uc.SetValue(ctx, session.ID, "skills.0.hr_rating", float64(4))
		require.NoError(t, err)
		assert.Equal(t, 4, *updated.State.Skills[0].HRRating)
	})

	t.Run("Should reject unknown sessions", func(t *testing.T) {
		_, err := uc.SetValue(ctx, "missing", "first_name", "X")
		require.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CategoryNotFound, appErr.Category)
	})
}

func TestWizardNavigation(t *testing.T) {
	ctx := context.Background()

	t.Run("Should advance leniently by default", func(t *testing.T) {
		uc, _ := newWizardUsecase(new(MockConsultantRepo), new(MockUploader), usecase.Options{})
		session, err := uc.Start(ctx, 1, nil)
		require.NoError(t, err)

		session, err = uc.Next(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StepSkills, session.CurrentStep)
	})

	t.Run("Should block forward navigation in strict mode on invalid step", func(t *testing.T) {
		uc, _ := newWizardUsecase(new(MockConsultantRepo), new(MockUploader), usecase.Options{StrictSteps: true})
		session, err := uc.Start(ctx, 1, nil)
		require.NoError(t, err)

		_, err = uc.Next(ctx, session.ID)
		require.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CategoryValidation, appErr.Category)
	})

	t.Run("Should allow forward navigation in strict mode once fields are valid", func(t *testing.T) {
		uc, _ := newWizardUsecase(new(MockConsultantRepo), new(MockUploader), usecase.Options{StrictSteps: true})
		session, err := uc.Start(ctx, 1, nil)
		require.NoError(t, err)

		_, err = uc.SetValue(ctx, session.ID, "first_name", "Ana")
		require.NoError(t, err)
		_, err = uc.SetValue(ctx, session.ID, "last_name", "Silva")
		require.NoError(t, err)
		_, err = uc.SetValue(ctx, session.ID, "title", "Dev Backend")
		require.NoError(t, err)

		session, err = uc.Next(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StepSkills, session.CurrentStep)
	})

	t.Run("Should always allow going back", func(t *testing.T) {
		uc, _ := newWizardUsecase(new(MockConsultantRepo), new(MockUploader), usecase.Options{StrictSteps: true})
		session, err := uc.Start(ctx, 1, nil)
		require.NoError(t, err)

		session, err = uc.Previous(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StepIdentity, session.CurrentStep)
	})
}

func TestWizardSaveAndExit(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create a draft with the placeholder title and SOURCED status", func(t *testing.T) {
		repo := new(MockConsultantRepo)
		uc, _ := newWizardUsecase(repo, new(MockUploader), usecase.Options{})

		session, err := uc.Start(ctx, 1, nil)
		require.NoError(t, err)
		_, err = uc.SetValue(ctx, session.ID, "first_name", "Ana")
		require.NoError(t, err)
		_, err = uc.SetValue(ctx, session.ID, "last_name", "Silva")
		require.NoError(t, err)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ConsultantCreate")).
			Return(&domain.Consultant{ID: 101}, nil).
			Run(func(args mock.Arguments) {
				payload := args.Get(1).(*domain.ConsultantCreate)
				assert.Equal(t, "Candidat en qualification", payload.Title)
				assert.Equal(t, domain.StatusSourced, payload.AvailabilityStatus)
			})

		session, err = uc.SaveAndExit(ctx, session.ID)
		require.NoError(t, err)
		require.NotNil(t, session.SavedConsultantID)
		assert.Equal(t, int64(101), *session.SavedConsultantID)
		assert.NotNil(t, session.LastSavedAt)
	})

	t.Run("Should update the same draft on a second save", func(t *testing.T) {
		repo := new(MockConsultantRepo)
		uc, _ := newWizardUsecase(repo, new(MockUploader), usecase.Options{})

		session, err := uc.Start(ctx, 1, nil)
		require.NoError(t, err)
		_, err = uc.SetValue(ctx, session.ID, "first_name", "Ana")
		require.NoError(t, err)
		_, err = uc.SetValue(ctx, session.ID, "last_name", "Silva")
		require.NoError(t, err)

		repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Consultant{ID: 101}, nil).Once()
		_, err = uc.SaveAndExit(ctx, session.ID)
		require.NoError(t, err)

		repo.On("Update", mock.Anything, int64(101), mock.Anything).Return(&domain.Consultant{ID: 101}, nil).Once()
		_, err = uc.SaveAndExit(ctx, session.ID)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should keep only the session when names are missing", func(t *testing.T) {
		repo := new(MockConsultantRepo)
		uc, _ := newWizardUsecase(repo, new(MockUploader), usecase.Options{})

		session, err := uc.Start(ctx, 1, nil)
		require.NoError(t, err)

		session, err = uc.SaveAndExit(ctx, session.ID)
		require.NoError(t, err)
		assert.Nil(t, session.SavedConsultantID)
		repo.AssertNotCalled(t, "Create")
	})
}

func fillValidState(t *testing.T, uc domain.WizardUsecase, sessionID string) {
	t.Helper()
	ctx := context.Background()
	for path, value := range map[string]interface{}{
		"first_name": "Martin",
		"last_name":  "Dupont",
		"title":      "Architecte Cloud",
	} {
		_, err := uc.SetValue(ctx, sessionID, path, value)
		require.NoError(t, err)
	}
}

func TestWizardFinalize(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create the consultant without photo and close the session", func(t *testing.T) {
		repo := new(MockConsultantRepo)
		uc, sessions := newWizardUsecase(repo, new(MockUploader), usecase.Options{})

		session, err := uc.Start(ctx, 7, nil)
		require.NoError(t, err)
		fillValidState(t, uc, session.ID)
		_, err = uc.SetValue(ctx, session.ID, "hr_status", "IN_QUALIFICATION")
		require.NoError(t, err)
		_, err = uc.AppendEntry(ctx, session.ID, "skills", map[string]interface{}{"name": "Go", "hr_rating": float64(5)})
		require.NoError(t, err)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ConsultantCreate")).
			Return(&domain.Consultant{ID: 9, FirstName: "Martin", LastName: "Dupont"}, nil).
			Run(func(args mock.Arguments) {
				payload := args.Get(1).(*domain.ConsultantCreate)
				assert.Equal(t, domain.StatusSourced, payload.AvailabilityStatus)
				assert.Nil(t, payload.UserID)
				assert.Empty(t, payload.PhotoURL)
				require.Len(t, payload.Skills, 1)
				assert.Equal(t, "Go", payload.Skills[0].Name)
			})

		result, err := uc.Finalize(ctx, session.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, "Le consultant a été créé avec succès", result.Message)
		assert.Empty(t, result.PhotoWarning)

		_, err = sessions.Get(ctx, session.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Should fall back to creation when the draft disappeared", func(t *testing.T) {
		repo := new(MockConsultantRepo)
		uc, _ := newWizardUsecase(repo, new(MockUploader), usecase.Options{})

		session, err := uc.Start(ctx, 7, nil)
		require.NoError(t, err)
		fillValidState(t, uc, session.ID)

		repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Consultant{ID: 101}, nil).Once()
		_, err = uc.SaveAndExit(ctx, session.ID)
		require.NoError(t, err)

		// The draft was deleted between the save and the submission
		repo.On("Update", mock.Anything, int64(101), mock.Anything).Return(nil, nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Consultant{ID: 202}, nil).Once()

		result, err := uc.Finalize(ctx, session.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(202), result.Consultant.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Should reject submission when required fields are missing", func(t *testing.T) {
		repo := new(MockConsultantRepo)
		uc, _ := newWizardUsecase(repo, new(MockUploader), usecase.Options{})

		session, err := uc.Start(ctx, 7, nil)
		require.NoError(t, err)

		_, err = uc.Finalize(ctx, session.ID, nil)
		require.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CategoryValidation, appErr.Category)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Should block invalid photo formats before any storage call", func(t *testing.T) {
		repo := new(MockConsultantRepo)
		uploader := new(MockUploader)
		uc, _ := newWizardUsecase(repo, uploader, usecase.Options{})

		session, err := uc.Start(ctx, 7, nil)
		require.NoError(t, err)
		fillValidState(t, uc, session.ID)

		_, err = uc.Finalize(ctx, session.ID, &domain.PhotoUpload{Filename: "photo.gif", Data: jpegHeader})
		require.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CategoryFormatInvalid, appErr.Category)
		uploader.AssertNotCalled(t, "Upload")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Should block oversized photos", func(t *testing.T) {
		repo := new(MockConsultantRepo)
		uc, _ := newWizardUsecase(repo, new(MockUploader), usecase.Options{})

		session, err := uc.Start(ctx, 7, nil)
		require.NoError(t, err)
		fillValidState(t, uc, session.ID)

		big := make([]byte, 5*1024*1024+1)
		copy(big, jpegHeader)
		_, err = uc.Finalize(ctx, session.ID, &domain.PhotoUpload{Filename: "photo.jpg", Data: big})
		require.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CategorySizeExceeded, appErr.Category)
	})

	t.Run("Should create without photo when the upload fails server-side", func(t *testing.T) {
		repo := new(MockConsultantRepo)
		uploader := new(MockUploader)
		uc, _ := newWizardUsecase(repo, uploader, usecase.Options{})

		session, err := uc.Start(ctx, 7, nil)
		require.NoError(t, err)
		fillValidState(t, uc, session.ID)

		uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", assert.AnError)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ConsultantCreate")).
			Return(&domain.Consultant{ID: 10}, nil).
			Run(func(args mock.Arguments) {
				payload := args.Get(1).(*domain.ConsultantCreate)
				assert.Empty(t, payload.PhotoURL)
			})

		result, err := uc.Finalize(ctx, session.ID, &domain.PhotoUpload{Filename: "photo.jpg", Data: jpegHeader})
		require.NoError(t, err)
		assert.Equal(t, "La photo n'a pas pu être téléchargée, mais le profil sera créé sans photo.", result.PhotoWarning)
	})

	t.Run("Should attach the uploaded photo URL to the payload", func(t *testing.T) {
		repo := new(MockConsultantRepo)
		uploader := new(MockUploader)
		uc, _ := newWizardUsecase(repo, uploader, usecase.Options{})

		session, err := uc.Start(ctx, 7, nil)
		require.NoError(t, err)
		fillValidState(t, uc, session.ID)

		uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/jpeg").
			Return("https://cdn.example.com/photos/x.jpg", nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ConsultantCreate")).
			Return(&domain.Consultant{ID: 11}, nil).
			Run(func(args mock.Arguments) {
				payload := args.Get(1).(*domain.ConsultantCreate)
				assert.Equal(t, "https://cdn.example.com/photos/x.jpg", payload.PhotoURL)
			})

		result, err := uc.Finalize(ctx, session.ID, &domain.PhotoUpload{Filename: "photo.jpg", Data: jpegHeader})
		require.NoError(t, err)
		assert.Empty(t, result.PhotoWarning)
	})
}

func TestWizardCancel(t *testing.T) {
	uc, sessions := newWizardUsecase(new(MockConsultantRepo), new(MockUploader), usecase.Options{})
	ctx := context.Background()

	session, err := uc.Start(ctx, 1, nil)
	require.NoError(t, err)

	require.NoError(t, uc.Cancel(ctx, session.ID))
	_, err = sessions.Get(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
