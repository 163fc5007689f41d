package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"talentmatch-backend/internal/domain"
	"talentmatch-backend/internal/wizard"
	"talentmatch-backend/pkg/apperror"
	"talentmatch-backend/pkg/upload"
	"talentmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PhotoUploader stores profile photos and returns their public URL
type PhotoUploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Options tunes wizard behavior
type Options struct {
	// StrictSteps blocks forward navigation while the current step has
	// invalid fields. Off by default: the wizard is lenient until final
	// submission.
	StrictSteps bool
}

type wizardUsecase struct {
	sessions       domain.WizardRepository
	consultants    domain.ConsultantRepository
	uploader       PhotoUploader
	photoValidator *upload.Validator
	validate       *validator.Validate
	opts           Options
}

func NewWizardUsecase(
	sessions domain.WizardRepository,
	consultants domain.ConsultantRepository,
	uploader PhotoUploader,
	photoValidator *upload.Validator,
	validate *validator.Validate,
	opts Options,
) domain.WizardUsecase {
	return &wizardUsecase{
		sessions:       sessions,
		consultants:    consultants,
		uploader:       uploader,
		photoValidator: photoValidator,
		validate:       validate,
		opts:           opts,
	}
}

// ============================================================================
// Session lifecycle
// ============================================================================

func (u *wizardUsecase) Start(ctx context.Context, companyID int64, cv *domain.CvAnalysisResult) (*domain.WizardSession, error) {
	if companyID <= 0 {
		return nil, apperror.BadRequest("Société requise pour démarrer la création")
	}

	container := wizard.NewContainer(companyID)
	autoFilled := wizard.ApplyCvAnalysis(container, cv)

	now := time.Now()
	session := &domain.WizardSession{
		ID:               uuid.NewString(),
		CompanyID:        companyID,
		CurrentStep:      domain.StepIdentity,
		State:            container.Snapshot(),
		AutoFilledFields: autoFilled,
		TouchedFields:    container.Touched(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}
	return session, nil
}

func (u *wizardUsecase) Get(ctx context.Context, id string) (*domain.WizardSession, error) {
	return u.loadSession(ctx, id)
}

func (u *wizardUsecase) Cancel(ctx context.Context, id string) error {
	session, err := u.loadSession(ctx, id)
	if err != nil {
		return err
	}
	// Draft consultants created by save-and-exit survive cancellation;
	// only the in-progress session is discarded.
	if err := u.sessions.Delete(ctx, session.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ============================================================================
// Field edits
// ============================================================================

func (u *wizardUsecase) SetValue(ctx context.Context, id, path string, value interface{}) (*domain.WizardSession, error) {
	session, err := u.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	container := wizard.Restore(session)
	if err := container.SetValue(path, value); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	return u.persist(ctx, session, container)
}

func (u *wizardUsecase) AppendEntry(ctx context.Context, id, list string, entry interface{}) (*domain.WizardSession, error) {
	session, err := u.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	container := wizard.Restore(session)
	switch list {
	case "skills":
		e, err := decodeEntry[domain.SkillEntry](entry)
		if err != nil {
			return nil, err
		}
		if err := container.AppendSkill(e); err != nil {
			return nil, apperror.BadRequest(err.Error())
		}
	case "projects":
		e, err := decodeEntry[domain.ProjectEntry](entry)
		if err != nil {
			return nil, err
		}
		if err := container.AppendProject(e); err != nil {
			return nil, apperror.BadRequest(err.Error())
		}
	case "soft_skills":
		e, err := decodeEntry[domain.SoftSkillEntry](entry)
		if err != nil {
			return nil, err
		}
		if err := container.AppendSoftSkill(e); err != nil {
			return nil, apperror.BadRequest(err.Error())
		}
	default:
		return nil, apperror.BadRequest("Liste inconnue: " + list)
	}

	return u.persist(ctx, session, container)
}

func (u *wizardUsecase) RemoveEntry(ctx context.Context, id, list string, index int) (*domain.WizardSession, error) {
	session, err := u.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	container := wizard.Restore(session)
	var removeErr error
	switch list {
	case "skills":
		removeErr = container.RemoveSkill(index)
	case "projects":
		removeErr = container.RemoveProject(index)
	case "soft_skills":
		removeErr = container.RemoveSoftSkill(index)
	default:
		return nil, apperror.BadRequest("Liste inconnue: " + list)
	}
	if removeErr != nil {
		return nil, apperror.BadRequest(removeErr.Error())
	}

	return u.persist(ctx, session, container)
}

// ============================================================================
// Navigation
// ============================================================================

func (u *wizardUsecase) Next(ctx context.Context, id string) (*domain.WizardSession, error) {
	session, err := u.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.opts.StrictSteps {
		if err := u.validateStep(session); err != nil {
			return nil, err
		}
	}

	next, ok := wizard.NextStep(session.CurrentStep)
	if !ok {
		return nil, apperror.BadRequest("Dernière étape atteinte, utilisez la validation finale")
	}
	session.CurrentStep = next
	session.UpdatedAt = time.Now()

	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}
	return session, nil
}

func (u *wizardUsecase) Previous(ctx context.Context, id string) (*domain.WizardSession, error) {
	session, err := u.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	// Going back is always allowed, even with invalid fields
	prev, ok := wizard.PreviousStep(session.CurrentStep)
	if !ok {
		return session, nil
	}
	session.CurrentStep = prev
	session.UpdatedAt = time.Now()

	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}
	return session, nil
}

// validateStep runs the submission tags on the fields owned by the
// current step only
func (u *wizardUsecase) validateStep(session *domain.WizardSession) error {
	fields := wizard.StructFieldsForStep(session.CurrentStep)
	if len(fields) == 0 {
		return nil
	}
	if err := u.validate.StructPartial(session.State, fields...); err != nil {
		messages := validation.FormatValidationErrors(err)
		return apperror.New(http.StatusBadRequest, apperror.CategoryValidation, strings.Join(messages, "; "), err)
	}
	return nil
}

// ============================================================================
// Draft autosave
// ============================================================================

func (u *wizardUsecase) SaveAndExit(ctx context.Context, id string) (*domain.WizardSession, error) {
	session, err := u.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	// A draft needs at least both names; otherwise only the session is kept
	if session.State.FirstName != "" && session.State.LastName != "" {
		payload := wizard.PrepareMinimumData(session.State)

		consultant, err := u.saveConsultant(ctx, session, payload)
		if err != nil {
			return nil, apperror.New(http.StatusInternalServerError, apperror.CategoryUnexpected,
				"Une erreur est survenue lors de la sauvegarde.", err)
		}

		session.SavedConsultantID = &consultant.ID
		now := time.Now()
		session.LastSavedAt = &now
	}

	session.UpdatedAt = time.Now()
	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}
	return session, nil
}

// ============================================================================
// Finalization
// ============================================================================

func (u *wizardUsecase) Finalize(ctx context.Context, id string, photo *domain.PhotoUpload) (*domain.FinalizeResult, error) {
	session, err := u.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.validate.Struct(session.State); err != nil {
		messages := validation.FormatValidationErrors(err)
		return nil, apperror.New(http.StatusBadRequest, apperror.CategoryValidation, strings.Join(messages, "; "), err)
	}

	// Photo goes up before the consultant is created so its URL rides on
	// the creation payload. Validation failures block; a storage failure
	// does not, the profile is just created without photo.
	var photoWarning string
	if photo != nil {
		url, uploadErr := u.uploadPhoto(ctx, session.ID, photo)
		if uploadErr != nil {
			var appErr *apperror.AppError
			if errors.As(uploadErr, &appErr) &&
				(appErr.Category == apperror.CategoryFormatInvalid || appErr.Category == apperror.CategorySizeExceeded) {
				return nil, uploadErr
			}
			photoWarning = "La photo n'a pas pu être téléchargée, mais le profil sera créé sans photo."
		} else {
			session.State.PhotoURL = url
		}
	}

	payload := wizard.PrepareConsultantData(session.State)

	consultant, err := u.saveConsultant(ctx, session, payload)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// The consultant exists at this point; a session cleanup failure is
	// not worth failing the submission for.
	_ = u.sessions.Delete(ctx, session.ID)

	return &domain.FinalizeResult{
		Consultant:   consultant,
		Message:      "Le consultant a été créé avec succès",
		PhotoWarning: photoWarning,
	}, nil
}

// saveConsultant updates the draft created by save-and-exit, or creates a
// fresh consultant. A draft that disappeared in the meantime falls back to
// creation.
func (u *wizardUsecase) saveConsultant(ctx context.Context, session *domain.WizardSession, payload *domain.ConsultantCreate) (*domain.Consultant, error) {
	if session.SavedConsultantID != nil {
		consultant, err := u.consultants.Update(ctx, *session.SavedConsultantID, payload)
		if err != nil {
			return nil, err
		}
		if consultant != nil {
			return consultant, nil
		}
	}
	return u.consultants.Create(ctx, payload)
}

func (u *wizardUsecase) uploadPhoto(ctx context.Context, sessionID string, photo *domain.PhotoUpload) (string, error) {
	if vErr := u.photoValidator.Validate(photo.Filename, int64(len(photo.Data))); vErr != nil {
		return "", apperror.New(http.StatusBadRequest, apperror.Category(vErr.Type), vErr.Message, vErr)
	}
	head := photo.Data
	if len(head) > 512 {
		head = head[:512]
	}
	if vErr := u.photoValidator.ValidateContent(photo.Filename, head); vErr != nil {
		return "", apperror.New(http.StatusBadRequest, apperror.Category(vErr.Type), vErr.Message, vErr)
	}

	if u.uploader == nil {
		return "", apperror.New(http.StatusInternalServerError, apperror.CategoryUploadFailed, "storage not configured", nil)
	}

	key := "photos/" + sessionID + ".jpg"
	url, err := u.uploader.Upload(ctx, key, photo.Data, "image/jpeg")
	if err != nil {
		return "", apperror.New(http.StatusInternalServerError, apperror.CategoryUploadFailed, err.Error(), err)
	}
	return url, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (u *wizardUsecase) loadSession(ctx context.Context, id string) (*domain.WizardSession, error) {
	if id == "" {
		return nil, apperror.BadRequest("Identifiant de session requis")
	}
	session, err := u.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, apperror.NotFound("Session de création introuvable ou expirée")
		}
		return nil, apperror.Internal(err)
	}
	return session, nil
}

func (u *wizardUsecase) persist(ctx context.Context, session *domain.WizardSession, container *wizard.Container) (*domain.WizardSession, error) {
	session.State = container.Snapshot()
	session.TouchedFields = mergeFields(session.TouchedFields, container.Touched())
	session.UpdatedAt = time.Now()

	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}
	return session, nil
}

// decodeEntry accepts either an already-typed entry or the generic JSON
// shape delivered by the HTTP layer
func decodeEntry[T any](v interface{}) (T, error) {
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, apperror.BadRequest("Entrée invalide")
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, apperror.BadRequest("Entrée invalide: " + err.Error())
	}
	return out, nil
}

func mergeFields(existing, added []string) []string {
	seen := make(map[string]bool, len(existing))
	out := append([]string(nil), existing...)
	for _, f := range existing {
		seen[f] = true
	}
	for _, f := range added {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
