package apperror

import "net/http"

// Category classifies an error for client display. The create/update
// categories map one-to-one onto banner messages; the upload categories
// are resolved at the upload-validation boundary before any storage call.
type Category string

const (
	CategoryUnexpected         Category = "UNEXPECTED"
	CategoryServiceUnavailable Category = "SERVICE_UNAVAILABLE"
	CategoryMaintenance        Category = "MAINTENANCE"
	CategoryValidation         Category = "VALIDATION"
	CategoryNetwork            Category = "NETWORK"
	CategoryFormatInvalid      Category = "FORMAT_INVALID"
	CategorySizeExceeded       Category = "SIZE_EXCEEDED"
	CategoryUploadFailed       Category = "UPLOAD_FAILED"
	CategoryNotFound           Category = "NOT_FOUND"
	CategoryUnauthorized       Category = "UNAUTHORIZED"
	CategoryForbidden          Category = "FORBIDDEN"
)

type AppError struct {
	Code     int      `json:"code"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Err      error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, category Category, message string, err error) *AppError {
	return &AppError{
		Code:     code,
		Category: category,
		Message:  message,
		Err:      err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, CategoryValidation, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, CategoryUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, CategoryForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, CategoryNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, CategoryUnexpected, MessageUnexpected, err)
}

// User-facing messages. These strings are part of the UI contract and
// must not be reworded.
const (
	MessageUnexpected         = "Une erreur inattendue est survenue. Veuillez réessayer."
	MessageServiceUnavailable = "Service temporairement indisponible. Merci de réessayer."
	MessageMaintenance        = "Le service est en maintenance. Veuillez patienter."
	MessageValidation         = "Veuillez vérifier les données saisies et réessayer."
	MessageNetwork            = "Problème de connexion. Vérifiez votre connexion et réessayez."
)

// FromStatus maps an HTTP status code to its display category and message:
// 500 → UNEXPECTED, 502 → SERVICE_UNAVAILABLE, 503 → MAINTENANCE,
// 400/422 → VALIDATION, everything else → UNEXPECTED.
func FromStatus(status int, err error) *AppError {
	switch status {
	case http.StatusBadGateway:
		return New(status, CategoryServiceUnavailable, MessageServiceUnavailable, err)
	case http.StatusServiceUnavailable:
		return New(status, CategoryMaintenance, MessageMaintenance, err)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return New(status, CategoryValidation, MessageValidation, err)
	default:
		return New(status, CategoryUnexpected, MessageUnexpected, err)
	}
}

// Network builds the error used when a request never reached the server.
// The server itself never produces it; it completes the display taxonomy
// so every category the front end can show has one constructor here, and
// tools importing this package (CLI, smoke tests) report connection
// failures with the same message the UI uses.
func Network(err error) *AppError {
	return New(0, CategoryNetwork, MessageNetwork, err)
}
