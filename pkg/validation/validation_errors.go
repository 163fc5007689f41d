package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly French labels
var FieldLabels = map[string]string{
	// Identity & availability
	"FirstName":        "Prénom",
	"LastName":         "Nom",
	"Title":            "Titre du profil",
	"ExperienceYears":  "Années d'expérience",
	"AvailabilityDate": "Date de disponibilité",
	"Bio":              "Présentation",
	"Phone":            "Téléphone",
	"Email":            "Email",

	// Lists
	"Skills":     "Compétences",
	"Projects":   "Projets",
	"SoftSkills": "Soft skills",
	"Name":       "Nom",
	"Level":      "Niveau",
	"Years":      "Années",
	"Category":   "Catégorie",
	"Period":     "Période",

	// Preferences
	"Location":          "Localisation",
	"RemoteWork":        "Télétravail",
	"MaxTravelDistance": "Distance de déplacement",
	"DailyRate":         "TJM",

	// HR qualification
	"PotentialEvaluation": "Évaluation du potentiel",
	"CandidateStatus":     "Statut du candidat",
	"Expectations":        "Attentes",
	"SalaryExpectations":  "Prétentions salariales",
	"SalaryDetails":       "Détails de rémunération",
	"HRNotes":             "Notes RH",
	"HRStatus":            "Statut RH",
	"HRRating":            "Note RH",
	"ComplexityRating":    "Complexité",
	"ImpactRating":        "Impact",
	"AutonomyRating":      "Autonomie",
	"Rating":              "Note",

	// Linkage
	"CompanyID": "Société",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: Ce champ est requis", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Minimum %s caractères", label, param)
		}
		return fmt.Sprintf("%s: Minimum %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Maximum %s caractères", label, param)
		}
		return fmt.Sprintf("%s: Maximum %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: Doit être parmi: %s", label, strings.ReplaceAll(param, " ", ", "))

	case "email":
		return fmt.Sprintf("%s: Format d'email invalide", label)

	case "valid_name":
		return fmt.Sprintf("%s: Seuls les lettres, espaces et tirets sont autorisés", label)

	case "valid_phone":
		return fmt.Sprintf("%s: Format de téléphone invalide (7 à 15 chiffres)", label)

	case "no_emoji":
		return fmt.Sprintf("%s: Les emojis ne sont pas autorisés", label)

	default:
		return fmt.Sprintf("%s: Validation échouée (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
