package upload

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// ErrorType identifies a client-side upload validation failure.
// Both types are blocking: a file that fails validation never reaches
// the storage backend.
type ErrorType string

const (
	FormatInvalid ErrorType = "FORMAT_INVALID"
	SizeExceeded  ErrorType = "SIZE_EXCEEDED"
	UploadFailed  ErrorType = "UPLOAD_FAILED"
)

// Error is a structured upload validation error
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Default photo constraints
const (
	DefaultMaxSizeMB = 5
)

// DefaultImageExtensions is the default extension allow-list for profile photos
var DefaultImageExtensions = []string{".jpg", ".jpeg", ".png"}

// Validator checks a candidate file against an extension allow-list and a
// size ceiling before any storage call. Extension is authoritative over the
// declared MIME type; content sniffing backs it so a renamed binary cannot
// slip through.
type Validator struct {
	maxSizeBytes int64
	extensions   map[string]bool
}

// NewValidator builds a validator with the given ceiling (in MB) and
// extension allow-list. Zero/empty arguments fall back to the defaults.
func NewValidator(maxSizeMB int64, extensions []string) *Validator {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	if len(extensions) == 0 {
		extensions = DefaultImageExtensions
	}
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}
	return &Validator{
		maxSizeBytes: maxSizeMB * 1024 * 1024,
		extensions:   allowed,
	}
}

// MaxSizeBytes returns the configured size ceiling
func (v *Validator) MaxSizeBytes() int64 {
	return v.maxSizeBytes
}

// AllowedExtensions returns the allow-list for error messages
func (v *Validator) AllowedExtensions() []string {
	exts := make([]string, 0, len(v.extensions))
	for _, e := range DefaultImageExtensions {
		if v.extensions[e] {
			exts = append(exts, e)
		}
	}
	for ext := range v.extensions {
		found := false
		for _, e := range exts {
			if e == ext {
				found = true
				break
			}
		}
		if !found {
			exts = append(exts, ext)
		}
	}
	return exts
}

// Validate checks filename extension and size. A file of exactly the
// ceiling is accepted; ceiling+1 is rejected. Returns nil when valid.
func (v *Validator) Validate(filename string, size int64) *Error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !v.extensions[ext] {
		return &Error{
			Type: FormatInvalid,
			Message: fmt.Sprintf("Format d'image non pris en charge. Formats acceptés: %s",
				strings.Join(v.AllowedExtensions(), ", ")),
		}
	}

	if size > v.maxSizeBytes {
		return &Error{
			Type: SizeExceeded,
			Message: fmt.Sprintf("Taille d'image trop importante. Maximum: %dMB",
				v.maxSizeBytes/(1024*1024)),
		}
	}

	return nil
}

// ValidateContent sniffs the leading bytes and rejects files whose real
// type does not match the extension allow-list, regardless of the
// declared MIME type. Pass the first 512 bytes (or the whole file if
// smaller).
func (v *Validator) ValidateContent(filename string, head []byte) *Error {
	if err := v.Validate(filename, 0); err != nil {
		return err
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return &Error{
			Type:    FormatInvalid,
			Message: "Format d'image non pris en charge. Le type du fichier n'a pas pu être déterminé.",
		}
	}

	// .jpg and .jpeg are the same type
	ext := strings.ToLower(filepath.Ext(filename))
	sniffed := "." + kind.Extension
	if ext != sniffed && !(ext == ".jpg" && sniffed == ".jpeg") && !(ext == ".jpeg" && sniffed == ".jpg") {
		return &Error{
			Type:    FormatInvalid,
			Message: fmt.Sprintf("Format d'image non pris en charge. Le contenu (%s) ne correspond pas à l'extension (%s).", sniffed, ext),
		}
	}

	return nil
}
