package domain

import (
	"context"
	"io"
)

// ============================================================================
// CV Analysis
// ============================================================================

// CvCandidate is the candidate block of a CV analysis result. Any of the
// sub-fields may be empty; consumers must treat every field as best-effort.
type CvCandidate struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Skills     []Skill      `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

// CvAnalysisResult is returned by POST /v1/cv-analysis/upload-analyze and
// consumed by the wizard prefill adapter.
type CvAnalysisResult struct {
	FileID    int64       `json:"fileId"`
	Candidate CvCandidate `json:"candidate"`
}

type CvAnalysisUsecase interface {
	UploadAnalyze(ctx context.Context, filename string, size int64, file io.Reader) (*CvAnalysisResult, error)
}
