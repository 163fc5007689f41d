package usecase

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync/atomic"

	"talentmatch-backend/internal/cv"
	"talentmatch-backend/internal/domain"
	"talentmatch-backend/pkg/apperror"
)

// MaxCvSizeBytes caps uploaded CV documents at 10MB
const MaxCvSizeBytes = 10 * 1024 * 1024

var cvExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".rtf":  true,
	".odt":  true,
	".txt":  true,
}

type cvAnalysisUsecase struct {
	parser *cv.Parser
	fileID atomic.Int64
}

func NewCvAnalysisUsecase(parser *cv.Parser) domain.CvAnalysisUsecase {
	return &cvAnalysisUsecase{parser: parser}
}

func (u *cvAnalysisUsecase) UploadAnalyze(ctx context.Context, filename string, size int64, file io.Reader) (*domain.CvAnalysisResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !cvExtensions[ext] {
		return nil, apperror.New(http.StatusBadRequest, apperror.CategoryFormatInvalid,
			"Format de CV non pris en charge. Formats acceptés: .pdf, .docx, .doc, .rtf, .odt, .txt", nil)
	}
	if size > MaxCvSizeBytes {
		return nil, apperror.New(http.StatusBadRequest, apperror.CategorySizeExceeded,
			"Taille de CV trop importante. Maximum: 10MB", nil)
	}

	parsed, err := u.parser.ParseFile(filename, io.LimitReader(file, MaxCvSizeBytes+1))
	if err != nil {
		return nil, apperror.New(http.StatusUnprocessableEntity, apperror.CategoryValidation,
			"Le CV n'a pas pu être analysé. Vérifiez le fichier et réessayez.", err)
	}

	return &domain.CvAnalysisResult{
		FileID:    u.fileID.Add(1),
		Candidate: cv.ExtractCandidate(parsed.FullText),
	}, nil
}
