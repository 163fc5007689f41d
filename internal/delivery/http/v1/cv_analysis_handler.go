package v1

import (
	"net/http"

	"talentmatch-backend/internal/delivery/http/response"
	"talentmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CvAnalysisHandler struct {
	cvUC domain.CvAnalysisUsecase
}

func NewCvAnalysisHandler(r *gin.RouterGroup, cvUC domain.CvAnalysisUsecase) {
	handler := &CvAnalysisHandler{cvUC: cvUC}

	cv := r.Group("/cv-analysis")
	{
		cv.POST("/upload-analyze", handler.UploadAnalyze)
	}
}

// UploadAnalyze godoc
// @Summary      Analyze a CV document
// @Description  Extracts candidate name, contact, skills and experience from a CV. Every field of the result is best-effort and may be empty.
// @Tags         cv-analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CV document (.pdf/.docx/.doc/.rtf/.odt/.txt, max 10MB)"
// @Success      200   {object}  response.Response{data=domain.CvAnalysisResult}
// @Failure      400   {object}  response.Response
// @Router       /cv-analysis/upload-analyze [post]
// @Security     BearerAuth
func (h *CvAnalysisHandler) UploadAnalyze(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Aucun fichier reçu", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Le fichier n'a pas pu être lu", nil)
		return
	}
	defer file.Close()

	result, err := h.cvUC.UploadAnalyze(c, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CV analysé", result)
}
