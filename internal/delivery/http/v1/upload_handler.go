package v1

import (
	"io"
	"net/http"
	"path"
	"strings"

	"talentmatch-backend/internal/delivery/http/response"
	"talentmatch-backend/pkg/storage"
	"talentmatch-backend/pkg/upload"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler serves direct image uploads for profile photos. Validation
// runs entirely before the storage call; images are recompressed to JPEG
// before being stored.
type UploadHandler struct {
	store     *storage.Client
	validator *upload.Validator
	maxPixels int
}

func NewUploadHandler(r *gin.RouterGroup, store *storage.Client, validator *upload.Validator, maxPixels int) {
	handler := &UploadHandler{
		store:     store,
		validator: validator,
		maxPixels: maxPixels,
	}

	r.POST("/upload", handler.Upload)
	r.DELETE("/upload/*path", handler.Delete)
}

// Upload godoc
// @Summary      Upload an image
// @Description  Validates extension, size and content, compresses and stores the image
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "Image file (.jpg/.jpeg/.png, max 5MB)"
// @Param        folder  formData  string  false  "Target folder (default photos)"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /upload [post]
// @Security     BearerAuth
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Aucun fichier reçu", nil)
		return
	}

	if vErr := h.validator.Validate(fileHeader.Filename, fileHeader.Size); vErr != nil {
		response.Error(c, http.StatusBadRequest, vErr.Message, gin.H{"category": vErr.Type})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Le fichier n'a pas pu être lu", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Le fichier n'a pas pu être lu", nil)
		return
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if vErr := h.validator.ValidateContent(fileHeader.Filename, head); vErr != nil {
		response.Error(c, http.StatusBadRequest, vErr.Message, gin.H{"category": vErr.Type})
		return
	}

	if compressed, err := storage.CompressImage(data, h.maxPixels, 85); err == nil {
		data = compressed
	}

	folder := c.PostForm("folder")
	if folder == "" {
		folder = "photos"
	}
	folder = strings.Trim(path.Clean(folder), "/")
	key := folder + "/" + uuid.NewString() + ".jpg"

	url, err := h.store.Upload(c, key, data, "image/jpeg")
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Fichier téléchargé", gin.H{"url": url, "path": key})
}

// Delete godoc
// @Summary      Delete an uploaded file
// @Tags         upload
// @Produce      json
// @Param        path  path      string  true  "Object path"
// @Success      200   {object}  response.Response
// @Router       /upload/{path} [delete]
// @Security     BearerAuth
func (h *UploadHandler) Delete(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("path"), "/")
	if key == "" || strings.Contains(key, "..") {
		response.Error(c, http.StatusBadRequest, "Chemin invalide", nil)
		return
	}

	if err := h.store.Delete(c, key); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Fichier supprimé", nil)
}
