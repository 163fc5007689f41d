package v1

import (
	"io"
	"net/http"
	"strconv"

	"talentmatch-backend/internal/delivery/http/response"
	"talentmatch-backend/internal/domain"
	"talentmatch-backend/internal/wizard"

	"github.com/gin-gonic/gin"
)

type WizardHandler struct {
	wizardUC domain.WizardUsecase
}

func NewWizardHandler(r *gin.RouterGroup, wizardUC domain.WizardUsecase) {
	handler := &WizardHandler{wizardUC: wizardUC}

	w := r.Group("/wizard")
	{
		w.POST("", handler.Start)
		w.GET("/catalog", handler.Catalog)
		w.GET("/:id", handler.Get)
		w.GET("/:id/summary", handler.Summary)
		w.PATCH("/:id/value", handler.SetValue)
		w.POST("/:id/entries/:list", handler.AppendEntry)
		w.DELETE("/:id/entries/:list/:index", handler.RemoveEntry)
		w.POST("/:id/next", handler.Next)
		w.POST("/:id/previous", handler.Previous)
		w.POST("/:id/save-exit", handler.SaveAndExit)
		w.POST("/:id/finalize", handler.Finalize)
		w.DELETE("/:id", handler.Cancel)
	}
}

// ============================================================================
// Views
// ============================================================================

type stepView struct {
	Index       int      `json:"index"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Fields      []string `json:"fields,omitempty"`
}

type sessionView struct {
	ID                  string                 `json:"id"`
	CompanyID           int64                  `json:"company_id"`
	Step                stepView               `json:"step"`
	Progress            string                 `json:"progress"`
	QualificationPane   string                 `json:"qualification_panel,omitempty"`
	QualificationFields []string               `json:"qualification_fields,omitempty"`
	State               domain.WizardFormState `json:"state"`
	AutoFilledFields    []string               `json:"auto_filled_fields,omitempty"`
	SavedConsultantID   *int64                 `json:"saved_consultant_id,omitempty"`
}

func newSessionView(session *domain.WizardSession) sessionView {
	current, total := wizard.Progress(session.CurrentStep)
	view := sessionView{
		ID:        session.ID,
		CompanyID: session.CompanyID,
		Step: stepView{
			Index:       int(session.CurrentStep),
			Name:        session.CurrentStep.String(),
			Title:       session.CurrentStep.Title(),
			Description: session.CurrentStep.Description(),
		},
		Progress:          "Étape " + strconv.Itoa(current) + " sur " + strconv.Itoa(total),
		State:             session.State,
		AutoFilledFields:  session.AutoFilledFields,
		SavedConsultantID: session.SavedConsultantID,
	}
	if panel, ok := wizard.PanelForStep(session.CurrentStep); ok {
		view.QualificationPane = string(panel)
		view.QualificationFields = wizard.PanelFields(panel)
	}
	return view
}

// ============================================================================
// Handlers
// ============================================================================

type startWizardRequest struct {
	CompanyID  int64                    `json:"company_id" binding:"required"`
	CvAnalysis *domain.CvAnalysisResult `json:"cv_analysis,omitempty"`
}

// Start godoc
// @Summary      Start a talent-creation session
// @Description  Create a wizard session, optionally prefilled from a CV analysis result
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        request  body      startWizardRequest  true  "Session parameters"
// @Success      201      {object}  response.Response{data=sessionView}
// @Failure      400      {object}  response.Response
// @Router       /wizard [post]
// @Security     BearerAuth
func (h *WizardHandler) Start(c *gin.Context) {
	var req startWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	session, err := h.wizardUC.Start(c, req.CompanyID, req.CvAnalysis)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Session de création démarrée", newSessionView(session))
}

// Catalog godoc
// @Summary      Wizard reference data
// @Description  Steps, skill categories, skill levels and suggested soft skills
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /wizard/catalog [get]
// @Security     BearerAuth
func (h *WizardHandler) Catalog(c *gin.Context) {
	steps := make([]stepView, 0, domain.TotalSteps)
	for _, s := range domain.ValidWizardSteps() {
		steps = append(steps, stepView{
			Index:       int(s),
			Name:        s.String(),
			Title:       s.Title(),
			Description: s.Description(),
			Fields:      wizard.FieldsForStep(s),
		})
	}

	response.Success(c, http.StatusOK, "Référentiel du formulaire", gin.H{
		"steps":             steps,
		"skill_categories":  wizard.SkillCategories,
		"skill_levels":      wizard.SkillLevels,
		"common_softskills": wizard.CommonSoftSkills,
	})
}

// Get godoc
// @Summary      Get a wizard session
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=sessionView}
// @Failure      404  {object}  response.Response
// @Router       /wizard/{id} [get]
// @Security     BearerAuth
func (h *WizardHandler) Get(c *gin.Context) {
	session, err := h.wizardUC.Get(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Session récupérée", newSessionView(session))
}

// Summary godoc
// @Summary      Summary recap of a session
// @Description  Aggregated read-only view shown by the final step
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=wizard.Summary}
// @Failure      404  {object}  response.Response
// @Router       /wizard/{id}/summary [get]
// @Security     BearerAuth
func (h *WizardHandler) Summary(c *gin.Context) {
	session, err := h.wizardUC.Get(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	container := wizard.Restore(session)
	response.Success(c, http.StatusOK, "Synthèse du profil", wizard.BuildSummary(container))
}

type setValueRequest struct {
	Path  string      `json:"path" binding:"required"`
	Value interface{} `json:"value"`
}

// SetValue godoc
// @Summary      Write a single form field
// @Description  Path-addressed write, e.g. "first_name" or "skills.2.hr_rating"
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "Session id"
// @Param        request  body      setValueRequest  true  "Field path and value"
// @Success      200      {object}  response.Response{data=sessionView}
// @Failure      400      {object}  response.Response
// @Router       /wizard/{id}/value [patch]
// @Security     BearerAuth
func (h *WizardHandler) SetValue(c *gin.Context) {
	var req setValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	session, err := h.wizardUC.SetValue(c, c.Param("id"), req.Path, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Champ mis à jour", newSessionView(session))
}

// AppendEntry godoc
// @Summary      Append a list entry
// @Description  Add a row to skills, projects or soft_skills
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Session id"
// @Param        list  path      string                  true  "List name"
// @Param        entry body      object                  true  "Entry payload"
// @Success      200   {object}  response.Response{data=sessionView}
// @Failure      400   {object}  response.Response
// @Router       /wizard/{id}/entries/{list} [post]
// @Security     BearerAuth
func (h *WizardHandler) AppendEntry(c *gin.Context) {
	var entry map[string]interface{}
	if err := c.ShouldBindJSON(&entry); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	session, err := h.wizardUC.AppendEntry(c, c.Param("id"), c.Param("list"), entry)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Entrée ajoutée", newSessionView(session))
}

// RemoveEntry godoc
// @Summary      Remove a list entry
// @Tags         wizard
// @Produce      json
// @Param        id     path      string  true  "Session id"
// @Param        list   path      string  true  "List name"
// @Param        index  path      int     true  "Row index"
// @Success      200    {object}  response.Response{data=sessionView}
// @Failure      400    {object}  response.Response
// @Router       /wizard/{id}/entries/{list}/{index} [delete]
// @Security     BearerAuth
func (h *WizardHandler) RemoveEntry(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Index invalide", nil)
		return
	}

	session, err := h.wizardUC.RemoveEntry(c, c.Param("id"), c.Param("list"), index)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Entrée supprimée", newSessionView(session))
}

// Next godoc
// @Summary      Advance to the next step
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=sessionView}
// @Failure      400  {object}  response.Response
// @Router       /wizard/{id}/next [post]
// @Security     BearerAuth
func (h *WizardHandler) Next(c *gin.Context) {
	session, err := h.wizardUC.Next(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Étape suivante", newSessionView(session))
}

// Previous godoc
// @Summary      Go back one step
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=sessionView}
// @Router       /wizard/{id}/previous [post]
// @Security     BearerAuth
func (h *WizardHandler) Previous(c *gin.Context) {
	session, err := h.wizardUC.Previous(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Étape précédente", newSessionView(session))
}

// SaveAndExit godoc
// @Summary      Save a draft and leave the wizard
// @Description  Persists a minimum consultant draft when first and last name are filled
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=sessionView}
// @Router       /wizard/{id}/save-exit [post]
// @Security     BearerAuth
func (h *WizardHandler) SaveAndExit(c *gin.Context) {
	session, err := h.wizardUC.SaveAndExit(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Brouillon sauvegardé", newSessionView(session))
}

// Finalize godoc
// @Summary      Submit the wizard
// @Description  Validates the whole form, uploads the optional photo, creates the consultant
// @Tags         wizard
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true   "Session id"
// @Param        photo  formData  file    false  "Profile photo (.jpg/.jpeg/.png, max 5MB)"
// @Success      201    {object}  response.Response{data=domain.FinalizeResult}
// @Failure      400    {object}  response.Response
// @Router       /wizard/{id}/finalize [post]
// @Security     BearerAuth
func (h *WizardHandler) Finalize(c *gin.Context) {
	var photo *domain.PhotoUpload

	if fileHeader, err := c.FormFile("photo"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "La photo n'a pas pu être lue", nil)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "La photo n'a pas pu être lue", nil)
			return
		}
		photo = &domain.PhotoUpload{Filename: fileHeader.Filename, Data: data}
	}

	result, err := h.wizardUC.Finalize(c, c.Param("id"), photo)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, result.Message, result)
}

// Cancel godoc
// @Summary      Abandon a wizard session
// @Tags         wizard
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response
// @Router       /wizard/{id} [delete]
// @Security     BearerAuth
func (h *WizardHandler) Cancel(c *gin.Context) {
	if err := h.wizardUC.Cancel(c, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Session annulée", nil)
}
