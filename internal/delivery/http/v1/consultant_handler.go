package v1

import (
	"net/http"
	"strconv"
	"strings"

	"talentmatch-backend/internal/delivery/http/response"
	"talentmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ConsultantHandler struct {
	consultantUC domain.ConsultantUsecase
}

func NewConsultantHandler(r *gin.RouterGroup, consultantUC domain.ConsultantUsecase) {
	handler := &ConsultantHandler{consultantUC: consultantUC}

	consultants := r.Group("/consultants")
	{
		consultants.POST("", handler.Create)
		consultants.GET("", handler.List)
		consultants.GET("/:id", handler.Get)
		consultants.PUT("/:id", handler.Update)
		consultants.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Create a consultant
// @Description  Direct creation endpoint, also used by the wizard submission mapper
// @Tags         consultants
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ConsultantCreate  true  "Consultant payload"
// @Success      201      {object}  response.Response{data=domain.Consultant}
// @Failure      400      {object}  response.Response
// @Router       /consultants [post]
// @Security     BearerAuth
func (h *ConsultantHandler) Create(c *gin.Context) {
	var payload domain.ConsultantCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	consultant, err := h.consultantUC.Create(c, &payload)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Le profil consultant a été créé avec succès", consultant)
}

// List godoc
// @Summary      List consultants
// @Tags         consultants
// @Produce      json
// @Param        search  query     string  false  "Name or title search"
// @Param        status  query     string  false  "Comma-separated availability statuses"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Param        offset  query     int     false  "Page offset"
// @Success      200     {object}  response.Response{data=[]domain.Consultant}
// @Router       /consultants [get]
// @Security     BearerAuth
func (h *ConsultantHandler) List(c *gin.Context) {
	filters := domain.ConsultantFilters{
		Search: c.Query("search"),
		Limit:  atoiDefault(c.Query("limit"), 50),
		Offset: atoiDefault(c.Query("offset"), 0),
	}
	if statuses := c.Query("status"); statuses != "" {
		for _, s := range strings.Split(statuses, ",") {
			filters.Statuses = append(filters.Statuses, domain.AvailabilityStatus(strings.TrimSpace(s)))
		}
	}

	consultants, err := h.consultantUC.List(c, filters)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Consultants récupérés", consultants)
}

// Get godoc
// @Summary      Get a consultant
// @Tags         consultants
// @Produce      json
// @Param        id   path      int  true  "Consultant id"
// @Success      200  {object}  response.Response{data=domain.Consultant}
// @Failure      404  {object}  response.Response
// @Router       /consultants/{id} [get]
// @Security     BearerAuth
func (h *ConsultantHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Identifiant invalide", nil)
		return
	}

	consultant, err := h.consultantUC.Get(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Consultant récupéré", consultant)
}

// Update godoc
// @Summary      Update a consultant
// @Tags         consultants
// @Accept       json
// @Produce      json
// @Param        id       path      int                      true  "Consultant id"
// @Param        request  body      domain.ConsultantCreate  true  "Consultant payload"
// @Success      200      {object}  response.Response{data=domain.Consultant}
// @Failure      404      {object}  response.Response
// @Router       /consultants/{id} [put]
// @Security     BearerAuth
func (h *ConsultantHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Identifiant invalide", nil)
		return
	}

	var payload domain.ConsultantCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	consultant, err := h.consultantUC.Update(c, id, &payload)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Consultant mis à jour", consultant)
}

// Delete godoc
// @Summary      Delete a consultant
// @Tags         consultants
// @Produce      json
// @Param        id   path      int  true  "Consultant id"
// @Success      200  {object}  response.Response
// @Router       /consultants/{id} [delete]
// @Security     BearerAuth
func (h *ConsultantHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Identifiant invalide", nil)
		return
	}

	if err := h.consultantUC.Delete(c, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Consultant supprimé", nil)
}

func atoiDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
