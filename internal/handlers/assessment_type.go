package handlers

import (
	"net/http"

	"assessment-backend/internal/dto"
	"assessment-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AssessmentTypeHandler struct {
	typeService *services.AssessmentTypeService
}

func NewAssessmentTypeHandler(typeService *services.AssessmentTypeService) *AssessmentTypeHandler {
	return &AssessmentTypeHandler{typeService: typeService}
}

// ListAssessmentTypes godoc
// @Summary      List assessment types
// @Tags         assessment-types
// @Produce      json
// @Security     BearerAuth
// @Param        skip query int false "Rows to skip"
// @Param        limit query int false "Max rows (default 100, max 500)"
// @Success      200 {array} AssessmentTypeRead
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/assessment-types [get]
func (h *AssessmentTypeHandler) ListAssessmentTypes(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	types, err := h.typeService.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModels(types, dto.AssessmentTypeFromModel))
}

// CreateAssessmentType godoc
// @Summary      Create an assessment type
// @Tags         assessment-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AssessmentTypeCreate true "Assessment type"
// @Success      201 {object} AssessmentTypeRead
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/assessment-types [post]
func (h *AssessmentTypeHandler) CreateAssessmentType(c *gin.Context) {
	var req dto.AssessmentTypeCreate
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.typeService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.AssessmentTypeFromModel(t))
}

// GetAssessmentType godoc
// @Summary      Get an assessment type
// @Tags         assessment-types
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Assessment type ID"
// @Success      200 {object} AssessmentTypeRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/assessment-types/{id} [get]
func (h *AssessmentTypeHandler) GetAssessmentType(c *gin.Context) {
	id, ok := parseID(c, "id", "assessment type")
	if !ok {
		return
	}
	t, err := h.typeService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AssessmentTypeFromModel(t))
}

// UpdateAssessmentType godoc
// @Summary      Rename an assessment type
// @Tags         assessment-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Assessment type ID"
// @Param        request body dto.AssessmentTypeCreate true "Assessment type"
// @Success      200 {object} AssessmentTypeRead
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/assessment-types/{id} [put]
func (h *AssessmentTypeHandler) UpdateAssessmentType(c *gin.Context) {
	id, ok := parseID(c, "id", "assessment type")
	if !ok {
		return
	}
	var req dto.AssessmentTypeCreate
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.typeService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AssessmentTypeFromModel(t))
}

// DeleteAssessmentType godoc
// @Summary      Delete an assessment type
// @Description  Fails while assessments or user groups still reference the type
// @Tags         assessment-types
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Assessment type ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/assessment-types/{id} [delete]
func (h *AssessmentTypeHandler) DeleteAssessmentType(c *gin.Context) {
	id, ok := parseID(c, "id", "assessment type")
	if !ok {
		return
	}
	if err := h.typeService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "assessment type deleted"})
}
