package handlers

import (
	"net/http"

	"assessment-backend/internal/dto"
	"assessment-backend/internal/services"
	"assessment-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	assessmentService *services.AssessmentService
	events            ActivationPublisher
}

func NewAssessmentHandler(assessmentService *services.AssessmentService, events ActivationPublisher) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService, events: events}
}

// ListAssessments godoc
// @Summary      List assessments
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Param        type_id query int false "Only assessments of this type"
// @Param        skip query int false "Rows to skip"
// @Param        limit query int false "Max rows (default 100, max 500)"
// @Success      200 {array} AssessmentRead
// @Router       /api/v1/assessments [get]
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	typeID, ok := optionalQueryID(c, "type_id")
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}
	items, err := h.assessmentService.List(c.Request.Context(), typeID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModels(items, dto.AssessmentFromModel))
}

// CreateAssessment godoc
// @Summary      Create an assessment version
// @Description  Adds the next version for the type. New versions start inactive.
// @Tags         assessments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AssessmentCreate true "Assessment"
// @Success      201 {object} AssessmentRead
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/assessments [post]
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req dto.AssessmentCreate
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.assessmentService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.AssessmentFromModel(a))
}

// GetAssessment godoc
// @Summary      Get an assessment
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Assessment ID"
// @Success      200 {object} AssessmentRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id, ok := parseID(c, "id", "assessment")
	if !ok {
		return
	}
	a, err := h.assessmentService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AssessmentFromModel(a))
}

// UpdateAssessment godoc
// @Summary      Update an assessment
// @Description  Changes title or description. is_active cannot be written here; use the activate endpoint.
// @Tags         assessments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Assessment ID"
// @Param        request body dto.AssessmentUpdate true "Fields to change"
// @Success      200 {object} AssessmentRead
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/assessments/{id} [patch]
func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	id, ok := parseID(c, "id", "assessment")
	if !ok {
		return
	}
	var req dto.AssessmentUpdate
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.assessmentService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AssessmentFromModel(a))
}

// DeleteAssessment godoc
// @Summary      Delete an assessment
// @Description  Fails while question sets still reference the assessment
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Assessment ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/assessments/{id} [delete]
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	id, ok := parseID(c, "id", "assessment")
	if !ok {
		return
	}
	if err := h.assessmentService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "assessment deleted"})
}

// ActivateAssessment godoc
// @Summary      Activate an assessment version
// @Description  Makes this version the only active assessment of its type
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Assessment ID"
// @Success      200 {object} AssessmentRead
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/assessments/{id}/activate [post]
func (h *AssessmentHandler) ActivateAssessment(c *gin.Context) {
	id, ok := parseID(c, "id", "assessment")
	if !ok {
		return
	}
	a, err := h.assessmentService.Activate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.events.PublishActivation(ws.ActivationEvent{Kind: "assessment", ID: a.ID, ScopeID: a.TypeID, Version: a.Version})
	c.JSON(http.StatusOK, dto.AssessmentFromModel(a))
}

// GetActiveAssessment godoc
// @Summary      Active assessment of a type
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Assessment type ID"
// @Success      200 {object} AssessmentRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/assessment-types/{id}/active-assessment [get]
func (h *AssessmentHandler) GetActiveAssessment(c *gin.Context) {
	typeID, ok := parseID(c, "id", "assessment type")
	if !ok {
		return
	}
	a, err := h.assessmentService.Active(c.Request.Context(), typeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no active assessment for this type"})
		return
	}
	c.JSON(http.StatusOK, dto.AssessmentFromModel(a))
}

// ListAssessmentVersions godoc
// @Summary      Assessment versions of a type
// @Description  Every version of the type, newest first
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Assessment type ID"
// @Success      200 {array} AssessmentRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/assessment-types/{id}/assessments [get]
func (h *AssessmentHandler) ListAssessmentVersions(c *gin.Context) {
	typeID, ok := parseID(c, "id", "assessment type")
	if !ok {
		return
	}
	items, err := h.assessmentService.Versions(c.Request.Context(), typeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModels(items, dto.AssessmentFromModel))
}
