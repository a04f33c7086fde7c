package handlers

import (
	"net/http"

	"assessment-backend/internal/dto"
	"assessment-backend/internal/services"
	"assessment-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type QuestionSetHandler struct {
	questionSetService *services.QuestionSetService
	events             ActivationPublisher
}

func NewQuestionSetHandler(questionSetService *services.QuestionSetService, events ActivationPublisher) *QuestionSetHandler {
	return &QuestionSetHandler{questionSetService: questionSetService, events: events}
}

// CreateQuestionSet godoc
// @Summary      Create a question set version
// @Description  Adds the next version for the assessment, linking the given questions in order. New versions start inactive.
// @Tags         question-sets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.QuestionSetCreate true "Question set"
// @Success      201 {object} QuestionSetRead
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/question-sets [post]
func (h *QuestionSetHandler) CreateQuestionSet(c *gin.Context) {
	var req dto.QuestionSetCreate
	if !bindJSON(c, &req) {
		return
	}
	qs, err := h.questionSetService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.QuestionSetFromModel(qs))
}

// GetQuestionSet godoc
// @Summary      Get a question set
// @Tags         question-sets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question set ID"
// @Success      200 {object} QuestionSetRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/question-sets/{id} [get]
func (h *QuestionSetHandler) GetQuestionSet(c *gin.Context) {
	id, ok := parseID(c, "id", "question set")
	if !ok {
		return
	}
	qs, err := h.questionSetService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QuestionSetFromModel(qs))
}

// DeleteQuestionSet godoc
// @Summary      Delete a question set
// @Description  Also removes its question links and every submission made against it
// @Tags         question-sets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question set ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/question-sets/{id} [delete]
func (h *QuestionSetHandler) DeleteQuestionSet(c *gin.Context) {
	id, ok := parseID(c, "id", "question set")
	if !ok {
		return
	}
	if err := h.questionSetService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "question set deleted"})
}

// ActivateQuestionSet godoc
// @Summary      Activate a question set version
// @Description  Makes this version the only active question set of its assessment
// @Tags         question-sets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question set ID"
// @Success      200 {object} QuestionSetRead
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/question-sets/{id}/activate [post]
func (h *QuestionSetHandler) ActivateQuestionSet(c *gin.Context) {
	id, ok := parseID(c, "id", "question set")
	if !ok {
		return
	}
	qs, err := h.questionSetService.Activate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.events.PublishActivation(ws.ActivationEvent{Kind: "question_set", ID: qs.ID, ScopeID: qs.AssessmentID, Version: qs.Version})
	c.JSON(http.StatusOK, dto.QuestionSetFromModel(qs))
}

// ListAssessmentQuestionSets godoc
// @Summary      Question set versions of an assessment
// @Description  Every version, newest first
// @Tags         question-sets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Assessment ID"
// @Success      200 {array} QuestionSetRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/assessments/{id}/question-sets [get]
func (h *QuestionSetHandler) ListAssessmentQuestionSets(c *gin.Context) {
	id, ok := parseID(c, "id", "assessment")
	if !ok {
		return
	}
	sets, err := h.questionSetService.ListByAssessment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModels(sets, dto.QuestionSetFromModel))
}

// GetActiveQuestionSet godoc
// @Summary      Active question set of an assessment
// @Tags         question-sets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Assessment ID"
// @Success      200 {object} QuestionSetRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/assessments/{id}/active-question-set [get]
func (h *QuestionSetHandler) GetActiveQuestionSet(c *gin.Context) {
	id, ok := parseID(c, "id", "assessment")
	if !ok {
		return
	}
	qs, err := h.questionSetService.Active(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if qs == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no active question set for this assessment"})
		return
	}
	c.JSON(http.StatusOK, dto.QuestionSetFromModel(qs))
}
