package handlers

import (
	"net/http"

	"assessment-backend/internal/dto"
	"assessment-backend/internal/services"
	"assessment-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type OptionSetHandler struct {
	optionSetService *services.OptionSetService
	events           ActivationPublisher
}

func NewOptionSetHandler(optionSetService *services.OptionSetService, events ActivationPublisher) *OptionSetHandler {
	return &OptionSetHandler{optionSetService: optionSetService, events: events}
}

// CreateOptionSet godoc
// @Summary      Create an option set version
// @Description  Adds the next version for the question with its options. Every score must lie within the question's max_score.
// @Tags         option-sets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.OptionSetCreate true "Option set"
// @Success      201 {object} OptionSetRead
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/option-sets [post]
func (h *OptionSetHandler) CreateOptionSet(c *gin.Context) {
	var req dto.OptionSetCreate
	if !bindJSON(c, &req) {
		return
	}
	set, err := h.optionSetService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OptionSetFromModel(set))
}

// GetOptionSet godoc
// @Summary      Get an option set
// @Tags         option-sets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Option set ID"
// @Success      200 {object} OptionSetRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/option-sets/{id} [get]
func (h *OptionSetHandler) GetOptionSet(c *gin.Context) {
	id, ok := parseID(c, "id", "option set")
	if !ok {
		return
	}
	set, err := h.optionSetService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OptionSetFromModel(set))
}

// DeleteOptionSet godoc
// @Summary      Delete an option set
// @Description  Fails while the set still has options
// @Tags         option-sets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Option set ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/option-sets/{id} [delete]
func (h *OptionSetHandler) DeleteOptionSet(c *gin.Context) {
	id, ok := parseID(c, "id", "option set")
	if !ok {
		return
	}
	if err := h.optionSetService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "option set deleted"})
}

// ActivateOptionSet godoc
// @Summary      Activate an option set version
// @Description  Makes this version the only active option set of its question
// @Tags         option-sets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Option set ID"
// @Success      200 {object} OptionSetRead
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/option-sets/{id}/activate [post]
func (h *OptionSetHandler) ActivateOptionSet(c *gin.Context) {
	id, ok := parseID(c, "id", "option set")
	if !ok {
		return
	}
	set, err := h.optionSetService.Activate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.events.PublishActivation(ws.ActivationEvent{Kind: "option_set", ID: set.ID, ScopeID: set.QuestionID, Version: set.Version})
	c.JSON(http.StatusOK, dto.OptionSetFromModel(set))
}

// ListQuestionOptionSets godoc
// @Summary      Option set versions of a question
// @Description  Every version, newest first
// @Tags         option-sets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {array} OptionSetRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id}/option-sets [get]
func (h *OptionSetHandler) ListQuestionOptionSets(c *gin.Context) {
	id, ok := parseID(c, "id", "question")
	if !ok {
		return
	}
	sets, err := h.optionSetService.ListByQuestion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModels(sets, dto.OptionSetFromModel))
}

// GetActiveOptionSet godoc
// @Summary      Active option set of a question
// @Tags         option-sets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} OptionSetRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id}/active-option-set [get]
func (h *OptionSetHandler) GetActiveOptionSet(c *gin.Context) {
	id, ok := parseID(c, "id", "question")
	if !ok {
		return
	}
	set, err := h.optionSetService.Active(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if set == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no active option set for this question"})
		return
	}
	c.JSON(http.StatusOK, dto.OptionSetFromModel(set))
}
