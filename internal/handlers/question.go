package handlers

import (
	"net/http"

	"assessment-backend/internal/dto"
	"assessment-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListQuestions godoc
// @Summary      List questions
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        skip query int false "Rows to skip"
// @Param        limit query int false "Max rows (default 100, max 500)"
// @Success      200 {array} QuestionRead
// @Router       /api/v1/questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	items, err := h.questionService.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModels(items, dto.QuestionFromModel))
}

// CreateQuestion godoc
// @Summary      Create a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.QuestionCreate true "Question"
// @Success      201 {object} QuestionRead
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req dto.QuestionCreate
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.questionService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.QuestionFromModel(q))
}

// GetQuestion godoc
// @Summary      Get a question
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} QuestionRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := parseID(c, "id", "question")
	if !ok {
		return
	}
	q, err := h.questionService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QuestionFromModel(q))
}

// UpdateQuestion godoc
// @Summary      Update a question
// @Description  max_score cannot drop below the score of any existing option of the question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Param        request body dto.QuestionUpdate true "Fields to change"
// @Success      200 {object} QuestionRead
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [patch]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := parseID(c, "id", "question")
	if !ok {
		return
	}
	var req dto.QuestionUpdate
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.questionService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QuestionFromModel(q))
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Description  Fails while option sets, question sets or responses still reference it
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := parseID(c, "id", "question")
	if !ok {
		return
	}
	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}

// ListQuestionSetQuestions godoc
// @Summary      Questions of a question set
// @Description  Questions linked to the set that have at least one option set, in set order
// @Tags         question-sets
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question set ID"
// @Success      200 {array} QuestionRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/question-sets/{id}/questions [get]
func (h *QuestionHandler) ListQuestionSetQuestions(c *gin.Context) {
	id, ok := parseID(c, "id", "question set")
	if !ok {
		return
	}
	items, err := h.questionService.ListByQuestionSet(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModels(items, dto.QuestionFromModel))
}
