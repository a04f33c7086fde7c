package handlers

import (
	"net/http"

	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"
	"assessment-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// ListSubmissions godoc
// @Summary      List submissions
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        user_id query int false "Only submissions of this user"
// @Param        question_set_id query int false "Only submissions against this question set"
// @Param        skip query int false "Rows to skip"
// @Param        limit query int false "Max rows (default 100, max 500)"
// @Success      200 {array} SubmissionRead
// @Router       /api/v1/submissions [get]
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	userID, ok := optionalQueryID(c, "user_id")
	if !ok {
		return
	}
	qsID, ok := optionalQueryID(c, "question_set_id")
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}
	subs, err := h.submissionService.List(c.Request.Context(), userID, qsID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	maxScores := make(map[uint]int)
	result := make([]dto.SubmissionRead, 0, len(subs))
	for i := range subs {
		read := dto.SubmissionFromModel(&subs[i])
		maxScore, seen := maxScores[read.QuestionSetID]
		if !seen {
			maxScore, err = h.submissionService.MaxScore(c.Request.Context(), read.QuestionSetID)
			if err != nil {
				respondError(c, err)
				return
			}
			maxScores[read.QuestionSetID] = maxScore
		}
		read.MaxScore = maxScore
		result = append(result, read)
	}
	c.JSON(http.StatusOK, result)
}

// CreateSubmission godoc
// @Summary      Submit answers to a question set
// @Description  A user submits a question set once. Each response names a question of the set and an option of that question.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SubmissionCreate true "Submission"
// @Success      201 {object} SubmissionRead
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/submissions [post]
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req dto.SubmissionCreate
	if !bindJSON(c, &req) {
		return
	}
	sub, err := h.submissionService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondSubmission(c, http.StatusCreated, sub)
}

// GetSubmission godoc
// @Summary      Get a submission
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Submission ID"
// @Success      200 {object} SubmissionRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id, ok := parseID(c, "id", "submission")
	if !ok {
		return
	}
	sub, err := h.submissionService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondSubmission(c, http.StatusOK, sub)
}

// DeleteSubmission godoc
// @Summary      Delete a submission
// @Description  Also removes its responses
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Submission ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/submissions/{id} [delete]
func (h *SubmissionHandler) DeleteSubmission(c *gin.Context) {
	id, ok := parseID(c, "id", "submission")
	if !ok {
		return
	}
	if err := h.submissionService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "submission deleted"})
}

func (h *SubmissionHandler) respondSubmission(c *gin.Context, status int, sub *models.Submission) {
	read := dto.SubmissionFromModel(sub)
	maxScore, err := h.submissionService.MaxScore(c.Request.Context(), sub.QuestionSetID)
	if err != nil {
		respondError(c, err)
		return
	}
	read.MaxScore = maxScore
	c.JSON(status, read)
}
