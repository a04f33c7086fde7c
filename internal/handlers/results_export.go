package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"assessment-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ResultRow struct {
	Rank         int       `json:"rank" example:"1"`
	SubmissionID uint      `json:"submission_id" example:"12"`
	UserID       uint      `json:"user_id" example:"4"`
	Username     string    `json:"username" example:"jdoe"`
	Email        string    `json:"email" example:"jdoe@example.com"`
	TotalScore   int       `json:"total_score" example:"8"`
	MaxScore     int       `json:"max_score" example:"10"`
	Percent      float64   `json:"percent" example:"80"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

var resultColumns = []string{"rank", "submission_id", "user_id", "username", "email", "total_score", "max_score", "percent", "submitted_at"}

func resultRows(results []services.SubmissionResult) []ResultRow {
	rows := make([]ResultRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, ResultRow{
			Rank:         r.Rank,
			SubmissionID: r.SubmissionID,
			UserID:       r.UserID,
			Username:     r.Username,
			Email:        r.Email,
			TotalScore:   r.TotalScore,
			MaxScore:     r.MaxScore,
			Percent:      r.Percent,
			SubmittedAt:  r.SubmittedAt,
		})
	}
	return rows
}

// GetQuestionSetResults godoc
// @Summary      Ranked results of a question set
// @Description  Every submission against the set, best score first; ties go to the earlier submission
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question set ID"
// @Success      200 {array} ResultRow
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/question-sets/{id}/results [get]
func (h *SubmissionHandler) GetQuestionSetResults(c *gin.Context) {
	id, ok := parseID(c, "id", "question set")
	if !ok {
		return
	}
	results, err := h.submissionService.Results(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resultRows(results))
}

// ExportQuestionSetSubmissions godoc
// @Summary      Export submissions of a question set
// @Description  Ranked results as a CSV (default) or JSON attachment
// @Tags         submissions
// @Produce      text/csv
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question set ID"
// @Param        format query string false "csv or json" Enums(csv, json)
// @Success      200 {array} ResultRow
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/question-sets/{id}/submissions/export [get]
func (h *SubmissionHandler) ExportQuestionSetSubmissions(c *gin.Context) {
	id, ok := parseID(c, "id", "question set")
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "json" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "format must be csv or json"})
		return
	}

	results, err := h.submissionService.Results(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	rows := resultRows(results)
	filename := fmt.Sprintf("question_set_%d_submissions", id)

	if format == "json" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.json\"", filename))
		c.JSON(http.StatusOK, rows)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(resultColumns); err != nil {
		_ = c.Error(err)
		return
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Rank),
			strconv.FormatUint(uint64(r.SubmissionID), 10),
			strconv.FormatUint(uint64(r.UserID), 10),
			r.Username,
			r.Email,
			strconv.Itoa(r.TotalScore),
			strconv.Itoa(r.MaxScore),
			strconv.FormatFloat(r.Percent, 'f', 2, 64),
			r.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			_ = c.Error(err)
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = c.Error(err)
	}
}
