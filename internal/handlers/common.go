package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve read shapes in annotations.
type AssessmentTypeRead = dto.AssessmentTypeRead
type UserGroupRead = dto.UserGroupRead
type UserRead = dto.UserRead
type AssessmentRead = dto.AssessmentRead
type QuestionRead = dto.QuestionRead
type QuestionSetRead = dto.QuestionSetRead
type OptionSetRead = dto.OptionSetRead
type OptionRead = dto.OptionRead
type SubmissionRead = dto.SubmissionRead
type CurrentAssessment = dto.CurrentAssessment
type AuthResponse = dto.AuthResponse

// statusOf maps a service error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrReferenced):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func parseID(c *gin.Context, param, what string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + what + " id"})
		return 0, false
	}
	return uint(id), true
}

// optionalQueryID reads an optional positive id filter; absent means 0.
func optionalQueryID(c *gin.Context, key string) (uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + key})
		return 0, false
	}
	return uint(id), true
}

type pageQuery struct {
	Skip  int `form:"skip" binding:"min=0"`
	Limit int `form:"limit" binding:"min=0,max=500"`
}

func parsePage(c *gin.Context) (services.Page, bool) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return services.Page{}, false
	}
	return services.Page{Skip: q.Skip, Limit: q.Limit}, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}
