package handlers

import (
	"net/http"

	"assessment-backend/internal/dto"
	"assessment-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService     *services.UserService
	deliveryService *services.DeliveryService
}

func NewUserHandler(userService *services.UserService, deliveryService *services.DeliveryService) *UserHandler {
	return &UserHandler{userService: userService, deliveryService: deliveryService}
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        group_id query int false "Only users of this group"
// @Param        skip query int false "Rows to skip"
// @Param        limit query int false "Max rows (default 100, max 500)"
// @Success      200 {array} UserRead
// @Router       /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	groupID, ok := optionalQueryID(c, "group_id")
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}
	users, err := h.userService.List(c.Request.Context(), groupID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModels(users, dto.UserFromModel))
}

// CreateUser godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UserCreate true "User"
// @Success      201 {object} UserRead
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.UserCreate
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.UserFromModel(u))
}

// GetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} UserRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	u, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(u))
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Only the fields present in the body are changed
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Param        request body dto.UserUpdate true "Fields to change"
// @Success      200 {object} UserRead
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	var req dto.UserUpdate
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(u))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Also removes the user's submissions and their responses
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "user deleted"})
}

// GetCurrentAssessment godoc
// @Summary      Current assessment of a user
// @Description  Resolves the user's group, its assessment type, the active assessment, its active question set and each question's active option set
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} CurrentAssessment
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/users/{id}/current-assessment [get]
func (h *UserHandler) GetCurrentAssessment(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	cur, err := h.deliveryService.CurrentForUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	qs := dto.QuestionSetFromModel(cur.QuestionSet)
	for i := range qs.Questions {
		if set, ok := cur.OptionSets[qs.Questions[i].ID]; ok {
			read := dto.OptionSetFromModel(set)
			qs.Questions[i].ActiveOptionSet = &read
		}
	}

	c.JSON(http.StatusOK, dto.CurrentAssessment{
		User:        dto.UserFromModel(cur.User),
		Assessment:  dto.AssessmentFromModel(cur.Assessment),
		QuestionSet: qs,
		MaxScore:    cur.MaxScore,
	})
}
