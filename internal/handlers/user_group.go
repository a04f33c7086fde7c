package handlers

import (
	"net/http"

	"assessment-backend/internal/dto"
	"assessment-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserGroupHandler struct {
	groupService *services.UserGroupService
}

func NewUserGroupHandler(groupService *services.UserGroupService) *UserGroupHandler {
	return &UserGroupHandler{groupService: groupService}
}

// ListUserGroups godoc
// @Summary      List user groups
// @Tags         user-groups
// @Produce      json
// @Security     BearerAuth
// @Param        skip query int false "Rows to skip"
// @Param        limit query int false "Max rows (default 100, max 500)"
// @Success      200 {array} UserGroupRead
// @Router       /api/v1/user-groups [get]
func (h *UserGroupHandler) ListUserGroups(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	groups, err := h.groupService.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModels(groups, dto.UserGroupFromModel))
}

// CreateUserGroup godoc
// @Summary      Create a user group
// @Tags         user-groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UserGroupCreate true "User group"
// @Success      201 {object} UserGroupRead
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/user-groups [post]
func (h *UserGroupHandler) CreateUserGroup(c *gin.Context) {
	var req dto.UserGroupCreate
	if !bindJSON(c, &req) {
		return
	}
	g, err := h.groupService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.UserGroupFromModel(g))
}

// GetUserGroup godoc
// @Summary      Get a user group
// @Tags         user-groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User group ID"
// @Success      200 {object} UserGroupRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/user-groups/{id} [get]
func (h *UserGroupHandler) GetUserGroup(c *gin.Context) {
	id, ok := parseID(c, "id", "user group")
	if !ok {
		return
	}
	g, err := h.groupService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserGroupFromModel(g))
}

// UpdateUserGroup godoc
// @Summary      Update a user group
// @Tags         user-groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User group ID"
// @Param        request body dto.UserGroupCreate true "User group"
// @Success      200 {object} UserGroupRead
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/user-groups/{id} [put]
func (h *UserGroupHandler) UpdateUserGroup(c *gin.Context) {
	id, ok := parseID(c, "id", "user group")
	if !ok {
		return
	}
	var req dto.UserGroupCreate
	if !bindJSON(c, &req) {
		return
	}
	g, err := h.groupService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserGroupFromModel(g))
}

// DeleteUserGroup godoc
// @Summary      Delete a user group
// @Description  Fails while users still belong to the group
// @Tags         user-groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User group ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/user-groups/{id} [delete]
func (h *UserGroupHandler) DeleteUserGroup(c *gin.Context) {
	id, ok := parseID(c, "id", "user group")
	if !ok {
		return
	}
	if err := h.groupService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "user group deleted"})
}
