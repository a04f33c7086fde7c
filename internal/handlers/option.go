package handlers

import (
	"net/http"

	"assessment-backend/internal/dto"
	"assessment-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type OptionHandler struct {
	optionService *services.OptionService
}

func NewOptionHandler(optionService *services.OptionService) *OptionHandler {
	return &OptionHandler{optionService: optionService}
}

// ListOptions godoc
// @Summary      List options
// @Tags         options
// @Produce      json
// @Security     BearerAuth
// @Param        option_set_id query int false "Only options of this option set"
// @Param        skip query int false "Rows to skip"
// @Param        limit query int false "Max rows (default 100, max 500)"
// @Success      200 {array} OptionRead
// @Router       /api/v1/options [get]
func (h *OptionHandler) ListOptions(c *gin.Context) {
	setID, ok := optionalQueryID(c, "option_set_id")
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}
	items, err := h.optionService.List(c.Request.Context(), setID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModels(items, dto.OptionFromModel))
}

// CreateOption godoc
// @Summary      Add an option to an option set
// @Description  score must not exceed the max_score of the option set's question
// @Tags         options
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.OptionCreate true "Option"
// @Success      201 {object} OptionRead
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/options [post]
func (h *OptionHandler) CreateOption(c *gin.Context) {
	var req dto.OptionCreate
	if !bindJSON(c, &req) {
		return
	}
	opt, err := h.optionService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OptionFromModel(opt))
}

// GetOption godoc
// @Summary      Get an option
// @Tags         options
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Option ID"
// @Success      200 {object} OptionRead
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/options/{id} [get]
func (h *OptionHandler) GetOption(c *gin.Context) {
	id, ok := parseID(c, "id", "option")
	if !ok {
		return
	}
	opt, err := h.optionService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OptionFromModel(opt))
}

// UpdateOption godoc
// @Summary      Update an option
// @Tags         options
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Option ID"
// @Param        request body dto.OptionUpdate true "Fields to change"
// @Success      200 {object} OptionRead
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/options/{id} [patch]
func (h *OptionHandler) UpdateOption(c *gin.Context) {
	id, ok := parseID(c, "id", "option")
	if !ok {
		return
	}
	var req dto.OptionUpdate
	if !bindJSON(c, &req) {
		return
	}
	opt, err := h.optionService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OptionFromModel(opt))
}

// DeleteOption godoc
// @Summary      Delete an option
// @Description  Fails once a response has chosen the option
// @Tags         options
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Option ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/options/{id} [delete]
func (h *OptionHandler) DeleteOption(c *gin.Context) {
	id, ok := parseID(c, "id", "option")
	if !ok {
		return
	}
	if err := h.optionService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "option deleted"})
}
