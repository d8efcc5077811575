package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxsage/internal/port"
	"taxsage/internal/service"
)

// CAHandler handles chartered accountant marketplace endpoints.
type CAHandler struct {
	caService service.CAService
}

// NewCAHandler creates a new CAHandler.
func NewCAHandler(caService service.CAService) *CAHandler {
	return &CAHandler{caService: caService}
}

// CreateMyProfile handles POST /api/v1/cas/me (CA role only)
func (h *CAHandler) CreateMyProfile(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CAProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	profile, err := h.caService.CreateProfile(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, profile)
}

// MyProfile handles GET /api/v1/cas/me (CA role only)
func (h *CAHandler) MyProfile(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	profile, err := h.caService.GetProfileByUser(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, profile)
}

// UpdateMyProfile handles PUT /api/v1/cas/me (CA role only)
func (h *CAHandler) UpdateMyProfile(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CAProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	profile, err := h.caService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, profile)
}

// SetAvailability handles PATCH /api/v1/cas/me/availability (CA role only)
func (h *CAHandler) SetAvailability(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "is_available is required")
		return
	}

	if err := h.caService.SetAvailability(c.Request.Context(), userID, *input.IsAvailable); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"is_available": *input.IsAvailable})
}

// List handles GET /api/v1/cas
// @Summary      Browse chartered accountants
// @Description  Lists CA profiles filtered by city, state, specialization, experience, and availability
// @Tags         cas
// @Produce      json
// @Param        city query string false "Filter by city"
// @Param        state query string false "Filter by state"
// @Param        specialization query string false "Filter by specialization substring"
// @Param        min_experience query int false "Minimum years of experience"
// @Param        available query bool false "Only available CAs"
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.CAProfile,meta=PagMeta}
// @Security     BearerAuth
// @Router       /cas [get]
func (h *CAHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	filters := port.CAProfileFilters{
		City:           c.Query("city"),
		State:          c.Query("state"),
		Specialization: c.Query("specialization"),
	}
	if v := c.Query("min_experience"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "min_experience must be a non-negative integer")
			return
		}
		filters.MinExperience = n
	}
	if v := c.Query("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "available must be true or false")
			return
		}
		filters.OnlyAvailable = b
	}

	profiles, total, err := h.caService.List(c.Request.Context(), filters, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, profiles, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/cas/:id
func (h *CAHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.caService.GetProfile(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, profile)
}
