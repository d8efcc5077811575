package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxsage/internal/domain"
	"taxsage/internal/service"
)

// ReviewHandler handles CA review request endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Request handles POST /api/v1/reviews
// @Summary      Request a CA review
// @Description  Asks an available CA to review a submitted filing
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body service.RequestReviewInput true "Filing and CA to request"
// @Success      201 {object} APIResponse{data=domain.ReviewRequest}
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /reviews [post]
func (h *ReviewHandler) Request(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.RequestReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	req, err := h.reviewService.Request(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, req)
}

// ListMine handles GET /api/v1/reviews
// Lists review requests raised by the authenticated taxpayer.
func (h *ReviewHandler) ListMine(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	reqs, total, err := h.reviewService.ListForTaxpayer(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, reqs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListAssigned handles GET /api/v1/reviews/assigned (CA role only)
// Lists review requests assigned to the authenticated CA, optionally by status.
func (h *ReviewHandler) ListAssigned(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	var status domain.ReviewStatus
	if v := c.Query("status"); v != "" {
		status = domain.ReviewStatus(v)
		if !status.Valid() {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status must be one of: pending, accepted, rejected, completed")
			return
		}
	}

	reqs, total, err := h.reviewService.ListForCA(c.Request.Context(), userID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, reqs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Accept handles POST /api/v1/reviews/:id/accept (CA role only)
func (h *ReviewHandler) Accept(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reqID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	req, err := h.reviewService.Accept(c.Request.Context(), userID, reqID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, req)
}

// Reject handles POST /api/v1/reviews/:id/reject (CA role only)
func (h *ReviewHandler) Reject(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reqID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	req, err := h.reviewService.Reject(c.Request.Context(), userID, reqID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, req)
}

// Complete handles POST /api/v1/reviews/:id/complete (CA role only)
func (h *ReviewHandler) Complete(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reqID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.CompleteReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	req, err := h.reviewService.Complete(c.Request.Context(), userID, reqID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, req)
}

// Filing handles GET /api/v1/reviews/:id/filing (CA role only)
// Gives the assigned CA read access to the filing under review.
func (h *ReviewHandler) Filing(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reqID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	filing, err := h.reviewService.FilingForReview(c.Request.Context(), userID, reqID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, filing)
}
