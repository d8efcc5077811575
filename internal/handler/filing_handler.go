package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxsage/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FilingHandler handles the ITR filing wizard and export endpoints.
type FilingHandler struct {
	filingService service.FilingService
	reportService service.ReportService
}

// NewFilingHandler creates a new FilingHandler.
func NewFilingHandler(filingService service.FilingService, reportService service.ReportService) *FilingHandler {
	return &FilingHandler{filingService: filingService, reportService: reportService}
}

// Create handles POST /api/v1/filings
// @Summary      Start a new filing draft
// @Tags         filings
// @Accept       json
// @Produce      json
// @Param        request body service.CreateFilingInput true "Assessment year and optional regime"
// @Success      201 {object} APIResponse{data=domain.Filing}
// @Failure      400 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /filings [post]
func (h *FilingHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateFilingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	filing, err := h.filingService.CreateDraft(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, filing)
}

// List handles GET /api/v1/filings
func (h *FilingHandler) List(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	filings, total, err := h.filingService.ListByUser(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, filings, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/filings/:id
func (h *FilingHandler) GetByID(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	filing, err := h.filingService.GetByID(c.Request.Context(), userID, filingID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, filing)
}

// UpdateInput handles PUT /api/v1/filings/:id
// Saves wizard progress. Only draft filings accept updates.
func (h *FilingHandler) UpdateInput(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateFilingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	filing, err := h.filingService.UpdateInput(c.Request.Context(), userID, filingID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, filing)
}

// Compute handles GET /api/v1/filings/:id/computation
// @Summary      Compute tax for a filing
// @Description  Aggregates income and deductions and runs the slab computation for the filing's regime
// @Tags         filings
// @Produce      json
// @Param        id path string true "Filing ID"
// @Success      200 {object} APIResponse{data=service.ComputationResult}
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /filings/{id}/computation [get]
func (h *FilingHandler) Compute(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.filingService.Compute(c.Request.Context(), userID, filingID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Validate handles POST /api/v1/filings/:id/validate
// Runs every validation rule against the filing input and stores the report.
func (h *FilingHandler) Validate(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.filingService.Validate(c.Request.Context(), userID, filingID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// ExportITR handles GET /api/v1/filings/:id/itr
// @Summary      Export the ITR-1 JSON document
// @Description  Transforms the filing into the ITR-1 schema; fails if validation errors remain
// @Tags         filings
// @Produce      json
// @Param        id path string true "Filing ID"
// @Success      200 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Security     BearerAuth
// @Router       /filings/{id}/itr [get]
func (h *FilingHandler) ExportITR(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.filingService.ExportITR(c.Request.Context(), userID, filingID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Submit handles POST /api/v1/filings/:id/submit
func (h *FilingHandler) Submit(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	filing, err := h.filingService.Submit(c.Request.Context(), userID, filingID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, filing)
}

// MarkFiled handles POST /api/v1/filings/:id/file
func (h *FilingHandler) MarkFiled(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	filing, err := h.filingService.MarkFiled(c.Request.Context(), userID, filingID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, filing)
}

// Delete handles DELETE /api/v1/filings/:id
func (h *FilingHandler) Delete(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.filingService.Delete(c.Request.Context(), userID, filingID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "filing deleted"})
}

// ExportWorkbook handles GET /api/v1/filings/:id/export
// Streams the filing's computation as an xlsx workbook.
func (h *FilingHandler) ExportWorkbook(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.reportService.FilingWorkbook(c.Request.Context(), userID, filingID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ExportCSV handles GET /api/v1/filings/export/csv
// Streams every filing of the user as CSV rows.
func (h *FilingHandler) ExportCSV(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="filings.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	if err := h.reportService.FilingsCSV(c.Request.Context(), userID, c.Writer); err != nil {
		// Headers are already written; all we can do is log and cut the stream.
		requestID, _ := c.Get("request_id")
		log.Printf("[%v] csv export: %v", requestID, err)
	}
}
