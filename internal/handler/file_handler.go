package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxsage/internal/service"
)

// FileHandler handles supporting document endpoints.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload handles POST /api/v1/filings/:id/files
// @Summary Upload a supporting document
// @Description Attach a document (PDF, JPG, PNG) such as a Form 16 scan to a filing
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Filing ID"
// @Param file formData file true "Document to upload (PDF, JPG, or PNG)"
// @Success 201 {object} APIResponse{data=domain.FileMeta}
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 413 {object} APIResponse "File too large"
// @Security BearerAuth
// @Router /filings/{id}/files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	meta, err := h.fileService.Upload(c.Request.Context(), service.FileUploadInput{
		FilingID:   filingID,
		UploadedBy: userID,
		File:       file,
		Header:     header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, meta)
}

// ListByFiling handles GET /api/v1/filings/:id/files
func (h *FileHandler) ListByFiling(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	files, total, err := h.fileService.ListByFiling(c.Request.Context(), userID, filingID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// DownloadURL handles GET /api/v1/files/:id/download
// Returns a short-lived presigned URL rather than proxying the object.
func (h *FileHandler) DownloadURL(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	fileID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.fileService.GetDownloadURL(c.Request.Context(), userID, fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"download_url": url})
}

// Delete handles DELETE /api/v1/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	fileID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), userID, fileID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "file deleted"})
}
