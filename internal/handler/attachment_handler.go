package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/baufin/baufin-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AttachmentHandler handles receipt upload HTTP requests
type AttachmentHandler struct {
	attachmentService *service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachmentService *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// DeleteAttachmentRequest represents the delete attachment request body
type DeleteAttachmentRequest struct {
	Path        string `json:"path"`
	PreviewPath string `json:"previewPath"`
}

// DownloadURLResponse represents the presigned download URL response
type DownloadURLResponse struct {
	URL string `json:"url"`
}

var validAttachmentEntities = map[string]bool{
	"expenses":     true,
	"installments": true,
	"deliveries":   true,
}

// UploadAttachment handles POST /api/v1/attachments
func (h *AttachmentHandler) UploadAttachment(c echo.Context) error {
	if !h.attachmentService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt uploads are disabled (storage not configured)")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	entityType := c.FormValue("entityType")
	if !validAttachmentEntities[entityType] {
		return NewValidationError(c, "Invalid entity type", []ValidationError{
			{Field: "entityType", Message: "Must be one of: expenses, installments, deliveries"},
		})
	}
	entityID := c.FormValue("entityId")
	if entityID == "" {
		return NewValidationError(c, "Entity ID required", []ValidationError{
			{Field: "entityId", Message: "Entity ID is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	metadata, err := h.attachmentService.Upload(c.Request().Context(), entityType, entityID, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttachmentTooLarge):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "File too large. Maximum size is 10MB"},
			})
		case errors.Is(err, service.ErrAttachmentFormat):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid format. Supported: PDF, JPEG, PNG"},
			})
		case errors.Is(err, service.ErrAttachmentData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "File content is not valid"},
			})
		default:
			log.Error().Err(err).Str("entity_type", entityType).Str("entity_id", entityID).Msg("Failed to upload receipt")
			return NewInternalError(c, "Failed to upload receipt")
		}
	}

	log.Info().
		Str("attachment_id", metadata.ID).
		Str("entity_type", entityType).
		Str("entity_id", entityID).
		Msg("Receipt uploaded")

	return c.JSON(http.StatusCreated, metadata)
}

// DeleteAttachment handles DELETE /api/v1/attachments
func (h *AttachmentHandler) DeleteAttachment(c echo.Context) error {
	if !h.attachmentService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt deletion is disabled (storage not configured)")
	}

	var req DeleteAttachmentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Path == "" {
		return NewValidationError(c, "Object path required", []ValidationError{
			{Field: "path", Message: "Path is required"},
		})
	}

	meta := &service.AttachmentMetadata{Path: req.Path, PreviewPath: req.PreviewPath}
	if err := h.attachmentService.Delete(c.Request().Context(), meta); err != nil {
		log.Error().Err(err).Str("path", req.Path).Msg("Failed to delete receipt")
		return NewInternalError(c, "Failed to delete receipt")
	}

	log.Info().Str("path", req.Path).Msg("Receipt deleted")
	return c.NoContent(http.StatusNoContent)
}

// GetDownloadURL handles GET /api/v1/attachments/url
//
// The bucket is private; clients fetch receipts through short-lived
// presigned URLs.
func (h *AttachmentHandler) GetDownloadURL(c echo.Context) error {
	if !h.attachmentService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt downloads are disabled (storage not configured)")
	}

	objectPath := c.QueryParam("path")
	if objectPath == "" {
		return NewValidationError(c, "Object path required", []ValidationError{
			{Field: "path", Message: "Path is required"},
		})
	}

	url, err := h.attachmentService.DownloadURL(c.Request().Context(), objectPath)
	if err != nil {
		log.Error().Err(err).Str("path", objectPath).Msg("Failed to presign download URL")
		return NewInternalError(c, "Failed to create download URL")
	}

	return c.JSON(http.StatusOK, DownloadURLResponse{URL: url})
}
