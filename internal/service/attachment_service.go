package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/baufin/baufin-backend/internal/repository/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxAttachmentSize  = 10 * 1024 * 1024 // 10MB
	PreviewWidth       = 400
	PreviewJPEGQuality = 80

	// PresignExpiry is how long a download link stays valid.
	PresignExpiry = 15 * time.Minute
)

var (
	ErrAttachmentTooLarge   = errors.New("file too large. Maximum size is 10MB")
	ErrAttachmentFormat     = errors.New("invalid format. Supported: PDF, JPEG, PNG")
	ErrAttachmentData       = errors.New("invalid file data")
	ErrStorageNotConfigured = errors.New("receipt storage not configured")
)

// AllowedAttachmentExtensions maps extensions to content types
var AllowedAttachmentExtensions = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename replaces everything outside a conservative character set
// so the original name can be used as an object key suffix.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(filepath.Base(name), "_")
}

// AttachmentMetadata describes one stored receipt
type AttachmentMetadata struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	PreviewPath string `json:"previewPath,omitempty"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// AttachmentService stores receipt files for expenses, installments and
// deliveries. Image receipts get a downscaled JPEG preview next to the
// original; PDFs are stored as-is.
type AttachmentService struct {
	storage storage.ReceiptRepository
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(storage storage.ReceiptRepository) *AttachmentService {
	return &AttachmentService{storage: storage}
}

// IsEnabled indicates whether uploads are supported (storage configured)
func (s *AttachmentService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// Upload validates and stores one receipt under the given entity. The
// returned paths are object keys, not URLs; download links are presigned on
// demand.
func (s *AttachmentService) Upload(ctx context.Context, entityType, entityID string, data []byte, filename string) (*AttachmentMetadata, error) {
	if !s.IsEnabled() {
		return nil, ErrStorageNotConfigured
	}
	if len(data) == 0 {
		return nil, ErrAttachmentData
	}
	if len(data) > MaxAttachmentSize {
		return nil, ErrAttachmentTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := AllowedAttachmentExtensions[ext]
	if !ok {
		return nil, ErrAttachmentFormat
	}

	id := uuid.NewString()
	safeName := SanitizeFilename(filename)
	objectPath := path.Join("receipts", entityType, entityID, id+"_"+safeName)

	stored, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(data), contentType, int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	meta := &AttachmentMetadata{
		ID:          id,
		Path:        stored,
		Filename:    safeName,
		ContentType: contentType,
		Size:        int64(len(data)),
	}

	if contentType != "application/pdf" {
		preview, err := s.uploadPreview(ctx, objectPath, data)
		if err != nil {
			// The original is already stored; roll it back so a broken
			// image never leaves a half-uploaded receipt behind.
			_ = s.storage.Delete(ctx, stored)
			return nil, err
		}
		meta.PreviewPath = preview
	}

	return meta, nil
}

func (s *AttachmentService) uploadPreview(ctx context.Context, objectPath string, data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrAttachmentData
	}

	preview := img
	if img.Bounds().Dx() > PreviewWidth {
		preview = imaging.Resize(img, PreviewWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, preview, imaging.JPEG, imaging.JPEGQuality(PreviewJPEGQuality)); err != nil {
		return "", fmt.Errorf("failed to encode preview: %w", err)
	}

	previewPath := strings.TrimSuffix(objectPath, filepath.Ext(objectPath)) + "_preview.jpg"
	return s.storage.Upload(ctx, previewPath, &buf, "image/jpeg", int64(buf.Len()))
}

// Delete removes a stored receipt and its preview, if any
func (s *AttachmentService) Delete(ctx context.Context, meta *AttachmentMetadata) error {
	if !s.IsEnabled() {
		return ErrStorageNotConfigured
	}
	if err := s.storage.Delete(ctx, meta.Path); err != nil {
		return err
	}
	if meta.PreviewPath != "" {
		return s.storage.Delete(ctx, meta.PreviewPath)
	}
	return nil
}

// DownloadURL returns a short-lived presigned URL for an object path
func (s *AttachmentService) DownloadURL(ctx context.Context, objectPath string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrStorageNotConfigured
	}
	return s.storage.GeneratePresignedURL(ctx, objectPath, PresignExpiry)
}
