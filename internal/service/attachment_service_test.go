package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/baufin/baufin-backend/internal/testutil"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Rechnung 2026-03.pdf", "Rechnung_2026-03.pdf"},
		{"Müller & Söhne.pdf", "M_ller___S_hne.pdf"},
		{"../../etc/passwd", "passwd"},
		{"plain.png", "plain.png"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAttachmentUpload_PDF(t *testing.T) {
	receiptRepo := testutil.NewMockReceiptRepository()
	attachmentService := NewAttachmentService(receiptRepo)

	data := []byte("%PDF-1.4 test content")
	meta, err := attachmentService.Upload(context.Background(), "expense", "e1", data, "Rechnung 42.pdf")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.HasPrefix(meta.Path, "receipts/expense/e1/") {
		t.Errorf("Unexpected object path: %s", meta.Path)
	}
	if !strings.HasSuffix(meta.Path, "_Rechnung_42.pdf") {
		t.Errorf("Expected sanitized filename suffix, got %s", meta.Path)
	}
	if meta.ContentType != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", meta.ContentType)
	}
	// PDFs get no preview
	if meta.PreviewPath != "" {
		t.Errorf("Expected no preview for PDF, got %s", meta.PreviewPath)
	}
	if len(receiptRepo.Objects) != 1 {
		t.Errorf("Expected 1 stored object, got %d", len(receiptRepo.Objects))
	}
}

func TestAttachmentUpload_ImageGetsPreview(t *testing.T) {
	receiptRepo := testutil.NewMockReceiptRepository()
	attachmentService := NewAttachmentService(receiptRepo)

	meta, err := attachmentService.Upload(context.Background(), "delivery", "d1", pngBytes(t, 800, 600), "photo.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if meta.PreviewPath == "" {
		t.Fatal("Expected preview path for image upload")
	}
	if !strings.HasSuffix(meta.PreviewPath, "_preview.jpg") {
		t.Errorf("Unexpected preview path: %s", meta.PreviewPath)
	}
	if len(receiptRepo.Objects) != 2 {
		t.Errorf("Expected original plus preview, got %d objects", len(receiptRepo.Objects))
	}
	if receiptRepo.Types[meta.PreviewPath] != "image/jpeg" {
		t.Errorf("Expected JPEG preview, got %s", receiptRepo.Types[meta.PreviewPath])
	}
}

func TestAttachmentUpload_Validation(t *testing.T) {
	attachmentService := NewAttachmentService(testutil.NewMockReceiptRepository())
	ctx := context.Background()

	if _, err := attachmentService.Upload(ctx, "expense", "e1", []byte("x"), "notes.txt"); err != ErrAttachmentFormat {
		t.Errorf("Expected ErrAttachmentFormat, got %v", err)
	}

	big := make([]byte, MaxAttachmentSize+1)
	if _, err := attachmentService.Upload(ctx, "expense", "e1", big, "big.pdf"); err != ErrAttachmentTooLarge {
		t.Errorf("Expected ErrAttachmentTooLarge, got %v", err)
	}

	if _, err := attachmentService.Upload(ctx, "expense", "e1", nil, "empty.pdf"); err != ErrAttachmentData {
		t.Errorf("Expected ErrAttachmentData, got %v", err)
	}

	// A .png that does not decode must not leave the original behind
	receiptRepo := testutil.NewMockReceiptRepository()
	attachmentService = NewAttachmentService(receiptRepo)
	if _, err := attachmentService.Upload(ctx, "expense", "e1", []byte("not an image"), "fake.png"); err != ErrAttachmentData {
		t.Errorf("Expected ErrAttachmentData, got %v", err)
	}
	if len(receiptRepo.Objects) != 0 {
		t.Errorf("Expected rollback of the original, got %d objects", len(receiptRepo.Objects))
	}
}

func TestAttachmentService_Disabled(t *testing.T) {
	attachmentService := NewAttachmentService(nil)

	if attachmentService.IsEnabled() {
		t.Error("Expected service without storage to be disabled")
	}
	if _, err := attachmentService.Upload(context.Background(), "expense", "e1", []byte("%PDF"), "a.pdf"); err != ErrStorageNotConfigured {
		t.Errorf("Expected ErrStorageNotConfigured, got %v", err)
	}
}

func TestAttachmentDownloadURL(t *testing.T) {
	receiptRepo := testutil.NewMockReceiptRepository()
	attachmentService := NewAttachmentService(receiptRepo)

	meta, err := attachmentService.Upload(context.Background(), "expense", "e1", []byte("%PDF-1.4"), "a.pdf")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	url, err := attachmentService.DownloadURL(context.Background(), meta.Path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(url, meta.Path) {
		t.Errorf("Expected URL to reference the object path, got %s", url)
	}
}
