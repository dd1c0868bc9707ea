package product

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/warrify/internal/infrastructure/storage/minio"
	"github.com/turtacn/warrify/pkg/errors"
)

// DefaultMaxUploadSize is 5 MiB.
const DefaultMaxUploadSize int64 = 5 << 20

// InvoiceURLPrefix is the API path invoice URLs are served under.
const InvoiceURLPrefix = "/api/invoices/"

// InvoiceStore is satisfied by *minio.InvoiceStore.
type InvoiceStore interface {
	Save(ctx context.Context, userID int64, ext, contentType string, size int64, r io.Reader) (string, error)
	PresignedURL(ctx context.Context, key string) (string, error)
}

// allowedInvoiceTypes maps accepted content types to a fallback extension.
var allowedInvoiceTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"image/bmp":       ".bmp",
	"application/pdf": ".pdf",
}

var (
	ErrNoFile          = errors.New(errors.ErrCodeInvoiceMissing, "No file uploaded")
	ErrFileTooLarge    = errors.New(errors.ErrCodeInvoiceTooLarge, "File too large. Maximum size is 5 MB.")
	ErrUnsupportedType = errors.New(errors.ErrCodeInvoiceTypeUnsupported, "Only image files (JPEG, PNG, WebP, GIF, BMP) and PDFs are allowed.")
	ErrStorageDisabled = errors.Unavailable("Invoice storage unavailable")
)

func (s *serviceImpl) UploadInvoice(ctx context.Context, userID int64, up Upload) (*UploadResult, error) {
	if up.Body == nil {
		prometheus.RecordInvoiceUpload(s.metrics, "rejected", 0)
		return nil, ErrNoFile
	}
	if up.Size > s.maxUploadSize {
		prometheus.RecordInvoiceUpload(s.metrics, "rejected", 0)
		return nil, ErrFileTooLarge
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(up.ContentType, ";", 2)[0]))
	fallbackExt, ok := allowedInvoiceTypes[contentType]
	if !ok {
		prometheus.RecordInvoiceUpload(s.metrics, "rejected", 0)
		return nil, ErrUnsupportedType
	}
	if s.invoices == nil {
		return nil, ErrStorageDisabled
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))
	if ext == "" || len(ext) > 6 {
		ext = fallbackExt
	}

	key, err := s.invoices.Save(ctx, userID, ext, contentType, up.Size, up.Body)
	if err != nil {
		prometheus.RecordInvoiceUpload(s.metrics, "failed", 0)
		s.logger.Error("invoice upload failed", logging.Int64("user_id", userID), logging.Err(err))
		return nil, err
	}
	prometheus.RecordInvoiceUpload(s.metrics, "stored", up.Size)

	return &UploadResult{URL: InvoiceURLPrefix + strings.TrimPrefix(key, minio.InvoicePrefix)}, nil
}

func (s *serviceImpl) InvoiceURL(ctx context.Context, userID int64, path string) (string, error) {
	if s.invoices == nil {
		return "", ErrStorageDisabled
	}
	key := minio.InvoicePrefix + strings.TrimPrefix(path, "/")
	owner, ok := minio.OwnerOf(key)
	if !ok || owner != userID {
		return "", minio.ErrObjectNotFound
	}
	return s.invoices.PresignedURL(ctx, key)
}
