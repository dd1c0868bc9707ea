package minio

import (
	"context"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

// InvoicePrefix is the key prefix of every stored invoice.
const InvoicePrefix = "invoices/"

var ErrObjectNotFound = errors.New(errors.ErrCodeNotFound, "Invoice not found")

// InvoiceStore keeps invoice files under invoices/{userID}/{uuid}{ext}.
type InvoiceStore struct {
	client *Client
}

func NewInvoiceStore(client *Client) *InvoiceStore {
	return &InvoiceStore{client: client}
}

// ObjectKey builds a fresh key for a file owned by userID.
func ObjectKey(userID int64, ext string) string {
	return InvoicePrefix + strconv.FormatInt(userID, 10) + "/" + uuid.NewString() + strings.ToLower(ext)
}

// OwnerOf extracts the owning user id from an invoice key.
func OwnerOf(key string) (int64, bool) {
	rest, ok := strings.CutPrefix(key, InvoicePrefix)
	if !ok {
		return 0, false
	}
	owner, file, ok := strings.Cut(rest, "/")
	if !ok || file == "" || strings.Contains(file, "/") || path.Clean(key) != key {
		return 0, false
	}
	id, err := strconv.ParseInt(owner, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Save streams r into a new object for userID and returns its key.
func (s *InvoiceStore) Save(ctx context.Context, userID int64, ext, contentType string, size int64, r io.Reader) (string, error) {
	key := ObjectKey(userID, ext)
	info, err := s.client.api.PutObject(ctx, s.client.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"user-id": strconv.FormatInt(userID, 10)},
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeServiceUnavailable, "Failed to store invoice")
	}
	s.client.logger.Info("invoice stored",
		logging.Int64("user_id", userID),
		logging.String("key", key),
		logging.Int64("size", info.Size))
	return key, nil
}

// PresignedURL returns a time-limited download URL for key.
func (s *InvoiceStore) PresignedURL(ctx context.Context, key string) (string, error) {
	if _, err := s.client.api.StatObject(ctx, s.client.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", ErrObjectNotFound
		}
		return "", errors.Wrap(err, errors.ErrCodeServiceUnavailable, "Failed to read invoice")
	}

	params := url.Values{}
	params.Set("response-content-disposition", "inline; filename=\""+path.Base(key)+"\"")
	u, err := s.client.api.PresignedGetObject(ctx, s.client.bucket, key, s.client.presignExpiry, params)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeServiceUnavailable, "Failed to sign invoice URL")
	}
	return u.String(), nil
}

// Delete removes key. A missing object is not an error.
func (s *InvoiceStore) Delete(ctx context.Context, key string) error {
	if err := s.client.api.RemoveObject(ctx, s.client.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "Failed to delete invoice")
	}
	return nil
}

// Expiry is the lifetime of presigned URLs.
func (s *InvoiceStore) Expiry() time.Duration { return s.client.presignExpiry }
