package minio

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/warrify/internal/config"
	apperrors "github.com/turtacn/warrify/pkg/errors"
)

func newTestStore(t *testing.T) (*MockObjectAPI, *InvoiceStore) {
	api := new(MockObjectAPI)
	t.Cleanup(func() { api.AssertExpectations(t) })
	return api, NewInvoiceStore(NewClientWithAPI(api, config.MinIOConfig{Bucket: "inv"}, nil))
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey(12, ".PDF")
	assert.True(t, strings.HasPrefix(key, "invoices/12/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotEqual(t, key, ObjectKey(12, ".pdf"))

	owner, ok := OwnerOf(key)
	assert.True(t, ok)
	assert.Equal(t, int64(12), owner)
}

func TestOwnerOf(t *testing.T) {
	tests := []struct {
		key   string
		owner int64
		ok    bool
	}{
		{"invoices/1/9f1c.pdf", 1, true},
		{"invoices/abc/9f1c.pdf", 0, false},
		{"invoices/0/9f1c.pdf", 0, false},
		{"invoices/1/", 0, false},
		{"invoices/1/a/b.pdf", 0, false},
		{"invoices/1/../2/x.pdf", 0, false},
		{"other/1/x.pdf", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			owner, ok := OwnerOf(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.owner, owner)
		})
	}
}

func TestSave(t *testing.T) {
	api, store := newTestStore(t)
	body := strings.NewReader("%PDF-1.4")

	api.On("PutObject", mock.Anything, "inv", mock.MatchedBy(func(k string) bool {
		return strings.HasPrefix(k, "invoices/3/") && strings.HasSuffix(k, ".pdf")
	}), body, int64(8), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
		return o.ContentType == "application/pdf" && o.UserMetadata["user-id"] == "3"
	})).Return(minio.UploadInfo{Size: 8}, nil)

	key, err := store.Save(context.Background(), 3, ".pdf", "application/pdf", 8, body)
	require.NoError(t, err)
	owner, ok := OwnerOf(key)
	assert.True(t, ok)
	assert.Equal(t, int64(3), owner)
}

func TestSave_Failure(t *testing.T) {
	api, store := newTestStore(t)
	api.On("PutObject", mock.Anything, "inv", mock.Anything, mock.Anything, int64(1), mock.Anything).
		Return(minio.UploadInfo{}, errors.New("503"))

	_, err := store.Save(context.Background(), 3, ".png", "image/png", 1, strings.NewReader("x"))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeServiceUnavailable))
}

func TestPresignedURL(t *testing.T) {
	api, store := newTestStore(t)
	key := "invoices/1/9f1c.pdf"
	signed, _ := url.Parse("http://minio:9000/inv/invoices/1/9f1c.pdf?X-Amz-Signature=abc")

	api.On("StatObject", mock.Anything, "inv", key, minio.StatObjectOptions{}).Return(minio.ObjectInfo{Key: key}, nil)
	api.On("PresignedGetObject", mock.Anything, "inv", key, store.Expiry(), mock.MatchedBy(func(v url.Values) bool {
		return v.Get("response-content-disposition") == `inline; filename="9f1c.pdf"`
	})).Return(signed, nil)

	got, err := store.PresignedURL(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, signed.String(), got)
}

func TestPresignedURL_NotFound(t *testing.T) {
	api, store := newTestStore(t)
	api.On("StatObject", mock.Anything, "inv", "invoices/1/x.pdf", minio.StatObjectOptions{}).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

	_, err := store.PresignedURL(context.Background(), "invoices/1/x.pdf")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	api, store := newTestStore(t)
	api.On("RemoveObject", mock.Anything, "inv", "invoices/1/x.pdf", minio.RemoveObjectOptions{}).Return(nil)
	assert.NoError(t, store.Delete(context.Background(), "invoices/1/x.pdf"))
}
