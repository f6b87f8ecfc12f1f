package minio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pricebook/go-backend/internal/cfg"
	"github.com/pricebook/go-backend/internal/domain"
	"github.com/pricebook/go-backend/internal/usecase"
	"github.com/pricebook/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

type fakeImageRepo struct {
	uploadErr error
	uploaded  []*domain.Image
}

func (f *fakeImageRepo) Upload(_ context.Context, image *domain.Image) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded = append(f.uploaded, image)
	return image.ObjectKey, nil
}

func (f *fakeImageRepo) Delete(context.Context, string) error { return nil }

func newTestInfra(repo *fakeImageRepo) *MinioInfrastructure {
	conf := &cfg.MinIOCfg{
		PublicEndpoint: "cdn.local:9000",
		BucketName:     "images",
		MaxImageSize:   1 << 20,
	}
	return NewMinioInfrastructure(repo, conf, nopLogger{}, context.Background())
}

func uploadReq(mime string, size int64) *usecase.UploadImageReq {
	return usecase.NewUploadImageReq([]byte("imagebytes"), mime, size, "photo")
}

// Сбой хранилища должен нести класс ErrUploadFailed до самого delivery.
func TestUploadImageClassifiesStoreFailure(t *testing.T) {
	repo := &fakeImageRepo{uploadErr: fmt.Errorf("connection refused")}

	_, err := newTestInfra(repo).UploadImage(context.Background(), uploadReq("image/png", 10))

	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrUploadFailed))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUploadImageValidationKeepsOwnClass(t *testing.T) {
	repo := &fakeImageRepo{}
	infra := newTestInfra(repo)

	_, err := infra.UploadImage(context.Background(), uploadReq("image/png", 2<<20))
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrFileTooLarge))
	assert.False(t, errors.Is(err, e.ErrUploadFailed))

	_, err = infra.UploadImage(context.Background(), uploadReq("text/plain", 10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrUnsupportedMediaType))
	assert.False(t, errors.Is(err, e.ErrUploadFailed))

	assert.Empty(t, repo.uploaded)
}

func TestUploadImageBuildsPublicURL(t *testing.T) {
	repo := &fakeImageRepo{}

	url, err := newTestInfra(repo).UploadImage(context.Background(), uploadReq("image/webp", 10))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://cdn.local:9000/images/products/"), url)
	assert.True(t, strings.HasSuffix(url, ".webp"), url)
	require.Len(t, repo.uploaded, 1)
}
