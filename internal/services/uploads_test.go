package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starlog/internal/storage"
)

// 最小的合法 PNG 文件头
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0}

func newUploadFixture(t *testing.T, max int64) (*UploadService, string) {
	t.Helper()
	root := t.TempDir()
	svc := NewUploadService(storage.NewLocalStorage(root), max)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc, root
}

func TestSaveCarouselImage(t *testing.T) {
	svc, root := newUploadFixture(t, 5<<20)

	url, err := svc.SaveCarouselImage(context.Background(), bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "/images/carousel_1700000000000.png", url)
	_, err = os.Stat(filepath.Join(root, "images", "carousel_1700000000000.png"))
	require.NoError(t, err)

	require.NoError(t, svc.RemoveLocal(url))
	_, err = os.Stat(filepath.Join(root, "images", "carousel_1700000000000.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadRejectsNonImages(t *testing.T) {
	svc, _ := newUploadFixture(t, 5<<20)

	_, err := svc.SaveCarouselImage(context.Background(), bytes.NewReader([]byte("#!/bin/sh\necho hi\n")))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SaveCarouselImage(context.Background(), bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUploadRejectsOversized(t *testing.T) {
	svc, _ := newUploadFixture(t, 16)

	_, err := svc.SaveCarouselImage(context.Background(), bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSaveUploadSanitizesKind(t *testing.T) {
	svc, _ := newUploadFixture(t, 5<<20)

	url, err := svc.SaveUpload(context.Background(), "../Avatar!", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/avatar/1700000000000.png", url)

	url, err = svc.SaveUpload(context.Background(), "", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/misc/1700000000000.png", url)
}

func TestRemoveLocalIgnoresForeignURLs(t *testing.T) {
	svc, _ := newUploadFixture(t, 5<<20)
	assert.NoError(t, svc.RemoveLocal("https://images.unsplash.com/x.png"))
}
