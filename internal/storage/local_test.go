package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root)
	ctx := context.Background()

	url, err := s.Save(ctx, "images/a.png", "image/png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)
	assert.Equal(t, "/images/a.png", url)

	data, err := os.ReadFile(filepath.Join(root, "images", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	key, ok := s.KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "images/a.png", key)

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key), "deleting twice is fine")
	_, err = os.Stat(filepath.Join(root, "images", "a.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageRejectsBadKeys(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	for _, key := range []string{"", "/etc/passwd", "../x.png", "images/../../x", "a//b"} {
		_, err := s.Save(context.Background(), key, "image/png", strings.NewReader("x"), 1)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}

	_, ok := s.KeyFromURL("https://cdn.example.com/a.png")
	assert.False(t, ok)
}
