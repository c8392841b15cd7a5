package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"starlog/internal/store"
)

// LocalStorage 保存到 public 目录，由静态文件服务直接对外提供
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

func (s *LocalStorage) Save(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := store.WriteFile(filepath.Join(s.root, filepath.FromSlash(key)), data); err != nil {
		return "", err
	}
	return "/" + key, nil
}

// Delete 文件不存在不算错误
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := store.RemoveFile(filepath.Join(s.root, filepath.FromSlash(key))); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStorage) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, "/") {
		return "", false
	}
	key, err := cleanKey(strings.TrimPrefix(url, "/"))
	if err != nil {
		return "", false
	}
	return key, true
}
