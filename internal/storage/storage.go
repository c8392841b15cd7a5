package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrInvalidKey key 为空、是绝对路径或包含 ".."
var ErrInvalidKey = errors.New("storage: invalid object key")

// Uploader 上传文件的存储后端。key 形如 "images/carousel_1700000000000.png"
type Uploader interface {
	// Save 写入对象并返回可公开访问的 URL
	Save(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL 把 Save 返回的 URL 还原成 key，不属于本后端时返回 false
	KeyFromURL(url string) (string, bool)
}

func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return "", ErrInvalidKey
		}
	}
	return path.Clean(key), nil
}
