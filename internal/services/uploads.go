package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"starlog/internal/storage"
)

var (
	imageTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	}
	mediaTypes = map[string]string{
		"video/mp4":  ".mp4",
		"video/webm": ".webm",
	}
	uploadDirInvalid = regexp.MustCompile(`[^a-z0-9_-]+`)
)

// UploadService 校验上传内容并交给存储后端
type UploadService struct {
	backend  storage.Uploader
	maxBytes int64
	now      func() time.Time
}

func NewUploadService(backend storage.Uploader, maxBytes int64) *UploadService {
	return &UploadService{backend: backend, maxBytes: maxBytes, now: time.Now}
}

// read 读取至多 maxBytes，超出时返回 ErrValidation
func (s *UploadService) read(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read upload: %v", ErrValidation, err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d MB", ErrValidation, s.maxBytes>>20)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrValidation)
	}
	return data, nil
}

func (s *UploadService) save(ctx context.Context, dir, prefix string, data []byte, allowed ...map[string]string) (string, error) {
	mt := mimetype.Detect(data)
	ext := ""
	for _, set := range allowed {
		for m, e := range set {
			if mt.Is(m) {
				ext = e
			}
		}
	}
	if ext == "" {
		return "", fmt.Errorf("%w: unsupported file type %s", ErrValidation, mt.String())
	}

	key := dir + "/" + prefix + strconv.FormatInt(s.now().UnixMilli(), 10) + ext
	contentType := strings.SplitN(mt.String(), ";", 2)[0]
	url, err := s.backend.Save(ctx, key, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	log.Printf("[upload] 保存 %s (%s, %d bytes)", key, contentType, len(data))
	return url, nil
}

// SaveCarouselImage 保存到 images/carousel_<ts>.<ext>
func (s *UploadService) SaveCarouselImage(ctx context.Context, r io.Reader) (string, error) {
	data, err := s.read(r)
	if err != nil {
		return "", err
	}
	return s.save(ctx, "images", "carousel_", data, imageTypes)
}

// SaveUpload 通用上传，保存到 uploads/<kind>/<ts>.<ext>，允许图片和视频
func (s *UploadService) SaveUpload(ctx context.Context, kind string, r io.Reader) (string, error) {
	dir := uploadDirInvalid.ReplaceAllString(strings.ToLower(strings.TrimSpace(kind)), "")
	if dir == "" {
		dir = "misc"
	}
	data, err := s.read(r)
	if err != nil {
		return "", err
	}
	return s.save(ctx, "uploads/"+dir, "", data, imageTypes, mediaTypes)
}

// RemoveLocal 删除之前上传的文件，URL 不属于当前后端时忽略
func (s *UploadService) RemoveLocal(url string) error {
	key, ok := s.backend.KeyFromURL(url)
	if !ok {
		return nil
	}
	return s.backend.Delete(context.Background(), key)
}
