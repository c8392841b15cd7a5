package services

import (
	"fmt"
	"log"
	"path/filepath"

	"starlog/internal/models"
	"starlog/internal/store"
)

// AboutService “关于我”页面，data/about.json
type AboutService struct {
	file *store.JSONFile[models.About]
}

func NewAboutService(dataDir string) *AboutService {
	return &AboutService{file: store.NewJSONFile[models.About](filepath.Join(dataDir, "about.json"), nil)}
}

// Get 文件缺失或损坏时返回默认资料，已有字段覆盖默认值
func (s *AboutService) Get() models.About {
	about := defaultAbout()
	doc, err := s.file.Load()
	if err != nil {
		log.Printf("[about] 读取资料失败: %v", err)
		return about
	}
	for k, v := range doc {
		about[k] = v
	}
	return about
}

// Save 整体替换
func (s *AboutService) Save(about models.About) (models.About, error) {
	if about == nil {
		return nil, fmt.Errorf("%w: body must be an object", ErrValidation)
	}
	if name, ok := about["name"]; ok {
		if str, isStr := name.(string); !isStr || str == "" {
			return nil, fmt.Errorf("%w: name must be a non-empty string", ErrValidation)
		}
	}
	if err := s.file.Save(about); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return s.Get(), nil
}
