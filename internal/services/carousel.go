package services

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"starlog/internal/models"
	"starlog/internal/store"
	"starlog/internal/utils"
)

// ImageRemover 删除本地上传的图片
type ImageRemover interface {
	RemoveLocal(publicURL string) error
}

// CarouselService 首页轮播配置，data/carousel-config.json
type CarouselService struct {
	file   *store.JSONFile[[]models.CarouselItem]
	images ImageRemover
}

// NewCarouselService images 可为 nil，此时删除条目不清理图片
func NewCarouselService(dataDir string, images ImageRemover) *CarouselService {
	return &CarouselService{
		file:   store.NewJSONFile(filepath.Join(dataDir, "carousel-config.json"), defaultCarousel),
		images: images,
	}
}

func (s *CarouselService) List() []models.CarouselItem {
	items, err := s.file.Load()
	if err != nil {
		log.Printf("[carousel] 读取轮播配置失败: %v", err)
		return []models.CarouselItem{}
	}
	if items == nil {
		return []models.CarouselItem{}
	}
	return items
}

func (s *CarouselService) Add(src, alt, title string) (*models.CarouselItem, error) {
	item := models.CarouselItem{
		ID:    utils.NewID(),
		Src:   strings.TrimSpace(src),
		Alt:   strings.TrimSpace(alt),
		Title: strings.TrimSpace(title),
	}
	if item.Src == "" || item.Alt == "" || item.Title == "" {
		return nil, fmt.Errorf("%w: src, alt and title are required", ErrValidation)
	}
	err := s.file.Update(func(doc *[]models.CarouselItem) error {
		*doc = append(*doc, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &item, nil
}

func (s *CarouselService) Update(id string, patch models.CarouselPatch) (*models.CarouselItem, error) {
	var updated *models.CarouselItem
	err := s.file.Update(func(doc *[]models.CarouselItem) error {
		for i := range *doc {
			it := &(*doc)[i]
			if it.ID != id {
				continue
			}
			if patch.Src != nil {
				it.Src = strings.TrimSpace(*patch.Src)
			}
			if patch.Alt != nil {
				it.Alt = strings.TrimSpace(*patch.Alt)
			}
			if patch.Title != nil {
				it.Title = strings.TrimSpace(*patch.Title)
			}
			if it.Src == "" || it.Alt == "" || it.Title == "" {
				return fmt.Errorf("%w: src, alt and title cannot be empty", ErrValidation)
			}
			cp := *it
			updated = &cp
			return nil
		}
		return fmt.Errorf("%w: carousel item %s", ErrNotFound, id)
	})
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return updated, nil
}

// Delete 删除条目；图片是本站 /images/ 下的上传文件时一并删除
func (s *CarouselService) Delete(id string) error {
	var removed models.CarouselItem
	err := s.file.Update(func(doc *[]models.CarouselItem) error {
		for i := range *doc {
			if (*doc)[i].ID == id {
				removed = (*doc)[i]
				*doc = append((*doc)[:i], (*doc)[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: carousel item %s", ErrNotFound, id)
	})
	if err != nil {
		return wrapStoreErr(err)
	}

	if s.images != nil && strings.HasPrefix(removed.Src, "/images/") && !isSeedImage(removed.Src) {
		if err := s.images.RemoveLocal(removed.Src); err != nil {
			log.Printf("[carousel] 删除图片失败 %s: %v", removed.Src, err)
		}
	}
	return nil
}

func isSeedImage(src string) bool {
	for _, it := range defaultCarousel() {
		if it.Src == src {
			return true
		}
	}
	return false
}
