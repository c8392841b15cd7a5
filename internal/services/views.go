package services

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"starlog/internal/models"
	"starlog/internal/store"
)

// DefaultPopularLimit 热门文章默认条数
const DefaultPopularLimit = 10

// ViewService 阅读量统计，全部数据保存在 data/views.json
type ViewService struct {
	file *store.JSONFile[models.ViewsData]
}

func NewViewService(dataDir string) *ViewService {
	return &ViewService{
		file: store.NewJSONFile[models.ViewsData](filepath.Join(dataDir, "views.json"), nil),
	}
}

// RecordView 同一访客只计一次，返回当前阅读量
func (s *ViewService) RecordView(slug, visitor string) (int, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" || visitor == "" {
		return 0, fmt.Errorf("%w: slug and visitor are required", ErrValidation)
	}

	count := 0
	err := s.file.Update(func(doc *models.ViewsData) error {
		if *doc == nil {
			*doc = models.ViewsData{}
		}
		stats, ok := (*doc)[slug]
		if !ok || stats == nil {
			stats = &models.ViewStats{Slug: slug, UniqueVisitors: []string{}}
			(*doc)[slug] = stats
		}
		normalizeStats(slug, stats)

		if containsString(stats.UniqueVisitors, visitor) {
			count = stats.Count
			return store.ErrNoChange
		}
		stats.UniqueVisitors = append(stats.UniqueVisitors, visitor)
		stats.Count = len(stats.UniqueVisitors)
		stats.LastUpdated = nowISO()
		count = stats.Count
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return count, nil
}

// load 读取失败时降级为空数据
func (s *ViewService) load() models.ViewsData {
	doc, err := s.file.Load()
	if err != nil {
		log.Printf("[views] 读取阅读量失败: %v", err)
		return models.ViewsData{}
	}
	if doc == nil {
		return models.ViewsData{}
	}
	for slug, stats := range doc {
		if stats == nil {
			delete(doc, slug)
			continue
		}
		normalizeStats(slug, stats)
	}
	return doc
}

// GetViewCount 未记录过的文章返回 0
func (s *ViewService) GetViewCount(slug string) int {
	slug = strings.TrimSpace(slug)
	if stats, ok := s.load()[slug]; ok {
		return stats.Count
	}
	return 0
}

// GetAllViews 全部统计数据
func (s *ViewService) GetAllViews() models.ViewsData {
	return s.load()
}

// GetPopular 按阅读量降序，limit <= 0 时取默认值
func (s *ViewService) GetPopular(limit int) []models.SlugCount {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	data := s.load()
	list := make([]models.SlugCount, 0, len(data))
	for _, stats := range data {
		list = append(list, models.SlugCount{Slug: stats.Slug, Count: stats.Count})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].Slug < list[j].Slug
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}

// GetTotalViews 所有文章阅读量之和
func (s *ViewService) GetTotalViews() int {
	total := 0
	for _, stats := range s.load() {
		total += stats.Count
	}
	return total
}

func normalizeStats(slug string, stats *models.ViewStats) {
	if stats.Slug == "" {
		stats.Slug = slug
	}
	stats.UniqueVisitors = dedupe(stats.UniqueVisitors)
	stats.Count = len(stats.UniqueVisitors)
}
