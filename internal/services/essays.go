package services

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"starlog/internal/models"
	"starlog/internal/store"
	"starlog/internal/utils"
)

const defaultEssayMood = "📝"

// EssayService 随笔，data/essays.json
type EssayService struct {
	file *store.JSONFile[[]models.Essay]
}

func NewEssayService(dataDir string) *EssayService {
	return &EssayService{
		file: store.NewJSONFile(filepath.Join(dataDir, "essays.json"), defaultEssays),
	}
}

// List 按日期倒序；读取失败返回空列表
func (s *EssayService) List() []models.Essay {
	essays, err := s.file.Load()
	if err != nil {
		log.Printf("[essays] 读取随笔失败: %v", err)
		return []models.Essay{}
	}
	if essays == nil {
		essays = []models.Essay{}
	}
	sort.SliceStable(essays, func(i, j int) bool {
		return parseTime(essays[i].Date).After(parseTime(essays[j].Date))
	})
	return essays
}

func (s *EssayService) Get(id string) (*models.Essay, error) {
	for _, e := range s.List() {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("%w: essay %s", ErrNotFound, id)
}

// EssayInput 创建随笔
type EssayInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
	Mood    string   `json:"mood"`
}

func (s *EssayService) Create(in EssayInput) (*models.Essay, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	now := nowISO()
	essay := models.Essay{
		ID:        utils.NewID(),
		Title:     title,
		Content:   in.Content,
		Date:      strings.TrimSpace(in.Date),
		Tags:      utils.NormalizeTags(in.Tags),
		Mood:      strings.TrimSpace(in.Mood),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if essay.Date == "" {
		essay.Date = today()
	}
	if essay.Mood == "" {
		essay.Mood = defaultEssayMood
	}

	err := s.file.Update(func(doc *[]models.Essay) error {
		*doc = append(*doc, essay)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &essay, nil
}

// Update 合并非空字段，ID 不可修改
func (s *EssayService) Update(id string, patch models.EssayPatch) (*models.Essay, error) {
	var updated *models.Essay
	err := s.file.Update(func(doc *[]models.Essay) error {
		for i := range *doc {
			e := &(*doc)[i]
			if e.ID != id {
				continue
			}
			if patch.Title != nil {
				if strings.TrimSpace(*patch.Title) == "" {
					return fmt.Errorf("%w: title cannot be empty", ErrValidation)
				}
				e.Title = strings.TrimSpace(*patch.Title)
			}
			if patch.Content != nil {
				e.Content = *patch.Content
			}
			if patch.Date != nil {
				e.Date = *patch.Date
			}
			if patch.Tags != nil {
				e.Tags = utils.NormalizeTags(*patch.Tags)
			}
			if patch.Mood != nil {
				e.Mood = *patch.Mood
			}
			e.UpdatedAt = nowISO()
			cp := *e
			updated = &cp
			return nil
		}
		return fmt.Errorf("%w: essay %s", ErrNotFound, id)
	})
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return updated, nil
}

func (s *EssayService) Delete(id string) error {
	err := s.file.Update(func(doc *[]models.Essay) error {
		for i := range *doc {
			if (*doc)[i].ID == id {
				*doc = append((*doc)[:i], (*doc)[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: essay %s", ErrNotFound, id)
	})
	return wrapStoreErr(err)
}

// Like 点赞数 +1，返回新的点赞数
func (s *EssayService) Like(id string) (int, error) {
	likes := 0
	err := s.file.Update(func(doc *[]models.Essay) error {
		for i := range *doc {
			if (*doc)[i].ID == id {
				(*doc)[i].Likes++
				likes = (*doc)[i].Likes
				return nil
			}
		}
		return fmt.Errorf("%w: essay %s", ErrNotFound, id)
	})
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	return likes, nil
}

// Tags 所有随笔标签，去重
func (s *EssayService) Tags() []string {
	var all []string
	for _, e := range s.List() {
		all = append(all, e.Tags...)
	}
	return utils.NormalizeTags(all)
}
