package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"starlog/internal/models"
	"starlog/internal/store"
	"starlog/internal/utils"
)

// ProjectService 项目列表存于 data/projects.json，详情正文存于 projects-content/<id>.md
type ProjectService struct {
	file       *store.JSONFile[[]models.Project]
	contentDir string
}

func NewProjectService(dataDir, contentDir string) *ProjectService {
	return &ProjectService{
		file:       store.NewJSONFile(filepath.Join(dataDir, "projects.json"), defaultProjects),
		contentDir: contentDir,
	}
}

// List 保持文件中的顺序
func (s *ProjectService) List() []models.Project {
	projects, err := s.file.Load()
	if err != nil {
		log.Printf("[projects] 读取项目失败: %v", err)
		return []models.Project{}
	}
	if projects == nil {
		return []models.Project{}
	}
	return projects
}

func (s *ProjectService) Featured() []models.Project {
	out := []models.Project{}
	for _, p := range s.List() {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func (s *ProjectService) Get(id string) (*models.Project, error) {
	for _, p := range s.List() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: project %s", ErrNotFound, id)
}

// ProjectInput 创建项目
type ProjectInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	GithubURL   string   `json:"githubUrl"`
	DemoURL     string   `json:"demoUrl"`
	Stars       int      `json:"stars"`
	Date        string   `json:"date"`
	Featured    bool     `json:"featured"`
}

func (s *ProjectService) Create(in ProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(in.Title)
	desc := strings.TrimSpace(in.Description)
	if title == "" || desc == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrValidation)
	}
	if in.Stars < 0 {
		return nil, fmt.Errorf("%w: stars cannot be negative", ErrValidation)
	}

	now := nowISO()
	p := models.Project{
		ID:          utils.NewID(),
		Title:       title,
		Description: desc,
		Image:       strings.TrimSpace(in.Image),
		Tags:        utils.NormalizeTags(in.Tags),
		GithubURL:   strings.TrimSpace(in.GithubURL),
		DemoURL:     strings.TrimSpace(in.DemoURL),
		Stars:       in.Stars,
		Date:        strings.TrimSpace(in.Date),
		Featured:    in.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Image == "" {
		p.Image = defaultProjectImage
	}
	if p.Date == "" {
		p.Date = today()
	}

	err := s.file.Update(func(doc *[]models.Project) error {
		*doc = append(*doc, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &p, nil
}

func (s *ProjectService) Update(id string, patch models.ProjectPatch) (*models.Project, error) {
	var updated *models.Project
	err := s.file.Update(func(doc *[]models.Project) error {
		for i := range *doc {
			p := &(*doc)[i]
			if p.ID != id {
				continue
			}
			if patch.Title != nil {
				if strings.TrimSpace(*patch.Title) == "" {
					return fmt.Errorf("%w: title cannot be empty", ErrValidation)
				}
				p.Title = strings.TrimSpace(*patch.Title)
			}
			if patch.Description != nil {
				p.Description = *patch.Description
			}
			if patch.Image != nil {
				p.Image = *patch.Image
			}
			if patch.Tags != nil {
				p.Tags = utils.NormalizeTags(*patch.Tags)
			}
			if patch.GithubURL != nil {
				p.GithubURL = *patch.GithubURL
			}
			if patch.DemoURL != nil {
				p.DemoURL = *patch.DemoURL
			}
			if patch.Stars != nil {
				p.Stars = *patch.Stars
			}
			if patch.Date != nil {
				p.Date = *patch.Date
			}
			if patch.Featured != nil {
				p.Featured = *patch.Featured
			}
			p.UpdatedAt = nowISO()
			cp := *p
			updated = &cp
			return nil
		}
		return fmt.Errorf("%w: project %s", ErrNotFound, id)
	})
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return updated, nil
}

// Delete 同时删除项目正文文件
func (s *ProjectService) Delete(id string) error {
	err := s.file.Update(func(doc *[]models.Project) error {
		for i := range *doc {
			if (*doc)[i].ID == id {
				*doc = append((*doc)[:i], (*doc)[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: project %s", ErrNotFound, id)
	})
	if err != nil {
		return wrapStoreErr(err)
	}
	if utils.IsSafeKey(id) {
		if err := store.RemoveFile(s.contentPath(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("[projects] 删除项目正文失败 %s: %v", id, err)
		}
	}
	return nil
}

func (s *ProjectService) Tags() []string {
	var all []string
	for _, p := range s.List() {
		all = append(all, p.Tags...)
	}
	return utils.NormalizeTags(all)
}

func (s *ProjectService) contentPath(id string) string {
	return filepath.Join(s.contentDir, id+".md")
}

// Content 项目正文，没有正文时返回 nil
func (s *ProjectService) Content(id string) (*models.ProjectContent, error) {
	if !utils.IsSafeKey(id) {
		return nil, fmt.Errorf("%w: invalid project id", ErrValidation)
	}
	data, err := os.ReadFile(s.contentPath(id))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		log.Printf("[projects] 读取项目正文失败 %s: %v", id, err)
		return nil, nil
	}
	body := utils.StripFrontMatter(string(data))
	return &models.ProjectContent{Content: body, HTML: utils.RenderMarkdown(body)}, nil
}

// UpdateContent 覆盖项目正文，项目必须存在
func (s *ProjectService) UpdateContent(id, content string) error {
	if !utils.IsSafeKey(id) {
		return fmt.Errorf("%w: invalid project id", ErrValidation)
	}
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := store.WriteFile(s.contentPath(id), []byte(content)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
