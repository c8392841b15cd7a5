package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"starlog/internal/models"
	"starlog/internal/store"
	"starlog/internal/utils"
)

const (
	adminDefaultCategory = "AI技术"
	excerptLen           = 200
)

// PostService 读取 posts 目录下的 markdown 文章，列表结果带 TTL 缓存
type PostService struct {
	dir      string
	cacheTTL time.Duration
	cache    *utils.TTLCache
}

func NewPostService(dir string, cacheTTL time.Duration) *PostService {
	return &PostService{dir: dir, cacheTTL: cacheTTL, cache: utils.GetCache()}
}

// cachePrefix 同一文章目录下所有缓存键的公共前缀
func (s *PostService) cachePrefix() string {
	return "posts:" + s.dir + ":"
}

func (s *PostService) cacheKey(name string) string {
	return s.cachePrefix() + name
}

// invalidate 写入后清掉该目录下的列表和标签缓存
func (s *PostService) invalidate() {
	s.cache.DeletePrefix(s.cachePrefix())
}

func (s *PostService) path(slug string) string {
	return filepath.Join(s.dir, slug+".md")
}

// List 全部文章，按日期倒序
func (s *PostService) List() ([]models.Post, error) {
	if v, ok := s.cache.Get(s.cacheKey("list")); ok {
		return clonePosts(v.([]models.Post)), nil
	}

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []models.Post{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	posts := make([]models.Post, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		slug := strings.TrimSuffix(name, ".md")
		post, err := s.read(slug)
		if err != nil {
			log.Printf("[posts] 跳过无法解析的文章 %s: %v", name, err)
			continue
		}
		posts = append(posts, *post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		ti, tj := parseTime(posts[i].Date), parseTime(posts[j].Date)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return posts[i].Slug < posts[j].Slug
	})

	s.cache.Set(s.cacheKey("list"), posts, s.cacheTTL)
	return clonePosts(posts), nil
}

func (s *PostService) read(slug string) (*models.Post, error) {
	data, err := os.ReadFile(s.path(slug))
	if err != nil {
		return nil, err
	}
	meta, body, err := ParseFrontMatter(string(data))
	if err != nil {
		return nil, err
	}
	return &models.Post{PostMeta: meta, Slug: slug, Content: body}, nil
}

// Find 读取单篇文章原文
func (s *PostService) Find(slug string) (*models.Post, error) {
	if !utils.IsSafeKey(slug) {
		return nil, fmt.Errorf("%w: invalid slug", ErrValidation)
	}
	post, err := s.read(slug)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: post %s", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return post, nil
}

// Get 文章详情，包含渲染后的 HTML 和目录
func (s *PostService) Get(slug string) (*models.PostDetail, error) {
	post, err := s.Find(slug)
	if err != nil {
		return nil, err
	}
	html, toc := utils.RenderMarkdownWithTOC(post.Content)
	return &models.PostDetail{Post: *post, HTML: html, TOC: toc}, nil
}

func (s *PostService) filter(keep func(p *models.Post) bool) ([]models.Post, error) {
	posts, err := s.List()
	if err != nil {
		return nil, err
	}
	out := make([]models.Post, 0, len(posts))
	for i := range posts {
		if keep(&posts[i]) {
			out = append(out, posts[i])
		}
	}
	return out, nil
}

func (s *PostService) ByCategory(category string) ([]models.Post, error) {
	return s.filter(func(p *models.Post) bool { return p.Category == category })
}

func (s *PostService) ByTag(tag string) ([]models.Post, error) {
	return s.filter(func(p *models.Post) bool { return containsString(p.Tags, tag) })
}

func (s *PostService) Featured() ([]models.Post, error) {
	return s.filter(func(p *models.Post) bool { return p.Featured })
}

func (s *PostService) NonFeatured() ([]models.Post, error) {
	return s.filter(func(p *models.Post) bool { return !p.Featured })
}

// Search 标题、摘要、正文不区分大小写的子串匹配。空查询返回空列表
func (s *PostService) Search(query string) ([]models.Post, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.Post{}, nil
	}
	return s.filter(func(p *models.Post) bool {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Excerpt), q) ||
			strings.Contains(strings.ToLower(p.Content), q)
	})
}

// Categories 按首次出现顺序（文章日期倒序）
func (s *PostService) Categories() ([]string, error) {
	posts, err := s.List()
	if err != nil {
		return nil, err
	}
	out := []string{}
	seen := map[string]bool{}
	for _, p := range posts {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

// Tags 按文章数倒序，数量相同按首次出现顺序
func (s *PostService) Tags() ([]string, error) {
	if v, ok := s.cache.Get(s.cacheKey("tags")); ok {
		return cloneStrings(v.([]string)), nil
	}
	posts, err := s.List()
	if err != nil {
		return nil, err
	}
	var tags []string
	counts := map[string]int{}
	for _, p := range posts {
		for _, t := range p.Tags {
			if counts[t] == 0 {
				tags = append(tags, t)
			}
			counts[t]++
		}
	}
	sort.SliceStable(tags, func(i, j int) bool { return counts[tags[i]] > counts[tags[j]] })
	if tags == nil {
		tags = []string{}
	}
	s.cache.Set(s.cacheKey("tags"), tags, s.cacheTTL)
	return cloneStrings(tags), nil
}

func validatePostInput(in *models.PostInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	return nil
}

func metaFromInput(in models.PostInput) models.PostMeta {
	meta := models.PostMeta{
		Title:    in.Title,
		Date:     today(),
		Excerpt:  strings.TrimSpace(in.Excerpt),
		Tags:     utils.NormalizeTags(in.Tags),
		Category: strings.TrimSpace(in.Category),
		Featured: in.Featured,
	}
	if meta.Excerpt == "" {
		meta.Excerpt = utils.TruncateRunes(in.Content, excerptLen)
	}
	if meta.Category == "" {
		meta.Category = adminDefaultCategory
	}
	return meta
}

// Create 新建文章，slug 由标题生成，返回 slug
func (s *PostService) Create(in models.PostInput) (string, error) {
	if err := validatePostInput(&in); err != nil {
		return "", err
	}
	slug := utils.Slugify(in.Title)
	if slug == "" || !utils.IsSafeKey(slug) {
		return "", fmt.Errorf("%w: cannot derive slug from title", ErrValidation)
	}
	if _, err := os.Stat(s.path(slug)); err == nil {
		return "", fmt.Errorf("%w: post %s already exists", ErrValidation, slug)
	}

	if err := s.write(slug, metaFromInput(in), in.Content); err != nil {
		return "", err
	}
	log.Printf("[posts] 创建文章 %s", slug)
	return slug, nil
}

// Update 覆盖文章内容，日期刷新为今天，封面图保留
func (s *PostService) Update(slug string, in models.PostInput) error {
	if err := validatePostInput(&in); err != nil {
		return err
	}
	existing, err := s.Find(slug)
	if err != nil {
		return err
	}
	meta := metaFromInput(in)
	meta.CoverImage = existing.CoverImage
	return s.write(slug, meta, in.Content)
}

func (s *PostService) Delete(slug string) error {
	if !utils.IsSafeKey(slug) {
		return fmt.Errorf("%w: invalid slug", ErrValidation)
	}
	if err := store.RemoveFile(s.path(slug)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: post %s", ErrNotFound, slug)
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	s.invalidate()
	log.Printf("[posts] 删除文章 %s", slug)
	return nil
}

func (s *PostService) write(slug string, meta models.PostMeta, body string) error {
	data, err := StringifyFrontMatter(meta, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := store.WriteFile(s.path(slug), []byte(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	s.invalidate()
	return nil
}

func clonePosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	return out
}

func cloneStrings(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
