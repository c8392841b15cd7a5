package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starlog/internal/models"
)

func writePost(t *testing.T, dir, slug, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".md"), []byte(content), 0o644))
}

func newPostFixture(t *testing.T) (*PostService, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "posts")
	writePost(t, dir, "older", "---\ntitle: Older Post\ndate: 2024-01-01\nexcerpt: first\ntags: [go, web]\ncategory: 编程\n---\n\nHello gophers\n")
	writePost(t, dir, "newer", "---\ntitle: Newer Post\ndate: \"2024-06-01\"\ntags:\n  - go\n  - robots\ncategory: 机器人\nfeatured: true\n---\n\n## Section\n\nServo tuning\n")
	writePost(t, dir, "bare", "no front matter at all")
	return NewPostService(dir, 0), dir
}

func TestParseFrontMatterDefaults(t *testing.T) {
	meta, body, err := ParseFrontMatter("just text")
	require.NoError(t, err)
	assert.Equal(t, "just text", body)
	assert.Equal(t, "Untitled", meta.Title)
	assert.Equal(t, "未分类", meta.Category)
	assert.NotEmpty(t, meta.Date)
	assert.Empty(t, meta.Tags)
	assert.False(t, meta.Featured)
}

func TestFrontMatterRoundTrip(t *testing.T) {
	in := models.PostMeta{
		Title:    "Title: with colon",
		Date:     "2024-03-04",
		Excerpt:  "short",
		Tags:     []string{"a", "b"},
		Category: "AI技术",
		Featured: true,
	}
	doc, err := StringifyFrontMatter(in, "# Body")
	require.NoError(t, err)

	out, body, err := ParseFrontMatter(doc)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, "\n# Body\n", body)
}

func TestPostListSortedAndFiltered(t *testing.T) {
	svc, _ := newPostFixture(t)

	posts, err := svc.List()
	require.NoError(t, err)
	require.Len(t, posts, 3)
	// bare 没有日期，取当前时间，排在最前
	assert.Equal(t, "bare", posts[0].Slug)
	assert.Equal(t, "newer", posts[1].Slug)
	assert.Equal(t, "older", posts[2].Slug)
	assert.Equal(t, "2024-01-01", posts[2].Date)
	assert.Equal(t, []string{"go", "web"}, posts[2].Tags)

	byTag, err := svc.ByTag("robots")
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "newer", byTag[0].Slug)

	byCat, err := svc.ByCategory("编程")
	require.NoError(t, err)
	require.Len(t, byCat, 1)

	featured, err := svc.Featured()
	require.NoError(t, err)
	require.Len(t, featured, 1)
	nonFeatured, err := svc.NonFeatured()
	require.NoError(t, err)
	assert.Len(t, nonFeatured, 2)

	tags, err := svc.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "robots", "web"}, tags)

	cats, err := svc.Categories()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"未分类", "机器人", "编程"}, cats)
}

func TestPostSearchCaseInsensitive(t *testing.T) {
	svc, _ := newPostFixture(t)

	res, err := svc.Search("SERVO")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "newer", res[0].Slug)

	res, err = svc.Search("   ")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestPostGetRendersHTML(t *testing.T) {
	svc, _ := newPostFixture(t)

	detail, err := svc.Get("newer")
	require.NoError(t, err)
	assert.Contains(t, string(detail.HTML), "Servo tuning")
	require.Len(t, detail.TOC, 1)
	assert.Equal(t, "Section", detail.TOC[0].Text)

	_, err = svc.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get("../etc/passwd")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPostCreateUpdateDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "posts")
	svc := NewPostService(dir, time.Minute)

	_, err := svc.Create(models.PostInput{Title: "", Content: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	slug, err := svc.Create(models.PostInput{Title: "Hello World", Content: "Some content here"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", slug)

	_, err = svc.Create(models.PostInput{Title: "Hello World", Content: "dup"})
	assert.ErrorIs(t, err, ErrValidation)

	post, err := svc.Find(slug)
	require.NoError(t, err)
	assert.Equal(t, "AI技术", post.Category)
	assert.Equal(t, "Some content here", post.Excerpt)
	assert.Equal(t, time.Now().Format("2006-01-02"), post.Date)

	posts, err := svc.List()
	require.NoError(t, err)
	require.Len(t, posts, 1)

	require.NoError(t, svc.Update(slug, models.PostInput{Title: "Hello World", Content: "changed", Category: "生活", Featured: true}))
	post, err = svc.Find(slug)
	require.NoError(t, err)
	assert.Equal(t, "生活", post.Category)
	assert.True(t, post.Featured)

	// 写入后缓存失效
	posts, err = svc.List()
	require.NoError(t, err)
	assert.Equal(t, "生活", posts[0].Category)

	assert.ErrorIs(t, svc.Update("nope", models.PostInput{Title: "t", Content: "c"}), ErrNotFound)

	require.NoError(t, svc.Delete(slug))
	assert.ErrorIs(t, svc.Delete(slug), ErrNotFound)

	posts, err = svc.List()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostTagsCacheInvalidatedOnWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "posts")
	svc := NewPostService(dir, time.Minute)

	tags, err := svc.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{}, tags)

	_, err = svc.Create(models.PostInput{Title: "First", Content: "a", Tags: []string{"go"}})
	require.NoError(t, err)
	tags, err = svc.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, tags)

	// 绕过服务直接写文件，缓存命中时看不到变化
	writePost(t, dir, "second", "---\ntitle: Second\ntags: [rust]\n---\nbody")
	tags, err = svc.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, tags)

	// 通过服务写入会按前缀清掉列表和标签缓存
	_, err = svc.Create(models.PostInput{Title: "Third", Content: "c", Tags: []string{"go"}})
	require.NoError(t, err)
	tags, err = svc.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust"}, tags)

	posts, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	// 返回的切片是副本
	tags[0] = "mutated"
	again, err := svc.Tags()
	require.NoError(t, err)
	assert.Equal(t, "go", again[0])
}

func TestPostListMissingDir(t *testing.T) {
	svc := NewPostService(filepath.Join(t.TempDir(), "nope"), 0)
	posts, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestParseTimeFormats(t *testing.T) {
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2024-01-05", "2024/01/05", "2024-01-05T00:00:00Z", " 2024-01-05 "} {
		assert.True(t, parseTime(s).Equal(want), s)
	}
	assert.True(t, parseTime("not a date").IsZero())
	assert.True(t, parseTime("").IsZero())
}
