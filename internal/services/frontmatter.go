package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"starlog/internal/models"
	"starlog/internal/utils"
)

const (
	defaultPostTitle    = "Untitled"
	defaultPostCategory = "未分类"
)

// ParseFrontMatter 解析文章文件。front matter 缺失或字段类型不对时按默认值处理，不报错
func ParseFrontMatter(src string) (models.PostMeta, string, error) {
	header, body, ok := utils.SplitFrontMatter(src)

	raw := map[string]any{}
	if ok && strings.TrimSpace(header) != "" {
		if err := yaml.Unmarshal([]byte(header), &raw); err != nil {
			return models.PostMeta{}, body, fmt.Errorf("front matter: %w", err)
		}
	}

	meta := models.PostMeta{
		Title:      stringField(raw["title"]),
		Date:       dateField(raw["date"]),
		Excerpt:    stringField(raw["excerpt"]),
		Tags:       stringList(raw["tags"]),
		Category:   stringField(raw["category"]),
		CoverImage: stringField(raw["coverImage"]),
		Featured:   boolField(raw["featured"]),
	}
	if meta.Title == "" {
		meta.Title = defaultPostTitle
	}
	if meta.Date == "" {
		meta.Date = nowISO()
	}
	if meta.Category == "" {
		meta.Category = defaultPostCategory
	}
	return meta, body, nil
}

// StringifyFrontMatter 生成 "---\n<yaml>---\n\n<body>"
func StringifyFrontMatter(meta models.PostMeta, body string) (string, error) {
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	header, err := yaml.Marshal(meta)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	if !bytes.HasSuffix(header, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString("---\n\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}

func stringField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// dateField YAML 里未加引号的日期可能被解析成 time.Time
func dateField(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	default:
		return stringField(v)
	}
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, stringField(item))
		}
		return utils.NormalizeTags(out)
	case []string:
		return utils.NormalizeTags(t)
	case string:
		return utils.NormalizeTags(strings.Split(t, ","))
	default:
		return []string{}
	}
}

func boolField(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	default:
		return false
	}
}
