package utils

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"starlog/internal/models"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	policy.AllowImages()
	// 代码高亮用的 class，以及视频嵌入
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span", "div")
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown markdown -> 安全的 HTML
func RenderMarkdown(source string) template.HTML {
	out, _ := RenderMarkdownWithTOC(source)
	return out
}

// RenderMarkdownWithTOC 渲染并返回 h2/h3 目录
func RenderMarkdownWithTOC(source string) (template.HTML, []models.Heading) {
	if strings.TrimSpace(source) == "" {
		return "", []models.Heading{}
	}

	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source)), []models.Heading{}
	}

	sanitized := policy.SanitizeBytes(buf.Bytes())
	return EnhanceHTMLContent(string(sanitized))
}

// StripFrontMatter 去掉开头的 --- 块，只保留正文
func StripFrontMatter(src string) string {
	_, body, ok := SplitFrontMatter(src)
	if !ok {
		return src
	}
	return body
}

// SplitFrontMatter 拆分 "---\n<yaml>\n---\n<body>"。没有 front matter 时 ok 为 false
func SplitFrontMatter(src string) (header, body string, ok bool) {
	src = strings.TrimPrefix(src, "\ufeff")
	normalized := strings.ReplaceAll(src, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return "", src, false
	}
	rest := normalized[len("---\n"):]

	// 空 front matter
	if strings.HasPrefix(rest, "---\n") || rest == "---" {
		return "", strings.TrimPrefix(strings.TrimPrefix(rest, "---"), "\n"), true
	}

	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", src, false
	}
	header = rest[:end]
	body = rest[end+len("\n---"):]
	// 结束分隔符必须独占一行
	if body != "" && !strings.HasPrefix(body, "\n") {
		return "", src, false
	}
	return header, strings.TrimPrefix(body, "\n"), true
}
