package utils

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"starlog/internal/models"
)

const videoIframe = `<div class="video-container"><iframe src="%s" frameborder="0" allowfullscreen allow="accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture"></iframe></div>`

// EnhanceHTMLContent 图片懒加载、单独一行的视频链接转成播放器、给标题补 id 并生成目录
func EnhanceHTMLContent(htmlStr string) (template.HTML, []models.Heading) {
	toc := []models.Heading{}
	if htmlStr == "" {
		return "", toc
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr), toc
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("loading", "lazy")
		s.SetAttr("referrerpolicy", "no-referrer")
	})

	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "http") || strings.ContainsAny(text, " \n") {
			return
		}
		if src := videoEmbedURL(text); src != "" {
			s.ReplaceWithHtml(fmt.Sprintf(videoIframe, template.HTMLEscapeString(src)))
		}
	})

	used := map[string]bool{}
	doc.Find("h2, h3").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		id, _ := s.Attr("id")
		if id == "" || used[id] {
			id = fmt.Sprintf("heading-%d", i+1)
			s.SetAttr("id", id)
		}
		used[id] = true
		level := 2
		if goquery.NodeName(s) == "h3" {
			level = 3
		}
		toc = append(toc, models.Heading{ID: id, Text: text, Level: level})
	})

	// goquery 会补全 html/body，只取 body 内容
	out, _ := doc.Find("body").Html()
	if out == "" {
		out, _ = doc.Html()
	}
	return template.HTML(out), toc
}

// videoEmbedURL 支持 bilibili 与 youtube，其他链接返回空
func videoEmbedURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch {
	case host == "bilibili.com" && strings.HasPrefix(u.Path, "/video/"):
		bvid := strings.Trim(strings.TrimPrefix(u.Path, "/video/"), "/")
		if bvid == "" {
			return ""
		}
		return "https://player.bilibili.com/player.html?bvid=" + url.QueryEscape(bvid) + "&high_quality=1&autoplay=0"
	case host == "youtube.com" && u.Path == "/watch":
		if v := u.Query().Get("v"); v != "" {
			return "https://www.youtube.com/embed/" + url.PathEscape(v)
		}
	case host == "youtu.be":
		if v := strings.Trim(u.Path, "/"); v != "" {
			return "https://www.youtube.com/embed/" + url.PathEscape(v)
		}
	}
	return ""
}
