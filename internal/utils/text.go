package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

const maxSanitizePasses = 8

// SanitizeText 去掉用户输入中的所有 HTML 标签，保留纯文本。
// 先解码实体再过滤，反复执行直到结果不再变化，实体编码的标签不会在解码后复活
func SanitizeText(s string) string {
	cur := strings.TrimSpace(s)
	for i := 0; i < maxSanitizePasses; i++ {
		next := strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(html.UnescapeString(cur))))
		if next == cur {
			return cur
		}
		cur = next
	}
	// 多层嵌套编码，保留转义后的形式
	return strictPolicy.Sanitize(html.UnescapeString(cur))
}

// TruncateRunes 按字符截断
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9\p{Han}]+`)
	keySafe     = regexp.MustCompile(`^[A-Za-z0-9\p{Han}_\-][A-Za-z0-9\p{Han}_\-.]*$`)
)

// Slugify 标题转 slug：小写，非字母数字汉字的连续字符替换成 "-"，去掉首尾 "-"
func Slugify(title string) string {
	s := slugInvalid.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// IsSafeKey 判断字符串能否直接作为文件名使用（不含路径分隔符，不以 "." 开头）
func IsSafeKey(s string) bool {
	return len(s) <= 200 && keySafe.MatchString(s) && !strings.Contains(s, "..")
}
