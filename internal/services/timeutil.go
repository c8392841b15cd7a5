package services

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// parseTime 解析文档里的日期，手写的 front matter 格式不统一（2024/01/05、Jan 5, 2024 等）。
// 失败返回零值
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nowISO 当前 UTC 时间，毫秒精度，与前端 toISOString 一致
func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func today() string {
	return time.Now().Format("2006-01-02")
}
