package models

// ViewStats 单篇文章的阅读统计
type ViewStats struct {
	Slug           string   `json:"slug"`
	Count          int      `json:"count"`
	UniqueVisitors []string `json:"uniqueVisitors"`
	LastUpdated    string   `json:"lastUpdated"`
}

// ViewsData views.json 的整体结构，按 slug 索引
type ViewsData map[string]*ViewStats

// SlugCount 热门文章排行项
type SlugCount struct {
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}
