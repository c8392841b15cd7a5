package models

import "html/template"

// Project 作品 / 项目
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	GithubURL   string   `json:"githubUrl,omitempty"`
	DemoURL     string   `json:"demoUrl,omitempty"`
	Stars       int      `json:"stars,omitempty"`
	Date        string   `json:"date"`
	Featured    bool     `json:"featured,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// ProjectPatch 部分更新
type ProjectPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Tags        *[]string `json:"tags"`
	GithubURL   *string   `json:"githubUrl"`
	DemoURL     *string   `json:"demoUrl"`
	Stars       *int      `json:"stars"`
	Date        *string   `json:"date"`
	Featured    *bool     `json:"featured"`
}

// ProjectContent 项目详情页的 markdown 正文
type ProjectContent struct {
	Content string        `json:"content"`
	HTML    template.HTML `json:"html"`
}
