package models

import "html/template"

// PostMeta 文章 front matter
type PostMeta struct {
	Title      string   `json:"title" yaml:"title"`
	Date       string   `json:"date" yaml:"date"`
	Excerpt    string   `json:"excerpt" yaml:"excerpt"`
	Tags       []string `json:"tags" yaml:"tags"`
	Category   string   `json:"category" yaml:"category"`
	CoverImage string   `json:"coverImage,omitempty" yaml:"coverImage,omitempty"`
	Featured   bool     `json:"featured" yaml:"featured"`
}

// Post 一篇 markdown 文章
type Post struct {
	PostMeta
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

// PostDetail 文章详情，附带渲染后的 HTML 和目录
type PostDetail struct {
	Post
	HTML  template.HTML `json:"html"`
	TOC   []Heading     `json:"toc"`
	Views int           `json:"views"`
}

// Heading 目录条目
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// PostInput 管理后台创建 / 更新文章的请求体
type PostInput struct {
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
	Featured bool     `json:"featured"`
}
