package models

// Essay 随笔
type Essay struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Date      string   `json:"date"`
	Tags      []string `json:"tags"`
	Likes     int      `json:"likes"`
	Comments  int      `json:"comments"`
	Mood      string   `json:"mood,omitempty"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// EssayPatch 部分更新，nil 字段保持原值
type EssayPatch struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Date    *string   `json:"date"`
	Tags    *[]string `json:"tags"`
	Mood    *string   `json:"mood"`
}
