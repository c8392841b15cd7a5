package models

// Comment 评论的持久化形态，每篇文章一个 JSON 数组文件
type Comment struct {
	ID       string   `json:"id"`
	PostID   string   `json:"postId"`
	Author   string   `json:"author"`
	Email    string   `json:"email"`
	Content  string   `json:"content"`
	Date     string   `json:"date"`
	ParentID string   `json:"parentId,omitempty"`
	ReplyTo  string   `json:"replyTo,omitempty"`
	Likes    int      `json:"likes"`
	LikedBy  []string `json:"likedBy"`
}

// CommentNode 评论树节点，只在读取时构建，不落盘
type CommentNode struct {
	ID       string         `json:"id"`
	PostID   string         `json:"postId"`
	Author   string         `json:"author"`
	Content  string         `json:"content"`
	Date     string         `json:"date"`
	ParentID string         `json:"parentId,omitempty"`
	ReplyTo  string         `json:"replyTo,omitempty"`
	Likes    int            `json:"likes"`
	Liked    bool           `json:"liked"`
	Replies  []*CommentNode `json:"replies"`
}

// LikeAction 点赞 / 取消点赞
type LikeAction string

const (
	ActionLike   LikeAction = "like"
	ActionUnlike LikeAction = "unlike"
)

// LikeResult 点赞切换后的状态
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}
