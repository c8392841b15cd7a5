package services

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"starlog/internal/models"
	"starlog/internal/store"
	"starlog/internal/utils"
)

const (
	maxAuthorLen  = 50
	maxEmailLen   = 100
	maxCommentLen = 5000
)

// ReplyNotifier 有人回复评论时通知被回复者
type ReplyNotifier interface {
	SendReplyNotification(to, replier, postID, replyContent, parentContent string)
}

// CommentService 评论存储：data/comments/<postId>.json，每个线程一个文件
type CommentService struct {
	dir      string
	notifier ReplyNotifier
}

// NewCommentService notifier 可以为 nil
func NewCommentService(dataDir string, notifier ReplyNotifier) *CommentService {
	return &CommentService{
		dir:      filepath.Join(dataDir, "comments"),
		notifier: notifier,
	}
}

// AddCommentInput 新评论
type AddCommentInput struct {
	PostID   string `json:"postId"`
	Author   string `json:"author"`
	Email    string `json:"email"`
	Content  string `json:"content"`
	ParentID string `json:"parentId"`
	ReplyTo  string `json:"replyTo"`
}

func (s *CommentService) thread(postID string) *store.JSONFile[[]models.Comment] {
	return store.NewJSONFile[[]models.Comment](filepath.Join(s.dir, postID+".json"), nil)
}

func validPostID(postID string) error {
	if postID == "" {
		return fmt.Errorf("%w: postId is required", ErrValidation)
	}
	if !utils.IsSafeKey(postID) {
		return fmt.Errorf("%w: invalid postId", ErrValidation)
	}
	return nil
}

// List 返回线程的评论树。读取失败时降级为空列表，保证页面可渲染。
func (s *CommentService) List(postID, voter string) ([]*models.CommentNode, error) {
	if err := validPostID(postID); err != nil {
		return nil, err
	}
	comments, err := s.thread(postID).Load()
	if err != nil {
		log.Printf("[comments] 读取评论失败 (postId=%s): %v", postID, err)
		return []*models.CommentNode{}, nil
	}
	normalizeComments(comments)
	return BuildCommentTree(comments, voter), nil
}

// Count 线程内评论总数
func (s *CommentService) Count(postID string) (int, error) {
	if err := validPostID(postID); err != nil {
		return 0, err
	}
	comments, err := s.thread(postID).Load()
	if err != nil {
		log.Printf("[comments] 读取评论失败 (postId=%s): %v", postID, err)
		return 0, nil
	}
	return len(comments), nil
}

// Add 追加一条评论
func (s *CommentService) Add(in AddCommentInput) (*models.Comment, error) {
	in.PostID = strings.TrimSpace(in.PostID)
	if err := validPostID(in.PostID); err != nil {
		return nil, err
	}

	author := utils.SanitizeText(in.Author)
	content := utils.SanitizeText(in.Content)
	email := strings.TrimSpace(in.Email)
	if author == "" || content == "" {
		return nil, fmt.Errorf("%w: author and content are required", ErrValidation)
	}
	if utf8.RuneCountInString(author) > maxAuthorLen {
		return nil, fmt.Errorf("%w: author is too long", ErrValidation)
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return nil, fmt.Errorf("%w: content is too long", ErrValidation)
	}
	if len(email) > maxEmailLen || (email != "" && !strings.Contains(email, "@")) {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}

	comment := models.Comment{
		ID:       utils.NewID(),
		PostID:   in.PostID,
		Author:   author,
		Email:    email,
		Content:  content,
		Date:     nowISO(),
		ParentID: strings.TrimSpace(in.ParentID),
		ReplyTo:  utils.SanitizeText(in.ReplyTo),
		Likes:    0,
		LikedBy:  []string{},
	}

	var parent *models.Comment
	err := s.thread(in.PostID).Update(func(doc *[]models.Comment) error {
		if comment.ParentID != "" {
			for i := range *doc {
				if (*doc)[i].ID == comment.ParentID {
					p := (*doc)[i]
					parent = &p
					break
				}
			}
			if parent == nil {
				return fmt.Errorf("%w: parent comment not found in this thread", ErrValidation)
			}
			if comment.ReplyTo == "" {
				comment.ReplyTo = parent.Author
			}
		}
		*doc = append(*doc, comment)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if parent != nil && parent.Email != "" && parent.Email != email && s.notifier != nil {
		go s.notifier.SendReplyNotification(parent.Email, comment.Author, comment.PostID, comment.Content, parent.Content)
	}

	return &comment, nil
}

// ToggleLike 点赞 / 取消点赞，幂等。评论只按 ID 查找，会扫描所有线程。
func (s *CommentService) ToggleLike(commentID, voter string, action models.LikeAction) (*models.LikeResult, error) {
	if commentID == "" || voter == "" {
		return nil, fmt.Errorf("%w: commentId and voter are required", ErrValidation)
	}
	if action != models.ActionLike && action != models.ActionUnlike {
		return nil, fmt.Errorf("%w: action must be like or unlike", ErrValidation)
	}

	keys, err := store.ListPartitions(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	for _, key := range keys {
		var result *models.LikeResult
		err := s.thread(key).Update(func(doc *[]models.Comment) error {
			for i := range *doc {
				c := &(*doc)[i]
				if c.ID != commentID {
					continue
				}
				changed := applyLike(c, voter, action)
				result = &models.LikeResult{Likes: c.Likes, Liked: containsString(c.LikedBy, voter)}
				if !changed {
					return store.ErrNoChange
				}
				return nil
			}
			return store.ErrNoChange
		})
		if err != nil {
			if errors.Is(err, store.ErrCorrupt) {
				log.Printf("[comments] 跳过损坏的评论文件 %s: %v", key, err)
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if result != nil {
			return result, nil
		}
	}

	return nil, fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
}

// applyLike 修改投票集合，返回是否发生变化。完成后 Likes == len(LikedBy)。
func applyLike(c *models.Comment, voter string, action models.LikeAction) bool {
	c.LikedBy = dedupe(c.LikedBy)
	before := len(c.LikedBy)

	switch action {
	case models.ActionLike:
		if !containsString(c.LikedBy, voter) {
			c.LikedBy = append(c.LikedBy, voter)
		}
	case models.ActionUnlike:
		kept := c.LikedBy[:0]
		for _, v := range c.LikedBy {
			if v != voter {
				kept = append(kept, v)
			}
		}
		c.LikedBy = kept
	}

	changed := len(c.LikedBy) != before || c.Likes != len(c.LikedBy)
	c.Likes = len(c.LikedBy)
	return changed
}

// Delete 管理员删除评论及其所有回复，返回删除的条数
func (s *CommentService) Delete(commentID string, isAdmin bool) (int, error) {
	if !isAdmin {
		return 0, ErrUnauthorized
	}
	if commentID == "" {
		return 0, fmt.Errorf("%w: commentId is required", ErrValidation)
	}

	keys, err := store.ListPartitions(s.dir)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	for _, key := range keys {
		removed := 0
		empty := false
		thread := s.thread(key)
		err := thread.Update(func(doc *[]models.Comment) error {
			doomed := subtree(*doc, commentID)
			if len(doomed) == 0 {
				return store.ErrNoChange
			}
			kept := make([]models.Comment, 0, len(*doc)-len(doomed))
			for _, c := range *doc {
				if !doomed[c.ID] {
					kept = append(kept, c)
				}
			}
			removed = len(*doc) - len(kept)
			empty = len(kept) == 0
			*doc = kept
			return nil
		})
		if err != nil {
			if errors.Is(err, store.ErrCorrupt) {
				log.Printf("[comments] 跳过损坏的评论文件 %s: %v", key, err)
				continue
			}
			return 0, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if removed == 0 {
			continue
		}
		if empty {
			if err := thread.Remove(); err != nil {
				log.Printf("[comments] 删除空评论文件失败 %s: %v", key, err)
			}
		}
		log.Printf("[comments] 已删除评论 %s 及其 %d 条回复 (postId=%s)", commentID, removed-1, key)
		return removed, nil
	}

	return 0, fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
}

// subtree 返回 rootID 及其所有后代的 ID 集合；rootID 不存在时返回空
func subtree(comments []models.Comment, rootID string) map[string]bool {
	found := false
	children := make(map[string][]string)
	for _, c := range comments {
		if c.ID == rootID {
			found = true
		}
		if c.ParentID != "" && c.ParentID != c.ID {
			children[c.ParentID] = append(children[c.ParentID], c.ID)
		}
	}
	if !found {
		return nil
	}

	doomed := map[string]bool{rootID: true}
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if !doomed[child] {
				doomed[child] = true
				queue = append(queue, child)
			}
		}
	}
	return doomed
}

// normalizeComments 修正历史数据：投票者去重，likes 与 likedBy 保持一致
func normalizeComments(comments []models.Comment) {
	for i := range comments {
		comments[i].LikedBy = dedupe(comments[i].LikedBy)
		comments[i].Likes = len(comments[i].LikedBy)
	}
}

func dedupe(list []string) []string {
	if len(list) == 0 {
		return []string{}
	}
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
