package services

import (
	"sort"

	"starlog/internal/models"
)

// BuildCommentTree 把同一线程的扁平评论列表组装成按时间排序的评论森林。
// 每条输入评论在输出中恰好出现一次：父评论不存在、指向自己或处于环中的评论都会成为根评论。
// voter 非空时为每个节点填充 Liked。
func BuildCommentTree(comments []models.Comment, voter string) []*models.CommentNode {
	nodes := make(map[string]*models.CommentNode, len(comments))
	order := make([]*models.CommentNode, 0, len(comments))

	// 第一遍：id -> 节点
	for _, c := range comments {
		if _, dup := nodes[c.ID]; dup {
			continue
		}
		n := &models.CommentNode{
			ID:       c.ID,
			PostID:   c.PostID,
			Author:   c.Author,
			Content:  c.Content,
			Date:     c.Date,
			ParentID: c.ParentID,
			ReplyTo:  c.ReplyTo,
			Likes:    c.Likes,
			Liked:    voter != "" && containsString(c.LikedBy, voter),
			Replies:  []*models.CommentNode{},
		}
		nodes[c.ID] = n
		order = append(order, n)
	}
	sortNodes(order)

	// 解析有效父节点：不存在或自引用的父节点视为没有
	parent := make(map[string]string, len(order))
	for _, n := range order {
		if n.ParentID == "" || n.ParentID == n.ID {
			continue
		}
		if _, ok := nodes[n.ParentID]; ok {
			parent[n.ID] = n.ParentID
		}
	}

	// 断环：按时间顺序检查，沿父链走回自己的节点提升为根
	for _, n := range order {
		if inCycle(n.ID, parent) {
			delete(parent, n.ID)
		}
	}

	// 第二遍：挂到父节点
	roots := make([]*models.CommentNode, 0)
	for _, n := range order {
		pid, ok := parent[n.ID]
		if !ok {
			roots = append(roots, n)
			continue
		}
		p := nodes[pid]
		p.Replies = append(p.Replies, n)
	}
	// order 已排序，追加后的 replies 天然有序

	return roots
}

// CountTree 统计森林中的节点总数
func CountTree(nodes []*models.CommentNode) int {
	total := 0
	for _, n := range nodes {
		total += 1 + CountTree(n.Replies)
	}
	return total
}

func inCycle(start string, parent map[string]string) bool {
	seen := map[string]bool{start: true}
	cur, ok := parent[start]
	for ok {
		if cur == start {
			return true
		}
		if seen[cur] {
			// 环在上游，不包含 start；交给环内节点自己处理
			return false
		}
		seen[cur] = true
		cur, ok = parent[cur]
	}
	return false
}

func sortNodes(nodes []*models.CommentNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		ti, tj := parseTime(nodes[i].Date), parseTime(nodes[j].Date)
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return nodes[i].ID < nodes[j].ID
	})
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
