package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strings"
)

// MailConfig SMTP 配置，任一字段为空时邮件功能关闭
type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	SiteURL  string
}

type MailService struct {
	cfg     MailConfig
	Enabled bool
	send    func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailService(cfg MailConfig) *MailService {
	enabled := cfg.Host != "" && cfg.Port != "" && cfg.Username != "" && cfg.Password != "" && cfg.From != ""
	if !enabled {
		log.Println("[mail] SMTP 配置不完整，邮件通知已关闭")
	}
	return &MailService{cfg: cfg, Enabled: enabled, send: smtp.SendMail}
}

var replyTemplate = template.Must(template.New("reply").Parse(`<p>{{.Replier}} 回复了你在 <a href="{{.Link}}">{{.PostID}}</a> 下的评论：</p>
<blockquote>{{.ReplyContent}}</blockquote>
<p style="color:#888">你的原评论：{{.ParentContent}}</p>`))

func (s *MailService) render(replier, postID, replyContent, parentContent string) (string, error) {
	link := strings.TrimRight(s.cfg.SiteURL, "/") + "/posts/" + postID
	var buf bytes.Buffer
	err := replyTemplate.Execute(&buf, map[string]string{
		"Replier":       replier,
		"PostID":        postID,
		"Link":          link,
		"ReplyContent":  replyContent,
		"ParentContent": parentContent,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render reply mail: %w", err)
	}
	return buf.String(), nil
}

// SendReplyNotification 同步发送，调用方负责放到 goroutine 里
func (s *MailService) SendReplyNotification(to, replier, postID, replyContent, parentContent string) {
	if !s.Enabled || to == "" {
		return
	}
	body, err := s.render(replier, postID, replyContent, parentContent)
	if err != nil {
		log.Printf("[mail] %v", err)
		return
	}
	subject := fmt.Sprintf("%s 回复了你的评论", replier)

	msg := fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		to, s.cfg.From, subject, body)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := s.cfg.Host + ":" + s.cfg.Port

	if err := s.send(addr, auth, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		log.Printf("[mail] 发送回复通知给 %s 失败: %v", to, err)
		return
	}
	log.Printf("[mail] 已发送回复通知给 %s", to)
}
