package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starlog/internal/models"
	"starlog/internal/ratelimit"
	"starlog/internal/services"
	"starlog/internal/storage"
)

type testServer struct {
	engine *gin.Engine
	auth   *services.AdminAuth
	public string
}

func newTestServer(t *testing.T, commentLimit int, trustedProxies ...string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	public := filepath.Join(root, "public")

	uploads := services.NewUploadService(storage.NewLocalStorage(public), 1<<20)
	auth := services.NewAdminAuth("admin", "", "pw", "test-secret", time.Hour)

	r := gin.New()
	r.Use(sessions.Sessions("starlog_session", cookie.NewStore([]byte("test-secret"))))
	err := RegisterRoutes(r, Deps{
		Comments:       services.NewCommentService(dataDir, nil),
		Views:          services.NewViewService(dataDir),
		Posts:          services.NewPostService(filepath.Join(root, "posts"), time.Minute),
		Essays:         services.NewEssayService(dataDir),
		Projects:       services.NewProjectService(dataDir, filepath.Join(root, "projects-content")),
		Carousel:       services.NewCarouselService(dataDir, uploads),
		About:          services.NewAboutService(dataDir),
		Uploads:        uploads,
		Auth:           auth,
		CommentLimiter: ratelimit.New(commentLimit, time.Hour),
		TrustedProxies: trustedProxies,
		PublicDir:      public,
	})
	require.NoError(t, err)
	return &testServer{engine: r, auth: auth, public: public}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "router-test")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	token, _, err := s.auth.Login("admin", "pw")
	require.NoError(t, err)
	return token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 20)
	w := s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestCommentFlow(t *testing.T) {
	s := newTestServer(t, 20)

	w := s.do(t, http.MethodGet, "/api/comments?postId=hello", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.CommentNode](t, w))

	w = s.do(t, http.MethodGet, "/api/comments", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/comments", map[string]string{"postId": "hello", "author": "alice", "content": "first", "email": "alice@example.com"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	root := decode[models.CommentNode](t, w)
	assert.NotContains(t, w.Body.String(), "alice@example.com")

	w = s.do(t, http.MethodPost, "/api/comments", map[string]string{"postId": "hello", "author": "bob", "content": "reply", "parentId": root.ID}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reply := decode[models.CommentNode](t, w)
	assert.Equal(t, "alice", reply.ReplyTo)

	w = s.do(t, http.MethodPost, "/api/comments", map[string]string{"postId": "hello", "author": "", "content": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/comments?postId=hello", nil, "")
	tree := decode[[]models.CommentNode](t, w)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, reply.ID, tree[0].Replies[0].ID)

	w = s.do(t, http.MethodGet, "/api/comments/count?postId=hello", nil, "")
	assert.JSONEq(t, `{"postId":"hello","count":2}`, w.Body.String())

	// 点赞两次仍然只算一次
	for i := 0; i < 2; i++ {
		w = s.do(t, http.MethodPost, "/api/comments/like", map[string]string{"commentId": root.ID}, "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, models.LikeResult{Likes: 1, Liked: true}, decode[models.LikeResult](t, w))

	w = s.do(t, http.MethodGet, "/api/comments?postId=hello", nil, "")
	tree = decode[[]models.CommentNode](t, w)
	assert.True(t, tree[0].Liked)

	w = s.do(t, http.MethodPost, "/api/comments/like", map[string]string{"commentId": root.ID, "action": "unlike"}, "")
	assert.Equal(t, models.LikeResult{Likes: 0, Liked: false}, decode[models.LikeResult](t, w))

	w = s.do(t, http.MethodPost, "/api/comments/like", map[string]string{"commentId": "missing"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/comments?commentId="+root.ID, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodDelete, "/api/comments?commentId="+root.ID, nil, s.token(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"removed":2}`, w.Body.String())

	w = s.do(t, http.MethodDelete, "/api/comments/"+root.ID, nil, s.token(t))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentRateLimit(t *testing.T) {
	s := newTestServer(t, 2)
	body := map[string]string{"postId": "p", "author": "a", "content": "c"}

	for i := 0; i < 2; i++ {
		w := s.do(t, http.MethodPost, "/api/comments", body, "")
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := s.do(t, http.MethodPost, "/api/comments", body, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// 限流只作用于发表评论
	w = s.do(t, http.MethodGet, "/api/comments?postId=p", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func (s *testServer) postFrom(t *testing.T, path, forwardedFor string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestForwardedForIgnoredWithoutTrustedProxy(t *testing.T) {
	s := newTestServer(t, 1)
	body := map[string]string{"postId": "p", "author": "a", "content": "c"}

	w := s.postFrom(t, "/api/comments", "1.1.1.1", body)
	require.Equal(t, http.StatusCreated, w.Code)
	root := decode[models.CommentNode](t, w)

	// 伪造的 X-Forwarded-For 不能绕过限流
	w = s.postFrom(t, "/api/comments", "2.2.2.2", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// 也不能伪造出新的点赞身份
	for _, ip := range []string{"3.3.3.3", "4.4.4.4"} {
		w = s.postFrom(t, "/api/comments/like", ip, map[string]string{"commentId": root.ID})
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, models.LikeResult{Likes: 1, Liked: true}, decode[models.LikeResult](t, w))
}

func TestForwardedForHonouredFromTrustedProxy(t *testing.T) {
	// httptest 请求的直连地址是 192.0.2.1
	s := newTestServer(t, 1, "192.0.2.0/24")
	body := map[string]string{"postId": "p", "author": "a", "content": "c"}

	w := s.postFrom(t, "/api/comments", "1.1.1.1", body)
	require.Equal(t, http.StatusCreated, w.Code)
	w = s.postFrom(t, "/api/comments", "2.2.2.2", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = s.postFrom(t, "/api/comments", "2.2.2.2", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestInvalidTrustedProxy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	err := RegisterRoutes(r, Deps{TrustedProxies: []string{"not-an-ip"}})
	assert.Error(t, err)
}

func TestViews(t *testing.T) {
	s := newTestServer(t, 20)

	w := s.do(t, http.MethodPost, "/api/views", map[string]string{"slug": "hello"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())

	// 同一访客短时间内重复访问不计数
	w = s.do(t, http.MethodPost, "/api/views", map[string]string{"slug": "hello"}, "")
	assert.JSONEq(t, `{"count":1}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/views", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/views?slug=hello", nil, "")
	assert.JSONEq(t, `{"slug":"hello","count":1}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/views?slug=unknown", nil, "")
	assert.JSONEq(t, `{"slug":"unknown","count":0}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/views?total=true", nil, "")
	assert.JSONEq(t, `{"total":1}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/views?popular=true&limit=5", nil, "")
	popular := decode[[]models.SlugCount](t, w)
	require.Len(t, popular, 1)
	assert.Equal(t, "hello", popular[0].Slug)

	w = s.do(t, http.MethodGet, "/api/views", nil, "")
	assert.NotContains(t, w.Body.String(), "uniqueVisitors")
	assert.Contains(t, w.Body.String(), `"hello"`)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	s := newTestServer(t, 20)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/admin/posts"},
		{http.MethodPost, "/api/admin/posts"},
		{http.MethodPut, "/api/admin/about"},
		{http.MethodPost, "/api/essays"},
		{http.MethodDelete, "/api/projects/1"},
		{http.MethodPost, "/api/carousel"},
		{http.MethodPost, "/api/upload"},
	}
	for _, rt := range routes {
		w := s.do(t, rt.method, rt.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.method+" "+rt.path)

		w = s.do(t, rt.method, rt.path, nil, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.method+" "+rt.path)
	}
}

func TestLoginSetsSession(t *testing.T) {
	s := newTestServer(t, 20)

	w := s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"username": "admin", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"username": "admin", "password": "pw"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	assert.NotEmpty(t, resp["token"])
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"username":"admin"}`, rec.Body.String())
}

func TestPostLifecycle(t *testing.T) {
	s := newTestServer(t, 20)
	token := s.token(t)

	w := s.do(t, http.MethodPost, "/api/admin/posts", models.PostInput{Title: "Hello World", Content: "## Intro\n\nbody text", Tags: []string{"go"}}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	slug := decode[map[string]any](t, w)["slug"].(string)
	require.NotEmpty(t, slug)

	w = s.do(t, http.MethodGet, "/api/posts", nil, "")
	posts := decode[[]models.Post](t, w)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello World", posts[0].Title)

	s.do(t, http.MethodPost, "/api/views", map[string]string{"slug": slug}, "")
	w = s.do(t, http.MethodGet, "/api/posts/"+slug, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[models.PostDetail](t, w)
	assert.Equal(t, 1, detail.Views)
	require.Len(t, detail.TOC, 1)
	assert.Equal(t, "Intro", detail.TOC[0].Text)

	w = s.do(t, http.MethodGet, "/api/posts?tag=go", nil, "")
	assert.Len(t, decode[[]models.Post](t, w), 1)
	w = s.do(t, http.MethodGet, "/api/search?q=body", nil, "")
	assert.Len(t, decode[[]models.Post](t, w), 1)

	w = s.do(t, http.MethodPut, "/api/admin/posts/"+slug, models.PostInput{Title: "Hello Again", Content: "changed"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodDelete, "/api/admin/posts/"+slug, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/posts/"+slug, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEssayRoutes(t *testing.T) {
	s := newTestServer(t, 20)
	token := s.token(t)

	w := s.do(t, http.MethodGet, "/api/essays", nil, "")
	essays := decode[[]models.Essay](t, w)
	require.NotEmpty(t, essays)
	id := essays[0].ID
	likes := essays[0].Likes

	w = s.do(t, http.MethodPost, "/api/essays/"+id+"/like", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, likes+1, decode[map[string]any](t, w)["likes"])

	w = s.do(t, http.MethodGet, "/api/essays?action=like&id="+id, nil, "")
	assert.EqualValues(t, likes+2, decode[map[string]any](t, w)["likes"])

	w = s.do(t, http.MethodPut, "/api/essays", map[string]string{"id": id, "title": "retitled"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "retitled", decode[models.Essay](t, w).Title)

	w = s.do(t, http.MethodDelete, "/api/essays?id="+id, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodDelete, "/api/essays/"+id, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectContentRoutes(t *testing.T) {
	s := newTestServer(t, 20)
	token := s.token(t)

	w := s.do(t, http.MethodGet, "/api/projects/1/content", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content":null}`, w.Body.String())

	w = s.do(t, http.MethodPut, "/api/projects/1/content", map[string]string{"content": "# Demo"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/projects/1/content", nil, "")
	assert.Contains(t, w.Body.String(), "Demo")

	w = s.do(t, http.MethodGet, "/api/projects/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCarouselUpload(t *testing.T) {
	s := newTestServer(t, 20)

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "a.png")
	require.NoError(t, err)
	_, err = fw.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/carousel/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token(t))
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	url := decode[map[string]any](t, w)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "/images/carousel_"))

	w = s.do(t, http.MethodGet, url, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
