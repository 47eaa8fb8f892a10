package server_test

import (
	"Scribe/dao"
	"Scribe/dao/cache"
	"Scribe/handler"
	"Scribe/internal/testutil"
	"Scribe/middleware"
	"Scribe/pkg/markdown"
	"Scribe/pkg/server"
	"Scribe/service"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	conf := testutil.Config(t)
	db := testutil.NewDB(t)
	rds, _ := testutil.NewRedis(t)

	users := dao.NewUsers(db)
	tokens := cache.NewTokenStorage(rds)
	unread := cache.NewUnreadStorage(rds)
	lock := cache.NewLockStorage(rds)
	storage := testutil.NewMemoryStorage()
	documentDAO := dao.NewDocumentDAO(db)
	likeDAO := dao.NewLikeDAO(db)
	favoriteDAO := dao.NewFavoriteDAO(db)
	commentDAO := dao.NewComment(db)
	messageDAO := dao.NewMessageDAO(db)
	fortuneDAO := dao.NewFortuneDAO(db)
	renderer := markdown.New()

	authorizer := &middleware.Authorizer{Config: conf, Tokens: tokens, Users: users}
	userService := &service.UserService{Config: conf, UsersRepo: users, Tokens: tokens}
	messageService := &service.MessageService{Config: conf, MessageDao: messageDAO, UsersRepo: users, UnreadCache: unread, Storage: storage}
	commentService := &service.CommentService{CommentDAO: commentDAO, DocumentDAO: documentDAO, UsersRepo: users, Markdown: renderer}
	documentService := &service.DocumentService{
		Config:         conf,
		DocumentDAO:    documentDAO,
		UsersRepo:      users,
		LikeDAO:        likeDAO,
		FavoriteDAO:    favoriteDAO,
		CommentService: commentService,
		Markdown:       renderer,
	}
	adminService := &service.AdminService{
		UsersRepo:   users,
		DocumentDAO: documentDAO,
		LikeDAO:     likeDAO,
		FavoriteDAO: favoriteDAO,
		CommentDAO:  commentDAO,
		MessageDao:  messageDAO,
		FortuneDAO:  fortuneDAO,
		UnreadCache: unread,
		Storage:     storage,
	}

	return server.NewGinEngine(conf, &server.Handlers{
		Auth: &handler.Auth{Authorizer: authorizer, UserService: userService},
		User: &handler.User{
			Authorizer:      authorizer,
			UserService:     userService,
			MessageService:  messageService,
			DocumentService: documentService,
		},
		Document: &handler.Document{
			Authorizer:      authorizer,
			DocumentService: documentService,
			LikeService:     &service.LikeService{LikeDAO: likeDAO, Lock: lock},
			FavoriteService: &service.FavoriteService{FavoriteDAO: favoriteDAO, Lock: lock},
		},
		Comment: &handler.Comment{Authorizer: authorizer, CommentService: commentService},
		Message: &handler.Message{Authorizer: authorizer, MessageService: messageService},
		Fortune: &handler.Fortune{
			Authorizer:     authorizer,
			FortuneService: &service.FortuneService{Config: conf.Fortune, FortuneDAO: fortuneDAO},
		},
		Admin: &handler.Admin{Authorizer: authorizer, AdminService: adminService},
	})
}

// call 发送 JSON 请求，返回 HTTP 状态码与响应体
func call(t *testing.T, r *gin.Engine, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

type session struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Nickname string `json:"nickname"`
	} `json:"user"`
}

func register(t *testing.T, r *gin.Engine, nickname string) session {
	t.Helper()
	code, env := call(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"nickname": nickname,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, code, env.Msg)
	return decode[session](t, env)
}

func TestAliceAndBob(t *testing.T) {
	r := newEngine(t)
	alice := register(t, r, "alice")
	bob := register(t, r, "bob")

	code, _ := call(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{"nickname": "alice", "password": "password"})
	require.Equal(t, http.StatusConflict, code)

	// alice 发布文档
	code, env := call(t, r, http.MethodPost, "/api/v1/document/create", alice.Token, gin.H{
		"title":       "Hello",
		"description": "first post",
		"content":     "# Hello\n\nworld",
	})
	require.Equal(t, http.StatusOK, code, env.Msg)
	docID := decode[struct {
		ID string `json:"id"`
	}](t, env).ID

	code, _ = call(t, r, http.MethodPost, "/api/v1/document/create", "", gin.H{"title": "x"})
	require.Equal(t, http.StatusUnauthorized, code)

	// bob 点赞、收藏、评论
	code, env = call(t, r, http.MethodPost, "/api/v1/document/"+docID+"/like", bob.Token, nil)
	require.Equal(t, http.StatusOK, code, env.Msg)
	reaction := decode[struct {
		Active bool  `json:"active"`
		Count  int64 `json:"count"`
	}](t, env)
	require.True(t, reaction.Active)
	require.Equal(t, int64(1), reaction.Count)

	code, _ = call(t, r, http.MethodPost, "/api/v1/document/"+docID+"/favorite", bob.Token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = call(t, r, http.MethodPost, "/api/v1/comment/create", bob.Token, gin.H{
		"document_id": docID,
		"content":     "nice",
	})
	require.Equal(t, http.StatusOK, code, env.Msg)

	// 游客查看详情
	code, env = call(t, r, http.MethodGet, "/api/v1/document/"+docID, "", nil)
	require.Equal(t, http.StatusOK, code)
	detail := decode[struct {
		Title          string `json:"title"`
		HTML           string `json:"html"`
		LikesCount     int64  `json:"likes_count"`
		FavoritesCount int64  `json:"favorites_count"`
		IsLiked        bool   `json:"is_liked"`
		Comments       []struct {
			Content string `json:"content"`
		} `json:"comments"`
	}](t, env)
	require.Equal(t, "Hello", detail.Title)
	require.Contains(t, detail.HTML, "world")
	require.Equal(t, int64(1), detail.LikesCount)
	require.Equal(t, int64(1), detail.FavoritesCount)
	require.False(t, detail.IsLiked)
	require.Len(t, detail.Comments, 1)

	// bob 的收藏列表
	code, env = call(t, r, http.MethodGet, "/api/v1/document/favorites", bob.Token, nil)
	require.Equal(t, http.StatusOK, code)
	favorites := decode[struct {
		Total int64 `json:"total"`
	}](t, env)
	require.Equal(t, int64(1), favorites.Total)

	// 私信与未读
	code, env = call(t, r, http.MethodPost, "/api/v1/message/send", bob.Token, gin.H{
		"receiver_id": alice.User.ID,
		"content":     "hi alice",
	})
	require.Equal(t, http.StatusOK, code, env.Msg)

	code, env = call(t, r, http.MethodGet, "/api/v1/message/unread", alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	unread := decode[struct {
		Total  int64            `json:"total"`
		ByPeer map[string]int64 `json:"by_peer"`
	}](t, env)
	require.Equal(t, int64(1), unread.Total)
	require.Equal(t, int64(1), unread.ByPeer[bob.User.ID])

	code, env = call(t, r, http.MethodGet, "/api/v1/message/conversation/"+bob.User.ID, alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, decode[[]json.RawMessage](t, env), 1)

	code, env = call(t, r, http.MethodGet, "/api/v1/message/unread", alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	require.Zero(t, decode[struct {
		Total int64 `json:"total"`
	}](t, env).Total)

	// 普通用户不能访问后台
	code, _ = call(t, r, http.MethodGet, "/api/v1/admin/stats", alice.Token, nil)
	require.Equal(t, http.StatusForbidden, code)

	// 注销后令牌失效
	code, _ = call(t, r, http.MethodPost, "/api/v1/auth/logout", bob.Token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = call(t, r, http.MethodGet, "/api/v1/user/me", bob.Token, nil)
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(server.CORSMiddleware([]string{"https://scribe.example"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://scribe.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "https://scribe.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	r := newEngine(t)
	code, env := call(t, r, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Zero(t, env.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "scribe_http_requests_total")
}
