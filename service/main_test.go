package service_test

import (
	"Scribe/dao"
	"Scribe/dao/cache"
	"Scribe/internal/testutil"
	"Scribe/models"
	"Scribe/pkg/markdown"
	"Scribe/pkg/response"
	"Scribe/pkg/snowflake"
	"Scribe/service"
	"bytes"
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// suite 基于内存 sqlite 与 miniredis 组装的全部服务
type suite struct {
	db      *gorm.DB
	mr      *miniredis.Miniredis
	storage *testutil.MemoryStorage
	lock    *cache.LockStorage
	unread  *cache.UnreadStorage

	users     *service.UserService
	documents *service.DocumentService
	comments  *service.CommentService
	likes     *service.LikeService
	favorites *service.FavoriteService
	messages  *service.MessageService
	fortune   *service.FortuneService
	admin     *service.AdminService
}

func newSuite(t *testing.T) *suite {
	t.Helper()
	conf := testutil.Config(t)
	db := testutil.NewDB(t)
	rds, mr := testutil.NewRedis(t)

	var (
		usersRepo   = dao.NewUsers(db)
		documentDAO = dao.NewDocumentDAO(db)
		likeDAO     = dao.NewLikeDAO(db)
		favoriteDAO = dao.NewFavoriteDAO(db)
		commentDAO  = dao.NewComment(db)
		messageDAO  = dao.NewMessageDAO(db)
		fortuneDAO  = dao.NewFortuneDAO(db)
		unread      = cache.NewUnreadStorage(rds)
		lock        = cache.NewLockStorage(rds)
		tokens      = cache.NewTokenStorage(rds)
		storage     = testutil.NewMemoryStorage()
		renderer    = markdown.New()
	)

	comments := &service.CommentService{CommentDAO: commentDAO, DocumentDAO: documentDAO, UsersRepo: usersRepo, Markdown: renderer}
	return &suite{
		db:       db,
		mr:       mr,
		storage:  storage,
		lock:     lock,
		unread:   unread,
		users:    &service.UserService{Config: conf, UsersRepo: usersRepo, Tokens: tokens},
		comments: comments,
		documents: &service.DocumentService{
			Config:         conf,
			DocumentDAO:    documentDAO,
			UsersRepo:      usersRepo,
			LikeDAO:        likeDAO,
			FavoriteDAO:    favoriteDAO,
			CommentService: comments,
			Markdown:       renderer,
		},
		likes:     &service.LikeService{LikeDAO: likeDAO, Lock: lock},
		favorites: &service.FavoriteService{FavoriteDAO: favoriteDAO, Lock: lock},
		messages: &service.MessageService{
			Config:      conf,
			MessageDao:  messageDAO,
			UsersRepo:   usersRepo,
			UnreadCache: unread,
			Storage:     storage,
		},
		fortune: &service.FortuneService{Config: conf.Fortune, FortuneDAO: fortuneDAO},
		admin: &service.AdminService{
			UsersRepo:   usersRepo,
			DocumentDAO: documentDAO,
			LikeDAO:     likeDAO,
			FavoriteDAO: favoriteDAO,
			CommentDAO:  commentDAO,
			MessageDao:  messageDAO,
			FortuneDAO:  fortuneDAO,
			UnreadCache: unread,
			Storage:     storage,
		},
	}
}

// register 直接落库，跳过 bcrypt 以加快测试
func (s *suite) register(t *testing.T, nickname string) *models.User {
	t.Helper()
	u := &models.User{
		ID:            snowflake.GenID(),
		Nickname:      nickname,
		PasswordHash:  "-",
		NicknameColor: models.DefaultNicknameColor,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, s.db.Create(u).Error)
	return u
}

func (s *suite) publish(t *testing.T, author *models.User, title string) *models.Document {
	t.Helper()
	doc, err := s.documents.Create(context.Background(), author.ID, &service.DocumentOpt{
		Title:       title,
		Description: "简介",
		Content:     "# " + title,
	})
	require.NoError(t, err)
	return doc
}

func requireCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, response.IsCode(err, code), "want code %d, got %v", code, err)
}

// fileHeader 构造上传文件，经过一次 multipart 编解码
func fileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}
