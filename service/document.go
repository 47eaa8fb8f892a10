package service

import (
	"Scribe/config"
	"Scribe/dao"
	"Scribe/models"
	"Scribe/pkg/markdown"
	"Scribe/pkg/response"
	"Scribe/pkg/snowflake"
	"Scribe/types"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sourcegraph/conc/pool"
	"gorm.io/gorm"
)

const (
	titleMaxLen       = 20
	descriptionMaxLen = 30
	// 正文上限，按 TEXT 列的字节数计算
	contentMaxBytes = 65535
)

var _ IDocumentService = (*DocumentService)(nil)

type IDocumentService interface {
	Create(ctx context.Context, authorID int64, opt *DocumentOpt) (*models.Document, error)
	Import(ctx context.Context, authorID int64, opt *DocumentOpt, header *multipart.FileHeader) (*models.Document, error)
	List(ctx context.Context, query string, page, size int) (*types.PageResponse[*types.DocumentItem], error)
	ListByAuthor(ctx context.Context, authorID int64, page, size int) (*types.PageResponse[*types.DocumentItem], error)
	ListFavorites(ctx context.Context, uid int64, page, size int) (*types.PageResponse[*types.DocumentItem], error)
	Detail(ctx context.Context, docID, viewer int64) (*types.DocumentDetail, error)
	Delete(ctx context.Context, uid, docID int64) error
}

type DocumentService struct {
	Config         *config.Config
	DocumentDAO    *dao.DocumentDAO
	UsersRepo      *dao.Users
	LikeDAO        *dao.LikeDAO
	FavoriteDAO    *dao.FavoriteDAO
	CommentService ICommentService
	Markdown       *markdown.Renderer
}

type DocumentOpt struct {
	Title       string
	Description string
	Content     string
}

// Create 发布文档，计数从 0 开始
func (s *DocumentService) Create(ctx context.Context, authorID int64, opt *DocumentOpt) (*models.Document, error) {
	title, err := checkText(opt.Title, "标题", titleMaxLen)
	if err != nil {
		return nil, err
	}
	description, err := checkText(opt.Description, "简介", descriptionMaxLen)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opt.Content) == "" {
		return nil, badRequest("正文不能为空")
	}
	if len(opt.Content) > contentMaxBytes {
		return nil, response.NewError(http.StatusRequestEntityTooLarge, "正文过长")
	}

	now := time.Now()
	doc := &models.Document{
		ID:          snowflake.GenID(),
		AuthorID:    authorID,
		Title:       title,
		Description: description,
		Content:     opt.Content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.DocumentDAO.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Import 上传 .md / .txt 文件作为正文，标题为空时取文件名
func (s *DocumentService) Import(ctx context.Context, authorID int64, opt *DocumentOpt, header *multipart.FileHeader) (*models.Document, error) {
	if header == nil {
		return nil, badRequest("请选择文件")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".md" && ext != ".txt" && ext != ".markdown" {
		return nil, badRequest("只支持 .md 或 .txt 文件")
	}

	maxSize := s.Config.Upload.DocumentMaxSize
	if header.Size > maxSize {
		return nil, response.NewError(http.StatusRequestEntityTooLarge, fmt.Sprintf("文件不能超过 %dKB", maxSize>>10))
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// header.Size 不可信，多读一个字节判断是否超限
	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, response.NewError(http.StatusRequestEntityTooLarge, fmt.Sprintf("文件不能超过 %dKB", maxSize>>10))
	}
	if !utf8.Valid(data) {
		return nil, badRequest("文件必须是 UTF-8 编码的文本")
	}

	in := *opt
	in.Content = strings.TrimPrefix(string(data), "\ufeff")
	if strings.TrimSpace(in.Title) == "" {
		in.Title = strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))
	}
	return s.Create(ctx, authorID, &in)
}

// List 首页，最新的在前
func (s *DocumentService) List(ctx context.Context, query string, page, size int) (*types.PageResponse[*types.DocumentItem], error) {
	docs, total, err := s.DocumentDAO.List(ctx, query, page, size)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, docs, total, page, size)
}

func (s *DocumentService) ListByAuthor(ctx context.Context, authorID int64, page, size int) (*types.PageResponse[*types.DocumentItem], error) {
	docs, total, err := s.DocumentDAO.ListByAuthor(ctx, authorID, page, size)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, docs, total, page, size)
}

func (s *DocumentService) ListFavorites(ctx context.Context, uid int64, page, size int) (*types.PageResponse[*types.DocumentItem], error) {
	docs, total, err := s.DocumentDAO.ListFavoritedBy(ctx, uid, page, size)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, docs, total, page, size)
}

// Detail 文档详情，作者、渲染结果、点赞收藏状态、评论并发获取
func (s *DocumentService) Detail(ctx context.Context, docID, viewer int64) (*types.DocumentDetail, error) {
	doc, err := s.DocumentDAO.FindById(ctx, docID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	var (
		author      *models.User
		html        string
		isLiked     bool
		isFavorited bool
		comments    []*types.CommentItem
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		u, err := s.UsersRepo.FindById(ctx, doc.AuthorID)
		if err != nil && !dao.IsNotFound(err) {
			return err
		}
		author = u
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		html, err = s.Markdown.Render(doc.Content)
		return err
	})
	if viewer > 0 {
		p.Go(func(ctx context.Context) error {
			var err error
			isLiked, err = s.LikeDAO.Exists(ctx, docID, viewer)
			return err
		})
		p.Go(func(ctx context.Context) error {
			var err error
			isFavorited, err = s.FavoriteDAO.Exists(ctx, docID, viewer)
			return err
		})
	}
	p.Go(func(ctx context.Context) error {
		var err error
		comments, err = s.CommentService.List(ctx, docID)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return &types.DocumentDetail{
		DocumentItem: *toDocumentItem(doc, author),
		Content:      doc.Content,
		HTML:         html,
		IsLiked:      isLiked,
		IsFavorited:  isFavorited,
		Comments:     comments,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

// Delete 作者或管理员删除，评论、点赞、收藏一并删除
func (s *DocumentService) Delete(ctx context.Context, uid, docID int64) error {
	doc, err := s.DocumentDAO.FindById(ctx, docID)
	if err != nil {
		if dao.IsNotFound(err) {
			return ErrDocumentNotFound
		}
		return err
	}

	if doc.AuthorID != uid {
		actor, err := s.UsersRepo.FindById(ctx, uid)
		if err != nil && !dao.IsNotFound(err) {
			return err
		}
		if actor == nil || !actor.IsAdmin {
			return response.NewError(http.StatusForbidden, "只能删除自己的文档")
		}
	}

	return s.DocumentDAO.Tx(ctx, func(tx *gorm.DB) error {
		return s.DocumentDAO.DeleteTx(tx, docID)
	})
}

func (s *DocumentService) page(ctx context.Context, docs []*models.Document, total int64, page, size int) (*types.PageResponse[*types.DocumentItem], error) {
	ids := make([]int64, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.AuthorID)
	}
	users, err := s.UsersRepo.FindMap(ctx, ids)
	if err != nil {
		return nil, err
	}

	list := make([]*types.DocumentItem, 0, len(docs))
	for _, d := range docs {
		list = append(list, toDocumentItem(d, users[d.AuthorID]))
	}
	return &types.PageResponse[*types.DocumentItem]{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

func toDocumentItem(d *models.Document, author *models.User) *types.DocumentItem {
	return &types.DocumentItem{
		ID:             d.ID,
		Title:          d.Title,
		Description:    d.Description,
		Author:         toAuthor(author),
		LikesCount:     d.LikesCount,
		FavoritesCount: d.FavoritesCount,
		CreatedAt:      d.CreatedAt,
	}
}
