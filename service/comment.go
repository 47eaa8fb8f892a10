package service

import (
	"Scribe/dao"
	"Scribe/models"
	"Scribe/pkg/log"
	"Scribe/pkg/markdown"
	"Scribe/pkg/response"
	"Scribe/pkg/snowflake"
	"Scribe/types"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// 评论最多 1000 字
const commentMaxLen = 1000

var _ ICommentService = (*CommentService)(nil)

type ICommentService interface {
	Create(ctx context.Context, uid, docID int64, content string) (*types.CommentItem, error)
	List(ctx context.Context, docID int64) ([]*types.CommentItem, error)
	Delete(ctx context.Context, uid, commentID int64) error
}

type CommentService struct {
	CommentDAO  *dao.Comment
	DocumentDAO *dao.DocumentDAO
	UsersRepo   *dao.Users
	Markdown    *markdown.Renderer
}

// Create 发表评论，字数在服务端校验
func (s *CommentService) Create(ctx context.Context, uid, docID int64, content string) (*types.CommentItem, error) {
	content, err := checkText(content, "评论", commentMaxLen)
	if err != nil {
		return nil, err
	}

	exist, err := s.DocumentDAO.IsExist(ctx, "id = ?", docID)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, ErrDocumentNotFound
	}

	comment := &models.Comment{
		ID:         snowflake.GenID(),
		DocumentID: docID,
		UserID:     uid,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	if err := s.CommentDAO.Create(ctx, comment); err != nil {
		return nil, err
	}

	user, err := s.UsersRepo.FindById(ctx, uid)
	if err != nil && !dao.IsNotFound(err) {
		return nil, err
	}
	return s.toItem(comment, user), nil
}

// List 文档下的评论，按发表时间正序
func (s *CommentService) List(ctx context.Context, docID int64) ([]*types.CommentItem, error) {
	comments, err := s.CommentDAO.ListByDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	users, err := s.UsersRepo.FindMap(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]*types.CommentItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, s.toItem(c, users[c.UserID]))
	}
	return items, nil
}

// Delete 作者本人或管理员可删除
func (s *CommentService) Delete(ctx context.Context, uid, commentID int64) error {
	comment, err := s.CommentDAO.FindById(ctx, commentID)
	if err != nil {
		if dao.IsNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != uid {
		actor, err := s.UsersRepo.FindById(ctx, uid)
		if err != nil && !dao.IsNotFound(err) {
			return err
		}
		if actor == nil || !actor.IsAdmin {
			return response.NewError(http.StatusForbidden, "只能删除自己的评论")
		}
	}

	_, err = s.CommentDAO.Delete(ctx, commentID)
	return err
}

func (s *CommentService) toItem(c *models.Comment, user *models.User) *types.CommentItem {
	html, err := s.Markdown.Render(c.Content)
	if err != nil {
		log.L.Warn("render comment failed", zap.Int64("comment_id", c.ID), zap.Error(err))
	}
	return &types.CommentItem{
		ID:         c.ID,
		DocumentID: c.DocumentID,
		Author:     toAuthor(user),
		Content:    c.Content,
		HTML:       html,
		CreatedAt:  c.CreatedAt,
	}
}
