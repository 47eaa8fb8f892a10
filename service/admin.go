package service

import (
	"Scribe/dao"
	"Scribe/dao/cache"
	"Scribe/models"
	"Scribe/pkg/log"
	"Scribe/types"
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var _ IAdminService = (*AdminService)(nil)

type IAdminService interface {
	ListUsers(ctx context.Context, query string, page, size int) (*types.PageResponse[*types.AdminUserItem], error)
	ListDocuments(ctx context.Context, query string, page, size int) (*types.PageResponse[*types.DocumentItem], error)
	SetAdmin(ctx context.Context, actorID, targetID int64, isAdmin bool) (*types.UserProfile, error)
	DeleteUser(ctx context.Context, actorID, targetID int64) error
	DeleteDocument(ctx context.Context, docID int64) error
	Stats(ctx context.Context) (*types.AdminStats, error)
}

// AdminService 后台管理，调用方已通过 AdminOnly 校验
type AdminService struct {
	UsersRepo   *dao.Users
	DocumentDAO *dao.DocumentDAO
	LikeDAO     *dao.LikeDAO
	FavoriteDAO *dao.FavoriteDAO
	CommentDAO  *dao.Comment
	MessageDao  *dao.MessageDAO
	FortuneDAO  *dao.FortuneDAO
	UnreadCache *cache.UnreadStorage
	Storage     IStorage
}

func (s *AdminService) ListUsers(ctx context.Context, query string, page, size int) (*types.PageResponse[*types.AdminUserItem], error) {
	users, total, err := s.UsersRepo.Search(ctx, query, page, size)
	if err != nil {
		return nil, err
	}

	list := make([]*types.AdminUserItem, 0, len(users))
	for _, u := range users {
		list = append(list, &types.AdminUserItem{UserProfile: *ToProfile(u), UpdatedAt: u.UpdatedAt})
	}
	return &types.PageResponse[*types.AdminUserItem]{List: list, Total: total, Page: page, PageSize: size}, nil
}

func (s *AdminService) ListDocuments(ctx context.Context, query string, page, size int) (*types.PageResponse[*types.DocumentItem], error) {
	docs, total, err := s.DocumentDAO.AdminSearch(ctx, query, page, size)
	if err != nil {
		return nil, err
	}

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
	return &types.PageResponse[*types.DocumentItem]{List: list, Total: total, Page: page, PageSize: size}, nil
}

// SetAdmin 设置或取消管理员，昵称颜色随之切换
// 管理员不能取消自己的权限
func (s *AdminService) SetAdmin(ctx context.Context, actorID, targetID int64, isAdmin bool) (*types.UserProfile, error) {
	if actorID == targetID && !isAdmin {
		return nil, badRequest("不能取消自己的管理员权限")
	}

	color := models.DefaultNicknameColor
	if isAdmin {
		color = models.AdminNicknameColor
	}
	affected, err := s.UsersRepo.UpdateById(ctx, targetID, map[string]any{
		"is_admin":       isAdmin,
		"nickname_color": color,
		"updated_at":     time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrUserNotFound
	}

	user, err := s.UsersRepo.FindById(ctx, targetID)
	if err != nil {
		return nil, err
	}
	log.L.Info("admin changed", zap.Int64("actor_id", actorID), zap.Int64("target_id", targetID), zap.Bool("is_admin", isAdmin))
	return ToProfile(user), nil
}

// DeleteUser 在一个事务中删除用户及其全部数据
// 先删其文档（连带评论、点赞、收藏），再删其在别处的评论、点赞、收藏并回写计数，最后删消息、运势和用户本身
func (s *AdminService) DeleteUser(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return badRequest("不能删除自己")
	}

	exist, err := s.UsersRepo.IsExist(ctx, "id = ?", targetID)
	if err != nil {
		return err
	}
	if !exist {
		return ErrUserNotFound
	}

	var (
		imageKeys []string
		receivers []int64
	)
	err = s.UsersRepo.Tx(ctx, func(tx *gorm.DB) error {
		docIDs, err := s.DocumentDAO.IdsByAuthorTx(tx, targetID)
		if err != nil {
			return err
		}
		if err := s.DocumentDAO.DeleteTx(tx, docIDs...); err != nil {
			return err
		}
		if err := s.CommentDAO.DeleteByUserTx(tx, targetID); err != nil {
			return err
		}
		if err := s.LikeDAO.DeleteByUserTx(tx, targetID); err != nil {
			return err
		}
		if err := s.FavoriteDAO.DeleteByUserTx(tx, targetID); err != nil {
			return err
		}
		if receivers, err = s.MessageDao.UnreadReceiversTx(tx, targetID); err != nil {
			return err
		}
		if imageKeys, err = s.MessageDao.DeleteByUserTx(tx, targetID); err != nil {
			return err
		}
		if err := s.FortuneDAO.DeleteByUserTx(tx, targetID); err != nil {
			return err
		}
		return s.UsersRepo.DeleteTx(tx, targetID)
	})
	if err != nil {
		return err
	}

	// 事务提交后清理缓存和图片，失败只记录日志
	if err := s.UnreadCache.Del(ctx, targetID); err != nil {
		log.L.Warn("clear unread failed", zap.Int64("user_id", targetID), zap.Error(err))
	}
	for _, uid := range receivers {
		if err := s.UnreadCache.Reset(ctx, uid, targetID); err != nil {
			log.L.Warn("reset unread failed", zap.Int64("user_id", uid), zap.Error(err))
		}
	}
	for _, key := range imageKeys {
		if err := s.Storage.Delete(ctx, key); err != nil {
			log.L.Warn("delete message image failed", zap.String("key", key), zap.Error(err))
		}
	}
	log.L.Info("user deleted", zap.Int64("actor_id", actorID), zap.Int64("target_id", targetID))
	return nil
}

// DeleteDocument 管理员删除任意文档
func (s *AdminService) DeleteDocument(ctx context.Context, docID int64) error {
	exist, err := s.DocumentDAO.IsExist(ctx, "id = ?", docID)
	if err != nil {
		return err
	}
	if !exist {
		return ErrDocumentNotFound
	}
	return s.DocumentDAO.Tx(ctx, func(tx *gorm.DB) error {
		return s.DocumentDAO.DeleteTx(tx, docID)
	})
}

func (s *AdminService) Stats(ctx context.Context) (*types.AdminStats, error) {
	var (
		g     errgroup.Group
		stats = &types.AdminStats{}
	)

	g.Go(func() (err error) {
		stats.Users, err = s.UsersRepo.Count(ctx, "")
		return
	})
	g.Go(func() (err error) {
		stats.Documents, err = s.DocumentDAO.Count(ctx, "")
		return
	})
	g.Go(func() (err error) {
		stats.Comments, err = s.CommentDAO.Count(ctx, "")
		return
	})
	g.Go(func() (err error) {
		stats.Messages, err = s.MessageDao.Count(ctx, "")
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
