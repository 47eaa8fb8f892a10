package service

import (
	"Scribe/dao"
	"Scribe/dao/cache"
	"Scribe/pkg/log"
	"Scribe/pkg/response"
	"Scribe/types"
	"context"

	"go.uber.org/zap"
)

const (
	reactionLike     = "like"
	reactionFavorite = "favorite"
)

// reactionStore 点赞表与收藏表共用的操作
type reactionStore interface {
	Toggle(ctx context.Context, docID, userID int64) (bool, int64, error)
	Set(ctx context.Context, docID, userID int64, active bool) (int64, error)
	Exists(ctx context.Context, docID, userID int64) (bool, error)
}

// reactor 同一用户对同一文档的操作串行执行，并发的重复点击直接拒绝
type reactor struct {
	kind  string
	store reactionStore
	lock  *cache.LockStorage
}

func (r *reactor) toggle(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error) {
	var resp *types.ReactionResponse
	err := r.locked(ctx, uid, docID, func() error {
		active, count, err := r.store.Toggle(ctx, docID, uid)
		if err != nil {
			return err
		}
		resp = &types.ReactionResponse{Active: active, Count: count}
		return nil
	})
	return resp, err
}

func (r *reactor) set(ctx context.Context, uid, docID int64, active bool) (*types.ReactionResponse, error) {
	var resp *types.ReactionResponse
	err := r.locked(ctx, uid, docID, func() error {
		count, err := r.store.Set(ctx, docID, uid, active)
		if err != nil {
			return err
		}
		resp = &types.ReactionResponse{Active: active, Count: count}
		return nil
	})
	return resp, err
}

func (r *reactor) locked(ctx context.Context, uid, docID int64, fn func() error) error {
	key := cache.ReactionKey(r.kind, uid, docID)
	token, ok, err := r.lock.TryLock(ctx, key)
	if err != nil {
		log.L.Error("reaction lock failed", zap.String("key", key), zap.Error(err))
		return response.ErrBusy
	}
	if !ok {
		return response.ErrBusy
	}
	defer func() {
		if err := r.lock.Unlock(ctx, key, token); err != nil {
			log.L.Warn("reaction unlock failed", zap.String("key", key), zap.Error(err))
		}
	}()

	if err := fn(); err != nil {
		if dao.IsNotFound(err) {
			return ErrDocumentNotFound
		}
		return err
	}
	return nil
}

var _ ILikeService = (*LikeService)(nil)

type ILikeService interface {
	Toggle(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error)
	Like(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error)
	Unlike(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error)
	IsLiked(ctx context.Context, uid, docID int64) (bool, error)
}

type LikeService struct {
	LikeDAO *dao.LikeDAO
	Lock    *cache.LockStorage
}

func (s *LikeService) reactor() *reactor {
	return &reactor{kind: reactionLike, store: s.LikeDAO, lock: s.Lock}
}

// Toggle 已点赞则取消，否则点赞
func (s *LikeService) Toggle(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error) {
	return s.reactor().toggle(ctx, uid, docID)
}

// Like 重复点赞不报错
func (s *LikeService) Like(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error) {
	return s.reactor().set(ctx, uid, docID, true)
}

// Unlike 未点赞时取消不报错，计数不会小于 0
func (s *LikeService) Unlike(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error) {
	return s.reactor().set(ctx, uid, docID, false)
}

func (s *LikeService) IsLiked(ctx context.Context, uid, docID int64) (bool, error) {
	return s.LikeDAO.Exists(ctx, docID, uid)
}

var _ IFavoriteService = (*FavoriteService)(nil)

type IFavoriteService interface {
	Toggle(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error)
	Favorite(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error)
	Unfavorite(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error)
	IsFavorited(ctx context.Context, uid, docID int64) (bool, error)
}

type FavoriteService struct {
	FavoriteDAO *dao.FavoriteDAO
	Lock        *cache.LockStorage
}

func (s *FavoriteService) reactor() *reactor {
	return &reactor{kind: reactionFavorite, store: s.FavoriteDAO, lock: s.Lock}
}

func (s *FavoriteService) Toggle(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error) {
	return s.reactor().toggle(ctx, uid, docID)
}

func (s *FavoriteService) Favorite(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error) {
	return s.reactor().set(ctx, uid, docID, true)
}

func (s *FavoriteService) Unfavorite(ctx context.Context, uid, docID int64) (*types.ReactionResponse, error) {
	return s.reactor().set(ctx, uid, docID, false)
}

func (s *FavoriteService) IsFavorited(ctx context.Context, uid, docID int64) (bool, error) {
	return s.FavoriteDAO.Exists(ctx, docID, uid)
}
