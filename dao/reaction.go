package dao

import (
	"Scribe/models"
	"Scribe/pkg/snowflake"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionDAO 点赞 / 收藏这一类 (document_id, user_id) 唯一的关系表
// 计数列在同一事务内按实时行数回写，不做增减
type ReactionDAO[T any] struct {
	Repo[T]
	counter string
	newRow  func(docID, userID int64) *T
}

type LikeDAO struct {
	ReactionDAO[models.Like]
}

type FavoriteDAO struct {
	ReactionDAO[models.Favorite]
}

func NewLikeDAO(db *gorm.DB) *LikeDAO {
	return &LikeDAO{ReactionDAO[models.Like]{
		Repo:    NewRepo[models.Like](db),
		counter: "likes_count",
		newRow: func(docID, userID int64) *models.Like {
			return &models.Like{ID: snowflake.GenID(), DocumentID: docID, UserID: userID, CreatedAt: time.Now()}
		},
	}}
}

func NewFavoriteDAO(db *gorm.DB) *FavoriteDAO {
	return &FavoriteDAO{ReactionDAO[models.Favorite]{
		Repo:    NewRepo[models.Favorite](db),
		counter: "favorites_count",
		newRow: func(docID, userID int64) *models.Favorite {
			return &models.Favorite{ID: snowflake.GenID(), DocumentID: docID, UserID: userID, CreatedAt: time.Now()}
		},
	}}
}

// Toggle 存在则删除，不存在则插入，返回操作后的状态与计数
func (d *ReactionDAO[T]) Toggle(ctx context.Context, docID, userID int64) (active bool, count int64, err error) {
	err = d.Tx(ctx, func(tx *gorm.DB) error {
		if err := documentMustExist(tx, docID); err != nil {
			return err
		}

		exist, err := d.existTx(tx, docID, userID)
		if err != nil {
			return err
		}

		if err := d.applyTx(tx, docID, userID, !exist); err != nil {
			return err
		}
		active = !exist

		count, err = d.recountTx(tx, docID)
		return err
	})
	return active, count, err
}

// Set 幂等地设置状态，重复点赞、重复取消都不会报错
func (d *ReactionDAO[T]) Set(ctx context.Context, docID, userID int64, active bool) (count int64, err error) {
	err = d.Tx(ctx, func(tx *gorm.DB) error {
		if err := documentMustExist(tx, docID); err != nil {
			return err
		}
		if err := d.applyTx(tx, docID, userID, active); err != nil {
			return err
		}
		count, err = d.recountTx(tx, docID)
		return err
	})
	return count, err
}

// Exists 用户是否对文档有记录
func (d *ReactionDAO[T]) Exists(ctx context.Context, docID, userID int64) (bool, error) {
	return d.IsExist(ctx, "document_id = ? AND user_id = ?", docID, userID)
}

// DocumentIDsByUserTx 事务内查询用户有记录的文档
func (d *ReactionDAO[T]) DocumentIDsByUserTx(tx *gorm.DB, userID int64) ([]int64, error) {
	var ids []int64
	err := tx.Model(new(T)).Where("user_id = ?", userID).Pluck("document_id", &ids).Error
	return ids, err
}

// DeleteByUserTx 删除用户全部记录并回写受影响文档的计数
func (d *ReactionDAO[T]) DeleteByUserTx(tx *gorm.DB, userID int64) error {
	ids, err := d.DocumentIDsByUserTx(tx, userID)
	if err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(new(T)).Error; err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := d.recountTx(tx, id); err != nil {
			return err
		}
	}
	return nil
}

func (d *ReactionDAO[T]) existTx(tx *gorm.DB, docID, userID int64) (bool, error) {
	var n int64
	err := tx.Model(new(T)).Where("document_id = ? AND user_id = ?", docID, userID).Count(&n).Error
	return n > 0, err
}

func (d *ReactionDAO[T]) applyTx(tx *gorm.DB, docID, userID int64, active bool) error {
	if active {
		// 唯一键兜底，并发重复插入视为已存在
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(d.newRow(docID, userID)).Error
	}
	return tx.Where("document_id = ? AND user_id = ?", docID, userID).Delete(new(T)).Error
}

func (d *ReactionDAO[T]) recountTx(tx *gorm.DB, docID int64) (int64, error) {
	sub := tx.Model(new(T)).Select("COUNT(*)").Where("document_id = ?", docID)
	err := tx.Model(&models.Document{}).Where("id = ?", docID).UpdateColumn(d.counter, sub).Error
	if err != nil {
		return 0, err
	}

	var counts []int64
	if err := tx.Model(&models.Document{}).Where("id = ?", docID).Pluck(d.counter, &counts).Error; err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return counts[0], nil
}

func documentMustExist(tx *gorm.DB, docID int64) error {
	var n int64
	if err := tx.Model(&models.Document{}).Where("id = ?", docID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
