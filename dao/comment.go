package dao

import (
	"Scribe/models"
	"context"

	"gorm.io/gorm"
)

type Comment struct {
	Repo[models.Comment]
}

func NewComment(db *gorm.DB) *Comment {
	return &Comment{
		Repo: NewRepo[models.Comment](db),
	}
}

// ListByDocument 文档下全部评论，按时间正序
func (d *Comment) ListByDocument(ctx context.Context, docID int64) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := d.Db.WithContext(ctx).
		Where("document_id = ?", docID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

// DeleteByUserTx 事务内删除用户发表的全部评论
func (d *Comment) DeleteByUserTx(tx *gorm.DB, userID int64) error {
	return tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error
}
