package dao

import (
	"Scribe/models"
	"context"

	"gorm.io/gorm"
)

type FortuneDAO struct {
	Repo[models.FortuneRecord]
}

func NewFortuneDAO(db *gorm.DB) *FortuneDAO {
	return &FortuneDAO{Repo: NewRepo[models.FortuneRecord](db)}
}

// FindByDay 用户在某个滚动日的记录，不存在返回 nil
func (d *FortuneDAO) FindByDay(ctx context.Context, uid int64, day string) (*models.FortuneRecord, error) {
	var items []*models.FortuneRecord
	err := d.Db.WithContext(ctx).
		Where("user_id = ? AND draw_day = ?", uid, day).
		Limit(1).
		Find(&items).Error
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0], nil
}

// History 最近的抽签记录
func (d *FortuneDAO) History(ctx context.Context, uid int64, limit int) ([]*models.FortuneRecord, error) {
	var items []*models.FortuneRecord
	err := d.Db.WithContext(ctx).
		Where("user_id = ?", uid).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (d *FortuneDAO) DeleteByUserTx(tx *gorm.DB, uid int64) error {
	return tx.Where("user_id = ?", uid).Delete(&models.FortuneRecord{}).Error
}
