package dao

import (
	"Scribe/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type MessageDAO struct {
	Repo[models.Message]
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{Repo: NewRepo[models.Message](db)}
}

// Conversation 两人之间的消息，按时间正序
// afterID > 0 时只取该消息之后的记录，用于增量拉取
func (d *MessageDAO) Conversation(ctx context.Context, uid, peerID int64, afterID int64, limit int) ([]*models.Message, error) {
	var msgs []*models.Message
	q := d.Db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", uid, peerID, peerID, uid)
	if afterID > 0 {
		q = q.Where("id > ?", afterID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Order("created_at ASC").Order("id ASC").Find(&msgs).Error
	return msgs, err
}

// MarkRead peer 发给 uid 且 id 不超过 upToID 的未读消息置为已读
func (d *MessageDAO) MarkRead(ctx context.Context, uid, peerID, upToID int64, at time.Time) (int64, error) {
	res := d.Db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND read_at IS NULL AND id <= ?", uid, peerID, upToID).
		Update("read_at", at)
	return res.RowsAffected, res.Error
}

type UnreadRow struct {
	SenderID int64
	Total    int64
}

// UnreadBySender 按发送者统计未读数
func (d *MessageDAO) UnreadBySender(ctx context.Context, uid int64) ([]UnreadRow, error) {
	var rows []UnreadRow
	err := d.Db.WithContext(ctx).
		Model(&models.Message{}).
		Select("sender_id, COUNT(*) AS total").
		Where("receiver_id = ? AND read_at IS NULL", uid).
		Group("sender_id").
		Scan(&rows).Error
	return rows, err
}

// DeleteByUserTx 事务内删除用户收发的全部消息，返回被删除的图片 key
func (d *MessageDAO) DeleteByUserTx(tx *gorm.DB, uid int64) ([]string, error) {
	var keys []string
	err := tx.Model(&models.Message{}).
		Where("(sender_id = ? OR receiver_id = ?) AND image_key IS NOT NULL", uid, uid).
		Pluck("image_key", &keys).Error
	if err != nil {
		return nil, err
	}
	err = tx.Where("sender_id = ? OR receiver_id = ?", uid, uid).Delete(&models.Message{}).Error
	return keys, err
}

// UnreadReceiversTx 有 uid 发来的未读消息的用户
func (d *MessageDAO) UnreadReceiversTx(tx *gorm.DB, uid int64) ([]int64, error) {
	var ids []int64
	err := tx.Model(&models.Message{}).
		Where("sender_id = ? AND read_at IS NULL", uid).
		Distinct().
		Pluck("receiver_id", &ids).Error
	return ids, err
}
