package models

import "time"

// Message 私信，content 与 image_key 至少有一个
// read_at 为空表示接收方未读
type Message struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	SenderID   int64      `gorm:"column:sender_id;not null;index:idx_pair_created,priority:1" json:"sender_id"`
	ReceiverID int64      `gorm:"column:receiver_id;not null;index:idx_pair_created,priority:2;index:idx_receiver_read,priority:1" json:"receiver_id"`
	Content    string     `gorm:"column:content;type:text" json:"content"`
	ImageKey   *string    `gorm:"column:image_key;type:varchar(255)" json:"image_key,omitempty"`
	ReadAt     *time.Time `gorm:"column:read_at;index:idx_receiver_read,priority:2" json:"read_at,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;index:idx_pair_created,priority:3" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
