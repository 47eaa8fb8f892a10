package models

import (
	"time"
)

// Comment 文档评论，正文不超过 1000 字
type Comment struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	DocumentID int64     `gorm:"column:document_id;not null;index:idx_document_created,priority:1" json:"document_id"`
	UserID     int64     `gorm:"column:user_id;not null;index:idx_comments_user" json:"user_id"`
	Content    string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"column:created_at;index:idx_document_created,priority:2" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
