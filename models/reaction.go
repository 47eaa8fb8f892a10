package models

import "time"

// Like 点赞记录，取消点赞直接删除行
// 唯一键: document_id + user_id
type Like struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	DocumentID int64     `gorm:"column:document_id;not null;uniqueIndex:uk_like_document_user,priority:1" json:"document_id"`
	UserID     int64     `gorm:"column:user_id;not null;uniqueIndex:uk_like_document_user,priority:2;index:idx_like_user" json:"user_id"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Like) TableName() string { return "likes" }

// Favorite 收藏记录
// 唯一键: document_id + user_id
type Favorite struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	DocumentID int64     `gorm:"column:document_id;not null;uniqueIndex:uk_favorite_document_user,priority:1" json:"document_id"`
	UserID     int64     `gorm:"column:user_id;not null;uniqueIndex:uk_favorite_document_user,priority:2;index:idx_favorite_user" json:"user_id"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Favorite) TableName() string { return "favorites" }
