package models

import (
	"time"
)

// Document Markdown 文档
// likes_count / favorites_count 只在点赞、收藏事务内按实时行数回写
type Document struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	AuthorID       int64     `gorm:"column:author_id;not null;index:idx_author_created,priority:1" json:"author_id"`
	Title          string    `gorm:"column:title;type:varchar(50);not null;default:''" json:"title"`
	Description    string    `gorm:"column:description;type:varchar(100);not null;default:''" json:"description"`
	Content        string    `gorm:"column:content;type:text" json:"content"`
	LikesCount     int64     `gorm:"column:likes_count;not null;default:0" json:"likes_count"`
	FavoritesCount int64     `gorm:"column:favorites_count;not null;default:0" json:"favorites_count"`
	CreatedAt      time.Time `gorm:"column:created_at;index:idx_documents_created_at;index:idx_author_created,priority:2" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}
