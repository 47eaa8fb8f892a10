package models

import "time"

const (
	DefaultNicknameColor = "#3B82F6"
	AdminNicknameColor   = "#8B5CF6"
)

// User 用户表，昵称唯一
type User struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Nickname      string    `gorm:"column:nickname;type:varchar(20);not null;uniqueIndex:uk_nickname" json:"nickname"`
	PasswordHash  string    `gorm:"column:password_hash;type:varchar(100);not null" json:"-"`
	NicknameColor string    `gorm:"column:nickname_color;type:varchar(7);not null;default:'#3B82F6'" json:"nickname_color"`
	IsAdmin       bool      `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
	CreatedAt     time.Time `gorm:"column:created_at;index:idx_users_created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
