package types

import "time"

type RegisterRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *UserProfile `json:"user"`
}

type UpdateProfileRequest struct {
	Nickname      *string `json:"nickname"`
	NicknameColor *string `json:"nickname_color"`
}

// UserProfile 当前用户资料
type UserProfile struct {
	ID            int64     `json:"id,string"`
	Nickname      string    `json:"nickname"`
	NicknameColor string    `json:"nickname_color"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
}

// Author 展示在文档、评论、消息旁的作者信息
type Author struct {
	ID            int64  `json:"id,string"`
	Nickname      string `json:"nickname"`
	NicknameColor string `json:"nickname_color"`
}

// Contact 私信联系人
type Contact struct {
	Author
	Unread int64 `json:"unread"`
}
