package types

import "time"

type CreateDocumentRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Content     string `json:"content" form:"content"`
}

type ListDocumentRequest struct {
	PageRequest
	Query string `form:"q"`
}

// DocumentItem 列表项，不含正文
type DocumentItem struct {
	ID             int64     `json:"id,string"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Author         *Author   `json:"author"`
	LikesCount     int64     `json:"likes_count"`
	FavoritesCount int64     `json:"favorites_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type DocumentDetail struct {
	DocumentItem
	Content     string         `json:"content"`
	HTML        string         `json:"html"`
	IsLiked     bool           `json:"is_liked"`
	IsFavorited bool           `json:"is_favorited"`
	Comments    []*CommentItem `json:"comments"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ReactionResponse 点赞 / 收藏后的状态
type ReactionResponse struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}
