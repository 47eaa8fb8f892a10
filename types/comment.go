package types

import "time"

type CreateCommentRequest struct {
	DocumentID int64  `json:"document_id,string" binding:"required"`
	Content    string `json:"content"`
}

type CommentItem struct {
	ID         int64     `json:"id,string"`
	DocumentID int64     `json:"document_id,string"`
	Author     *Author   `json:"author"`
	Content    string    `json:"content"`
	HTML       string    `json:"html"`
	CreatedAt  time.Time `json:"created_at"`
}
