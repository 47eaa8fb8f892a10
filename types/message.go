package types

import "time"

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id,string" form:"receiver_id"`
	Content    string `json:"content" form:"content"`
}

type ConversationRequest struct {
	AfterID int64 `form:"after_id"`
	Limit   int   `form:"limit"`
}

type MessageItem struct {
	ID         int64      `json:"id,string"`
	SenderID   int64      `json:"sender_id,string"`
	ReceiverID int64      `json:"receiver_id,string"`
	Content    string     `json:"content"`
	ImageURL   string     `json:"image_url,omitempty"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type UnreadResponse struct {
	Total int64 `json:"total"`
	// key 为发送者 id
	ByPeer map[string]int64 `json:"by_peer"`
}
