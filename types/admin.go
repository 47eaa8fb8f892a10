package types

import "time"

type AdminListRequest struct {
	PageRequest
	Query string `form:"q"`
}

type AdminUserItem struct {
	UserProfile
	UpdatedAt time.Time `json:"updated_at"`
}

type SetAdminRequest struct {
	IsAdmin bool `json:"is_admin"`
}

type AdminStats struct {
	Users     int64 `json:"users"`
	Documents int64 `json:"documents"`
	Comments  int64 `json:"comments"`
	Messages  int64 `json:"messages"`
}
