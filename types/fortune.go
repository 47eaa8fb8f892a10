package types

import "time"

type FortuneItem struct {
	ID        int64     `json:"id,string"`
	Fortune   string    `json:"fortune"`
	Label     string    `json:"label"`
	Good      []string  `json:"good"`
	Bad       []string  `json:"bad"`
	DrawDay   string    `json:"draw_day"`
	CreatedAt time.Time `json:"created_at"`
}

type FortuneStatus struct {
	Drawn bool         `json:"drawn"`
	Today *FortuneItem `json:"today,omitempty"`
	// NextDrawAt 下一次可以抽签的时间
	NextDrawAt time.Time `json:"next_draw_at"`
}
