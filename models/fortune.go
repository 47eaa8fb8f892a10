package models

import (
	"time"

	"gorm.io/datatypes"
)

// FortuneAdvice 宜 / 忌
type FortuneAdvice struct {
	Good []string `json:"good"`
	Bad  []string `json:"bad"`
}

// FortuneRecord 每日运势，一个滚动日内每人一条
// draw_day 为按截止时刻折算后的日期 YYYY-MM-DD
type FortuneRecord struct {
	ID        int64                             `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	UserID    int64                             `gorm:"column:user_id;not null;uniqueIndex:uk_user_day,priority:1" json:"user_id"`
	DrawDay   string                            `gorm:"column:draw_day;type:varchar(10);not null;uniqueIndex:uk_user_day,priority:2" json:"draw_day"`
	Fortune   string                            `gorm:"column:fortune;type:varchar(20);not null" json:"fortune"`
	Advice    datatypes.JSONType[FortuneAdvice] `gorm:"column:advice" json:"advice"`
	CreatedAt time.Time                         `gorm:"column:created_at;index:idx_fortune_created_at" json:"created_at"`
}

func (FortuneRecord) TableName() string {
	return "fortune_records"
}
