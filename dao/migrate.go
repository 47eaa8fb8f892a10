package dao

import (
	"Scribe/models"

	"gorm.io/gorm"
)

// AutoMigrate 建表并补齐索引
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Document{},
		&models.Comment{},
		&models.Like{},
		&models.Favorite{},
		&models.Message{},
		&models.FortuneRecord{},
	)
}
