package db

import (
	"motormarket/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.League{},
		&models.Participant{},
		&models.MarketItem{},
		&models.Bid{},
		&models.AwardRecord{},
		&models.SystemSetting{},
	)
}
