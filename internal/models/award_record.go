package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AwardRecord is written for every winning bid that was actually charged.
// Skipped or rejected winners leave no record.
type AwardRecord struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	LeagueCode    string `gorm:"type:varchar(40);not null;index"`
	ParticipantID string `gorm:"type:varchar(64);not null;index"`
	UserID        string `gorm:"type:varchar(64);not null;index"`

	ItemType string          `gorm:"type:varchar(10);not null"`
	ItemName string          `gorm:"type:text;not null"`
	Amount   decimal.Decimal `gorm:"type:numeric(30,10);not null"`

	CreatedAt time.Time `gorm:"type:timestamptz;not null;index"`
}

func (AwardRecord) TableName() string {
	return "award_records"
}
