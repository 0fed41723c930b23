package models

import (
	"time"

	"gorm.io/datatypes"
)

// MarketItem is a listing in a league's marketplace. Payload carries the
// car or part snapshot that gets copied into every bid placed against it.
type MarketItem struct {
	ID       string `gorm:"primaryKey;type:varchar(100)"`
	LeagueID uint64 `gorm:"not null;index"`

	ItemType string         `gorm:"type:varchar(10);not null"`
	Payload  datatypes.JSON `gorm:"type:jsonb;not null"`

	ClosesAt  *time.Time `gorm:"type:timestamptz;index"`
	CreatedAt time.Time  `gorm:"type:timestamptz;autoCreateTime"`
}

func (MarketItem) TableName() string {
	return "market_items"
}
