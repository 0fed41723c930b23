package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	ItemTypeCar  = "car"
	ItemTypePart = "part"
)

// Bid is a sealed offer for a market item. ItemData snapshots the item payload
// at placement time so resolution never depends on the listing still existing.
// Bids are immutable and deleted wholesale when their league's round clears.
type Bid struct {
	ID            string `gorm:"primaryKey;type:varchar(64)"`
	LeagueID      uint64 `gorm:"not null;index"`
	ItemID        string `gorm:"type:varchar(100);not null;index"`
	ParticipantID string `gorm:"type:varchar(64);not null;index"`

	ItemType string          `gorm:"type:varchar(10);not null"`
	ItemData datatypes.JSON  `gorm:"type:jsonb;not null"`
	Amount   decimal.Decimal `gorm:"type:numeric(30,10);not null"`

	CreatedAt time.Time `gorm:"type:timestamptz;not null;index"`
}

func (Bid) TableName() string {
	return "bids"
}
