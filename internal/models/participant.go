package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Participant is a player's seat in one league. TeamCars holds at most one Car
// and TeamParts is append-only in award order; both are jsonb payloads decoded
// into []Car / []Part by the resolution layer.
type Participant struct {
	ID         string `gorm:"primaryKey;type:varchar(64)"`
	UserID     string `gorm:"type:varchar(64);not null;index"`
	LeagueCode string `gorm:"type:varchar(40);not null;index"`

	Budget    decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	TeamCars  datatypes.JSON  `gorm:"type:jsonb;not null"`
	TeamParts datatypes.JSON  `gorm:"type:jsonb;not null"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Participant) TableName() string {
	return "participants"
}
