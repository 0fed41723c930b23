package models

import "time"

type League struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	Code   string `gorm:"type:varchar(40);not null;uniqueIndex"`
	Name   string `gorm:"type:text;not null"`
	Season string `gorm:"type:varchar(20)"`

	// LastResolvedAt gates the daily auction resolution: once stamped inside
	// the current cutoff window the league is skipped until the next window.
	LastResolvedAt *time.Time `gorm:"type:timestamptz;index"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (League) TableName() string {
	return "leagues"
}
