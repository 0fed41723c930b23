package models

import "github.com/shopspring/decimal"

// Part types that participate in synergy bonuses.
const (
	PartTypeTurbo       = "turbo"
	PartTypeIntercooler = "intercooler"
	PartTypeSuspension  = "suspension"
	PartTypeTires       = "tires"
)

// Car is a JSON-embedded value inside a participant's team, not a table of its
// own. It is created exactly once, when a car bid wins.
type Car struct {
	ID          string     `json:"id"`
	Brand       string     `json:"brand"`
	Model       string     `json:"model"`
	Year        int        `json:"year"`
	HP          int        `json:"hp"`
	Description string     `json:"description,omitempty"`
	Parts       []Part     `json:"parts"`
	BaseStats   StatVector `json:"baseStats"`
	Stats       StatVector `json:"stats"`
}

// Part is immutable once awarded.
type Part struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Quality    string           `json:"quality,omitempty"`
	Name       string           `json:"name"`
	BonusStats SparseStatVector `json:"bonusStats"`
	Price      decimal.Decimal  `json:"price"`
}
