package auction

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"motormarket/internal/models"
	"motormarket/internal/stats"
)

// CarSnapshot is the shape of a car listing payload frozen into a bid.
// Stat fields are optional; every missing axis defaults to 0 when the car is
// built. The snapshot is decoded once, at the award boundary.
type CarSnapshot struct {
	ID          string                  `json:"id"`
	Brand       string                  `json:"brand"`
	Model       string                  `json:"model"`
	Year        int                     `json:"year"`
	HP          int                     `json:"hp"`
	Description string                  `json:"description"`
	BaseStats   models.SparseStatVector `json:"baseStats"`
}

// PartSnapshot is the shape of a part listing payload frozen into a bid.
type PartSnapshot struct {
	ID         string                  `json:"id"`
	Type       string                  `json:"type"`
	Quality    string                  `json:"quality"`
	Name       string                  `json:"name"`
	BonusStats models.SparseStatVector `json:"bonusStats"`
	Price      decimal.Decimal         `json:"price"`
}

func decodeCarSnapshot(raw []byte) (CarSnapshot, error) {
	var snap CarSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return CarSnapshot{}, err
	}
	return snap, nil
}

func decodePartSnapshot(raw []byte) (PartSnapshot, error) {
	var snap PartSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return PartSnapshot{}, err
	}
	return snap, nil
}

// BuildCar constructs the awarded car: id gets a uniqueness token so the same
// listing can be re-awarded across rounds, parts start empty, and stats are
// the clamped base stats (no parts equipped yet).
func (s CarSnapshot) BuildCar() models.Car {
	base := models.StatVector{
		AC: axisOrZero(s.BaseStats.AC),
		MN: axisOrZero(s.BaseStats.MN),
		TR: axisOrZero(s.BaseStats.TR),
		CN: axisOrZero(s.BaseStats.CN),
		ES: axisOrZero(s.BaseStats.ES),
		FI: axisOrZero(s.BaseStats.FI),
	}
	return models.Car{
		ID:          s.ID + "-" + uuid.NewString()[:8],
		Brand:       s.Brand,
		Model:       s.Model,
		Year:        s.Year,
		HP:          s.HP,
		Description: s.Description,
		Parts:       []models.Part{},
		BaseStats:   base,
		Stats:       stats.Compute(base, nil),
	}
}

func (s CarSnapshot) DisplayName() string {
	name := strings.TrimSpace(s.Brand + " " + s.Model)
	if name == "" {
		name = s.ID
	}
	return name
}

func (s PartSnapshot) BuildPart() models.Part {
	return models.Part{
		ID:         s.ID,
		Type:       s.Type,
		Quality:    s.Quality,
		Name:       s.Name,
		BonusStats: s.BonusStats,
		Price:      s.Price,
	}
}

func (s PartSnapshot) DisplayName() string {
	if strings.TrimSpace(s.Name) != "" {
		return s.Name
	}
	return s.ID
}

func axisOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
