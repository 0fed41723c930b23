package auction

import (
	"github.com/shopspring/decimal"

	"motormarket/internal/models"
)

// SkipReason explains why a winning bid was not charged. Skips are normal
// outcomes, not errors: the item stays unawarded and the round continues.
type SkipReason string

const (
	SkipUnknownParticipant SkipReason = "unknown_participant"
	SkipInsufficientBudget SkipReason = "insufficient_budget"
	SkipCarSlotOccupied    SkipReason = "car_slot_occupied"
	SkipBadSnapshot        SkipReason = "bad_snapshot"
	SkipUnknownItemType    SkipReason = "unknown_item_type"
)

// TeamState is the live, progressively mutated copy of one participant built
// for a single league resolution run. It aliases nothing from the store; the
// resolver persists dirty states once at the end of the run.
type TeamState struct {
	ParticipantID string
	UserID        string
	Budget        decimal.Decimal
	Cars          []models.Car
	Parts         []models.Part
	Dirty         bool
}

// Award applies a winning bid against the run's team states. Preconditions are
// checked in order and short-circuit to a SkipReason: the participant must be
// in the league, must afford the bid, and for cars must have an empty car
// slot. On success the item is built from the bid snapshot, the budget is
// deducted, the state is marked dirty, and an AwardRecord is returned with
// league and timestamp fields left for the resolver to fill.
func Award(bid models.Bid, teams map[string]*TeamState) (*models.AwardRecord, SkipReason) {
	team, ok := teams[bid.ParticipantID]
	if !ok {
		return nil, SkipUnknownParticipant
	}
	if team.Budget.Cmp(bid.Amount) < 0 {
		return nil, SkipInsufficientBudget
	}

	var itemName string
	switch bid.ItemType {
	case models.ItemTypeCar:
		if len(team.Cars) > 0 {
			return nil, SkipCarSlotOccupied
		}
		snap, err := decodeCarSnapshot(bid.ItemData)
		if err != nil {
			return nil, SkipBadSnapshot
		}
		team.Cars = []models.Car{snap.BuildCar()}
		itemName = snap.DisplayName()
	case models.ItemTypePart:
		snap, err := decodePartSnapshot(bid.ItemData)
		if err != nil {
			return nil, SkipBadSnapshot
		}
		team.Parts = append(team.Parts, snap.BuildPart())
		itemName = snap.DisplayName()
	default:
		return nil, SkipUnknownItemType
	}

	team.Budget = team.Budget.Sub(bid.Amount)
	team.Dirty = true

	return &models.AwardRecord{
		ParticipantID: team.ParticipantID,
		UserID:        team.UserID,
		ItemType:      bid.ItemType,
		ItemName:      itemName,
		Amount:        bid.Amount,
	}, ""
}
