package auction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"motormarket/internal/models"
)

func carBid(participantID string, amount int64, payload string) models.Bid {
	return models.Bid{
		ID:            "bid-1",
		ItemID:        "car-9",
		ParticipantID: participantID,
		ItemType:      models.ItemTypeCar,
		ItemData:      datatypes.JSON([]byte(payload)),
		Amount:        decimal.NewFromInt(amount),
		CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func partBid(participantID string, amount int64, payload string) models.Bid {
	b := carBid(participantID, amount, payload)
	b.ItemID = "part-3"
	b.ItemType = models.ItemTypePart
	return b
}

func team(id string, budget int64) *TeamState {
	return &TeamState{
		ParticipantID: id,
		UserID:        "user-" + id,
		Budget:        decimal.NewFromInt(budget),
	}
}

const carPayload = `{"id":"car-9","brand":"Aster","model":"GT","year":1998,"hp":280,"baseStats":{"ac":60,"mn":40}}`

func TestAward_CarSuccess(t *testing.T) {
	teams := map[string]*TeamState{"p1": team("p1", 1000)}
	rec, skip := Award(carBid("p1", 300, carPayload), teams)
	if skip != "" {
		t.Fatalf("skip=%q want success", skip)
	}
	state := teams["p1"]
	if state.Budget.Cmp(decimal.NewFromInt(700)) != 0 {
		t.Fatalf("budget=%s want 700", state.Budget)
	}
	if len(state.Cars) != 1 {
		t.Fatalf("cars=%d want 1", len(state.Cars))
	}
	car := state.Cars[0]
	if car.ID == "car-9" || len(car.ID) <= len("car-9") {
		t.Fatalf("car id %q must carry a uniqueness token", car.ID)
	}
	if car.Stats != (models.StatVector{AC: 60, MN: 40}) {
		t.Fatalf("stats=%+v want base stats with missing axes zeroed", car.Stats)
	}
	if len(car.Parts) != 0 {
		t.Fatalf("parts=%d want empty at award time", len(car.Parts))
	}
	if !state.Dirty {
		t.Fatalf("state must be marked dirty")
	}
	if rec.UserID != "user-p1" || rec.ItemType != models.ItemTypeCar || rec.ItemName != "Aster GT" {
		t.Fatalf("record=%+v", rec)
	}
	if rec.Amount.Cmp(decimal.NewFromInt(300)) != 0 {
		t.Fatalf("record amount=%s want 300", rec.Amount)
	}
}

func TestAward_PartAppendOrder(t *testing.T) {
	teams := map[string]*TeamState{"p1": team("p1", 500)}
	if _, skip := Award(partBid("p1", 100, `{"id":"part-3","type":"turbo","name":"Turbo Mk1","price":100}`), teams); skip != "" {
		t.Fatalf("skip=%q", skip)
	}
	if _, skip := Award(partBid("p1", 50, `{"id":"part-4","type":"tires","name":"Soft Tires","price":50}`), teams); skip != "" {
		t.Fatalf("skip=%q", skip)
	}
	state := teams["p1"]
	if len(state.Parts) != 2 || state.Parts[0].ID != "part-3" || state.Parts[1].ID != "part-4" {
		t.Fatalf("parts=%+v want award order preserved", state.Parts)
	}
	if state.Budget.Cmp(decimal.NewFromInt(350)) != 0 {
		t.Fatalf("budget=%s want 350", state.Budget)
	}
}

func TestAward_UnknownParticipant(t *testing.T) {
	teams := map[string]*TeamState{"p1": team("p1", 1000)}
	rec, skip := Award(carBid("ghost", 300, carPayload), teams)
	if skip != SkipUnknownParticipant || rec != nil {
		t.Fatalf("rec=%v skip=%q", rec, skip)
	}
}

func TestAward_InsufficientBudget(t *testing.T) {
	teams := map[string]*TeamState{"p1": team("p1", 400)}
	rec, skip := Award(carBid("p1", 500, carPayload), teams)
	if skip != SkipInsufficientBudget || rec != nil {
		t.Fatalf("rec=%v skip=%q", rec, skip)
	}
	if teams["p1"].Budget.Cmp(decimal.NewFromInt(400)) != 0 {
		t.Fatalf("budget=%s must be untouched on skip", teams["p1"].Budget)
	}
	if teams["p1"].Dirty {
		t.Fatalf("skip must not dirty the state")
	}
}

func TestAward_ExactBudgetAllowed(t *testing.T) {
	teams := map[string]*TeamState{"p1": team("p1", 300)}
	_, skip := Award(carBid("p1", 300, carPayload), teams)
	if skip != "" {
		t.Fatalf("skip=%q want success at exact budget", skip)
	}
	if !teams["p1"].Budget.IsZero() {
		t.Fatalf("budget=%s want 0", teams["p1"].Budget)
	}
}

func TestAward_CarSlotOccupied(t *testing.T) {
	st := team("p1", 1000)
	st.Cars = []models.Car{{ID: "owned"}}
	teams := map[string]*TeamState{"p1": st}
	rec, skip := Award(carBid("p1", 300, carPayload), teams)
	if skip != SkipCarSlotOccupied || rec != nil {
		t.Fatalf("rec=%v skip=%q", rec, skip)
	}
	if len(st.Cars) != 1 {
		t.Fatalf("cars=%d want unchanged", len(st.Cars))
	}
}

func TestAward_BadSnapshot(t *testing.T) {
	teams := map[string]*TeamState{"p1": team("p1", 1000)}
	rec, skip := Award(carBid("p1", 300, `{not json`), teams)
	if skip != SkipBadSnapshot || rec != nil {
		t.Fatalf("rec=%v skip=%q", rec, skip)
	}
}

func TestAward_UnknownItemType(t *testing.T) {
	teams := map[string]*TeamState{"p1": team("p1", 1000)}
	b := carBid("p1", 300, carPayload)
	b.ItemType = "livery"
	rec, skip := Award(b, teams)
	if skip != SkipUnknownItemType || rec != nil {
		t.Fatalf("rec=%v skip=%q", rec, skip)
	}
}
