package auction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"motormarket/internal/models"
)

func bid(id, itemID string, amount int64, created time.Time) models.Bid {
	return models.Bid{
		ID:        id,
		ItemID:    itemID,
		Amount:    decimal.NewFromInt(amount),
		CreatedAt: created,
	}
}

func TestSelectWinners_HighestAmount(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	winners := SelectWinners([]models.Bid{
		bid("a", "item-1", 100, t0),
		bid("b", "item-1", 250, t0.Add(time.Minute)),
		bid("c", "item-1", 180, t0.Add(2*time.Minute)),
	})
	if len(winners) != 1 {
		t.Fatalf("winners=%d want 1", len(winners))
	}
	if winners["item-1"].ID != "b" {
		t.Fatalf("winner=%s want b", winners["item-1"].ID)
	}
}

func TestSelectWinners_TieBreakEarliest(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	winners := SelectWinners([]models.Bid{
		bid("late", "item-1", 200, t0.Add(5*time.Second)),
		bid("early", "item-1", 200, t0.Add(2*time.Second)),
	})
	if winners["item-1"].ID != "early" {
		t.Fatalf("winner=%s want early", winners["item-1"].ID)
	}
}

func TestSelectWinners_FullTieDeterministic(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := []models.Bid{
		bid("first", "item-1", 200, t0),
		bid("second", "item-1", 200, t0),
	}
	for i := 0; i < 10; i++ {
		winners := SelectWinners(in)
		if winners["item-1"].ID != "first" {
			t.Fatalf("winner=%s want first (input order must decide full ties)", winners["item-1"].ID)
		}
	}
}

func TestSelectWinners_PerItemGrouping(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	winners := SelectWinners([]models.Bid{
		bid("a", "item-1", 100, t0),
		bid("b", "item-2", 50, t0),
		bid("c", "item-2", 60, t0.Add(time.Second)),
	})
	if len(winners) != 2 {
		t.Fatalf("winners=%d want 2", len(winners))
	}
	if winners["item-1"].ID != "a" || winners["item-2"].ID != "c" {
		t.Fatalf("winners=%v", winners)
	}
}

func TestSelectWinners_Empty(t *testing.T) {
	if got := SelectWinners(nil); len(got) != 0 {
		t.Fatalf("got=%v want empty", got)
	}
}
