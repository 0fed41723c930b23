package stats

import (
	"testing"

	"motormarket/internal/models"
)

func intPtr(v int) *int { return &v }

func TestCompute_NoParts(t *testing.T) {
	base := models.StatVector{AC: 50, MN: 40, TR: 30, CN: 20, ES: 10, FI: 5}
	got := Compute(base, nil)
	if got != base {
		t.Fatalf("got=%+v want=%+v", got, base)
	}
}

func TestCompute_SparseBonuses(t *testing.T) {
	base := models.StatVector{AC: 10, MN: 10}
	parts := []models.Part{
		{Type: "exhaust", BonusStats: models.SparseStatVector{AC: intPtr(5)}},
		{Type: "ecu", BonusStats: models.SparseStatVector{AC: intPtr(3), FI: intPtr(7)}},
	}
	got := Compute(base, parts)
	if got.AC != 18 {
		t.Fatalf("ac=%d want 18", got.AC)
	}
	if got.MN != 10 {
		t.Fatalf("mn=%d want 10 (absent axis must not overwrite)", got.MN)
	}
	if got.FI != 7 {
		t.Fatalf("fi=%d want 7", got.FI)
	}
}

func TestCompute_TurboIntercoolerSynergy(t *testing.T) {
	base := models.StatVector{AC: 50}
	parts := []models.Part{
		{Type: models.PartTypeTurbo},
		{Type: models.PartTypeIntercooler},
	}
	got := Compute(base, parts)
	if got.AC != 57 {
		t.Fatalf("ac=%d want floor(50*1.15)=57", got.AC)
	}
}

func TestCompute_SuspensionTiresSynergy(t *testing.T) {
	base := models.StatVector{MN: 42}
	parts := []models.Part{
		{Type: models.PartTypeSuspension},
		{Type: models.PartTypeTires},
	}
	got := Compute(base, parts)
	if got.MN != 52 {
		t.Fatalf("mn=%d want 52", got.MN)
	}
}

func TestCompute_SynergyAppliesBeforeClamp(t *testing.T) {
	base := models.StatVector{AC: 95, MN: 95}
	parts := []models.Part{
		{Type: models.PartTypeTurbo, BonusStats: models.SparseStatVector{AC: intPtr(10)}},
		{Type: models.PartTypeIntercooler},
		{Type: models.PartTypeSuspension},
		{Type: models.PartTypeTires},
	}
	got := Compute(base, parts)
	if got.AC != 100 {
		t.Fatalf("ac=%d want clamped to 100", got.AC)
	}
	if got.MN != 100 {
		t.Fatalf("mn=%d want clamped to 100", got.MN)
	}
}

func TestCompute_ClampBounds(t *testing.T) {
	base := models.StatVector{AC: -5, MN: 140, TR: 0, CN: 100}
	got := Compute(base, nil)
	want := models.StatVector{AC: 0, MN: 100, TR: 0, CN: 100}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
	parts := []models.Part{
		{Type: "ballast", BonusStats: models.SparseStatVector{TR: intPtr(-30)}},
	}
	got = Compute(models.StatVector{TR: 10}, parts)
	if got.TR != 0 {
		t.Fatalf("tr=%d want raised to 0", got.TR)
	}
}
