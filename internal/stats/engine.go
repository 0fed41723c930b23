// Package stats derives a car's display stats from its base stats and
// equipped parts. Pure computation, no I/O.
package stats

import (
	"math"

	"motormarket/internal/models"
)

// Compute sums every present bonus axis of each part onto a copy of base,
// applies synergy rules in a fixed order, then clamps each axis to [0,100].
// Absent bonus axes contribute zero; they never overwrite the running total.
func Compute(base models.StatVector, parts []models.Part) models.StatVector {
	out := base
	for _, p := range parts {
		out.AC += axis(p.BonusStats.AC)
		out.MN += axis(p.BonusStats.MN)
		out.TR += axis(p.BonusStats.TR)
		out.CN += axis(p.BonusStats.CN)
		out.ES += axis(p.BonusStats.ES)
		out.FI += axis(p.BonusStats.FI)
	}

	types := map[string]bool{}
	for _, p := range parts {
		types[p.Type] = true
	}
	if types[models.PartTypeTurbo] && types[models.PartTypeIntercooler] {
		out.AC = int(math.Floor(float64(out.AC) * 1.15))
	}
	if types[models.PartTypeSuspension] && types[models.PartTypeTires] {
		out.MN += 10
	}

	out.AC = clamp(out.AC)
	out.MN = clamp(out.MN)
	out.TR = clamp(out.TR)
	out.CN = clamp(out.CN)
	out.ES = clamp(out.ES)
	out.FI = clamp(out.FI)
	return out
}

func axis(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
