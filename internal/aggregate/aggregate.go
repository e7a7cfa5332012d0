// Package aggregate folds per-period scores into season-to-date standings.
//
// Everything here is recomputed from scratch on every invocation from the
// finalized period reports; there is no incremental state. Given the same
// set of reports, in any order, the output is identical.
package aggregate

import (
	"sort"
	"strings"

	"github.com/poohleague/pooh-data/internal/names"
)

// PeriodReport is one finalized period's entity -> score mapping.
type PeriodReport struct {
	Period int
	Scores map[string]int
}

// OwnerSummary is one owner's season-to-date line.
type OwnerSummary struct {
	Name      string
	PerPeriod map[int]int
	Total     int
	Average   float64

	// Points out of 1st/2nd/3rd place, never negative. When fewer owners
	// exist than the reference rank, the lowest available total is used.
	OutOfFirst  int
	OutOfSecond int
	OutOfThird  int
}

// Owners aggregates finalized owner reports into ranked season standings.
// capPD > 0 restricts the input to periods <= capPD. A missing (owner,
// period)
// pair counts as 0, never as unknown. Ranking is total descending with a
// case-insensitive name ascending tie-break, so output order is stable
// across re-runs and input permutations.
func Owners(reports []PeriodReport, capPD int) []OwnerSummary {
	perPeriod := make(map[int]map[string]int)
	ownersSeen := make(map[string]bool)

	for _, rep := range reports {
		if capPD > 0 && rep.Period > capPD {
			continue
		}
		m := perPeriod[rep.Period]
		if m == nil {
			m = make(map[string]int)
			perPeriod[rep.Period] = m
		}
		for owner, score := range rep.Scores {
			m[owner] += score
			ownersSeen[owner] = true
		}
	}

	periodCount := len(perPeriod)
	divisor := periodCount
	if divisor < 1 {
		divisor = 1
	}

	out := make([]OwnerSummary, 0, len(ownersSeen))
	for owner := range ownersSeen {
		s := OwnerSummary{Name: owner, PerPeriod: make(map[int]int, periodCount)}
		for pd, scores := range perPeriod {
			v := scores[owner] // implicit zero for absent periods
			s.PerPeriod[pd] = v
			s.Total += v
		}
		s.Average = float64(s.Total) / float64(divisor)
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})

	fillPlaceGaps(out)
	return out
}

// fillPlaceGaps computes the out-of-Nth fields from the sorted totals.
func fillPlaceGaps(sorted []OwnerSummary) {
	if len(sorted) == 0 {
		return
	}
	refTotal := func(rank int) int {
		if rank >= len(sorted) {
			rank = len(sorted) - 1
		}
		return sorted[rank].Total
	}
	top1, top2, top3 := refTotal(0), refTotal(1), refTotal(2)
	for i := range sorted {
		sorted[i].OutOfFirst = max(0, top1-sorted[i].Total)
		sorted[i].OutOfSecond = max(0, top2-sorted[i].Total)
		sorted[i].OutOfThird = max(0, top3-sorted[i].Total)
	}
}

// MaxPeriod returns the highest period present after applying capPD, or 0
// when no reports remain. Drives the PD column span in rendered standings.
func MaxPeriod(reports []PeriodReport, capPD int) int {
	maxPD := 0
	for _, rep := range reports {
		if capPD > 0 && rep.Period > capPD {
			continue
		}
		if rep.Period > maxPD {
			maxPD = rep.Period
		}
	}
	return maxPD
}

// PlayerGame is one player's scored line in one period, as parsed back out
// of a finalized players report.
type PlayerGame struct {
	Period    int
	Player    string
	Pooh      int
	Points    int
	Rebounds  int
	Assists   int
	Steals    int
	Blocks    int
	Turnovers int
	Minutes   float64
}

// PlayerSummary is one player's season-to-date line with per-game rates.
type PlayerSummary struct {
	Key       string
	Name      string
	PerPeriod map[int]int
	Games     int
	Total     int
	Average   float64

	MinutesPerGame   float64
	PointsPerGame    float64
	ReboundsPerGame  float64
	AssistsPerGame   float64
	StealsPerGame    float64
	BlocksPerGame    float64
	TurnoversPerGame float64
}

// Players aggregates per-game lines into per-player season summaries,
// keyed by normalized name. Duplicate (player, period) observations sum.
// Rate divisors are floored at 1 so a player with no games reports zeros
// instead of failing. Sorted by average desc, total desc, name asc.
func Players(games []PlayerGame) []PlayerSummary {
	type acc struct {
		name      string
		perPeriod map[int]int
		games     int
		pooh      int
		minutes   float64
		pts       int
		reb       int
		ast       int
		stl       int
		blk       int
		to        int
	}

	byKey := make(map[string]*acc)
	for _, g := range games {
		key := names.Normalize(g.Player)
		a := byKey[key]
		if a == nil {
			a = &acc{name: g.Player, perPeriod: make(map[int]int)}
			byKey[key] = a
		}
		a.perPeriod[g.Period] += g.Pooh
		a.games++
		a.pooh += g.Pooh
		a.minutes += g.Minutes
		a.pts += g.Points
		a.reb += g.Rebounds
		a.ast += g.Assists
		a.stl += g.Steals
		a.blk += g.Blocks
		a.to += g.Turnovers
	}

	out := make([]PlayerSummary, 0, len(byKey))
	for key, a := range byKey {
		n := a.games
		if n < 1 {
			n = 1
		}
		g := float64(n)
		out = append(out, PlayerSummary{
			Key:              key,
			Name:             a.name,
			PerPeriod:        a.perPeriod,
			Games:            a.games,
			Total:            a.pooh,
			Average:          float64(a.pooh) / g,
			MinutesPerGame:   a.minutes / g,
			PointsPerGame:    float64(a.pts) / g,
			ReboundsPerGame:  float64(a.reb) / g,
			AssistsPerGame:   float64(a.ast) / g,
			StealsPerGame:    float64(a.stl) / g,
			BlocksPerGame:    float64(a.blk) / g,
			TurnoversPerGame: float64(a.to) / g,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Average != out[j].Average {
			return out[i].Average > out[j].Average
		}
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
