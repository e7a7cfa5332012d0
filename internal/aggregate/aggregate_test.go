package aggregate

import (
	"math/rand"
	"reflect"
	"testing"
)

func sampleReports() []PeriodReport {
	return []PeriodReport{
		{Period: 1, Scores: map[string]int{"Alice": 10, "Bob": 15}},
		{Period: 2, Scores: map[string]int{"Alice": 20, "Bob": 15, "Cara": 8}},
		{Period: 3, Scores: map[string]int{"Cara": 12}},
	}
}

func TestOwners_TotalsWithImplicitZeros(t *testing.T) {
	out := Owners(sampleReports(), 0)

	byName := make(map[string]OwnerSummary)
	for _, s := range out {
		byName[s.Name] = s
	}

	if got := byName["Alice"].Total; got != 30 {
		t.Errorf("Alice total = %d, want 30", got)
	}
	if got := byName["Bob"].Total; got != 30 {
		t.Errorf("Bob total = %d, want 30", got)
	}
	if got := byName["Cara"].Total; got != 20 {
		t.Errorf("Cara total = %d, want 20", got)
	}
	// Absent (owner, period) pairs are zeros, not unknowns.
	if got := byName["Alice"].PerPeriod[3]; got != 0 {
		t.Errorf("Alice PD3 = %d, want implicit 0", got)
	}
	// Average divides by the number of periods in the input set (3).
	if got := byName["Alice"].Average; got != 10 {
		t.Errorf("Alice average = %v, want 10", got)
	}
}

func TestOwners_TieBreakIsNameAscending(t *testing.T) {
	// Alice and Bob both total 30; the tie must break on name, so the
	// ordering is deterministic across re-runs.
	out := Owners(sampleReports(), 0)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0].Name != "Alice" || out[1].Name != "Bob" || out[2].Name != "Cara" {
		t.Errorf("order = %s, %s, %s; want Alice, Bob, Cara", out[0].Name, out[1].Name, out[2].Name)
	}
}

func TestOwners_PermutationInvariance(t *testing.T) {
	base := Owners(sampleReports(), 0)

	for i := 0; i < 10; i++ {
		shuffled := sampleReports()
		rand.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Owners(shuffled, 0)
		if !reflect.DeepEqual(got, base) {
			t.Fatalf("permuted input changed output:\ngot  %+v\nwant %+v", got, base)
		}
	}
}

func TestOwners_Cap(t *testing.T) {
	out := Owners(sampleReports(), 2)

	byName := make(map[string]OwnerSummary)
	for _, s := range out {
		byName[s.Name] = s
	}
	if got := byName["Cara"].Total; got != 8 {
		t.Errorf("Cara capped total = %d, want 8", got)
	}
	// Two periods remain, so averages divide by 2.
	if got := byName["Alice"].Average; got != 15 {
		t.Errorf("Alice capped average = %v, want 15", got)
	}
}

func TestOwners_OutOfPlaceGaps(t *testing.T) {
	out := Owners(sampleReports(), 0)

	// Sorted: Alice 30, Bob 30, Cara 20.
	last := out[2]
	if last.OutOfFirst != 10 || last.OutOfSecond != 10 || last.OutOfThird != 0 {
		t.Errorf("Cara gaps = %d/%d/%d, want 10/10/0", last.OutOfFirst, last.OutOfSecond, last.OutOfThird)
	}
	first := out[0]
	if first.OutOfFirst != 0 || first.OutOfSecond != 0 {
		t.Errorf("leader gaps = %d/%d, want 0/0", first.OutOfFirst, first.OutOfSecond)
	}
}

func TestOwners_FewerOwnersThanRanks(t *testing.T) {
	reports := []PeriodReport{
		{Period: 1, Scores: map[string]int{"Solo": 12, "Duo": 7}},
	}
	out := Owners(reports, 0)
	// Third-place reference falls back to the lowest available total.
	if out[1].OutOfThird != 0 {
		t.Errorf("OutOfThird = %d, want 0 (fallback to lowest rank)", out[1].OutOfThird)
	}
	if out[1].OutOfFirst != 5 {
		t.Errorf("OutOfFirst = %d, want 5", out[1].OutOfFirst)
	}
}

func TestOwners_Empty(t *testing.T) {
	if out := Owners(nil, 0); len(out) != 0 {
		t.Errorf("Owners(nil) = %v, want empty", out)
	}
}

func TestMaxPeriod(t *testing.T) {
	if got := MaxPeriod(sampleReports(), 0); got != 3 {
		t.Errorf("MaxPeriod = %d, want 3", got)
	}
	if got := MaxPeriod(sampleReports(), 2); got != 2 {
		t.Errorf("MaxPeriod capped = %d, want 2", got)
	}
	if got := MaxPeriod(nil, 0); got != 0 {
		t.Errorf("MaxPeriod(nil) = %d, want 0", got)
	}
}

func TestPlayers_RatesAndMerging(t *testing.T) {
	games := []PlayerGame{
		{Period: 1, Player: "Mark Sears", Pooh: 10, Points: 20, Rebounds: 4, Minutes: 30},
		{Period: 2, Player: "Mark Sears Jr.", Pooh: 20, Points: 10, Rebounds: 6, Minutes: 34},
	}
	out := Players(games)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1 (variants merge on normalized key)", len(out))
	}
	p := out[0]
	if p.Games != 2 || p.Total != 30 {
		t.Errorf("games/total = %d/%d, want 2/30", p.Games, p.Total)
	}
	if p.Average != 15 {
		t.Errorf("average = %v, want 15", p.Average)
	}
	if p.PointsPerGame != 15 || p.ReboundsPerGame != 5 || p.MinutesPerGame != 32 {
		t.Errorf("rates = %v/%v/%v, want 15/5/32", p.PointsPerGame, p.ReboundsPerGame, p.MinutesPerGame)
	}
	if p.PerPeriod[1] != 10 || p.PerPeriod[2] != 20 {
		t.Errorf("per-period = %v, want {1:10 2:20}", p.PerPeriod)
	}
}

func TestPlayers_DuplicatePeriodSums(t *testing.T) {
	games := []PlayerGame{
		{Period: 1, Player: "A B", Pooh: 5},
		{Period: 1, Player: "A B", Pooh: 7},
	}
	out := Players(games)
	if out[0].PerPeriod[1] != 12 {
		t.Errorf("PD1 = %d, want 12 (duplicate rows sum)", out[0].PerPeriod[1])
	}
	if out[0].Games != 2 {
		t.Errorf("games = %d, want 2", out[0].Games)
	}
}

func TestPlayers_Ordering(t *testing.T) {
	games := []PlayerGame{
		{Period: 1, Player: "Low Avg", Pooh: 5},
		{Period: 1, Player: "High Avg", Pooh: 9},
		{Period: 1, Player: "also high avg", Pooh: 9}, // tie: name asc, case-insensitive
	}
	out := Players(games)
	if out[0].Name != "also high avg" || out[1].Name != "High Avg" || out[2].Name != "Low Avg" {
		t.Errorf("order = %s, %s, %s", out[0].Name, out[1].Name, out[2].Name)
	}
}
