// Package pooh computes the league's fantasy scoring metric from raw
// box-score rows.
//
// Pooh = (PTS + REB + AST + STL + BLK) - (missed FG + missed FT + TO).
package pooh

import (
	"strconv"
	"strings"
)

// Line is one player's scored stat line for a single game.
type Line struct {
	Minutes   float64
	Points    int
	Rebounds  int
	Assists   int
	Steals    int
	Blocks    int
	Turnovers int
	Score     int
}

// StatLine attaches identity to a scored line. Key is the normalized join
// key used to reconcile the feed against the draft board and roster sheet.
type StatLine struct {
	Player string
	Key    string
	Team   string
	Line
}

// Required stat labels. The feed's value list is positionally matched to a
// caller-supplied label list, so lookups go by label, never by position.
var requiredLabels = []string{"MIN", "FG", "FT", "REB", "AST", "STL", "BLK", "TO", "PTS"}

// Compute scores one raw box-score row. It returns ok=false when the label
// list is missing a required stat, when the value list is too short to cover
// the highest required index, or when the row is a did-not-play row (zero
// minutes, zero counting stats, zero attempts). Callers skip such rows;
// a schema mismatch is a recoverable per-row condition, never fatal.
func Compute(labels, values []string) (Line, bool) {
	if len(labels) == 0 || len(values) == 0 {
		return Line{}, false
	}

	idx := make(map[string]int, len(requiredLabels))
	maxIdx := -1
	for _, want := range requiredLabels {
		i := indexOf(labels, want)
		if i < 0 {
			return Line{}, false
		}
		idx[want] = i
		if i > maxIdx {
			maxIdx = i
		}
	}
	if len(values) <= maxIdx {
		return Line{}, false
	}

	mins := ParseMinutes(values[idx["MIN"]])
	fgm, fga := ParseMadeAttempted(values[idx["FG"]])
	ftm, fta := ParseMadeAttempted(values[idx["FT"]])

	// Upstream occasionally reports made > attempted; never score that as
	// negative misses.
	missedFG := max(0, fga-fgm)
	missedFT := max(0, fta-ftm)

	pts := safeInt(values[idx["PTS"]])
	reb := safeInt(values[idx["REB"]])
	ast := safeInt(values[idx["AST"]])
	stl := safeInt(values[idx["STL"]])
	blk := safeInt(values[idx["BLK"]])
	tov := safeInt(values[idx["TO"]])

	// A bench player who never entered the game must stay distinguishable
	// from one who played and scored exactly zero.
	if mins == 0 && pts == 0 && reb == 0 && ast == 0 && stl == 0 && blk == 0 && tov == 0 && fga == 0 && fta == 0 {
		return Line{}, false
	}

	score := (pts + reb + ast + stl + blk) - (missedFG + missedFT + tov)

	return Line{
		Minutes:   mins,
		Points:    pts,
		Rebounds:  reb,
		Assists:   ast,
		Steals:    stl,
		Blocks:    blk,
		Turnovers: tov,
		Score:     score,
	}, true
}

// ParseMinutes accepts "MM:SS", a bare decimal/integer minute count, or the
// sentinels "--"/empty (0.0). Malformed input yields 0.0.
func ParseMinutes(v string) float64 {
	s := strings.TrimSpace(v)
	if s == "" || s == "--" {
		return 0.0
	}
	if mm, ss, found := strings.Cut(s, ":"); found {
		m, errM := strconv.Atoi(strings.TrimSpace(mm))
		sec, errS := strconv.Atoi(strings.TrimSpace(ss))
		if errM != nil || errS != nil {
			return 0.0
		}
		return float64(m) + float64(sec)/60.0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return f
}

// ParseMadeAttempted splits a "made-attempted" pair such as "4-10".
// Malformed input yields (0, 0).
func ParseMadeAttempted(v string) (made, attempted int) {
	a, b, found := strings.Cut(strings.TrimSpace(v), "-")
	if !found {
		return 0, 0
	}
	m, errM := strconv.Atoi(strings.TrimSpace(a))
	at, errA := strconv.Atoi(strings.TrimSpace(b))
	if errM != nil || errA != nil {
		return 0, 0
	}
	return m, at
}

func safeInt(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

func indexOf(ss []string, want string) int {
	for i, s := range ss {
		if s == want {
			return i
		}
	}
	return -1
}
