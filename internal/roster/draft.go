package roster

import (
	"fmt"
	"strings"

	"github.com/poohleague/pooh-data/internal/names"
)

var draftColumns = []columnSpec{
	{"name", []string{"name", "player", "player name"}},
	{"owner", []string{"owner", "coach", "team name", "fantasy team"}},
	{"started", []string{"started", "starter", "starting"}},
}

// DraftEntry is one draft-board row: who owns the player and whether the
// player is started for the current period.
type DraftEntry struct {
	Name    string
	Owner   string
	Started bool
}

// Board is the loaded draft board plus owner display order (owners appear
// in the order the sheet first lists them, which drives report sorting).
type Board struct {
	Players    map[string]DraftEntry // keyed by normalized name
	OwnerOrder []string
}

// LoadDraftBoard reads the draft workbook. Name and Owner columns are
// required; Started is optional. Blank owners land in the Undrafted bucket.
// The first row wins when two rows normalize to the same player key.
func LoadDraftBoard(path, undraftedOwner string) (*Board, error) {
	rows, err := readSheet(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("draft workbook %s has no header row", path)
	}

	cols := resolveColumns(draftColumns, rows[0])
	nameCol, haveName := cols["name"]
	ownerCol, haveOwner := cols["owner"]
	if !haveName || !haveOwner {
		return nil, fmt.Errorf("draft workbook %s must have Name and Owner columns (and optional Started)", path)
	}
	startedCol, haveStarted := cols["started"]

	board := &Board{Players: make(map[string]DraftEntry)}
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cellAt(row, nameCol))
		if name == "" {
			continue
		}
		owner := strings.TrimSpace(cellAt(row, ownerCol))
		if owner == "" {
			owner = undraftedOwner
		}

		started := false
		if haveStarted {
			started = parseStarted(cellAt(row, startedCol))
		}

		key := names.Normalize(name)
		if _, exists := board.Players[key]; !exists {
			board.Players[key] = DraftEntry{Name: name, Owner: owner, Started: started}
		}

		if owner != undraftedOwner && !contains(board.OwnerOrder, owner) {
			board.OwnerOrder = append(board.OwnerOrder, owner)
		}
	}
	return board, nil
}

func parseStarted(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
