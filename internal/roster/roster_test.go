package roster

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds a one-sheet xlsx fixture in dir.
func writeWorkbook(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRosters_AliasHeaders(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "Rosters.xlsx", [][]any{
		{"Player Name", "PID", "Fantasy Team", "Auction Cost", "School", "Height", "Weight", "YR", "POS"},
		{"Mark Sears Jr.", "p1", "Big Dogs", 42, "Alabama", "6-1", "185", "SR", "G"},
		{"", "px", "ignored blank name row"},
		{"Johni Broome", "p2", "Underdogs", 38, "Auburn", "6-10", "240", "SR", "F"},
	})

	got, err := LoadRosters(path)
	if err != nil {
		t.Fatalf("LoadRosters: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2", len(got))
	}

	// Keyed by normalized name: suffix dropped, lower-cased.
	e, ok := got["mark sears"]
	if !ok {
		t.Fatalf("missing normalized key, have %v", keysOf(got))
	}
	if e.Name != "Mark Sears Jr." {
		t.Errorf("Name = %q, want raw spelling preserved", e.Name)
	}
	if e.TeamName != "Big Dogs" || e.Cost != "42" || e.School != "Alabama" || e.Position != "G" || e.Class != "SR" {
		t.Errorf("entry = %+v", e)
	}
}

func TestLoadRosters_MissingNameColumnFatal(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "Rosters.xlsx", [][]any{
		{"Owner", "Cost"},
		{"Big Dogs", 42},
	})
	_, err := LoadRosters(path)
	if err == nil {
		t.Fatal("expected error for missing name column")
	}
	if !strings.Contains(err.Error(), "Name column") {
		t.Errorf("error = %v, want mention of Name column", err)
	}
}

func TestLoadRosters_MissingFile(t *testing.T) {
	if _, err := LoadRosters(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Fatal("expected error for missing workbook")
	}
}

func TestLoadDraftBoard(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "ByCoach.xlsx", [][]any{
		{"Name", "Owner", "Started"},
		{"Mark Sears", "Big Dogs", "Yes"},
		{"Johni Broome", "Underdogs", "no"},
		{"Chaz Lanier", "Big Dogs", "1"},
		{"Walk On", "", ""},
		{"Mark Sears Jr.", "Sneaky Dupes", "y"}, // duplicate key: first row wins
	})

	board, err := LoadDraftBoard(path, "Undrafted")
	if err != nil {
		t.Fatalf("LoadDraftBoard: %v", err)
	}

	if got := board.Players["mark sears"]; got.Owner != "Big Dogs" || !got.Started {
		t.Errorf("mark sears = %+v, want Big Dogs / started (first row wins)", got)
	}
	if got := board.Players["johni broome"]; got.Started {
		t.Errorf("johni broome started = true, want false")
	}
	if got := board.Players["chaz lanier"]; !got.Started {
		t.Errorf("chaz lanier started = false, want true (\"1\")")
	}
	if got := board.Players["walk on"]; got.Owner != "Undrafted" {
		t.Errorf("blank owner = %q, want Undrafted", got.Owner)
	}

	// Owner order follows first appearance; Undrafted and the shadowed
	// duplicate's owner still appear in order of their rows.
	want := []string{"Big Dogs", "Underdogs", "Sneaky Dupes"}
	if len(board.OwnerOrder) != len(want) {
		t.Fatalf("OwnerOrder = %v, want %v", board.OwnerOrder, want)
	}
	for i := range want {
		if board.OwnerOrder[i] != want[i] {
			t.Fatalf("OwnerOrder = %v, want %v", board.OwnerOrder, want)
		}
	}
}

func TestLoadDraftBoard_MissingOwnerColumn(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(), "ByCoach.xlsx", [][]any{
		{"Name"},
		{"Mark Sears"},
	})
	if _, err := LoadDraftBoard(path, "Undrafted"); err == nil {
		t.Fatal("expected error for missing owner column")
	}
}

func keysOf(m map[string]Entry) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
