// Package roster loads the league's hand-maintained workbooks: the draft
// board (who owns whom, who is started) and the full roster sheet.
//
// Headers are discovered case-insensitively through a declarative alias
// table, because the sheets are edited by humans who never spell a column
// the same way twice. Rows are keyed by normalized player name — the only
// join key shared with the stats feed.
package roster

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/poohleague/pooh-data/internal/names"
)

// columnSpec maps one logical field to its accepted header spellings.
// Pure data; resolution happens once at load time.
type columnSpec struct {
	field   string
	aliases []string
}

var rosterColumns = []columnSpec{
	{"name", []string{"name", "player", "player name"}},
	{"pid", []string{"pid", "playerid", "player id"}},
	{"team_name", []string{"team name", "teamname", "owner team", "fantasy team", "team"}},
	{"cost", []string{"cost", "auction cost", "price"}},
	{"school", []string{"team", "school", "college", "school team"}},
	{"height", []string{"height"}},
	{"weight", []string{"weight"}},
	{"class", []string{"class", "yr", "year"}},
	{"position", []string{"position", "pos"}},
}

// resolveColumns maps logical fields to zero-based column indexes. A field
// whose aliases all miss is simply absent from the result.
func resolveColumns(specs []columnSpec, headers []string) map[string]int {
	byHeader := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if _, taken := byHeader[h]; !taken {
			byHeader[h] = i
		}
	}

	out := make(map[string]int, len(specs))
	for _, spec := range specs {
		for _, alias := range spec.aliases {
			if i, ok := byHeader[alias]; ok {
				out[spec.field] = i
				break
			}
		}
	}
	return out
}

// Entry is one roster row's attributes, kept as display strings.
type Entry struct {
	PID      string
	TeamName string
	Cost     string
	Name     string
	School   string
	Height   string
	Weight   string
	Class    string
	Position string
}

// LoadRosters reads the roster workbook's active sheet into a map keyed by
// normalized player name. A name-equivalent column is required; every other
// column is optional.
func LoadRosters(path string) (map[string]Entry, error) {
	rows, err := readSheet(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("roster workbook %s has no header row", path)
	}

	cols := resolveColumns(rosterColumns, rows[0])
	nameCol, ok := cols["name"]
	if !ok {
		return nil, fmt.Errorf("roster workbook %s has no Name column (accepted: name, player, player name)", path)
	}

	out := make(map[string]Entry)
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cellAt(row, nameCol))
		if name == "" {
			continue
		}
		out[names.Normalize(name)] = Entry{
			PID:      field(row, cols, "pid"),
			TeamName: field(row, cols, "team_name"),
			Cost:     field(row, cols, "cost"),
			Name:     name,
			School:   field(row, cols, "school"),
			Height:   field(row, cols, "height"),
			Weight:   field(row, cols, "weight"),
			Class:    field(row, cols, "class"),
			Position: field(row, cols, "position"),
		}
	}
	return out, nil
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(cellAt(row, i))
}

// cellAt tolerates ragged rows; trailing empty cells are not materialized
// by the workbook reader.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func readSheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", path, err)
	}
	return rows, nil
}
