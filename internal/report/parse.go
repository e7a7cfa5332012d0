package report

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlayerRow is one player line parsed back out of a finalized players page.
type PlayerRow struct {
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

var playerRequiredCols = []string{"player", "pooh", "pts", "reb", "ast", "stl", "blk", "to", "min"}

// ParsePlayerRows extracts player lines from a finalized players report.
// When the table lacks any required header the page is treated as
// unparseable and an empty slice is returned — better no rows than rows
// read out of the wrong columns.
func ParsePlayerRows(r io.Reader) ([]PlayerRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse players report: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, nil
	}

	headerSel := table.Find("thead th")
	if headerSel.Length() == 0 {
		headerSel = table.Find("th")
	}
	idx := make(map[string]int)
	headerSel.Each(func(i int, th *goquery.Selection) {
		h := strings.ToLower(strings.TrimSpace(th.Text()))
		if _, taken := idx[h]; !taken {
			idx[h] = i
		}
	})
	for _, col := range playerRequiredCols {
		if _, ok := idx[col]; !ok {
			return nil, nil
		}
	}

	body := table.Find("tbody")
	if body.Length() == 0 {
		body = table
	}

	var rows []PlayerRow
	body.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var vals []string
		tr.Find("td,th").Each(func(_ int, cell *goquery.Selection) {
			vals = append(vals, strings.TrimSpace(cell.Text()))
		})
		if len(vals) == 0 {
			return
		}
		at := func(col string) string {
			i := idx[col]
			if i >= len(vals) {
				return ""
			}
			return vals[i]
		}
		player := at("player")
		if player == "" {
			return
		}
		rows = append(rows, PlayerRow{
			Player:    player,
			Pooh:      safeInt(at("pooh")),
			Points:    safeInt(at("pts")),
			Rebounds:  safeInt(at("reb")),
			Assists:   safeInt(at("ast")),
			Steals:    safeInt(at("stl")),
			Blocks:    safeInt(at("blk")),
			Turnovers: safeInt(at("to")),
			Minutes:   safeFloat(at("min")),
		})
	})
	return rows, nil
}

// ParseOwnerTotals extracts owner -> starter pooh total from a finalized
// owners report (Owner | Starter Pooh Total | Starters Count So Far).
// Unparseable totals count as 0.
func ParseOwnerTotals(r io.Reader) (map[string]int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse owners report: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return map[string]int{}, nil
	}

	out := make(map[string]int)
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 2 {
			return // header or short row
		}
		owner := strings.TrimSpace(tds.Eq(0).Text())
		if owner == "" {
			return
		}
		out[owner] = safeInt(strings.TrimSpace(tds.Eq(1).Text()))
	})
	return out, nil
}

var finalReportPattern = regexp.MustCompile(`^Final_(Players|Owners)_PD(\d+)\.html$`)

// PeriodFromFilename extracts the period number from a finalized report
// filename of the given kind ("Players" or "Owners").
func PeriodFromFilename(base, kind string) (int, bool) {
	m := finalReportPattern.FindStringSubmatch(base)
	if m == nil || m[1] != kind {
		return 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return n, true
}

// safeInt tolerates blanks, sentinels, and floats rendered into int cells.
func safeInt(v string) int {
	s := strings.TrimSpace(v)
	if s == "" || s == "--" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func safeFloat(v string) float64 {
	s := strings.TrimSpace(v)
	if s == "" || s == "--" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
