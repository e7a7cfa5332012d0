// Package report renders the league's static output pages and workbooks,
// and parses finalized period reports back in. The finalized HTML files are
// the pipeline's only cross-run state: every season aggregate is recomputed
// from them on each invocation.
package report

import (
	"fmt"
	"html"
	"io"
	"strings"
	"time"
)

// tableStyle is the shared look of the daily and standings pages.
const tableStyle = "body{font-family:Arial}table{border-collapse:collapse;font-size:14px}" +
	"th,td{border:1px solid #ccc;padding:4px 6px}th{background:#eee}" +
	".start{font-weight:bold}td.num{text-align:right}"

// summaryStyle is the boxed, centered look of the player season summary.
const summaryStyle = "body{font-family:Arial;background:#ffffff}" +
	".wrap{width:1400px;max-width:98vw;margin:18px auto;border:3px solid #000;background:#FFFFCC;padding:10px}" +
	"h2{text-align:center;margin:6px 0 12px 0}" +
	"table{border-collapse:collapse;width:100%;background:#fff}" +
	"th,td{border:1px solid #000;padding:6px 6px;text-align:center;font-size:12pt;white-space:nowrap}" +
	"th{background:#c0c0c0}.left{text-align:left}.pid,.cost{font-weight:700}.small{font-size:11pt}"

// Table is a generic escaped HTML table: header order follows Columns, cell
// values come from each row's map, and every cell is HTML-escaped.
type Table struct {
	Title   string
	Columns []string
	Rows    []map[string]string

	// RowClass optionally returns a CSS class applied to every cell of a
	// row (the daily page bolds starters this way).
	RowClass func(row map[string]string) string

	// CellClass optionally returns a CSS class per column.
	CellClass func(col string) string
}

// WritePage renders a complete standalone page holding one table.
func WritePage(w io.Writer, t Table) error {
	var b strings.Builder
	b.WriteString("<!doctype html><html><head><meta charset='utf-8'>")
	fmt.Fprintf(&b, "<title>%s</title>", esc(t.Title))
	b.WriteString("<style>" + tableStyle + "</style>")
	b.WriteString("</head><body>")
	fmt.Fprintf(&b, "<h2>%s</h2>", esc(t.Title))
	writeTable(&b, t)
	b.WriteString("</body></html>")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSummaryPage renders the boxed player season summary layout with a
// last-updated stamp.
func WriteSummaryPage(w io.Writer, t Table, now time.Time) error {
	var b strings.Builder
	b.WriteString("<!doctype html><html><head><meta charset='utf-8'>")
	fmt.Fprintf(&b, "<title>%s</title>", esc(t.Title))
	b.WriteString("<style>" + summaryStyle + "</style>")
	b.WriteString("</head><body><div class='wrap'>")
	fmt.Fprintf(&b, "<h2>%s</h2>", esc(t.Title))
	fmt.Fprintf(&b, "<div class='small'><b>Last updated:</b> %s</div><br>", esc(now.Format("2006-01-02 15:04:05")))
	writeTable(&b, t)
	b.WriteString("</div></body></html>")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(b *strings.Builder, t Table) {
	b.WriteString("<table><thead><tr>")
	for _, c := range t.Columns {
		fmt.Fprintf(b, "<th>%s</th>", esc(c))
	}
	b.WriteString("</tr></thead><tbody>")

	for _, row := range t.Rows {
		b.WriteString("<tr>")
		rowClass := ""
		if t.RowClass != nil {
			rowClass = t.RowClass(row)
		}
		for _, c := range t.Columns {
			class := rowClass
			if class == "" && t.CellClass != nil {
				class = t.CellClass(c)
			}
			if class != "" {
				fmt.Fprintf(b, "<td class='%s'>%s</td>", class, esc(row[c]))
			} else {
				fmt.Fprintf(b, "<td>%s</td>", esc(row[c]))
			}
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
}

func esc(s string) string {
	return html.EscapeString(s)
}
