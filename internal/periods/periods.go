// Package periods resolves calendar dates to league scoring periods via the
// manually maintained PD date table.
//
// The table's date column is authored in whatever format the maintainer felt
// like that day: native spreadsheet dates (which arrive here as Excel serial
// numbers), "M/D/YYYY", "YYYY-M-D", or bare 6-8 digit numbers. Every
// candidate is normalized to a canonical MMDDYYYY string before comparison.
package periods

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrNotFound means the target date has no matching table row.
var ErrNotFound = errors.New("date not found in period table")

// ErrMalformed means the target date is not exactly 8 digits, or the matched
// period value is not an integer.
var ErrMalformed = errors.New("malformed period table input")

var (
	eightDigits = regexp.MustCompile(`^\d{8}$`)
	usDate      = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDate     = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	allDigits   = regexp.MustCompile(`^\d+$`)
)

// Excel serial day 0 by the 1900 date system convention (with the
// off-by-two quirk already folded in).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Serial values outside this window are treated as literal dates, not
// serial days. 30000..80000 covers 1982 through 2119.
const (
	serialMin = 30000
	serialMax = 80000
)

// NormalizeDate converts one raw date cell into canonical MMDDYYYY form.
// Unrecognized input yields "" and the row is skipped by Resolve.
func NormalizeDate(v string) string {
	s := strings.TrimSpace(v)
	s = strings.TrimSuffix(s, ".0")
	if s == "" {
		return ""
	}

	if eightDigits.MatchString(s) {
		return s
	}
	if m := usDate.FindStringSubmatch(s); m != nil {
		mo, _ := strconv.Atoi(m[1])
		da, _ := strconv.Atoi(m[2])
		yr, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%02d%02d%04d", mo, da, yr)
	}
	if m := isoDate.FindStringSubmatch(s); m != nil {
		yr, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		da, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%02d%02d%04d", mo, da, yr)
	}
	if allDigits.MatchString(s) && len(s) >= 6 && len(s) <= 8 {
		if iv, err := strconv.Atoi(s); err == nil && iv >= serialMin && iv <= serialMax {
			return serialEpoch.AddDate(0, 0, iv).Format("01022006")
		}
		return fmt.Sprintf("%08s", s)
	}
	return ""
}

// Resolve maps an 8-digit YYYYMMDD target date to its period label ("PD7").
// Rows are scanned in table order; the earliest matching row wins. Rows
// whose date cell cannot be normalized are skipped.
func Resolve(rows [][]string, yyyymmdd string) (string, error) {
	target := strings.TrimSpace(yyyymmdd)
	if !eightDigits.MatchString(target) {
		return "", fmt.Errorf("%w: date must be YYYYMMDD (8 digits), got %q", ErrMalformed, yyyymmdd)
	}
	// YYYYMMDD -> MMDDYYYY to match the normalized table column.
	targetMMDDYYYY := target[4:6] + target[6:8] + target[0:4]

	for _, row := range rows {
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if NormalizeDate(row[0]) != targetMMDDYYYY {
			continue
		}
		pd := strings.TrimSuffix(strings.TrimSpace(row[1]), ".0")
		n, err := strconv.Atoi(pd)
		if err != nil {
			return "", fmt.Errorf("%w: PD value for %s is not numeric: %q", ErrMalformed, targetMMDDYYYY, row[1])
		}
		return fmt.Sprintf("PD%d", n), nil
	}

	return "", fmt.Errorf("%w: date %s (MMDDYYYY=%s)", ErrNotFound, target, targetMMDDYYYY)
}

// LoadTable reads the two-column period table from the active sheet of the
// workbook at path. Cells are read raw so native dates surface as serial
// numbers rather than locale-formatted strings.
func LoadTable(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("open period table %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read period table %s: %w", path, err)
	}
	return rows, nil
}
