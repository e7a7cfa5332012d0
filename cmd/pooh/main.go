// Command pooh is the league's batch reporting CLI.
//
// Usage:
//
//	pooh today [YYYYMMDD] [--final]
//	pooh resolve-pd [YYYYMMDD]
//	pooh owners [PD7]
//	pooh players
//	pooh serve
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/poohleague/pooh-data/internal/aggregate"
	"github.com/poohleague/pooh-data/internal/config"
	"github.com/poohleague/pooh-data/internal/espn"
	"github.com/poohleague/pooh-data/internal/names"
	"github.com/poohleague/pooh-data/internal/periods"
	"github.com/poohleague/pooh-data/internal/report"
	"github.com/poohleague/pooh-data/internal/retry"
	"github.com/poohleague/pooh-data/internal/roster"
	"github.com/poohleague/pooh-data/internal/site"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "pooh",
		Short:         "SEC fantasy basketball Pooh points reporting CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(todayCmd())
	root.AddCommand(resolvePDCmd())
	root.AddCommand(ownersCmd())
	root.AddCommand(playersCmd())
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// Argument parsing
// --------------------------------------------------------------------------

var (
	datePattern = regexp.MustCompile(`^\d{8}$`)
	capPattern  = regexp.MustCompile(`^PD(\d+)$`)
)

// dateArg resolves the optional positional date; absence means today.
func dateArg(args []string) (string, error) {
	if len(args) == 0 {
		return time.Now().Format("20060102"), nil
	}
	d := strings.TrimSpace(args[0])
	if !datePattern.MatchString(d) {
		return "", fmt.Errorf("date must be YYYYMMDD (8 digits), got %q", args[0])
	}
	return d, nil
}

// capArg resolves the optional PD<n> cap; absence means no cap (0).
func capArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	m := capPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(args[0])))
	if m == nil {
		return 0, fmt.Errorf("period cap must look like PD7, got %q", args[0])
	}
	return strconv.Atoi(m[1])
}

func newFeedClient(cfg *config.Config) *espn.Client {
	policy := retry.Policy{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   cfg.BaseDelay,
		Jitter:      cfg.JitterFraction,
	}
	return espn.NewClient(cfg.ESPNBaseURL, cfg.UserAgent, cfg.RequestsPerMinute, cfg.RequestTimeout, policy, logger)
}

// --------------------------------------------------------------------------
// today command
// --------------------------------------------------------------------------

func todayCmd() *cobra.Command {
	var final bool
	cmd := &cobra.Command{
		Use:   "today [YYYYMMDD]",
		Short: "Build the daily Pooh points report from live box scores",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			return runToday(ctx, config.Load(), date, final)
		},
	}
	cmd.Flags().BoolVar(&final, "final", false,
		"also write finalized Final_Players_PD<n>/Final_Owners_PD<n> reports for the period resolved from the PD table")
	return cmd
}

// todayRow is one joined (player, game) line ready for rendering.
type todayRow struct {
	Owner   string
	Started bool
	Player  string
	Team    string
	Game    string
	Status  string
	Pooh    int
	Pts     int
	Reb     int
	Ast     int
	Stl     int
	Blk     int
	To      int
	Min     float64
}

func (r todayRow) record(date string) map[string]string {
	started := "No"
	if r.Started {
		started = "Yes"
	}
	return map[string]string{
		"date":          date,
		"owner":         r.Owner,
		"started_today": started,
		"player":        r.Player,
		"team":          r.Team,
		"game":          r.Game,
		"status":        r.Status,
		"pooh":          strconv.Itoa(r.Pooh),
		"pts":           strconv.Itoa(r.Pts),
		"reb":           strconv.Itoa(r.Reb),
		"ast":           strconv.Itoa(r.Ast),
		"stl":           strconv.Itoa(r.Stl),
		"blk":           strconv.Itoa(r.Blk),
		"to":            strconv.Itoa(r.To),
		"min":           strconv.FormatFloat(r.Min, 'f', -1, 64),
	}
}

// todayResult tracks counts from a daily run.
type todayResult struct {
	Events          int
	ConferenceGames int
	GamesPending    int
	PlayersCaptured int
}

func (r todayResult) Summary() string {
	return fmt.Sprintf("events=%d conference_games=%d pending=%d players=%d",
		r.Events, r.ConferenceGames, r.GamesPending, r.PlayersCaptured)
}

var todayHTMLColumns = []string{
	"owner", "started_today", "player", "team", "game", "status",
	"pooh", "pts", "reb", "ast", "stl", "blk", "to", "min",
}

var ownerTotalColumns = []string{"Owner", "Starter Pooh Total", "Starters Count So Far"}

func runToday(ctx context.Context, cfg *config.Config, date string, final bool) error {
	board, err := roster.LoadDraftBoard(cfg.DraftWorkbook, config.UndraftedOwner)
	if err != nil {
		return fmt.Errorf("load draft board: %w", err)
	}

	client := newFeedClient(cfg)

	teamIDs, err := client.ConferenceTeamIDs(ctx, cfg.TeamsPageURL)
	if err != nil {
		return fmt.Errorf("fetch conference team IDs: %w", err)
	}
	if len(teamIDs) != config.ExpectedConferenceTeams {
		logger.Warn("unexpected conference team count",
			"got", len(teamIDs), "want", config.ExpectedConferenceTeams)
	}

	events, err := client.Scoreboard(ctx, date)
	if err != nil {
		return err
	}

	var result todayResult
	result.Events = len(events)

	var rows []todayRow
	for _, event := range events {
		if !event.Involves(teamIDs) {
			continue
		}
		result.ConferenceGames++

		hdr := event.HeaderOf()
		game := hdr.Label()
		logger.Info("game", "label", game, "status", hdr.Status, "event", event.ID)

		lines, err := client.BoxscorePlayers(ctx, event.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			logger.Info("no boxscore player stats published yet", "game", game)
			result.GamesPending++
			continue
		}

		for _, line := range lines {
			owner := config.UndraftedOwner
			started := false
			if entry, ok := board.Players[line.Key]; ok {
				owner = entry.Owner
				started = entry.Started
			}
			rows = append(rows, todayRow{
				Owner:   owner,
				Started: started,
				Player:  line.Player,
				Team:    line.Team,
				Game:    game,
				Status:  hdr.Status,
				Pooh:    line.Score,
				Pts:     line.Points,
				Reb:     line.Rebounds,
				Ast:     line.Assists,
				Stl:     line.Steals,
				Blk:     line.Blocks,
				To:      line.Turnovers,
				Min:     line.Minutes,
			})
		}
		result.PlayersCaptured += len(lines)
	}

	sortTodayRows(rows, board.OwnerOrder)
	totals := starterTotals(rows)

	isoDate := date[:4] + "-" + date[4:6] + "-" + date[6:]
	records := make([]map[string]string, len(rows))
	for i, r := range rows {
		records[i] = r.record(isoDate)
	}

	if err := os.MkdirAll(cfg.SiteDir, 0o755); err != nil {
		return fmt.Errorf("create site dir: %w", err)
	}

	xlsxCols := append([]string{"date"}, todayHTMLColumns...)
	xlsxPath := filepath.Join(cfg.SiteDir, fmt.Sprintf("Today_PoohPoints_SEC_ByOwner_%s.xlsx", isoDate))
	if err := report.WriteTodayWorkbook(xlsxPath, xlsxCols, records, totals); err != nil {
		return err
	}

	playersTable := report.Table{
		Title:   "SEC Pooh Points — " + isoDate,
		Columns: todayHTMLColumns,
		Rows:    records,
		RowClass: func(row map[string]string) string {
			if row["started_today"] == "Yes" {
				return "start"
			}
			return ""
		},
	}
	ownersTable := report.Table{
		Title:   "Owner Starters Total — " + isoDate,
		Columns: ownerTotalColumns,
		Rows:    ownerTotalRecords(totals),
	}

	if err := writeHTMLFile(filepath.Join(cfg.SiteDir, "today_players.html"), playersTable); err != nil {
		return err
	}
	if err := writeHTMLFile(filepath.Join(cfg.SiteDir, "today_owners.html"), ownersTable); err != nil {
		return err
	}

	if final {
		if err := writeFinalReports(cfg, date, playersTable, ownersTable); err != nil {
			return err
		}
	}

	logger.Info("daily run finished", "date", isoDate, "summary", result.Summary())
	return nil
}

// sortTodayRows orders rows by draft-board owner order (Undrafted last),
// starters first, pooh descending, then player name.
func sortTodayRows(rows []todayRow, ownerOrder []string) {
	rank := make(map[string]int, len(ownerOrder))
	for i, o := range ownerOrder {
		rank[o] = i
	}
	ownerRank := func(owner string) int {
		if i, ok := rank[owner]; ok {
			return i
		}
		if owner == config.UndraftedOwner {
			return 10_000
		}
		return 9_000
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if ra, rb := ownerRank(a.Owner), ownerRank(b.Owner); ra != rb {
			return ra < rb
		}
		if a.Owner != b.Owner {
			return a.Owner < b.Owner
		}
		if a.Started != b.Started {
			return a.Started
		}
		if a.Pooh != b.Pooh {
			return a.Pooh > b.Pooh
		}
		return a.Player < b.Player
	})
}

// starterTotals tallies starter pooh per owner. Undrafted players never
// count toward an owner total.
func starterTotals(rows []todayRow) []report.OwnerTotal {
	byOwner := make(map[string]*report.OwnerTotal)
	var order []string
	for _, r := range rows {
		if r.Owner == config.UndraftedOwner {
			continue
		}
		t, ok := byOwner[r.Owner]
		if !ok {
			t = &report.OwnerTotal{Owner: r.Owner}
			byOwner[r.Owner] = t
			order = append(order, r.Owner)
		}
		if r.Started {
			t.StarterPooh += r.Pooh
			t.StartersSeen++
		}
	}

	out := make([]report.OwnerTotal, 0, len(order))
	for _, owner := range order {
		out = append(out, *byOwner[owner])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StarterPooh != out[j].StarterPooh {
			return out[i].StarterPooh > out[j].StarterPooh
		}
		return strings.ToLower(out[i].Owner) < strings.ToLower(out[j].Owner)
	})
	return out
}

func ownerTotalRecords(totals []report.OwnerTotal) []map[string]string {
	records := make([]map[string]string, len(totals))
	for i, t := range totals {
		records[i] = map[string]string{
			"Owner":                 t.Owner,
			"Starter Pooh Total":    strconv.Itoa(t.StarterPooh),
			"Starters Count So Far": strconv.Itoa(t.StartersSeen),
		}
	}
	return records
}

// writeFinalReports freezes the day's tables as the period's finalized
// reports, which the owners and players commands aggregate from.
func writeFinalReports(cfg *config.Config, date string, playersTable, ownersTable report.Table) error {
	tableRows, err := periods.LoadTable(cfg.PeriodWorkbook)
	if err != nil {
		return err
	}
	label, err := periods.Resolve(tableRows, date)
	if err != nil {
		return fmt.Errorf("resolve period for %s: %w", date, err)
	}

	if err := os.MkdirAll(cfg.DocsDir, 0o755); err != nil {
		return fmt.Errorf("create docs dir: %w", err)
	}

	playersPath := filepath.Join(cfg.DocsDir, fmt.Sprintf("Final_Players_%s.html", label))
	ownersPath := filepath.Join(cfg.DocsDir, fmt.Sprintf("Final_Owners_%s.html", label))
	if err := writeHTMLFile(playersPath, playersTable); err != nil {
		return err
	}
	if err := writeHTMLFile(ownersPath, ownersTable); err != nil {
		return err
	}
	logger.Info("finalized period reports written", "period", label)
	return nil
}

// --------------------------------------------------------------------------
// resolve-pd command
// --------------------------------------------------------------------------

func resolvePDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve-pd [YYYYMMDD]",
		Short: "Resolve a date to its league period via the PD table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args)
			if err != nil {
				return err
			}
			cfg := config.Load()

			rows, err := periods.LoadTable(cfg.PeriodWorkbook)
			if err != nil {
				return err
			}
			label, err := periods.Resolve(rows, date)
			if err != nil {
				return err
			}

			fmt.Println(label)
			if err := os.WriteFile("pd_resolved.txt", []byte(label), 0o644); err != nil {
				return fmt.Errorf("write pd_resolved.txt: %w", err)
			}
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// owners command (season standings)
// --------------------------------------------------------------------------

func ownersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "owners [PD<n>]",
		Short: "Build season-to-date owner standings from finalized reports",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			capPD, err := capArg(args)
			if err != nil {
				return err
			}
			return runOwners(config.Load(), capPD)
		},
	}
}

func runOwners(cfg *config.Config, capPD int) error {
	reports, err := loadOwnerReports(cfg.DocsDir, capPD)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return fmt.Errorf("no Final_Owners_PD*.html files found in %s", cfg.DocsDir)
	}

	standings := aggregate.Owners(reports, capPD)
	maxPD := aggregate.MaxPeriod(reports, capPD)

	cols := []string{"Team Name", "Total Pooh", "Out Of 1st", "Out Of 2nd", "Out Of 3rd"}
	for pd := 1; pd <= maxPD; pd++ {
		cols = append(cols, strconv.Itoa(pd))
	}
	cols = append(cols, "Avg Pooh Per Completed PD")
	// Kept as a placeholder column: emitted, deliberately left blank.
	cols = append(cols, "Sum of Avgs, Top 5 Eligible")

	records := make([]map[string]string, len(standings))
	for i, s := range standings {
		rec := map[string]string{
			"Team Name":                   s.Name,
			"Total Pooh":                  strconv.Itoa(s.Total),
			"Out Of 1st":                  strconv.Itoa(s.OutOfFirst),
			"Out Of 2nd":                  strconv.Itoa(s.OutOfSecond),
			"Out Of 3rd":                  strconv.Itoa(s.OutOfThird),
			"Avg Pooh Per Completed PD":   fmt.Sprintf("%.2f", s.Average),
			"Sum of Avgs, Top 5 Eligible": "",
		}
		for pd := 1; pd <= maxPD; pd++ {
			rec[strconv.Itoa(pd)] = strconv.Itoa(s.PerPeriod[pd])
		}
		records[i] = rec
	}

	table := report.Table{
		Title:   "Sorted League Results",
		Columns: cols,
		Rows:    records,
		CellClass: func(col string) string {
			if col == "Team Name" {
				return ""
			}
			return "num"
		},
	}

	out := filepath.Join(cfg.DocsDir, "SummaryToDate.html")
	if err := writeHTMLFile(out, table); err != nil {
		return err
	}
	logger.Info("owner standings written", "path", out, "owners", len(standings), "periods", len(reports))
	return nil
}

func loadOwnerReports(docsDir string, capPD int) ([]aggregate.PeriodReport, error) {
	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return nil, fmt.Errorf("read docs dir %s: %w", docsDir, err)
	}

	var reports []aggregate.PeriodReport
	for _, entry := range entries {
		pd, ok := report.PeriodFromFilename(entry.Name(), "Owners")
		if !ok || (capPD > 0 && pd > capPD) {
			continue
		}
		path := filepath.Join(docsDir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		totals, err := report.ParseOwnerTotals(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		reports = append(reports, aggregate.PeriodReport{Period: pd, Scores: totals})
	}
	return reports, nil
}

// --------------------------------------------------------------------------
// players command (season summary)
// --------------------------------------------------------------------------

func playersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "Build the per-player season summary from finalized reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayers(config.Load())
		},
	}
}

var playerSummaryColumns = func() []string {
	cols := []string{"#", "PID", "Team Name", "Cost", "Name", "Team", "Height", "Weight", "Class", "Position", "Min/G", "Avg", "Total"}
	for pd := 1; pd <= config.MaxSummaryPeriods; pd++ {
		cols = append(cols, strconv.Itoa(pd))
	}
	return append(cols, "PPG", "R/G", "A/G", "B/G", "S/G", "T/G")
}()

func runPlayers(cfg *config.Config) error {
	rosters, err := roster.LoadRosters(cfg.RosterWorkbook)
	if err != nil {
		return err
	}

	games, found, err := loadPlayerGames(cfg.DocsDir, rosters)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no Final_Players_PD*.html files found in %s; run a final daily build first", cfg.DocsDir)
	}

	summaries := aggregate.Players(games)

	records := make([]map[string]string, len(summaries))
	for i, s := range summaries {
		entry := rosters[s.Key]
		name := entry.Name
		if name == "" {
			name = s.Name
		}
		rec := map[string]string{
			"#":         strconv.Itoa(i + 1),
			"PID":       entry.PID,
			"Team Name": entry.TeamName,
			"Cost":      entry.Cost,
			"Name":      name,
			"Team":      entry.School,
			"Height":    entry.Height,
			"Weight":    entry.Weight,
			"Class":     entry.Class,
			"Position":  entry.Position,
			"Min/G":     fmt.Sprintf("%.1f", s.MinutesPerGame),
			"Avg":       fmt.Sprintf("%.2f", s.Average),
			"Total":     strconv.Itoa(s.Total),
			"PPG":       fmt.Sprintf("%.1f", s.PointsPerGame),
			"R/G":       fmt.Sprintf("%.1f", s.ReboundsPerGame),
			"A/G":       fmt.Sprintf("%.1f", s.AssistsPerGame),
			"B/G":       fmt.Sprintf("%.1f", s.BlocksPerGame),
			"S/G":       fmt.Sprintf("%.1f", s.StealsPerGame),
			"T/G":       fmt.Sprintf("%.1f", s.TurnoversPerGame),
		}
		for pd := 1; pd <= config.MaxSummaryPeriods; pd++ {
			if v := s.PerPeriod[pd]; v != 0 {
				rec[strconv.Itoa(pd)] = strconv.Itoa(v)
			} else {
				rec[strconv.Itoa(pd)] = ""
			}
		}
		records[i] = rec
	}

	table := report.Table{
		Title:   "Player Pooh Summary — " + cfg.SeasonLabel,
		Columns: playerSummaryColumns,
		Rows:    records,
		CellClass: func(col string) string {
			switch col {
			case "Name", "Team Name":
				return "left"
			case "PID":
				return "pid"
			case "Cost":
				return "cost"
			}
			return ""
		},
	}

	if err := os.MkdirAll(cfg.DocsDir, 0o755); err != nil {
		return fmt.Errorf("create docs dir: %w", err)
	}
	out := filepath.Join(cfg.DocsDir, "Player_Pooh_Summary.html")
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()
	if err := report.WriteSummaryPage(f, table, time.Now()); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	logger.Info("player summary written", "path", out, "players", len(summaries))
	return nil
}

// loadPlayerGames parses every finalized players report, keeping only
// rostered players (the summary page stays clean of one-off walk-ons).
func loadPlayerGames(docsDir string, rosters map[string]roster.Entry) ([]aggregate.PlayerGame, bool, error) {
	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return nil, false, fmt.Errorf("read docs dir %s: %w", docsDir, err)
	}

	var games []aggregate.PlayerGame
	found := false
	for _, entry := range entries {
		pd, ok := report.PeriodFromFilename(entry.Name(), "Players")
		if !ok || pd < 1 || pd > config.MaxSummaryPeriods {
			continue
		}
		found = true

		path := filepath.Join(docsDir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			return nil, false, fmt.Errorf("open %s: %w", path, err)
		}
		rows, err := report.ParsePlayerRows(f)
		f.Close()
		if err != nil {
			return nil, false, fmt.Errorf("parse %s: %w", path, err)
		}

		for _, row := range rows {
			if _, rostered := rosters[names.Normalize(row.Player)]; !rostered {
				continue
			}
			games = append(games, aggregate.PlayerGame{
				Period:    pd,
				Player:    row.Player,
				Pooh:      row.Pooh,
				Points:    row.Points,
				Rebounds:  row.Rebounds,
				Assists:   row.Assists,
				Steals:    row.Steals,
				Blocks:    row.Blocks,
				Turnovers: row.Turnovers,
				Minutes:   row.Minutes,
			})
		}
	}
	return games, found, nil
}

// --------------------------------------------------------------------------
// serve command
// --------------------------------------------------------------------------

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated docs directory for local preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			router := site.NewRouter(cfg.DocsDir, cfg.CORSAllowOrigins)
			logger.Info("serving reports", "dir", cfg.DocsDir, "addr", cfg.ServeAddr)
			return http.ListenAndServe(cfg.ServeAddr, router)
		},
	}
}

// --------------------------------------------------------------------------
// Shared output helpers
// --------------------------------------------------------------------------

func writeHTMLFile(path string, t report.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := report.WritePage(f, t); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
