// Package config provides centralized configuration loaded from environment
// variables. Shared by every pooh subcommand.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// League constants
// --------------------------------------------------------------------------

const (
	// ExpectedConferenceTeams is how many team IDs the conference page
	// should yield; a different count is logged, not fatal.
	ExpectedConferenceTeams = 16

	// MaxSummaryPeriods is the PD column span on the player summary page.
	MaxSummaryPeriods = 19

	// UndraftedOwner is the sentinel bucket for players with no roster entry.
	UndraftedOwner = "Undrafted"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Directories
	DocsDir string // finalized period reports and season summaries
	SiteDir string // daily (non-final) output pages

	// Workbooks
	DraftWorkbook  string // Name / Owner / Started
	RosterWorkbook string // full roster attributes
	PeriodWorkbook string // date -> PD table

	// Stats feed
	ESPNBaseURL  string
	TeamsPageURL string
	UserAgent    string

	// Client tuning
	RequestTimeout    time.Duration
	RequestsPerMinute int
	MaxRetries        int
	BaseDelay         time.Duration
	JitterFraction    float64

	// Preview server
	ServeAddr        string
	CORSAllowOrigins []string

	// Display
	SeasonLabel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	// POOH_APP_DIR moves all three workbooks together; the per-workbook
	// vars below override individually.
	appDir := envOr("POOH_APP_DIR", "app")

	return &Config{
		DocsDir: envOr("POOH_DOCS_DIR", "docs"),
		SiteDir: envOr("POOH_SITE_DIR", "site"),

		DraftWorkbook:  envOr("POOH_DRAFT_XLSX", filepath.Join(appDir, "ByCoach.xlsx")),
		RosterWorkbook: envOr("POOH_ROSTERS_XLSX", filepath.Join(appDir, "Rosters.xlsx")),
		PeriodWorkbook: envOr("POOH_PD_XLSX", filepath.Join(appDir, "PD.xlsx")),

		ESPNBaseURL: envOr("POOH_ESPN_BASE_URL",
			"https://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball"),
		TeamsPageURL: envOr("POOH_TEAMS_PAGE_URL",
			"https://www.espn.com/mens-college-basketball/teams/_/group/23"),
		UserAgent: envOr("POOH_USER_AGENT",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/143.0 Safari/537.36"),

		RequestTimeout:    time.Duration(envInt("POOH_REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		RequestsPerMinute: envInt("POOH_REQUESTS_PER_MINUTE", 120),
		MaxRetries:        envInt("POOH_MAX_RETRIES", 6),
		BaseDelay:         time.Duration(envInt("POOH_BASE_DELAY_MS", 250)) * time.Millisecond,
		JitterFraction:    envFloat("POOH_JITTER_FRACTION", 1.0),

		SeasonLabel: envOr("POOH_SEASON_LABEL", "2025–2026 Regular Season"),

		ServeAddr: envOr("POOH_SERVE_ADDR", "127.0.0.1:8080"),
		CORSAllowOrigins: envList("POOH_CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:8080",
		}),
	}
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
