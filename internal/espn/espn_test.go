package espn

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/poohleague/pooh-data/internal/retry"
)

func testClient(baseURL string) *Client {
	policy := retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}
	// High rpm so the limiter never stalls the test.
	return NewClient(baseURL, "pooh-test", 60000, 5*time.Second, policy, slog.Default())
}

const scoreboardJSON = `{
  "events": [
    {
      "id": "401700001",
      "competitions": [
        {
          "status": {"type": {"detail": "Final", "description": "Final", "name": "STATUS_FINAL"}},
          "competitors": [
            {"homeAway": "home", "score": "78", "team": {"id": "333", "abbreviation": "ALA", "displayName": "Alabama Crimson Tide"}},
            {"homeAway": "away", "score": "71", "team": {"id": "2", "abbreviation": "AUB", "displayName": "Auburn Tigers"}}
          ]
        }
      ]
    },
    {
      "id": "401700002",
      "competitions": [
        {
          "status": {"type": {"detail": "", "description": "Scheduled", "name": "STATUS_SCHEDULED"}},
          "competitors": [
            {"homeAway": "home", "team": {"id": "96", "abbreviation": "UK"}},
            {"homeAway": "away", "team": {"id": "99", "abbreviation": "LSU"}}
          ]
        }
      ]
    }
  ]
}`

const summaryJSON = `{
  "boxscore": {
    "players": [
      {
        "team": {"id": "333", "abbreviation": "ALA"},
        "statistics": [
          {
            "labels": ["MIN", "FG", "FT", "REB", "AST", "STL", "BLK", "TO", "PTS"],
            "athletes": [
              {"athlete": {"id": "a1", "displayName": "Mark Sears"}, "stats": ["31:12", "4-10", "2-2", "5", "2", "1", "0", "2", "10"]},
              {"athlete": {"id": "a2", "displayName": "Bench Guy"}, "stats": ["--", "0-0", "0-0", "0", "0", "0", "0", "0", "0"]}
            ],
            "bench": [
              {"athlete": {"id": "a3", "displayName": "Sixth Man"}, "stats": ["12", "1-2", "0-0", "1", "0", "0", "0", "0", "2"]},
              {"athlete": {"id": "a1", "displayName": "Mark Sears"}, "stats": ["31:12", "4-10", "2-2", "5", "2", "1", "0", "2", "10"]}
            ]
          }
        ]
      }
    ]
  }
}`

func TestScoreboardAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/scoreboard") {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("dates"); got != "20260105" {
			t.Errorf("dates param = %q, want 20260105", got)
		}
		w.Write([]byte(scoreboardJSON))
	}))
	defer srv.Close()

	events, err := testClient(srv.URL).Scoreboard(context.Background(), "20260105")
	if err != nil {
		t.Fatalf("Scoreboard: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}

	h := events[0].HeaderOf()
	if h.Status != "Final" {
		t.Errorf("status = %q, want Final", h.Status)
	}
	if h.Home.Abbr != "ALA" || h.Away.Abbr != "AUB" {
		t.Errorf("sides = %s/%s, want ALA/AUB", h.Home.Abbr, h.Away.Abbr)
	}
	if h.Home.Score != 78 {
		t.Errorf("home score = %d, want 78", h.Home.Score)
	}
	if got := h.Label(); got != "AUB@ALA" {
		t.Errorf("label = %q, want AUB@ALA", got)
	}

	// Empty detail falls back to the description.
	if got := events[1].HeaderOf().Status; got != "Scheduled" {
		t.Errorf("fallback status = %q, want Scheduled", got)
	}

	sec := map[string]bool{"333": true}
	if !events[0].Involves(sec) {
		t.Error("event 1 should involve team 333")
	}
	if events[1].Involves(sec) {
		t.Error("event 2 should not involve team 333")
	}
}

func TestBoxscorePlayers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(summaryJSON))
	}))
	defer srv.Close()

	lines, err := testClient(srv.URL).BoxscorePlayers(context.Background(), "401700001")
	if err != nil {
		t.Fatalf("BoxscorePlayers: %v", err)
	}

	// a2 is a DNP row, and a1's duplicate bench entry is deduped by ID.
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].Player != "Mark Sears" || lines[0].Score != 10 {
		t.Errorf("line 0 = %s/%d, want Mark Sears/10", lines[0].Player, lines[0].Score)
	}
	if lines[0].Key != "mark sears" {
		t.Errorf("key = %q, want %q", lines[0].Key, "mark sears")
	}
	if lines[0].Team != "ALA" {
		t.Errorf("team = %q, want ALA", lines[0].Team)
	}
	if lines[1].Player != "Sixth Man" || lines[1].Score != 2 {
		t.Errorf("line 1 = %s/%d, want Sixth Man/2", lines[1].Player, lines[1].Score)
	}
}

func TestGetRetriesTransientFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"events": []}`))
	}))
	defer srv.Close()

	events, err := testClient(srv.URL).Scoreboard(context.Background(), "20260105")
	if err != nil {
		t.Fatalf("Scoreboard after retries: %v", err)
	}
	if hits != 3 {
		t.Errorf("hits = %d, want 3", hits)
	}
	if len(events) != 0 {
		t.Errorf("events = %d, want 0", len(events))
	}
}

func TestGetGivesUpAfterMaxAttempts(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Scoreboard(context.Background(), "20260105")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if hits != 3 {
		t.Errorf("hits = %d, want 3 (max attempts)", hits)
	}
}

func TestParseTeamIDs(t *testing.T) {
	page := `<html><body>
	  <a href="/mens-college-basketball/team/_/id/333/alabama-crimson-tide">Alabama</a>
	  <a href="/mens-college-basketball/team/_/id/2/auburn-tigers">Auburn</a>
	  <a href="/mens-college-basketball/team/_/id/333/alabama-crimson-tide">Alabama again</a>
	  <a href="/nfl/team/_/name/atl">not basketball</a>
	</body></html>`

	ids, err := parseTeamIDs(page)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2 distinct", ids)
	}
	if !ids["333"] || !ids["2"] {
		t.Errorf("ids = %v, want 333 and 2", ids)
	}
}
