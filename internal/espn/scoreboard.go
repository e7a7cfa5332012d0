package espn

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Raw scoreboard shapes. The feed nests everything under the first
// competition of each event.

type scoreboardResponse struct {
	Events []Event `json:"events"`
}

// Event is one scheduled or played game from the scoreboard listing.
type Event struct {
	ID           string        `json:"id"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Status      competitionStatus `json:"status"`
	Competitors []competitor      `json:"competitors"`
}

type competitionStatus struct {
	Type struct {
		Detail      string `json:"detail"`
		Description string `json:"description"`
		Name        string `json:"name"`
	} `json:"type"`
}

type competitor struct {
	HomeAway string   `json:"homeAway"`
	Score    string   `json:"score"`
	Team     teamInfo `json:"team"`
}

type teamInfo struct {
	ID               string `json:"id"`
	Abbreviation     string `json:"abbreviation"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
}

// Side is one competitor in flattened form.
type Side struct {
	ID    string
	Abbr  string
	Name  string
	Score int
}

// Header is the flattened status/home/away view of an event.
type Header struct {
	Status string
	Home   Side
	Away   Side
}

// Scoreboard fetches all events for an 8-digit YYYYMMDD date across the
// full division-one slate.
func (c *Client) Scoreboard(ctx context.Context, dateYYYYMMDD string) ([]Event, error) {
	url := fmt.Sprintf("%s/scoreboard?dates=%s&groups=50&limit=500", c.baseURL, dateYYYYMMDD)
	var resp scoreboardResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("fetch scoreboard for %s: %w", dateYYYYMMDD, err)
	}
	return resp.Events, nil
}

// HeaderOf flattens an event into its status line and home/away sides.
func (e Event) HeaderOf() Header {
	var comp competition
	if len(e.Competitions) > 0 {
		comp = e.Competitions[0]
	}

	status := comp.Status.Type.Detail
	if status == "" {
		status = comp.Status.Type.Description
	}
	if status == "" {
		status = comp.Status.Type.Name
	}
	if status == "" {
		status = "Unknown"
	}

	h := Header{Status: status}
	for _, c := range comp.Competitors {
		side := Side{
			ID:    c.Team.ID,
			Abbr:  c.Team.Abbreviation,
			Name:  c.Team.DisplayName,
			Score: atoiOrZero(c.Score),
		}
		if side.Name == "" {
			side.Name = c.Team.ShortDisplayName
		}
		switch c.HomeAway {
		case "home":
			h.Home = side
		case "away":
			h.Away = side
		}
	}
	return h
}

// Label renders the conventional away@home game label.
func (h Header) Label() string {
	return h.Away.Abbr + "@" + h.Home.Abbr
}

// Involves reports whether either side's team ID is in the given set.
func (e Event) Involves(teamIDs map[string]bool) bool {
	h := e.HeaderOf()
	return teamIDs[h.Home.ID] || teamIDs[h.Away.ID]
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
