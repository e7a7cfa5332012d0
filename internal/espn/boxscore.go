package espn

import (
	"context"
	"fmt"

	"github.com/poohleague/pooh-data/internal/names"
	"github.com/poohleague/pooh-data/internal/pooh"
)

type summaryResponse struct {
	Boxscore boxscore `json:"boxscore"`
}

type boxscore struct {
	Players []teamBoxscore `json:"players"`
}

type teamBoxscore struct {
	Team       teamInfo    `json:"team"`
	Statistics []statGroup `json:"statistics"`
}

// statGroup carries a label list positionally matched to each athlete's
// value list. Depending on the game state the feed splits rows across
// starters, bench and reserves.
type statGroup struct {
	Labels   []string     `json:"labels"`
	Athletes []athleteRow `json:"athletes"`
	Bench    []athleteRow `json:"bench"`
	Reserves []athleteRow `json:"reserves"`
}

func (g statGroup) rows() []athleteRow {
	rows := make([]athleteRow, 0, len(g.Athletes)+len(g.Bench)+len(g.Reserves))
	rows = append(rows, g.Athletes...)
	rows = append(rows, g.Bench...)
	rows = append(rows, g.Reserves...)
	return rows
}

type athleteRow struct {
	Athlete athleteInfo `json:"athlete"`
	Stats   []string    `json:"stats"`
}

type athleteInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	ShortName   string `json:"shortName"`
	FullName    string `json:"fullName"`
}

func (a athleteInfo) name() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	if a.ShortName != "" {
		return a.ShortName
	}
	if a.FullName != "" {
		return a.FullName
	}
	return "Unknown"
}

// BoxscorePlayers fetches one event's box score and returns a scored stat
// line per player that actually played. Rows the calculator rejects (schema
// mismatch or did-not-play) are skipped; an event with no published player
// stats yields an empty slice, which callers treat as "not yet available".
func (c *Client) BoxscorePlayers(ctx context.Context, eventID string) ([]pooh.StatLine, error) {
	url := fmt.Sprintf("%s/summary?event=%s", c.baseURL, eventID)
	var resp summaryResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("fetch box score for event %s: %w", eventID, err)
	}

	var out []pooh.StatLine
	for _, tb := range resp.Boxscore.Players {
		seen := make(map[string]bool)
		for _, group := range tb.Statistics {
			if len(group.Labels) == 0 {
				continue
			}
			for _, row := range group.rows() {
				id := row.Athlete.ID
				if id != "" && seen[id] {
					continue
				}
				line, ok := pooh.Compute(group.Labels, row.Stats)
				if !ok {
					continue
				}
				if id != "" {
					seen[id] = true
				}
				name := row.Athlete.name()
				out = append(out, pooh.StatLine{
					Player: name,
					Key:    names.Normalize(name),
					Team:   tb.Team.Abbreviation,
					Line:   line,
				})
			}
		}
	}
	return out, nil
}
