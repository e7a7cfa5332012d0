package espn

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var teamIDPattern = regexp.MustCompile(`/id/(\d+)`)

// ConferenceTeamIDs scrapes the conference teams page for team IDs. The
// page is plain HTML; team links carry the ID in their href.
func (c *Client) ConferenceTeamIDs(ctx context.Context, pageURL string) (map[string]bool, error) {
	page, err := c.GetText(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch teams page: %w", err)
	}
	return parseTeamIDs(page)
}

func parseTeamIDs(page string) (map[string]bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse teams page: %w", err)
	}

	ids := make(map[string]bool)
	doc.Find(`a[href*="/mens-college-basketball/team/_/id/"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if m := teamIDPattern.FindStringSubmatch(href); m != nil {
			ids[m[1]] = true
		}
	})
	return ids, nil
}
