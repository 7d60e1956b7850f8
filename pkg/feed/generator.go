// Package feed renders news search results as RSS 2.0
package feed

import (
	"crypto/sha1" //nolint:gosec // used for item ids, not security
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/newsnearme/pkg/domain"
)

// Generator creates RSS feeds from news items
type Generator struct {
	baseURL string
	title   string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL, title string) *Generator {
	if title == "" {
		title = "News Near Me"
	}
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		title:   title,
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed from news returned by a search
func (g *Generator) GenerateRSS(news []domain.NewsItem, query domain.NewsQuery) (string, error) {
	// determine title
	title := g.title
	if query.Category != "" {
		title = fmt.Sprintf("%s - %s", g.title, query.Category)
	}

	// build self link
	params := url.Values{}
	params.Set("limit", fmt.Sprint(query.Limit))
	if query.Category != "" {
		params.Set("categories", query.Category)
	}
	selfLink := g.baseURL + "/rss?" + params.Encode()

	rssItems := make([]*RSSItem, 0, len(news))
	for _, item := range news {
		rssItems = append(rssItems, g.convertToRSSItem(item))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Top %d local news for your location", query.Limit),
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// convertToRSSItem converts a news item to an RSS item
func (g *Generator) convertToRSSItem(item domain.NewsItem) *RSSItem {
	desc := fmt.Sprintf("Score: %s/10", item.Score())
	if item.LocationContext != "" {
		desc += " - " + item.LocationContext
	}
	if item.EstimatedDate != "" {
		desc += fmt.Sprintf("\nDate: %s", item.EstimatedDate)
	}
	if len(item.Keywords) > 0 {
		desc += fmt.Sprintf("\nKeywords: %s", strings.Join(item.Keywords, ", "))
	}
	if item.Summary != "" {
		desc += "\n\n" + item.Summary
	}

	var categories []string
	if item.Category != "" {
		categories = append(categories, item.Category)
	}

	id := itemID(item)
	return &RSSItem{
		Title:       fmt.Sprintf("[%s] %s", item.Score(), item.Title),
		Link:        g.baseURL + "/#news-" + id,
		GUID:        &GUID{Value: id},
		Description: desc,
		Categories:  categories,
	}
}

// itemID returns the backend id or, for news without one, a hash of title and context
func itemID(item domain.NewsItem) string {
	if item.ID != "" {
		return string(item.ID)
	}
	h := sha1.Sum([]byte(item.Title + "\x00" + item.LocationContext)) //nolint:gosec // not used for security
	return hex.EncodeToString(h[:8])
}
