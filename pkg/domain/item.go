package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// DefaultNewsLimit is the number of news items requested when nothing else was selected
const DefaultNewsLimit = 5

// newsLimits are the allowed values for the news limit selector
var newsLimits = []int{3, 5, 10, 15, 20}

// NewsLimits returns allowed news limits in display order
func NewsLimits() []int {
	return slices.Clone(newsLimits)
}

// ValidLimit reports whether limit is one of the allowed news limits
func ValidLimit(limit int) bool {
	return slices.Contains(newsLimits, limit)
}

// ItemID is a news item identifier. Backends send it either as a number or as a string.
type ItemID string

// UnmarshalJSON accepts both JSON numbers and strings
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode item id: %w", err)
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode item id: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// MarshalJSON writes canonical integer ids as numbers and everything else as strings.
// Ids like "007", "+5" or "-0" stay strings, they are not valid JSON numbers or don't round-trip.
func (id ItemID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// NewsItem is a single news entry returned by the news search
type NewsItem struct {
	ID              ItemID   `json:"id"`
	Category        string   `json:"category"`
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	RelevanceScore  float64  `json:"relevance_score"`
	LocationContext string   `json:"location_context"`
	EstimatedDate   string   `json:"estimated_date,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

// Score returns relevance score formatted without trailing zeros, e.g. "8" or "7.5"
func (n NewsItem) Score() string {
	return strconv.FormatFloat(n.RelevanceScore, 'f', -1, 64)
}

// NewsResponse is the payload of the news search endpoints
type NewsResponse struct {
	News []NewsItem `json:"news"`
}

// NewsQuery holds parameters of a news search
type NewsQuery struct {
	Limit    int
	Category string // empty means all categories
	City     string // used by custom search only
	Country  string // used by custom search only
}
