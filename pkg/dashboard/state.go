// Package dashboard keeps the UI state of a news dashboard session and runs the backend calls
// changing it. State is an immutable value; every change goes through Reduce and is swapped in
// atomically by Store.
package dashboard

import (
	"errors"
	"fmt"
	"slices"

	"github.com/umputun/newsnearme/pkg/domain"
)

var (
	// ErrUnknownService is returned for a service id not in the service list
	ErrUnknownService = errors.New("unknown service")
	// ErrInvalidLimit is returned for a news limit not in the allowed set
	ErrInvalidLimit = errors.New("invalid news limit")
	// ErrUnknownCategory is returned when selecting a category missing from the category list
	ErrUnknownCategory = errors.New("unknown category")
	// errUnknownAction is returned by Reduce for an unsupported action type
	errUnknownAction = errors.New("unknown action")
)

// State is a snapshot of the dashboard UI state
type State struct {
	Health        domain.Health     `json:"health"`
	Location      *domain.Location  `json:"location"`
	Categories    []domain.Category `json:"categories"`
	News          []domain.NewsItem `json:"news"`
	Limit         int               `json:"limit"`
	Category      string            `json:"category"`
	ActiveService domain.ServiceID  `json:"active_service,omitempty"`
	Response      *domain.Response  `json:"response"`
	Pending       int               `json:"pending"`
}

// NewState makes an initial state with the given news limit
func NewState(limit int) State {
	if !domain.ValidLimit(limit) {
		limit = domain.DefaultNewsLimit
	}
	return State{
		Health:     domain.HealthUnknown,
		Categories: []domain.Category{},
		News:       []domain.NewsItem{},
		Limit:      limit,
	}
}

// Loading reports whether any request is in flight
func (s State) Loading() bool {
	return s.Pending > 0
}

// HasCategory reports whether value is in the category list
func (s State) HasCategory(value string) bool {
	return slices.ContainsFunc(s.Categories, func(c domain.Category) bool { return c.Value == value })
}

// ShowEmpty reports whether the "no news" message should be shown,
// i.e. the last action was a finished news search with no results
func (s State) ShowEmpty() bool {
	return !s.Loading() && len(s.News) == 0 && s.ActiveService.IsNewsSearch()
}

// ActionType identifies a state change
type ActionType string

// supported actions
const (
	ActRequestStarted    ActionType = "request-started"
	ActRequestFinished   ActionType = "request-finished"
	ActHealthSet         ActionType = "health-set"
	ActLocationLoaded    ActionType = "location-loaded"
	ActCategoriesLoaded  ActionType = "categories-loaded"
	ActNewsLoaded        ActionType = "news-loaded"
	ActResponseSet       ActionType = "response-set"
	ActResponseDismissed ActionType = "response-dismissed"
	ActLimitSelected     ActionType = "limit-selected"
	ActCategorySelected  ActionType = "category-selected"
	ActCategoryToggled   ActionType = "category-toggled"
)

// Action is a state change request. Only fields relevant to Type are used.
type Action struct {
	Type       ActionType
	Service    domain.ServiceID
	Health     domain.Health
	Location   domain.Location
	Categories []domain.Category
	News       []domain.NewsItem
	Response   domain.Response
	Limit      int
	Category   string
}

// Reduce returns the state after applying the action. The input state is never modified.
func Reduce(s State, a Action) (State, error) {
	switch a.Type {
	case ActRequestStarted:
		s.Pending++
		s.ActiveService = a.Service
	case ActRequestFinished:
		if s.Pending > 0 {
			s.Pending--
		}
	case ActHealthSet:
		s.Health = a.Health
	case ActLocationLoaded:
		loc := a.Location
		s.Location = &loc
	case ActCategoriesLoaded:
		s.Categories = slices.Clone(a.Categories)
		if s.Categories == nil {
			s.Categories = []domain.Category{}
		}
		if s.Category != "" && !s.HasCategory(s.Category) {
			s.Category = ""
		}
	case ActNewsLoaded:
		s.News = slices.Clone(a.News)
		if s.News == nil {
			s.News = []domain.NewsItem{}
		}
	case ActResponseSet:
		resp := a.Response
		s.Response = &resp
	case ActResponseDismissed:
		s.Response = nil
	case ActLimitSelected:
		if !domain.ValidLimit(a.Limit) {
			return s, fmt.Errorf("%w: %d", ErrInvalidLimit, a.Limit)
		}
		s.Limit = a.Limit
	case ActCategorySelected:
		if a.Category != "" && !s.HasCategory(a.Category) {
			return s, fmt.Errorf("%w: %q", ErrUnknownCategory, a.Category)
		}
		s.Category = a.Category
	case ActCategoryToggled:
		if s.Category == a.Category {
			s.Category = ""
			break
		}
		if a.Category != "" && !s.HasCategory(a.Category) {
			return s, fmt.Errorf("%w: %q", ErrUnknownCategory, a.Category)
		}
		s.Category = a.Category
	default:
		return s, fmt.Errorf("%w: %q", errUnknownAction, a.Type)
	}
	return s, nil
}
