package domain

import "slices"

// ServiceID identifies one of the fixed dashboard services
type ServiceID string

// available services
const (
	ServiceNewsAuto   ServiceID = "news-auto"
	ServiceNewsCustom ServiceID = "news-custom"
	ServiceLocation   ServiceID = "location"
	ServiceCategories ServiceID = "categories"
	ServiceHealth     ServiceID = "health"
)

// Service describes a backend call the user can trigger from the dashboard
type Service struct {
	ID          ServiceID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Method      string    `json:"method"`
	Endpoint    string    `json:"endpoint"`
}

var services = []Service{
	{
		ID:          ServiceNewsAuto,
		Name:        "News by Location",
		Description: "Gets news for the location detected automatically from your IP",
		Icon:        "📍",
		Method:      "GET",
		Endpoint:    "/news/",
	},
	{
		ID:          ServiceNewsCustom,
		Name:        "Custom News",
		Description: "Searches news for any city or country you specify",
		Icon:        "🌍",
		Method:      "POST",
		Endpoint:    "/news/",
	},
	{
		ID:          ServiceLocation,
		Name:        "My Location",
		Description: "Shows the location detected from your IP",
		Icon:        "📌",
		Method:      "GET",
		Endpoint:    "/news/location",
	},
	{
		ID:          ServiceCategories,
		Name:        "Available Categories",
		Description: "Lists all news categories available for filtering",
		Icon:        "🏷️",
		Method:      "GET",
		Endpoint:    "/news/categories",
	},
	{
		ID:          ServiceHealth,
		Name:        "System Status",
		Description: "Checks that the API is up and running",
		Icon:        "💚",
		Method:      "GET",
		Endpoint:    "/health",
	},
}

// Services returns all service descriptors in display order
func Services() []Service {
	return slices.Clone(services)
}

// LookupService finds a service descriptor by id
func LookupService(id ServiceID) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// IsNewsSearch reports whether the service performs a news search
func (id ServiceID) IsNewsSearch() bool {
	return id == ServiceNewsAuto || id == ServiceNewsCustom
}
