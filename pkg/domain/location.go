package domain

import "fmt"

// Location is the place detected by the backend for the caller
type Location struct {
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

// Category is a news category available for filtering
type Category struct {
	Value string `json:"value"`
}

// HealthStatus is the payload of the health endpoint
type HealthStatus struct {
	Status string `json:"status"`
}

// IsHealthy reports whether the backend declared itself healthy
func (h HealthStatus) IsHealthy() bool {
	return h.Status == "healthy"
}

// Health is the tri-state connectivity flag shown in the header
type Health int

// health states
const (
	HealthUnknown Health = iota
	HealthOnline
	HealthOffline
)

// String returns a label for the health state
func (h Health) String() string {
	switch h {
	case HealthOnline:
		return "online"
	case HealthOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes unknown as null and the other states as booleans
func (h Health) MarshalJSON() ([]byte, error) {
	switch h {
	case HealthOnline:
		return []byte("true"), nil
	case HealthOffline:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes true, false and null
func (h *Health) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*h = HealthOnline
	case "false":
		*h = HealthOffline
	case "null":
		*h = HealthUnknown
	default:
		return fmt.Errorf("invalid health value %s", data)
	}
	return nil
}
