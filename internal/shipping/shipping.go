// Package shipping resolves the delivery fee for a free-text address.
package shipping

import "strings"

// Config comes from the "shipping" site content section and is editable
// from the dashboard.
type Config struct {
	DefaultFee    float64  `json:"defaultFee"`
	FreeLocations []string `json:"freeShippingLocations"`
}

// Fee returns 0 when the address contains any configured free-shipping
// location, case-insensitively, otherwise the default fee. Substring
// containment only; there is no geocoding or exact matching.
func Fee(address string, cfg Config) float64 {
	addr := strings.ToLower(address)
	for _, loc := range cfg.FreeLocations {
		loc = strings.TrimSpace(strings.ToLower(loc))
		if loc == "" {
			continue
		}
		if strings.Contains(addr, loc) {
			return 0
		}
	}
	return cfg.DefaultFee
}
