package models

import "math"

// Tolerances used when two places are compared by coordinates
const (
	MatchTolerance = 0.1  // degrees, used when reconciling names across languages
	SavedTolerance = 0.01 // degrees, used for saved-place lookup and de-duplication
)

// Place represents a geocoded location candidate returned by the geocoding gateway
type Place struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Elevation   float64 `json:"elevation"`
	FeatureCode string  `json:"feature_code"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country"`
	Admin1      string  `json:"admin1,omitempty"`
	Admin2      string  `json:"admin2,omitempty"`
	Admin3      string  `json:"admin3,omitempty"`
	Timezone    string  `json:"timezone"`
	Population  int64   `json:"population,omitempty"`
}

// Near reports whether both coordinates of p lie strictly within tol degrees of the given point
func (p Place) Near(lat, lon, tol float64) bool {
	return math.Abs(p.Latitude-lat) < tol && math.Abs(p.Longitude-lon) < tol
}
