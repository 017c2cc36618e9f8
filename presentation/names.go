package presentation

import "kolan-weather/models"

// SavedName returns the name of a saved place in lang, falling back to its geocoded name
func SavedName(s models.SavedPlace, lang models.Language) string {
	if name := s.Names.Get(lang); name != "" {
		return name
	}
	return s.Name
}

// DisplayName resolves the name shown for p: the localized name of a saved place within
// 0.01° of it, otherwise the geocoded name
func DisplayName(p models.Place, lang models.Language, saved []models.SavedPlace) string {
	for _, s := range saved {
		if s.Near(p.Latitude, p.Longitude, models.SavedTolerance) {
			return SavedName(s, lang)
		}
	}
	return p.Name
}

// FindSaved returns the saved entry within 0.01° of the given point
func FindSaved(saved []models.SavedPlace, lat, lon float64) (models.SavedPlace, bool) {
	for _, s := range saved {
		if s.Near(lat, lon, models.SavedTolerance) {
			return s, true
		}
	}
	return models.SavedPlace{}, false
}
