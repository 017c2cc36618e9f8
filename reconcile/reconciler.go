// Package reconcile finds a place's name in every supported language.
//
// The geocoding service has no reverse lookup and no multi-language response, so each
// language is approximated by a forward search for the place's name followed by coordinate
// matching. This can pick a wrong nearby match or keep an unlocalized name.
package reconcile

import (
	"context"
	"log/slog"
	"time"

	"kolan-weather/datasource"
	"kolan-weather/metrics"
	"kolan-weather/models"

	"golang.org/x/sync/errgroup"
)

// candidateCount is how many search results are scanned per language
const candidateCount = 5

// Reconciler resolves localized names through a geocoder
type Reconciler struct {
	geocoder     datasource.Geocoder
	languages    []models.Language
	tolerance    float64
	fetchTimeout time.Duration
}

// New creates a reconciler for every supported language
func New(geocoder datasource.Geocoder) *Reconciler {
	return &Reconciler{
		geocoder:     geocoder,
		languages:    models.Languages,
		tolerance:    models.MatchTolerance,
		fetchTimeout: 10 * time.Second,
	}
}

// SetFetchTimeout changes the timeout applied to each per-language lookup
func (r *Reconciler) SetFetchTimeout(timeout time.Duration) {
	r.fetchTimeout = timeout
}

// Reconcile returns the place's name in each language. A slot keeps place.Name when its
// lookup fails or finds no candidate near the place; it never fails the whole call.
func (r *Reconciler) Reconcile(ctx context.Context, place models.Place) models.LocalizedNames {
	results := make([]string, len(r.languages))

	var g errgroup.Group
	for i, lang := range r.languages {
		g.Go(func() error {
			results[i] = r.lookup(ctx, place, lang)
			return nil
		})
	}
	_ = g.Wait()

	var names models.LocalizedNames
	for i, lang := range r.languages {
		names.Set(lang, results[i])
	}
	return names
}

// lookup resolves one language slot
func (r *Reconciler) lookup(ctx context.Context, place models.Place, lang models.Language) string {
	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	candidates, err := r.geocoder.Search(fetchCtx, datasource.SearchQuery{
		Name:     place.Name,
		Language: lang,
		Count:    candidateCount,
	})
	if err != nil {
		slog.Debug("name lookup failed, keeping original", "name", place.Name, "lang", lang, "error", err)
		metrics.ReconcileFallbacks.WithLabelValues(string(lang), "error").Inc()
		return place.Name
	}

	if match, ok := Closest(candidates, place.Latitude, place.Longitude, r.tolerance); ok && match.Name != "" {
		return match.Name
	}
	metrics.ReconcileFallbacks.WithLabelValues(string(lang), "no_match").Inc()
	return place.Name
}

// Closest returns the first candidate whose coordinates both lie within tol of the point
func Closest(candidates []models.Place, lat, lon, tol float64) (models.Place, bool) {
	for _, c := range candidates {
		if c.Near(lat, lon, tol) {
			return c, true
		}
	}
	return models.Place{}, false
}
