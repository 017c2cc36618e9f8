package reconcile

import (
	"context"
	"sync"
	"testing"
	"time"

	"kolan-weather/datasource"
	"kolan-weather/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGeocoder answers from a per-language table
type fakeGeocoder struct {
	mu      sync.Mutex
	results map[models.Language][]models.Place
	fail    map[models.Language]error
	block   map[models.Language]bool
	queries []datasource.SearchQuery
}

func (f *fakeGeocoder) Search(ctx context.Context, q datasource.SearchQuery) ([]models.Place, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	if f.block[q.Language] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := f.fail[q.Language]; err != nil {
		return nil, err
	}
	return f.results[q.Language], nil
}

func (f *fakeGeocoder) Name() string { return "fake" }

var sulaymaniyah = models.Place{Name: "Sulaymaniyah", Latitude: 35.56, Longitude: 45.43}

func TestReconcileMatchesEveryLanguage(t *testing.T) {
	g := &fakeGeocoder{results: map[models.Language][]models.Place{
		models.LanguageEnglish: {{Name: "Sulaymaniyah", Latitude: 35.5613, Longitude: 45.4374}},
		models.LanguagePersian: {
			{Name: "سلیمانیه (دور)", Latitude: 36.9, Longitude: 45.4},
			{Name: "سلیمانیه", Latitude: 35.6, Longitude: 45.5},
		},
		models.LanguageKurdish: {{Name: "سلێمانی", Latitude: 35.51, Longitude: 45.39}},
	}}

	names := New(g).Reconcile(context.Background(), sulaymaniyah)

	assert.Equal(t, models.LocalizedNames{EN: "Sulaymaniyah", FA: "سلیمانیه", KU: "سلێمانی"}, names)
	require.Len(t, g.queries, 3)
	for _, q := range g.queries {
		assert.Equal(t, "Sulaymaniyah", q.Name)
		assert.Equal(t, candidateCount, q.Count)
	}
}

func TestReconcileNoMatchKeepsSeed(t *testing.T) {
	far := []models.Place{{Name: "Elsewhere", Latitude: 10, Longitude: 10}}
	g := &fakeGeocoder{results: map[models.Language][]models.Place{
		models.LanguageEnglish: far,
		models.LanguagePersian: far,
		models.LanguageKurdish: nil,
	}}

	names := New(g).Reconcile(context.Background(), sulaymaniyah)

	assert.Equal(t, models.UniformNames("Sulaymaniyah"), names)
}

func TestReconcileFailedBranchFallsBack(t *testing.T) {
	g := &fakeGeocoder{
		results: map[models.Language][]models.Place{
			models.LanguageEnglish: {{Name: "Sulaymaniyah", Latitude: 35.56, Longitude: 45.43}},
			models.LanguageKurdish: {{Name: "سلێمانی", Latitude: 35.56, Longitude: 45.43}},
		},
		fail: map[models.Language]error{models.LanguagePersian: datasource.ErrLookupFailed},
	}

	names := New(g).Reconcile(context.Background(), sulaymaniyah)

	assert.Equal(t, "Sulaymaniyah", names.FA)
	assert.Equal(t, "سلێمانی", names.KU)
}

func TestReconcileTimeoutFallsBack(t *testing.T) {
	g := &fakeGeocoder{
		results: map[models.Language][]models.Place{
			models.LanguageEnglish: {{Name: "Sulaymaniyah", Latitude: 35.56, Longitude: 45.43}},
		},
		block: map[models.Language]bool{models.LanguageKurdish: true},
	}
	r := New(g)
	r.SetFetchTimeout(20 * time.Millisecond)

	start := time.Now()
	names := r.Reconcile(context.Background(), sulaymaniyah)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, "Sulaymaniyah", names.KU)
}

func TestClosest(t *testing.T) {
	candidates := []models.Place{
		{Name: "a", Latitude: 1, Longitude: 1},
		{Name: "b", Latitude: 35.65, Longitude: 45.35},
		{Name: "c", Latitude: 35.56, Longitude: 45.43},
	}

	match, ok := Closest(candidates, 35.56, 45.43, models.MatchTolerance)
	require.True(t, ok)
	assert.Equal(t, "b", match.Name)

	_, ok = Closest(candidates, -20, -20, models.MatchTolerance)
	assert.False(t, ok)

	_, ok = Closest(nil, 0, 0, models.MatchTolerance)
	assert.False(t, ok)
}
