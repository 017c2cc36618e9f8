package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"kolan-weather/datasource"
	"kolan-weather/internal/fixtures"
	"kolan-weather/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	calls atomic.Int32
	err   error
}

func (s *stubGeocoder) Search(_ context.Context, q datasource.SearchQuery) ([]models.Place, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []models.Place{{Name: q.Name, Latitude: 35.69, Longitude: 51.42}}, nil
}

func (s *stubGeocoder) Name() string { return "stub" }

type stubForecasts struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (s *stubForecasts) FetchForecast(_ context.Context, lat, lon float64) (*models.ForecastSnapshot, error) {
	s.calls.Add(1)
	time.Sleep(s.delay)
	if s.err != nil {
		return nil, s.err
	}
	snap := fixtures.Snapshot(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC), 24, 7)
	snap.Latitude, snap.Longitude = lat, lon
	return snap, nil
}

func (s *stubForecasts) Name() string { return "stub" }

func TestCachedGeocoderHitsAndMisses(t *testing.T) {
	inner := &stubGeocoder{}
	c := NewCachedGeocoder(inner, time.Minute)
	ctx := context.Background()
	q := datasource.SearchQuery{Name: "Tehran", Language: models.LanguageEnglish, Count: 10}

	_, err := c.Search(ctx, q)
	require.NoError(t, err)
	q.Name = "  tehran "
	places, err := c.Search(ctx, q)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Tehran", places[0].Name)

	q.Language = models.LanguagePersian
	_, err = c.Search(ctx, q)
	require.NoError(t, err)

	hits, misses := c.CacheStats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Equal(t, "stub [Cached]", c.Name())
}

func TestCachedGeocoderShortQuery(t *testing.T) {
	inner := &stubGeocoder{}
	c := NewCachedGeocoder(inner, time.Minute)

	places, err := c.Search(context.Background(), datasource.SearchQuery{Name: "a"})
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.Equal(t, int32(0), inner.calls.Load())
}

func TestCachedGeocoderDoesNotCacheErrors(t *testing.T) {
	inner := &stubGeocoder{err: datasource.ErrLookupFailed}
	c := NewCachedGeocoder(inner, time.Minute)
	q := datasource.SearchQuery{Name: "Tehran"}

	_, err := c.Search(context.Background(), q)
	assert.ErrorIs(t, err, datasource.ErrLookupFailed)
	_, err = c.Search(context.Background(), q)
	assert.ErrorIs(t, err, datasource.ErrLookupFailed)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedGeocoderPrune(t *testing.T) {
	c := NewCachedGeocoder(&stubGeocoder{}, time.Millisecond)
	_, err := c.Search(context.Background(), datasource.SearchQuery{Name: "Tehran"})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, c.Prune())
	assert.Equal(t, 0, c.Prune())
}

func TestCachedForecastSourceRoundsKeys(t *testing.T) {
	inner := &stubForecasts{}
	c := NewCachedForecastSource(inner, NewMemorySnapshotStore(), time.Minute)
	ctx := context.Background()

	_, err := c.FetchForecast(ctx, 35.69441, 51.42151)
	require.NoError(t, err)
	snap, err := c.FetchForecast(ctx, 35.69439, 51.42149)
	require.NoError(t, err)
	assert.Equal(t, 35.69441, snap.Latitude)

	hits, misses := c.CacheStats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
	assert.Equal(t, int32(1), inner.calls.Load())

	neighbour, err := c.FetchForecast(ctx, 35.6939, 51.4215)
	require.NoError(t, err)
	assert.Equal(t, 35.6939, neighbour.Latitude)
	assert.Equal(t, int32(2), inner.calls.Load())

	assert.Equal(t, "35.6944,51.4215", ForecastKey(35.69439, 51.42151))
	assert.NotEqual(t, ForecastKey(35.6944, 51.4215), ForecastKey(35.6939, 51.4215))
}

func TestCachedForecastSourceCollapsesConcurrentMisses(t *testing.T) {
	inner := &stubForecasts{delay: 50 * time.Millisecond}
	c := NewCachedForecastSource(inner, NewMemorySnapshotStore(), time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.FetchForecast(context.Background(), 35.69, 51.42)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), inner.calls.Load())
}

// gatedForecasts blocks each fetch until release is closed or the fetch context ends
type gatedForecasts struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newGatedForecasts() *gatedForecasts {
	return &gatedForecasts{started: make(chan struct{}, 8), release: make(chan struct{})}
}

func (g *gatedForecasts) FetchForecast(ctx context.Context, lat, lon float64) (*models.ForecastSnapshot, error) {
	g.calls.Add(1)
	g.started <- struct{}{}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-g.release:
	}
	snap := fixtures.Snapshot(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC), 24, 7)
	snap.Latitude, snap.Longitude = lat, lon
	return snap, nil
}

func (g *gatedForecasts) Name() string { return "gated" }

func TestCachedForecastSourceSharedFetchOutlivesCancelledCaller(t *testing.T) {
	inner := newGatedForecasts()
	c := NewCachedForecastSource(inner, NewMemorySnapshotStore(), time.Minute)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.FetchForecast(firstCtx, 35.69, 51.42)
		firstErr <- err
	}()
	<-inner.started

	type result struct {
		snap *models.ForecastSnapshot
		err  error
	}
	second := make(chan result, 1)
	go func() {
		snap, err := c.FetchForecast(context.Background(), 35.69, 51.42)
		second <- result{snap, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(inner.release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Equal(t, 35.69, res.snap.Latitude)
	case <-time.After(time.Second):
		t.Fatal("waiting caller did not return")
	}
	assert.Equal(t, int32(1), inner.calls.Load())

	_, found, err := c.store.Get(context.Background(), ForecastKey(35.69, 51.42))
	require.NoError(t, err)
	assert.True(t, found)
}

func TestCachedGeocoderSharedSearchOutlivesCancelledCaller(t *testing.T) {
	inner := &gatedGeocoder{started: make(chan struct{}, 8), release: make(chan struct{})}
	c := NewCachedGeocoder(inner, time.Minute)
	q := datasource.SearchQuery{Name: "Tehran", Language: "en", Count: 10}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Search(firstCtx, q)
		firstErr <- err
	}()
	<-inner.started

	secondErr := make(chan error, 1)
	go func() {
		_, err := c.Search(context.Background(), q)
		secondErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(inner.release)
	assert.NoError(t, <-secondErr)
	assert.Equal(t, int32(1), inner.calls.Load())
}

type gatedGeocoder struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (g *gatedGeocoder) Search(ctx context.Context, q datasource.SearchQuery) ([]models.Place, error) {
	g.calls.Add(1)
	g.started <- struct{}{}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-g.release:
	}
	return []models.Place{{Name: q.Name}}, nil
}

func (g *gatedGeocoder) Name() string { return "gated" }

func TestCachedForecastSourcePropagatesErrors(t *testing.T) {
	inner := &stubForecasts{err: datasource.ErrFetchFailed}
	c := NewCachedForecastSource(inner, NewMemorySnapshotStore(), time.Minute)

	_, err := c.FetchForecast(context.Background(), 1, 2)
	assert.ErrorIs(t, err, datasource.ErrFetchFailed)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (*models.ForecastSnapshot, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (brokenStore) Set(context.Context, string, *models.ForecastSnapshot, time.Duration) error {
	return errors.New("connection refused")
}

func TestCachedForecastSourceSurvivesStoreOutage(t *testing.T) {
	inner := &stubForecasts{}
	c := NewCachedForecastSource(inner, brokenStore{}, time.Minute)

	for i := 0; i < 2; i++ {
		snap, err := c.FetchForecast(context.Background(), 35.69, 51.42)
		require.NoError(t, err)
		assert.NotNil(t, snap)
	}
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestMemorySnapshotStoreExpiry(t *testing.T) {
	store := NewMemorySnapshotStore()
	ctx := context.Background()
	snap := &models.ForecastSnapshot{Timezone: "Asia/Tehran"}

	require.NoError(t, store.Set(ctx, "a", snap, time.Minute))
	require.NoError(t, store.Set(ctx, "b", snap, -time.Second))

	got, found, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Same(t, snap, got)

	_, found, err = store.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, 1, store.PruneExpired())
}

func TestRedisSnapshotStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewRedisSnapshotStore(rdb)
	ctx := context.Background()
	snap := fixtures.Snapshot(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC), 24, 7)

	_, found, err := store.Get(ctx, "35.69,51.42")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "35.69,51.42", snap, 10*time.Minute))
	assert.True(t, mr.Exists("forecast:snapshot:35.69,51.42"))

	got, found, err := store.Get(ctx, "35.69,51.42")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, snap, got)

	mr.FastForward(11 * time.Minute)
	_, found, err = store.Get(ctx, "35.69,51.42")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisSnapshotStoreCorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	require.NoError(t, mr.Set("forecast:snapshot:k", "not json"))
	_, found, err := NewRedisSnapshotStore(rdb).Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, found)
}
