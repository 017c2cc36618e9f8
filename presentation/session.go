package presentation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"kolan-weather/datasource"
	"kolan-weather/i18n"
	"kolan-weather/models"
	"kolan-weather/storage"
)

// State is the selection lifecycle of a session
type State int

const (
	NoSelection State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case NoSelection:
		return "no-selection"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	// ErrStale is returned when a response arrives after a newer request superseded it
	ErrStale = errors.New("response superseded by a newer request")
	// ErrNoSelection is returned by operations that need a selected place
	ErrNoSelection = errors.New("no place selected")
)

// Status is a consistent copy of the selection state
type Status struct {
	State    State
	Place    *models.Place
	Snapshot *models.ForecastSnapshot
	Err      error
}

// Option configures a Session
type Option func(*Session)

// WithClock replaces time.Now
func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

// WithThemeInterval sets how often the auto theme is re-evaluated
func WithThemeInterval(d time.Duration) Option {
	return func(s *Session) { s.themeInterval = d }
}

// Session holds the state of one user of the weather app
type Session struct {
	gateway       Gateway
	prefsRecord   *storage.Record[models.Preferences]
	savedRecord   *storage.Record[[]models.SavedPlace]
	clock         func() time.Time
	themeInterval time.Duration
	theme         *ThemeWatcher

	mu       sync.Mutex
	prefs    models.Preferences
	saved    []models.SavedPlace
	state    State
	selected *models.Place
	snapshot *models.ForecastSnapshot
	err      error
	token    uint64
	locator  Locator
}

// NewSession creates a new session and restores preferences and saved places from backend.
// Unreadable records are logged and replaced by defaults.
func NewSession(ctx context.Context, gateway Gateway, backend storage.Backend, opts ...Option) *Session {
	s := &Session{
		gateway:       gateway,
		prefsRecord:   storage.NewRecord(backend, storage.PreferencesKey, models.DefaultPreferences),
		savedRecord:   storage.NewRecord(backend, storage.SavedPlacesKey, func() []models.SavedPlace { return []models.SavedPlace{} }),
		clock:         time.Now,
		themeInterval: DefaultThemeInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	prefs, err := s.prefsRecord.Load(ctx)
	if err != nil {
		slog.Warn("Failed to restore preferences, using defaults", "error", err)
	}
	s.prefs = prefs.WithDefaults()

	saved, err := s.savedRecord.Load(ctx)
	if err != nil {
		slog.Warn("Failed to restore saved places", "error", err)
	}
	if saved == nil {
		saved = []models.SavedPlace{}
	}
	s.saved = saved

	s.theme = NewThemeWatcher(s.themeInterval, s.clock, s.themeMode, func(dark bool) {
		slog.Debug("Theme changed", "dark", dark)
	})
	return s
}

// Start runs the auto theme watcher until ctx is done or Close is called
func (s *Session) Start(ctx context.Context) {
	s.theme.Start(ctx)
}

// Close stops background work
func (s *Session) Close() {
	s.theme.Stop()
}

func (s *Session) themeMode() models.ThemeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Theme
}

// Dark reports whether the dark palette is active
func (s *Session) Dark() bool {
	return s.theme.Dark()
}

// Preferences returns the current preferences
func (s *Session) Preferences() models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetLanguage changes and persists the active language
func (s *Session) SetLanguage(ctx context.Context, lang models.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("unsupported language %q", lang)
	}
	return s.updatePreferences(ctx, func(p *models.Preferences) { p.Language = lang })
}

// SetUnit changes and persists the temperature unit
func (s *Session) SetUnit(ctx context.Context, unit models.TemperatureUnit) error {
	if unit != models.Celsius && unit != models.Fahrenheit {
		return fmt.Errorf("unsupported temperature unit %q", unit)
	}
	return s.updatePreferences(ctx, func(p *models.Preferences) { p.TemperatureUnit = unit })
}

// SetTheme changes and persists the theme mode
func (s *Session) SetTheme(ctx context.Context, mode models.ThemeMode) error {
	switch mode {
	case models.ThemeLight, models.ThemeDark, models.ThemeAuto:
	default:
		return fmt.Errorf("unsupported theme %q", mode)
	}
	err := s.updatePreferences(ctx, func(p *models.Preferences) { p.Theme = mode })
	s.theme.Check()
	return err
}

func (s *Session) updatePreferences(ctx context.Context, apply func(*models.Preferences)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply(&s.prefs)
	if err := s.prefsRecord.Save(ctx, s.prefs); err != nil {
		return fmt.Errorf("failed to persist preferences: %w", err)
	}
	return nil
}

// Search looks up places by name. Queries shorter than two characters return no results
// without touching the gateway.
func (s *Session) Search(ctx context.Context, query string) ([]models.Place, error) {
	if !datasource.Searchable(query) {
		return []models.Place{}, nil
	}
	lang := SearchLanguage(s.Preferences().Language)

	places, err := s.gateway.Search(ctx, query, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}
	return places, nil
}

// Select makes place the current selection and fetches its forecast
func (s *Session) Select(ctx context.Context, place models.Place) error {
	s.mu.Lock()
	token := s.begin()
	s.selected = &place
	s.snapshot = nil
	s.locator = nil
	s.mu.Unlock()

	return s.fetch(ctx, token, place)
}

// Retry re-issues the request that produced the current selection
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	if loc := s.locator; loc != nil {
		s.mu.Unlock()
		return s.UseLocation(ctx, loc)
	}
	if s.selected == nil {
		s.mu.Unlock()
		return ErrNoSelection
	}
	place := *s.selected
	token := s.begin()
	s.mu.Unlock()

	return s.fetch(ctx, token, place)
}

// GoHome clears the selection. Responses still in flight are discarded.
func (s *Session) GoHome() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token++
	s.state = NoSelection
	s.selected = nil
	s.snapshot = nil
	s.err = nil
	s.locator = nil
}

// UseLocation selects the device position reported by loc
func (s *Session) UseLocation(ctx context.Context, loc Locator) error {
	s.mu.Lock()
	token := s.begin()
	s.locator = loc
	lang := s.prefs.Language
	s.mu.Unlock()

	lat, lon, err := loc.Locate(ctx)
	if err != nil {
		return s.finish(token, nil, fmt.Errorf("%w: %v", ErrLocationDenied, err))
	}

	place := models.Place{
		Name:      i18n.T(lang, "currentLocation"),
		Latitude:  lat,
		Longitude: lon,
	}
	s.mu.Lock()
	if token != s.token {
		s.mu.Unlock()
		return ErrStale
	}
	s.selected = &place
	s.snapshot = nil
	s.mu.Unlock()

	return s.fetch(ctx, token, place)
}

// begin starts a new request; callers hold s.mu
func (s *Session) begin() uint64 {
	s.token++
	s.state = Loading
	s.err = nil
	return s.token
}

func (s *Session) fetch(ctx context.Context, token uint64, place models.Place) error {
	snap, err := s.gateway.Weather(ctx, place.Latitude, place.Longitude)
	switch {
	case err != nil:
		err = fmt.Errorf("failed to fetch weather for %s: %w", place.Name, err)
	case snap == nil:
		err = fmt.Errorf("failed to fetch weather for %s: empty response", place.Name)
	default:
		if verr := snap.Validate(); verr != nil {
			err = fmt.Errorf("failed to fetch weather for %s: %w", place.Name, verr)
		}
	}
	return s.finish(token, snap, err)
}

// finish applies a response if it belongs to the current request
func (s *Session) finish(token uint64, snap *models.ForecastSnapshot, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		slog.Debug("Discarding stale response", "token", token, "current", s.token)
		return ErrStale
	}
	if err != nil {
		s.state = Failed
		s.err = err
		return err
	}
	s.snapshot = snap
	s.state = Loaded
	return nil
}

// Status returns the current selection state
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{State: s.state, Snapshot: s.snapshot, Err: s.err}
	if s.selected != nil {
		p := *s.selected
		st.Place = &p
	}
	return st
}

// SavedPlaces returns a copy of the saved places in insertion order
func (s *Session) SavedPlaces() []models.SavedPlace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.saved)
}

// IsSaved reports whether a saved place lies within 0.01° of place
func (s *Session) IsSaved(place models.Place) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := FindSaved(s.saved, place.Latitude, place.Longitude)
	return ok
}

// Save stores place with its names in every language. A place already saved nearby is
// returned unchanged. Failing to reconcile names never fails the save.
func (s *Session) Save(ctx context.Context, place models.Place) (models.SavedPlace, error) {
	s.mu.Lock()
	existing, ok := FindSaved(s.saved, place.Latitude, place.Longitude)
	s.mu.Unlock()
	if ok {
		return existing, nil
	}

	names, err := s.gateway.CityNames(ctx, place)
	if err != nil {
		slog.Warn("Failed to reconcile place names, saving with default name", "place", place.Name, "error", err)
		names = models.UniformNames(place.Name)
	}
	for _, lang := range models.Languages {
		if names.Get(lang) == "" {
			names.Set(lang, place.Name)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := FindSaved(s.saved, place.Latitude, place.Longitude); ok {
		return existing, nil
	}
	entry := models.NewSavedPlace(place, names, s.clock())
	s.saved = append(s.saved, entry)
	if err := s.savedRecord.Save(ctx, s.saved); err != nil {
		return entry, fmt.Errorf("failed to persist saved places: %w", err)
	}
	return entry, nil
}

// SaveSelected saves the currently selected place
func (s *Session) SaveSelected(ctx context.Context) (models.SavedPlace, error) {
	st := s.Status()
	if st.Place == nil {
		return models.SavedPlace{}, ErrNoSelection
	}
	return s.Save(ctx, *st.Place)
}

// Remove deletes the saved place with the given id. Unknown ids are ignored.
func (s *Session) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.saved, func(p models.SavedPlace) bool { return p.ID == id })
	if i < 0 {
		return nil
	}
	s.saved = slices.Delete(slices.Clone(s.saved), i, i+1)
	if err := s.savedRecord.Save(ctx, s.saved); err != nil {
		return fmt.Errorf("failed to persist saved places: %w", err)
	}
	return nil
}
