package presentation

import (
	"context"
	"sync"
	"time"

	"kolan-weather/models"
)

// DefaultThemeInterval is how often the auto theme re-evaluates the clock
const DefaultThemeInterval = time.Minute

// Night hours for the auto theme: dark from 18:00 until 05:59
const (
	duskHour = 18
	dawnHour = 6
)

// IsDark resolves a theme mode against the local hour
func IsDark(mode models.ThemeMode, hour int) bool {
	switch mode {
	case models.ThemeDark:
		return true
	case models.ThemeLight:
		return false
	default:
		return hour >= duskHour || hour < dawnHour
	}
}

// ThemeWatcher periodically re-evaluates the dark state and reports changes
type ThemeWatcher struct {
	interval time.Duration
	clock    func() time.Time
	mode     func() models.ThemeMode
	onChange func(dark bool)

	mu     sync.Mutex
	dark   bool
	cancel context.CancelFunc
	done   chan struct{}
}

// NewThemeWatcher creates a new theme watcher. mode is read on every tick and onChange
// is called whenever the dark state flips.
func NewThemeWatcher(interval time.Duration, clock func() time.Time, mode func() models.ThemeMode, onChange func(dark bool)) *ThemeWatcher {
	if interval <= 0 {
		interval = DefaultThemeInterval
	}
	if clock == nil {
		clock = time.Now
	}
	w := &ThemeWatcher{
		interval: interval,
		clock:    clock,
		mode:     mode,
		onChange: onChange,
	}
	w.dark = IsDark(mode(), clock().Hour())
	return w
}

// Dark returns the last evaluated dark state
func (w *ThemeWatcher) Dark() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dark
}

// Check evaluates the theme immediately and returns the new dark state
func (w *ThemeWatcher) Check() bool {
	dark := IsDark(w.mode(), w.clock().Hour())

	w.mu.Lock()
	changed := dark != w.dark
	w.dark = dark
	w.mu.Unlock()

	if changed && w.onChange != nil {
		w.onChange(dark)
	}
	return dark
}

// Start begins ticking in the background until ctx is done or Stop is called
func (w *ThemeWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.cancel != nil {
		w.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	done := w.done
	w.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.Check()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the ticker and waits for it to exit
func (w *ThemeWatcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
