package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"kolan-weather/internal/fixtures"
	"kolan-weather/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsAlignedSnapshot(t *testing.T) {
	snap := fixtures.Snapshot(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC), 48, 7)
	require.NoError(t, snap.Validate())
	assert.Equal(t, 48, snap.Hourly.Len())
	assert.Equal(t, 7, snap.Daily.Len())
}

func TestValidateRejectsMisalignedSeries(t *testing.T) {
	snap := fixtures.Snapshot(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC), 48, 7)
	snap.Hourly.Temperature = snap.Hourly.Temperature[:47]

	err := snap.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hourly.temperature_2m")

	snap = fixtures.Snapshot(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC), 48, 7)
	snap.Daily.Sunset = append(snap.Daily.Sunset, "2024-03-09T18:40")
	err = snap.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily.sunset")
}

func TestPlaceNearIsStrict(t *testing.T) {
	p := models.Place{Latitude: 35.0, Longitude: 51.0}

	assert.True(t, p.Near(35.05, 50.95, models.MatchTolerance))
	assert.False(t, p.Near(35.2, 51.0, models.MatchTolerance))
	assert.False(t, p.Near(35.0, 51.5, models.MatchTolerance))
	assert.True(t, p.Near(35.005, 51.005, models.SavedTolerance))
	assert.False(t, p.Near(35.02, 51.0, models.SavedTolerance))
}

func TestNewSavedPlace(t *testing.T) {
	now := time.UnixMilli(1709300000123)
	names := models.LocalizedNames{EN: "Tehran", FA: "تهران", KU: "تاران"}

	saved := models.NewSavedPlace(fixtures.Tehran, names, now)

	assert.Equal(t, "112931-1709300000123", saved.ID)
	assert.Equal(t, "Tehran", saved.Name)
	assert.Equal(t, "تهران", saved.Names.Get(models.LanguagePersian))
	assert.Equal(t, "Iran", saved.Country)
	assert.True(t, saved.Near(fixtures.Tehran.Latitude, fixtures.Tehran.Longitude, models.SavedTolerance))

	p := saved.Place()
	assert.Equal(t, fixtures.Tehran.Latitude, p.Latitude)
	assert.Equal(t, fixtures.Tehran.Longitude, p.Longitude)
}

func TestLocalizedNames(t *testing.T) {
	n := models.UniformNames("Erbil")
	for _, lang := range models.Languages {
		assert.Equal(t, "Erbil", n.Get(lang))
	}

	n.Set(models.LanguageKurdish, "هەولێر")
	n.Set(models.Language("de"), "ignored")
	assert.Equal(t, "هەولێر", n.KU)
	assert.Equal(t, "", n.Get(models.Language("de")))

	raw, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"en":"Erbil","fa":"Erbil","ku":"هەولێر"}`, string(raw))
}

func TestPreferencesWithDefaults(t *testing.T) {
	var p models.Preferences
	require.NoError(t, json.Unmarshal([]byte(`{"language":"fa","theme":"neon"}`), &p))

	p = p.WithDefaults()
	assert.Equal(t, models.LanguagePersian, p.Language)
	assert.Equal(t, models.Celsius, p.TemperatureUnit)
	assert.Equal(t, models.ThemeAuto, p.Theme)

	assert.Equal(t, models.Preferences{
		Language:        models.LanguageKurdish,
		TemperatureUnit: models.Celsius,
		Theme:           models.ThemeAuto,
	}, models.DefaultPreferences())
}
