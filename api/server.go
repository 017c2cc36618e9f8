package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kolan-weather/datasource"
	"kolan-weather/i18n"
	"kolan-weather/metrics"
	"kolan-weather/models"
	"kolan-weather/reconcile"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Result caps for the search action
const searchCount = 10

// Query actions selected by the "action" parameter
const (
	ActionSearch    = "search"
	ActionCityNames = "city-names"
	ActionWeather   = "weather"
)

// Server represents the API server
type Server struct {
	geocoder   datasource.Geocoder
	forecasts  datasource.ForecastSource
	reconciler *reconcile.Reconciler
	router     chi.Router
	server     *http.Server
}

// NewServer creates a new API server
func NewServer(geocoder datasource.Geocoder, forecasts datasource.ForecastSource, port int, corsOrigins []string) *Server {
	s := &Server{
		geocoder:   geocoder,
		forecasts:  forecasts,
		reconciler: reconcile.New(geocoder),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Query interface
		r.Get("/weather", s.handleQuery)

		// Health check
		r.Get("/health", s.handleHealthCheck)
	})
	r.Handle("/metrics", metrics.Handler())

	s.router = r
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins the API server
func (s *Server) Start() error {
	slog.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleQuery dispatches on the action parameter
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	rec := &metrics.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}

	switch action {
	case ActionSearch:
		s.handleSearch(rec, r)
	case ActionCityNames:
		s.handleCityNames(rec, r)
	case ActionWeather:
		s.handleWeather(rec, r)
	default:
		action = "invalid"
		writeError(rec, http.StatusBadRequest, "Invalid action")
	}

	metrics.QueryRequests.WithLabelValues(action, strconv.Itoa(rec.Status)).Inc()
}

// handleSearch forwards a place search to the geocoder
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	lang := i18n.ParseLanguage(r.URL.Query().Get("lang"), models.LanguageEnglish)

	if !datasource.Searchable(query) {
		writeJSON(w, http.StatusOK, map[string]any{"results": []models.Place{}})
		return
	}

	places, err := s.geocoder.Search(r.Context(), datasource.SearchQuery{
		Name:     query,
		Language: lang,
		Count:    searchCount,
	})
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": places})
}

// handleCityNames reconciles a place's name in every supported language
func (s *Server) handleCityNames(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coordinates(w, r)
	if !ok {
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))

	names := s.reconciler.Reconcile(r.Context(), models.Place{
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
	})

	writeJSON(w, http.StatusOK, map[string]any{"names": names})
}

// handleWeather forwards a forecast request for a coordinate pair
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coordinates(w, r)
	if !ok {
		return
	}

	snapshot, err := s.forecasts.FetchForecast(r.Context(), lat, lon)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// coordinates parses lat and lon, writing a 400 response when either is missing or invalid
func coordinates(w http.ResponseWriter, r *http.Request) (lat, lon float64, ok bool) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr == "" || lonStr == "" {
		writeError(w, http.StatusBadRequest, "Missing coordinates")
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		writeError(w, http.StatusBadRequest, "Invalid coordinates")
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, "Invalid coordinates")
		return 0, 0, false
	}
	return lat, lon, true
}

// upstreamError logs the full error and answers with a short human-readable message
func (s *Server) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("upstream request failed",
		"action", r.URL.Query().Get("action"),
		"request_id", middleware.GetReqID(r.Context()),
		"error", err)

	msg := "Unknown error"
	switch {
	case errors.Is(err, datasource.ErrLookupFailed):
		msg = "Failed to search cities"
	case errors.Is(err, datasource.ErrFetchFailed):
		msg = "Failed to fetch weather data"
	}
	writeError(w, http.StatusInternalServerError, msg)
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
