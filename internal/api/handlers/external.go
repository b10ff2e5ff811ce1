package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ygglist/ygglist/internal/api/middleware"
	"github.com/ygglist/ygglist/internal/holidays"
	"github.com/ygglist/ygglist/internal/logger"
	"github.com/ygglist/ygglist/internal/weather"
)

// WeatherService is the slice of the weather client the handler needs.
type WeatherService interface {
	ForecastByCity(ctx context.Context, city string) (*weather.Forecast, error)
	ForecastByCoords(ctx context.Context, lat, lon float64) (*weather.Forecast, error)
}

// HolidayService is the slice of the holidays client the handler needs.
type HolidayService interface {
	Year(ctx context.Context, year int, country string) ([]holidays.Holiday, error)
}

// ExternalHandler handles the weather and holiday endpoints. Both are
// decorative: upstream failures degrade to an empty answer instead of an
// error status, so the UI never breaks over them.
type ExternalHandler struct {
	weather  WeatherService
	holidays HolidayService
}

// NewExternalHandler creates a new external-APIs handler.
func NewExternalHandler(weather WeatherService, holidays HolidayService) *ExternalHandler {
	return &ExternalHandler{weather: weather, holidays: holidays}
}

// Weather handles GET /api/weather?city= or ?lat=&lon=
func (h *ExternalHandler) Weather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		forecast *weather.Forecast
		err      error
	)
	switch {
	case q.Get("city") != "":
		forecast, err = h.weather.ForecastByCity(r.Context(), q.Get("city"))
	case q.Get("lat") != "" && q.Get("lon") != "":
		var lat, lon float64
		lat, err = strconv.ParseFloat(q.Get("lat"), 64)
		if err == nil {
			lon, err = strconv.ParseFloat(q.Get("lon"), 64)
		}
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Coordenadas inválidas")
			return
		}
		forecast, err = h.weather.ForecastByCoords(r.Context(), lat, lon)
	default:
		middleware.WriteError(w, http.StatusBadRequest, "Informe city ou lat e lon")
		return
	}

	if err != nil {
		log := logger.FromContext(r.Context())
		log.Warn().Err(err).Msg("Weather lookup failed")
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"forecast": nil})
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"forecast": forecast})
}

// Holidays handles GET /api/holidays?year=&country=
func (h *ExternalHandler) Holidays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	year := time.Now().Year()
	if y := q.Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Ano inválido")
			return
		}
		year = parsed
	}

	list, err := h.holidays.Year(r.Context(), year, q.Get("country"))
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Warn().Err(err).Int("year", year).Msg("Holiday lookup failed")
		list = []holidays.Holiday{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"holidays": list,
		"count":    len(list),
	})
}
