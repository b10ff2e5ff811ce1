// Package weather is a thin Open-Meteo client: current conditions plus a
// short daily forecast, looked up by coordinates or by city name through
// the Open-Meteo geocoding endpoint.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultForecastBaseURL = "https://api.open-meteo.com"
	defaultGeocodeBaseURL  = "https://geocoding-api.open-meteo.com"
)

// ErrCityNotFound means the geocoding lookup returned no results.
var ErrCityNotFound = errors.New("cidade não encontrada")

// Current is the present conditions block.
type Current struct {
	TemperatureC float64 `json:"temperatureC"`
	WeatherCode  int     `json:"weatherCode"`
	Description  string  `json:"description"`
}

// Day is one day of the forecast.
type Day struct {
	DateISO string  `json:"dateISO"`
	MinC    float64 `json:"minC"`
	MaxC    float64 `json:"maxC"`
}

// Forecast is the combined answer served to the UI.
type Forecast struct {
	City      string  `json:"city,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Current   Current `json:"current"`
	Days      []Day   `json:"days"`
}

// Client calls the Open-Meteo APIs. The base URLs are overridable for
// tests; empty strings select the public endpoints.
type Client struct {
	http         *http.Client
	forecastBase string
	geocodeBase  string
}

// NewClient builds a client. A nil httpClient gets a 10s-timeout default.
func NewClient(httpClient *http.Client, forecastBase, geocodeBase string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if forecastBase == "" {
		forecastBase = defaultForecastBaseURL
	}
	if geocodeBase == "" {
		geocodeBase = defaultGeocodeBaseURL
	}
	return &Client{http: httpClient, forecastBase: forecastBase, geocodeBase: geocodeBase}
}

// ForecastByCity geocodes the city name and fetches its forecast.
func (c *Client) ForecastByCity(ctx context.Context, city string) (*Forecast, error) {
	lat, lon, name, err := c.geocode(ctx, city)
	if err != nil {
		return nil, err
	}
	f, err := c.ForecastByCoords(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	f.City = name
	return f, nil
}

// ForecastByCoords fetches current conditions and the daily min/max series
// for a coordinate pair.
func (c *Client) ForecastByCoords(ctx context.Context, lat, lon float64) (*Forecast, error) {
	q := url.Values{
		"latitude":  {strconv.FormatFloat(lat, 'f', 4, 64)},
		"longitude": {strconv.FormatFloat(lon, 'f', 4, 64)},
		"current":   {"temperature_2m,weather_code"},
		"daily":     {"temperature_2m_max,temperature_2m_min"},
		"timezone":  {"auto"},
	}

	var body struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			WeatherCode int     `json:"weather_code"`
		} `json:"current"`
		Daily struct {
			Time []string  `json:"time"`
			Max  []float64 `json:"temperature_2m_max"`
			Min  []float64 `json:"temperature_2m_min"`
		} `json:"daily"`
	}
	if err := c.getJSON(ctx, c.forecastBase+"/v1/forecast?"+q.Encode(), &body); err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	f := &Forecast{
		Latitude:  lat,
		Longitude: lon,
		Current: Current{
			TemperatureC: body.Current.Temperature,
			WeatherCode:  body.Current.WeatherCode,
			Description:  DescribeCode(body.Current.WeatherCode),
		},
	}
	for i, day := range body.Daily.Time {
		if i >= len(body.Daily.Min) || i >= len(body.Daily.Max) {
			break
		}
		f.Days = append(f.Days, Day{DateISO: day, MinC: body.Daily.Min[i], MaxC: body.Daily.Max[i]})
	}
	return f, nil
}

func (c *Client) geocode(ctx context.Context, city string) (lat, lon float64, name string, err error) {
	q := url.Values{
		"name":     {city},
		"count":    {"1"},
		"language": {"pt"},
		"format":   {"json"},
	}

	var body struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, c.geocodeBase+"/v1/search?"+q.Encode(), &body); err != nil {
		return 0, 0, "", fmt.Errorf("geocode %q: %w", city, err)
	}
	if len(body.Results) == 0 {
		return 0, 0, "", fmt.Errorf("geocode %q: %w", city, ErrCityNotFound)
	}
	r := body.Results[0]
	return r.Latitude, r.Longitude, r.Name, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// DescribeCode translates a WMO weather code into a short pt-BR label.
func DescribeCode(code int) string {
	switch {
	case code == 0:
		return "Céu limpo"
	case code <= 3:
		return "Parcialmente nublado"
	case code == 45 || code == 48:
		return "Neblina"
	case code >= 51 && code <= 57:
		return "Garoa"
	case code >= 61 && code <= 67:
		return "Chuva"
	case code >= 71 && code <= 77:
		return "Neve"
	case code >= 80 && code <= 82:
		return "Pancadas de chuva"
	case code >= 95:
		return "Tempestade"
	default:
		return "Indefinido"
	}
}
