package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/plant-suitability/internal/common"
	"github.com/i474232898/plant-suitability/internal/weather"
)

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// Open-Meteo returns no place names, so an optional Reverser fills them in.
type OpenMeteoProvider struct {
	name     string
	baseURL  string
	httpCfg  common.HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	reverser Reverser
}

// NewOpenMeteoProvider creates the provider. reverser may be nil.
func NewOpenMeteoProvider(client *http.Client, reverser Reverser) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: common.HTTPClientConfig{
			Client:  client,
			Backoff: common.DefaultBackoff,
		},
		circuit:  common.NewBreaker("openmeteo"),
		reverser: reverser,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, at weather.Coordinates) (weather.ProviderReading, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", formatCoord(at.Lat))
		values.Set("longitude", formatCoord(at.Lon))
		values.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code")
		values.Set("wind_speed_unit", "ms")

		return http.NewRequest(http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := common.DoRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ProviderReading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Time        string   `json:"time"`
			Temperature *float64 `json:"temperature_2m"`
			Humidity    *float64 `json:"relative_humidity_2m"`
			WindSpeed   *float64 `json:"wind_speed_10m"`
			WeatherCode *int     `json:"weather_code"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ProviderReading{}, fmt.Errorf("decode openmeteo response: %w", err)
	}

	ts, err := time.Parse("2006-01-02T15:04", payload.Current.Time)
	if err != nil {
		ts = time.Now().UTC()
	}

	cond := weather.ConditionUnknown
	if payload.Current.WeatherCode != nil {
		cond = mapOpenMeteoCondition(*payload.Current.WeatherCode)
	}

	reading := weather.ProviderReading{
		ProviderName: p.name,
		Timestamp:    ts.UTC(),
		TemperatureC: payload.Current.Temperature,
		HumidityPct:  payload.Current.Humidity,
		WindSpeedMS:  payload.Current.WindSpeed,
		Condition:    cond,
	}

	if p.reverser != nil {
		place, err := p.reverser.Reverse(ctx, at)
		if err != nil {
			slog.Debug("openmeteo: reverse geocoding failed", "location", at.Key(), "error", err)
		} else {
			reading.City = place.City
			reading.Country = place.Country
		}
	}

	return reading, nil
}

func mapOpenMeteoCondition(code int) weather.Condition {
	// WMO weather interpretation codes (simplified).
	switch {
	case code == 0:
		return weather.ConditionClear
	case code >= 1 && code <= 3:
		return weather.ConditionCloudy
	case code == 45 || code == 48:
		return weather.ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return weather.ConditionSnow
	case code >= 95:
		return weather.ConditionStorm
	default:
		return weather.ConditionUnknown
	}
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
