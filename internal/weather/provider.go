package weather

import (
	"context"
	"time"
)

// ProviderReading is a single provider's normalized reading. Nil fields were
// not reported by the provider.
type ProviderReading struct {
	ProviderName string
	Timestamp    time.Time

	TemperatureC *float64
	HumidityPct  *float64
	WindSpeedMS  *float64
	Condition    Condition
	Description  string
	City         string
	Country      string
}

// Provider abstracts a weather data source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, at Coordinates) (ProviderReading, error)
}

// Cache is the contract the in-memory store satisfies when readings are
// cached between requests.
type Cache interface {
	Get(at Coordinates) (Snapshot, bool)
	Save(at Coordinates, snapshot Snapshot)
}
