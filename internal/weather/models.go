package weather

import (
	"fmt"
	"math"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Coordinates is a point on the globe in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Key returns a canonical key rounded to two decimals (about 1 km), used to
// share cached readings between nearby requests.
func (c Coordinates) Key() string {
	return fmt.Sprintf("%.2f:%.2f", round2(c.Lat), round2(c.Lon))
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// Snapshot is a point-in-time reading. Any numeric field may be missing when
// no provider reported it.
type Snapshot struct {
	TempC       *float64 `json:"tempC,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	WindSpeedMs *float64 `json:"windSpeedMs,omitempty"`

	Condition   Condition `json:"weather,omitempty"`
	Description string    `json:"weatherDesc,omitempty"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`

	// Providers contributing to this snapshot.
	Providers []string `json:"providers,omitempty"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
