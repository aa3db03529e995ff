// Package plant holds the agronomic profile shared by the catalog and the
// suitability evaluator.
package plant

import "github.com/i474232898/plant-suitability/internal/region"

// Requirement is the agronomic profile of one species. Nil bounds impose no
// constraint on that side. Values are read-only once loaded.
type Requirement struct {
	ID             string `json:"id" validate:"required"`
	ScientificName string `json:"scientificName,omitempty"`
	CommonName     string `json:"commonName,omitempty"`

	TempMinC    *float64 `json:"tempMinC,omitempty"`
	TempMaxC    *float64 `json:"tempMaxC,omitempty"`
	HumidityMin *float64 `json:"humidityMin,omitempty" validate:"omitempty,min=0,max=100"`
	HumidityMax *float64 `json:"humidityMax,omitempty" validate:"omitempty,min=0,max=100"`

	Soil     string `json:"soil,omitempty"`
	Sunlight string `json:"sunlight,omitempty"`

	// SowingMonthsByRegion lists calendar months (1-12) suitable for sowing
	// in each region.
	SowingMonthsByRegion map[region.Key][]int `json:"sowingMonthsByRegion,omitempty" validate:"omitempty,dive,dive,min=1,max=12"`
}

// HasHumidityBand reports whether both humidity bounds are set. A lone bound
// is ignored by the evaluator.
func (r Requirement) HasHumidityBand() bool {
	return r.HumidityMin != nil && r.HumidityMax != nil
}

// Float returns a pointer to v, for building requirements in code.
func Float(v float64) *float64 {
	return &v
}
