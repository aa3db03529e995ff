// Package suitability decides whether now is a good time to sow a species at
// a location, and finds alternatives when it is not.
package suitability

import (
	"strconv"
	"time"

	"github.com/i474232898/plant-suitability/internal/plant"
	"github.com/i474232898/plant-suitability/internal/region"
	"github.com/i474232898/plant-suitability/internal/weather"
)

// Reasons, one per violated constraint.
const (
	ReasonTempBelow    = "Temperature is below optimal range"
	ReasonTempAbove    = "Temperature is above optimal range"
	ReasonHumidity     = "Humidity outside ideal range"
	ReasonSowingWindow = "Not in recommended sowing window for your region"
)

// AdviceWaitForWindow is advised when the sowing window is closed.
const AdviceWaitForWindow = "Consider waiting until the local sowing window opens"

// Verdict is the outcome of one evaluation. Reasons and Advice are empty
// whenever SuitableNow is true.
type Verdict struct {
	SuitableNow bool             `json:"suitableNow"`
	Reasons     []string         `json:"reasons"`
	Advice      []string         `json:"advice"`
	Weather     weather.Snapshot `json:"weather"`
	Species     string           `json:"species"`
}

// Evaluate applies the temperature, humidity and sowing-window checks. Every
// check runs; each failing one adds a reason. Missing data on either side
// skips the check rather than failing it. The result depends only on the
// arguments. Species is left for the caller to fill.
func Evaluate(req plant.Requirement, w weather.Snapshot, key region.Key, month time.Month) Verdict {
	v := Verdict{
		SuitableNow: true,
		Reasons:     []string{},
		Advice:      []string{},
		Weather:     w,
	}

	if w.TempC != nil {
		t := *w.TempC
		if req.TempMinC != nil && t < *req.TempMinC {
			v.fail(ReasonTempBelow)
		}
		if req.TempMaxC != nil && t > *req.TempMaxC {
			v.fail(ReasonTempAbove)
		}
	}

	if w.Humidity != nil && req.HasHumidityBand() {
		h := *w.Humidity
		if h < *req.HumidityMin || h > *req.HumidityMax {
			v.fail(ReasonHumidity)
		}
	}

	window := MonthSuitable(req.SowingMonthsByRegion, key, month)
	if window == MonthOutOfWindow {
		v.fail(ReasonSowingWindow)
	}

	if !v.SuitableNow {
		v.Advice = advise(req, w, window)
	}
	return v
}

func (v *Verdict) fail(reason string) {
	v.SuitableNow = false
	v.Reasons = append(v.Reasons, reason)
}

func advise(req plant.Requirement, w weather.Snapshot, window MonthOutcome) []string {
	advice := []string{}
	if w.TempC != nil {
		advice = append(advice, "Aim for "+bound(req.TempMinC)+"-"+bound(req.TempMaxC)+" °C")
	}
	if req.Soil != "" {
		advice = append(advice, "Soil: "+req.Soil)
	}
	if req.Sunlight != "" {
		advice = append(advice, "Sunlight: "+req.Sunlight)
	}
	if window == MonthOutOfWindow {
		advice = append(advice, AdviceWaitForWindow)
	}
	return advice
}

func bound(v *float64) string {
	if v == nil {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
