package suitability

import (
	"slices"
	"time"

	"github.com/i474232898/plant-suitability/internal/region"
)

// MonthOutcome is the three-valued result of the sowing-window check.
type MonthOutcome int

const (
	// MonthUnknown means there is no calendar data to judge by. It never
	// blocks a verdict.
	MonthUnknown MonthOutcome = iota
	MonthInWindow
	MonthOutOfWindow
)

func (o MonthOutcome) String() string {
	switch o {
	case MonthInWindow:
		return "in_window"
	case MonthOutOfWindow:
		return "out_of_window"
	default:
		return "unknown"
	}
}

// MonthSuitable checks month against the calendar for key. A calendar entry
// for key is decisive. Without one, any other region listing the month counts
// as in window; otherwise the outcome is unknown.
func MonthSuitable(calendar map[region.Key][]int, key region.Key, month time.Month) MonthOutcome {
	if calendar == nil {
		return MonthUnknown
	}
	m := int(month)

	if months, ok := calendar[key]; ok && months != nil {
		if slices.Contains(months, m) {
			return MonthInWindow
		}
		return MonthOutOfWindow
	}

	for _, months := range calendar {
		if slices.Contains(months, m) {
			return MonthInWindow
		}
	}
	return MonthUnknown
}
