package suitability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/plant-suitability/internal/region"
)

func TestMonthSuitable(t *testing.T) {
	calendar := map[region.Key][]int{
		region.IndiaSouth: {6, 7, 8},
		region.IndiaNorth: {10, 11},
	}

	cases := []struct {
		name     string
		calendar map[region.Key][]int
		key      region.Key
		month    time.Month
		want     MonthOutcome
	}{
		{"no calendar", nil, region.IndiaSouth, time.June, MonthUnknown},
		{"region in window", calendar, region.IndiaSouth, time.July, MonthInWindow},
		{"region out of window is strict", calendar, region.IndiaSouth, time.October, MonthOutOfWindow},
		{"unlisted region, another region in window", calendar, region.IndiaKharif, time.November, MonthInWindow},
		{"unlisted region, no region in window", calendar, region.IndiaKharif, time.March, MonthUnknown},
		{"empty region list rejects", map[region.Key][]int{region.IndiaSouth: {}}, region.IndiaSouth, time.June, MonthOutOfWindow},
		{"null region list is absent", map[region.Key][]int{region.IndiaSouth: nil, region.IndiaNorth: {6}}, region.IndiaSouth, time.June, MonthInWindow},
		{"empty calendar", map[region.Key][]int{}, region.IndiaNorth, time.June, MonthUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MonthSuitable(tc.calendar, tc.key, tc.month))
		})
	}
}

func TestMonthOutcomeString(t *testing.T) {
	assert.Equal(t, "unknown", MonthUnknown.String())
	assert.Equal(t, "in_window", MonthInWindow.String())
	assert.Equal(t, "out_of_window", MonthOutOfWindow.String())
}

func TestMissingCalendarNeverBlocks(t *testing.T) {
	for _, key := range []region.Key{region.IndiaSouth, region.IndiaNorth, region.IndiaKharif} {
		for m := time.January; m <= time.December; m++ {
			assert.NotEqual(t, MonthOutOfWindow, MonthSuitable(nil, key, m))
		}
	}
}
