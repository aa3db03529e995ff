package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestClassify(t *testing.T) {
	c := DefaultClassifier()

	cases := []struct {
		name string
		lat  *float64
		want Key
	}{
		{"missing latitude", nil, IndiaKharif},
		{"chennai", ptr(13.08), IndiaSouth},
		{"just below split", ptr(15.999), IndiaSouth},
		{"on split", ptr(16), IndiaNorth},
		{"delhi", ptr(28.61), IndiaNorth},
		{"southern hemisphere", ptr(-33.9), IndiaSouth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Classify(tc.lat))
		})
	}
}

func TestNewClassifierKeepsDefaultsForEmptyKeys(t *testing.T) {
	c := NewClassifier(40, "", "europe_north", "")

	assert.Equal(t, IndiaSouth, c.Classify(ptr(39)))
	assert.Equal(t, Key("europe_north"), c.Classify(ptr(52)))
	assert.Equal(t, IndiaKharif, c.Classify(nil))
}
