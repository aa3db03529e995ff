package suitability

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmit(t *testing.T) {
	assert.NoError(t, Admit("Oryza sativa", 0.40))
	assert.NoError(t, Admit("Oryza sativa", 0.97))

	err := Admit("Oryza sativa", 0.39)
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, KindLowConfidence, e.Kind)
	assert.Equal(t, 0.39, e.Confidence)

	kind, ok := KindOf(Admit("Oryza sativa", math.NaN()))
	assert.True(t, ok)
	assert.Equal(t, KindLowConfidence, kind)
}

func TestAdmitWithoutSpeciesChecksIdentificationFirst(t *testing.T) {
	for _, species := range []string{"", "   "} {
		kind, ok := KindOf(Admit(species, 0.99))
		assert.True(t, ok)
		assert.Equal(t, KindNoIdentification, kind)
	}

	kind, _ := KindOf(Admit("", 0))
	assert.Equal(t, KindNoIdentification, kind)
}

func TestErrorFormatting(t *testing.T) {
	assert.Equal(t, "low_confidence: confidence 0.25 below 0.40", (&Error{Kind: KindLowConfidence, Confidence: 0.25}).Error())
	assert.Equal(t, "no_identification", (&Error{Kind: KindNoIdentification}).Error())

	cause := errors.New("provider down")
	err := &Error{Kind: KindWeatherUnavailable, Err: cause}
	assert.Equal(t, "weather_unavailable: provider down", err.Error())
	assert.ErrorIs(t, err, cause)

	_, ok := KindOf(cause)
	assert.False(t, ok)
}
