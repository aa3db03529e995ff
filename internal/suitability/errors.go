package suitability

import (
	"errors"
	"fmt"
)

// Kind classifies a request-terminal failure so callers can render a precise
// message.
type Kind string

const (
	KindNoIdentification   Kind = "no_identification"
	KindLowConfidence      Kind = "low_confidence"
	KindWeatherUnavailable Kind = "weather_unavailable"
)

// Error is returned by the engine for failures that stop a request.
// Confidence is set for KindLowConfidence.
type Error struct {
	Kind       Kind
	Confidence float64
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindLowConfidence:
		return fmt.Sprintf("%s: confidence %.2f below %.2f", e.Kind, e.Confidence, MinConfidence)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind from err, if err is or wraps an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
