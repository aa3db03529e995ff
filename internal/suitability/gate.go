package suitability

import (
	"math"
	"strings"
)

// MinConfidence is the lowest identification score the engine will grade.
const MinConfidence = 0.40

// Admit checks an identification result before any evaluation. An empty
// species is rejected as KindNoIdentification; a score below MinConfidence
// (or not a number) as KindLowConfidence.
func Admit(species string, confidence float64) error {
	if strings.TrimSpace(species) == "" {
		return &Error{Kind: KindNoIdentification}
	}
	if math.IsNaN(confidence) || confidence < MinConfidence {
		return &Error{Kind: KindLowConfidence, Confidence: confidence}
	}
	return nil
}
