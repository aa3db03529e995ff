package catalog

import (
	"strings"

	"github.com/i474232898/plant-suitability/internal/common"
	"github.com/i474232898/plant-suitability/internal/plant"
)

// Heuristic profile ids.
const (
	WetlandCerealID = "heuristic_wetland_cereal"
	DrylandCerealID = "heuristic_dryland_cereal"
	GenericID       = "heuristic_generic"
)

// BasicRulesFor classifies species by keyword into a coarse profile. It
// always returns a usable requirement. Heuristic profiles carry no sowing
// calendar.
func BasicRulesFor(species string) plant.Requirement {
	s := strings.ToLower(species)

	switch {
	case common.HasAny(s, "oryza", "rice", "paddy"):
		return plant.Requirement{
			ID:          WetlandCerealID,
			TempMinC:    plant.Float(20),
			TempMaxC:    plant.Float(35),
			HumidityMin: plant.Float(50),
			HumidityMax: plant.Float(90),
			Soil:        "Clay loam, good water retention",
			Sunlight:    "Full sun",
		}
	case common.HasAny(s, "millet", "sorghum", "bajra", "ragi"):
		return plant.Requirement{
			ID:          DrylandCerealID,
			TempMinC:    plant.Float(22),
			TempMaxC:    plant.Float(38),
			HumidityMin: plant.Float(30),
			HumidityMax: plant.Float(70),
			Soil:        "Well-drained loam/sandy loam",
			Sunlight:    "Full sun",
		}
	default:
		return plant.Requirement{
			ID:          GenericID,
			TempMinC:    plant.Float(18),
			TempMaxC:    plant.Float(32),
			HumidityMin: plant.Float(30),
			HumidityMax: plant.Float(80),
			Soil:        "Well-drained",
			Sunlight:    "Full sun to partial shade",
		}
	}
}
