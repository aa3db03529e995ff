package region

// Key is a coarse geographic bucket used to select a sowing calendar.
type Key string

const (
	IndiaSouth  Key = "india_south"
	IndiaNorth  Key = "india_north"
	IndiaKharif Key = "india_kharif"
)

// DefaultSplitLatitude separates the southern and northern calendars.
const DefaultSplitLatitude = 16.0

// Classifier maps a latitude to a region key. The zero value is not usable;
// use NewClassifier or DefaultClassifier.
type Classifier struct {
	SplitLatitude float64
	South         Key
	North         Key
	Unknown       Key
}

// DefaultClassifier returns the classifier calibrated for India.
func DefaultClassifier() Classifier {
	return Classifier{
		SplitLatitude: DefaultSplitLatitude,
		South:         IndiaSouth,
		North:         IndiaNorth,
		Unknown:       IndiaKharif,
	}
}

// NewClassifier builds a classifier, filling empty keys from the defaults.
func NewClassifier(split float64, south, north, unknown Key) Classifier {
	c := DefaultClassifier()
	c.SplitLatitude = split
	if south != "" {
		c.South = south
	}
	if north != "" {
		c.North = north
	}
	if unknown != "" {
		c.Unknown = unknown
	}
	return c
}

// Classify returns the region for lat. A nil latitude yields the Unknown key.
func (c Classifier) Classify(lat *float64) Key {
	if lat == nil {
		return c.Unknown
	}
	if *lat < c.SplitLatitude {
		return c.South
	}
	return c.North
}
