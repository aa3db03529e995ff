package providers

import (
	"context"
	"errors"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/plant-suitability/internal/weather"
)

// Place is a reverse-geocoded location name.
type Place struct {
	City    string
	Country string
}

// Reverser resolves coordinates to a place name.
type Reverser interface {
	Reverse(ctx context.Context, at weather.Coordinates) (Place, error)
}

var errNoAddress = errors.New("no address for coordinates")

// GoogleReverser reverse-geocodes through the Google Geocoding API.
type GoogleReverser struct {
	apiKey string

	// The geocoder package keeps its key in a package variable.
	mu sync.Mutex
}

func NewGoogleReverser(apiKey string) *GoogleReverser {
	return &GoogleReverser{apiKey: apiKey}
}

// Reverse returns the first address for at. The underlying client takes no
// context, so ctx is only checked before the call.
func (g *GoogleReverser) Reverse(ctx context.Context, at weather.Coordinates) (Place, error) {
	if err := ctx.Err(); err != nil {
		return Place{}, err
	}

	g.mu.Lock()
	geocoder.ApiKey = g.apiKey
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  at.Lat,
		Longitude: at.Lon,
	})
	g.mu.Unlock()
	if err != nil {
		return Place{}, err
	}
	if len(addresses) == 0 {
		return Place{}, errNoAddress
	}

	return Place{
		City:    addresses[0].City,
		Country: addresses[0].Country,
	}, nil
}
