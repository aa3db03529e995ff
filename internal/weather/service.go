package weather

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
)

var (
	// ErrNoProviders is returned when the service has no providers configured.
	ErrNoProviders = errors.New("no weather providers configured")
	// ErrNoReadings is returned when every provider failed.
	ErrNoReadings = errors.New("no successful provider readings")
)

// Service fetches current weather from several providers concurrently and
// aggregates them into a single Snapshot.
type Service struct {
	cache     Cache
	providers []Provider
}

// NewService creates a new Service. cache may be nil.
func NewService(cache Cache, providers []Provider) *Service {
	return &Service{
		cache:     cache,
		providers: providers,
	}
}

// ProviderNames lists configured providers, sorted.
func (s *Service) ProviderNames() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	sort.Strings(names)
	return names
}

// Current returns aggregated weather at the given coordinates. Partial
// provider failure is tolerated; ErrNoReadings means none succeeded.
func (s *Service) Current(ctx context.Context, at Coordinates) (Snapshot, error) {
	if len(s.providers) == 0 {
		return Snapshot{}, ErrNoProviders
	}
	if s.cache != nil {
		if snap, ok := s.cache.Get(at); ok {
			slog.Debug("weather: cache hit", "location", at.Key())
			return snap, nil
		}
	}

	readings := make([]*ProviderReading, len(s.providers))
	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()

			r, err := p.Fetch(ctx, at)
			if err != nil {
				slog.Warn("weather: provider fetch failed", "provider", p.Name(), "location", at.Key(), "error", err)
				return
			}
			readings[i] = &r
		}(i, p)
	}
	wg.Wait()

	// Keep provider order so aggregation is stable across calls.
	ok := make([]ProviderReading, 0, len(readings))
	for _, r := range readings {
		if r != nil {
			ok = append(ok, *r)
		}
	}
	if len(ok) == 0 {
		if err := ctx.Err(); err != nil {
			return Snapshot{}, err
		}
		return Snapshot{}, ErrNoReadings
	}

	snap := AggregateReadings(ok)
	if s.cache != nil {
		s.cache.Save(at, snap)
	}
	return snap, nil
}
