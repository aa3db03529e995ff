package suitability

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/i474232898/plant-suitability/internal/catalog"
	"github.com/i474232898/plant-suitability/internal/region"
	"github.com/i474232898/plant-suitability/internal/weather"
)

// WeatherSource fetches current weather for a location.
type WeatherSource interface {
	Current(ctx context.Context, at weather.Coordinates) (weather.Snapshot, error)
}

// Request is the pipeline input. Weather, when set, is used as-is; otherwise
// it is fetched for Latitude/Longitude if both are present.
type Request struct {
	Species    string
	Confidence float64
	Latitude   *float64
	Longitude  *float64
	Weather    *weather.Snapshot
}

// Assessment is a verdict plus alternatives. Alternatives is empty when the
// verdict is positive.
type Assessment struct {
	Verdict
	Alternatives []string `json:"alternatives"`
}

// Engine runs the confidence gate, weather resolution, evaluation and
// alternative search for one request.
type Engine struct {
	catalog     *catalog.Catalog
	weather     WeatherSource
	regions     region.Classifier
	recommender *Recommender
	now         func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to pick the calendar month.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRegions sets the region classifier.
func WithRegions(c region.Classifier) Option {
	return func(e *Engine) { e.regions = c }
}

// WithRecommender replaces the default recommender.
func WithRecommender(r *Recommender) Option {
	return func(e *Engine) { e.recommender = r }
}

// NewEngine builds an engine over cat. ws may be nil, in which case any
// request that needs fetched weather fails with KindWeatherUnavailable.
func NewEngine(cat *catalog.Catalog, ws WeatherSource, opts ...Option) *Engine {
	if cat == nil {
		cat = catalog.Empty()
	}
	e := &Engine{
		catalog: cat,
		weather: ws,
		regions: region.DefaultClassifier(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.recommender == nil {
		e.recommender = NewRecommender(DefaultCandidates, CatalogCandidates(e.catalog), 0)
	}
	return e
}

// Check evaluates req.Species without the confidence gate or alternatives.
func (e *Engine) Check(ctx context.Context, req Request) (Verdict, error) {
	v, _, err := e.check(ctx, req)
	return v, err
}

// Assess runs the full pipeline. Gate rejections return before any weather
// fetch or evaluation. Alternatives are searched only for a negative verdict.
func (e *Engine) Assess(ctx context.Context, req Request) (Assessment, error) {
	if err := Admit(req.Species, req.Confidence); err != nil {
		slog.Info("suitability: identification rejected", "species", req.Species, "confidence", req.Confidence, "error", err)
		return Assessment{}, err
	}

	v, cond, err := e.check(ctx, req)
	if err != nil {
		return Assessment{}, err
	}

	out := Assessment{Verdict: v, Alternatives: []string{}}
	if !v.SuitableNow {
		alts, err := e.recommender.Recommend(ctx, cond, req.Species)
		if err != nil {
			return Assessment{}, err
		}
		out.Alternatives = alts
	}

	slog.Info("suitability: assessed",
		"species", req.Species,
		"region", cond.Region,
		"month", int(cond.Month),
		"suitable", v.SuitableNow,
		"alternatives", len(out.Alternatives),
	)
	return out, nil
}

func (e *Engine) check(ctx context.Context, req Request) (Verdict, Conditions, error) {
	w, err := e.resolveWeather(ctx, req)
	if err != nil {
		return Verdict{}, Conditions{}, err
	}

	cond := Conditions{
		Weather: w,
		Region:  e.regions.Classify(req.Latitude),
		Month:   e.now().Month(),
	}

	profile, source := e.catalog.Resolve(req.Species)
	if source == catalog.SourceHeuristic {
		slog.Debug("suitability: no catalog entry, using heuristic profile", "species", req.Species, "profile", profile.ID)
	}

	v := Evaluate(profile, cond.Weather, cond.Region, cond.Month)
	v.Species = req.Species
	return v, cond, nil
}

func (e *Engine) resolveWeather(ctx context.Context, req Request) (weather.Snapshot, error) {
	if req.Weather != nil {
		return *req.Weather, nil
	}
	if req.Latitude == nil || req.Longitude == nil {
		return weather.Snapshot{}, nil
	}
	if e.weather == nil {
		return weather.Snapshot{}, &Error{Kind: KindWeatherUnavailable, Err: errors.New("no weather source configured")}
	}

	w, err := e.weather.Current(ctx, weather.Coordinates{Lat: *req.Latitude, Lon: *req.Longitude})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return weather.Snapshot{}, ctxErr
		}
		return weather.Snapshot{}, &Error{Kind: KindWeatherUnavailable, Err: err}
	}
	return w, nil
}
