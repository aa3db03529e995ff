package suitability

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/i474232898/plant-suitability/internal/catalog"
	"github.com/i474232898/plant-suitability/internal/region"
	"github.com/i474232898/plant-suitability/internal/weather"
)

// MaxAlternatives caps the recommender's result.
const MaxAlternatives = 3

// DefaultCandidates is the curated list of common regional crops probed for
// alternatives, in preference order.
var DefaultCandidates = []string{
	"pearl millet",
	"finger millet",
	"sorghum",
	"paddy",
	"tomato",
	"chili",
	"okra",
	"spinach",
	"coriander",
}

// Conditions are the shared inputs of every candidate evaluation.
type Conditions struct {
	Weather weather.Snapshot
	Region  region.Key
	Month   time.Month
}

// CandidateFunc evaluates one candidate species under cond.
type CandidateFunc func(ctx context.Context, species string, cond Conditions) (Verdict, error)

// CatalogCandidates evaluates candidates in-process against cat.
func CatalogCandidates(cat *catalog.Catalog) CandidateFunc {
	return func(ctx context.Context, species string, cond Conditions) (Verdict, error) {
		if err := ctx.Err(); err != nil {
			return Verdict{}, err
		}
		v := Evaluate(cat.Requirement(species), cond.Weather, cond.Region, cond.Month)
		v.Species = species
		return v, nil
	}
}

// Recommender searches a fixed candidate list for species that are suitable
// now.
type Recommender struct {
	candidates  []string
	evaluate    CandidateFunc
	concurrency int
}

// NewRecommender builds a recommender. concurrency <= 0 runs every candidate
// at once.
func NewRecommender(candidates []string, evaluate CandidateFunc, concurrency int) *Recommender {
	cp := make([]string, len(candidates))
	copy(cp, candidates)
	return &Recommender{
		candidates:  cp,
		evaluate:    evaluate,
		concurrency: concurrency,
	}
}

// Candidates returns a copy of the candidate list.
func (r *Recommender) Candidates() []string {
	cp := make([]string, len(r.candidates))
	copy(cp, r.candidates)
	return cp
}

// Recommend evaluates every candidate concurrently and returns up to
// MaxAlternatives suitable ones in candidate-list order. A candidate whose
// evaluation fails counts as unsuitable. A candidate equal to exclude
// (ignoring case) is skipped. The only error is ctx's, when the caller
// cancels.
func (r *Recommender) Recommend(ctx context.Context, cond Conditions, exclude string) ([]string, error) {
	suitable := make([]bool, len(r.candidates))
	skip := strings.ToLower(strings.TrimSpace(exclude))

	g, gctx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}

	for i, name := range r.candidates {
		if skip != "" && strings.ToLower(name) == skip {
			continue
		}
		g.Go(func() error {
			v, err := r.evaluate(gctx, name, cond)
			if err != nil {
				// Isolated: one failed candidate only shrinks the result.
				slog.Debug("recommender: candidate evaluation failed", "candidate", name, "error", err)
				return nil
			}
			suitable[i] = v.SuitableNow
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	alternatives := []string{}
	for i, ok := range suitable {
		if ok {
			alternatives = append(alternatives, r.candidates[i])
			if len(alternatives) == MaxAlternatives {
				break
			}
		}
	}
	return alternatives, nil
}
