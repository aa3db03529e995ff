// Package catalog resolves a species name to its agronomic requirements.
//
// Matching is a first-match-wins substring heuristic over the catalog in load
// order, so earlier entries take priority. Names that match nothing fall back
// to coarse keyword rules (see BasicRulesFor); resolution never fails.
package catalog

import (
	"strings"

	"github.com/i474232898/plant-suitability/internal/common"
	"github.com/i474232898/plant-suitability/internal/plant"
)

// Source tells where a resolved requirement came from.
type Source string

const (
	SourceCatalog   Source = "catalog"
	SourceHeuristic Source = "heuristic"
)

// Catalog is an ordered, read-only set of requirements. It is safe for
// concurrent use once constructed.
type Catalog struct {
	entries []plant.Requirement
}

// New builds a catalog from entries, preserving their order.
func New(entries []plant.Requirement) *Catalog {
	cp := make([]plant.Requirement, len(entries))
	copy(cp, entries)
	return &Catalog{entries: cp}
}

// Empty returns a catalog with no entries; every lookup falls through to the
// heuristic rules.
func Empty() *Catalog {
	return &Catalog{}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []plant.Requirement {
	if c == nil {
		return nil
	}
	cp := make([]plant.Requirement, len(c.entries))
	copy(cp, c.entries)
	return cp
}

// Lookup finds the first entry whose scientific or common name contains the
// query, or whose id is contained in the query. Comparison is
// case-insensitive and underscores match spaces on the id side.
func (c *Catalog) Lookup(query string) (plant.Requirement, bool) {
	if c == nil {
		return plant.Requirement{}, false
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return plant.Requirement{}, false
	}
	spaced := common.Normalize(query)

	for _, r := range c.entries {
		if r.ScientificName != "" && strings.Contains(strings.ToLower(r.ScientificName), q) {
			return r, true
		}
		if r.CommonName != "" && strings.Contains(strings.ToLower(r.CommonName), q) {
			return r, true
		}
		if id := common.Normalize(r.ID); id != "" && strings.Contains(spaced, id) {
			return r, true
		}
	}
	return plant.Requirement{}, false
}

// Resolve returns the catalog entry for species, or the heuristic profile
// when nothing matches.
func (c *Catalog) Resolve(species string) (plant.Requirement, Source) {
	if r, ok := c.Lookup(species); ok {
		return r, SourceCatalog
	}
	return BasicRulesFor(species), SourceHeuristic
}

// Requirement is Resolve without the source, for callers that only need the
// profile.
func (c *Catalog) Requirement(species string) plant.Requirement {
	r, _ := c.Resolve(species)
	return r
}
