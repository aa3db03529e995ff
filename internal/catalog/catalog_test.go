package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/plant-suitability/internal/plant"
)

func testCatalog() *Catalog {
	return New([]plant.Requirement{
		{ID: "rice", ScientificName: "Oryza sativa", CommonName: "Rice (paddy)"},
		{ID: "pearl_millet", ScientificName: "Pennisetum glaucum", CommonName: "Pearl millet (bajra)"},
		{ID: "finger_millet", ScientificName: "Eleusine coracana", CommonName: "Finger millet (ragi)"},
		{ID: "tomato", ScientificName: "Solanum lycopersicum", CommonName: "Tomato"},
	})
}

func TestLookupMatchesScientificName(t *testing.T) {
	r, ok := testCatalog().Lookup("oryza")
	require.True(t, ok)
	assert.Equal(t, "rice", r.ID)
}

func TestLookupMatchesCommonNameCaseInsensitive(t *testing.T) {
	r, ok := testCatalog().Lookup("PADDY")
	require.True(t, ok)
	assert.Equal(t, "rice", r.ID)
}

func TestLookupMatchesIDContainedInQuery(t *testing.T) {
	c := testCatalog()

	r, ok := c.Lookup("hybrid tomato seedling")
	require.True(t, ok)
	assert.Equal(t, "tomato", r.ID)

	r, ok = c.Lookup("organic_finger_millet")
	require.True(t, ok)
	assert.Equal(t, "finger_millet", r.ID)
}

func TestLookupFirstMatchWins(t *testing.T) {
	// "millet" is contained in both millet common names; catalog order decides.
	r, ok := testCatalog().Lookup("millet")
	require.True(t, ok)
	assert.Equal(t, "pearl_millet", r.ID)
}

func TestLookupMiss(t *testing.T) {
	c := testCatalog()

	_, ok := c.Lookup("mangifera indica")
	assert.False(t, ok)

	_, ok = c.Lookup("   ")
	assert.False(t, ok, "blank query must not match every entry")

	_, ok = Empty().Lookup("rice")
	assert.False(t, ok)

	var nilCatalog *Catalog
	_, ok = nilCatalog.Lookup("rice")
	assert.False(t, ok)
}

func TestResolveFallsBackToHeuristics(t *testing.T) {
	c := testCatalog()

	r, src := c.Resolve("Tomato")
	assert.Equal(t, SourceCatalog, src)
	assert.Equal(t, "tomato", r.ID)

	r, src = c.Resolve("Sorghum bicolor")
	assert.Equal(t, SourceHeuristic, src)
	assert.Equal(t, DrylandCerealID, r.ID)
}

func TestNewCopiesEntries(t *testing.T) {
	entries := []plant.Requirement{{ID: "okra", CommonName: "Okra"}}
	c := New(entries)
	entries[0].ID = "mutated"

	assert.Equal(t, "okra", c.Entries()[0].ID)
	assert.Equal(t, 1, c.Len())
}

func TestBasicRulesFor(t *testing.T) {
	cases := map[string]string{
		"Oryza glaberrima":  WetlandCerealID,
		"basmati rice":      WetlandCerealID,
		"Paddy":             WetlandCerealID,
		"foxtail millet":    DrylandCerealID,
		"Sorghum halepense": DrylandCerealID,
		"Bajra":             DrylandCerealID,
		"ragi":              DrylandCerealID,
		"Mangifera indica":  GenericID,
		"":                  GenericID,
	}
	for species, want := range cases {
		r := BasicRulesFor(species)
		assert.Equal(t, want, r.ID, species)
		assert.NotNil(t, r.TempMinC, species)
		assert.NotNil(t, r.TempMaxC, species)
		assert.True(t, r.HasHumidityBand(), species)
		assert.Nil(t, r.SowingMonthsByRegion, species)
	}

	wet := BasicRulesFor("rice")
	assert.Equal(t, 20.0, *wet.TempMinC)
	assert.Equal(t, 35.0, *wet.TempMaxC)
	assert.Equal(t, 50.0, *wet.HumidityMin)
	assert.Equal(t, 90.0, *wet.HumidityMax)
}
