package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/plant-suitability/internal/plant"
)

//go:embed data/plants.in.json
var embeddedPlants []byte

var validate = validator.New()

// document is the on-disk catalog schema. Records stay raw so one malformed
// entry does not spoil the rest.
type document struct {
	Plants []json.RawMessage `json:"plants"`
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(embeddedPlants))
}

// LoadFile reads a catalog document from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a catalog document. A document that is not valid JSON is an
// error; individual records that fail to decode or validate are skipped.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	entries := make([]plant.Requirement, 0, len(doc.Plants))
	for i, raw := range doc.Plants {
		var req plant.Requirement
		if err := json.Unmarshal(raw, &req); err != nil {
			slog.Warn("catalog: skipping undecodable record", "index", i, "error", err)
			continue
		}
		if err := validateRecord(req); err != nil {
			slog.Warn("catalog: skipping invalid record", "index", i, "id", req.ID, "error", err)
			continue
		}
		entries = append(entries, req)
	}

	return New(entries), nil
}

func validateRecord(req plant.Requirement) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if req.TempMinC != nil && req.TempMaxC != nil && *req.TempMinC > *req.TempMaxC {
		return fmt.Errorf("tempMinC %v above tempMaxC %v", *req.TempMinC, *req.TempMaxC)
	}
	if req.HasHumidityBand() && *req.HumidityMin > *req.HumidityMax {
		return fmt.Errorf("humidityMin %v above humidityMax %v", *req.HumidityMin, *req.HumidityMax)
	}
	return nil
}
