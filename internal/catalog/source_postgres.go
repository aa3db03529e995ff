package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/i474232898/plant-suitability/internal/plant"
	"github.com/i474232898/plant-suitability/internal/region"
)

// Querier is the subset of *pgxpool.Pool used to read the catalog table.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const selectRequirements = `
SELECT id, scientific_name, common_name,
       temp_min_c, temp_max_c, humidity_min, humidity_max,
       soil, sunlight, sowing_months_by_region
FROM plant_requirements
ORDER BY position, id`

// OpenPool connects to the catalog database.
func OpenPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect catalog database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping catalog database: %w", err)
	}
	return pool, nil
}

// LoadPostgres reads the plant_requirements table in position order. Rows
// with an unreadable calendar or failing validation are skipped.
func LoadPostgres(ctx context.Context, q Querier) (*Catalog, error) {
	rows, err := q.Query(ctx, selectRequirements)
	if err != nil {
		return nil, fmt.Errorf("query plant requirements: %w", err)
	}
	defer rows.Close()

	var entries []plant.Requirement
	for rows.Next() {
		var (
			req                plant.Requirement
			scientific, common *string
			soil, sunlight     *string
			sowing             []byte
		)
		if err := rows.Scan(
			&req.ID, &scientific, &common,
			&req.TempMinC, &req.TempMaxC, &req.HumidityMin, &req.HumidityMax,
			&soil, &sunlight, &sowing,
		); err != nil {
			return nil, fmt.Errorf("scan plant requirement: %w", err)
		}

		req.ScientificName = deref(scientific)
		req.CommonName = deref(common)
		req.Soil = deref(soil)
		req.Sunlight = deref(sunlight)

		if len(sowing) > 0 {
			var months map[region.Key][]int
			if err := json.Unmarshal(sowing, &months); err != nil {
				slog.Warn("catalog: skipping row with unreadable calendar", "id", req.ID, "error", err)
				continue
			}
			req.SowingMonthsByRegion = months
		}

		if err := validateRecord(req); err != nil {
			slog.Warn("catalog: skipping invalid row", "id", req.ID, "error", err)
			continue
		}
		entries = append(entries, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read plant requirements: %w", err)
	}

	return New(entries), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
