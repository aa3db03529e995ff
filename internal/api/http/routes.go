package httpapi

import (
	"context"
	"encoding/base64"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/plant-suitability/internal/catalog"
	"github.com/i474232898/plant-suitability/internal/identify"
	"github.com/i474232898/plant-suitability/internal/plant"
	"github.com/i474232898/plant-suitability/internal/suitability"
	"github.com/i474232898/plant-suitability/internal/weather"
)

var validate = validator.New()

// ServiceName is reported by the root route.
const ServiceName = "plant-suitability"

// Assessor runs the suitability pipeline.
type Assessor interface {
	Check(ctx context.Context, req suitability.Request) (suitability.Verdict, error)
	Assess(ctx context.Context, req suitability.Request) (suitability.Assessment, error)
}

// WeatherReader serves the weather proxy route.
type WeatherReader interface {
	Current(ctx context.Context, at weather.Coordinates) (weather.Snapshot, error)
}

// Identifier serves the identify route.
type Identifier interface {
	Identify(ctx context.Context, image []byte) (identify.Result, error)
}

// Resolver serves the species requirements route.
type Resolver interface {
	Resolve(species string) (plant.Requirement, catalog.Source)
}

// Deps are the route collaborators. Weather and Identifier may be nil; their
// routes then answer 502.
type Deps struct {
	Engine     Assessor
	Weather    WeatherReader
	Identifier Identifier
	Catalog    Resolver
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": ServiceName,
			"endpoints": []string{
				"GET /health",
				"GET /api/v1/weather?lat=13.0827&lon=80.2707",
				"POST /api/v1/identify",
				"POST /api/v1/suitability",
				"POST /api/v1/assess",
				"GET /api/v1/species/:name/requirements",
			},
		})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseCoordinatesQuery(c)
		if err != nil {
			return err
		}
		if deps.Weather == nil {
			return weather.ErrNoProviders
		}

		snapshot, err := deps.Weather.Current(c.UserContext(), weather.Coordinates{Lat: q.Lat, Lon: q.Lon})
		if err != nil {
			return err
		}
		return c.JSON(snapshot)
	})

	v1.Post("/identify", func(c *fiber.Ctx) error {
		var body identifyBody
		if err := bindBody(c, &body); err != nil {
			return err
		}
		image, err := decodeImage(body.ImageBase64)
		if err != nil {
			return badRequest(CodeBadRequest, "imageBase64 is not valid base64")
		}
		if deps.Identifier == nil {
			return identify.ErrUpstream
		}

		res, err := deps.Identifier.Identify(c.UserContext(), image)
		if err != nil {
			return err
		}
		return c.JSON(res)
	})

	v1.Post("/suitability", func(c *fiber.Ctx) error {
		var body checkBody
		if err := bindBody(c, &body); err != nil {
			return err
		}

		verdict, err := deps.Engine.Check(c.UserContext(), body.request())
		if err != nil {
			return err
		}
		return c.JSON(verdict)
	})

	v1.Post("/assess", func(c *fiber.Ctx) error {
		var body assessBody
		if err := bindBody(c, &body); err != nil {
			return err
		}

		assessment, err := deps.Engine.Assess(c.UserContext(), body.request())
		if err != nil {
			return err
		}
		return c.JSON(assessment)
	})

	v1.Get("/species/:name/requirements", func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil || strings.TrimSpace(name) == "" {
			return badRequest(CodeBadRequest, "species name is required")
		}

		req, source := deps.Catalog.Resolve(name)
		return c.JSON(requirementResponse{Requirement: req, Source: source})
	})
}

type coordinatesQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func parseCoordinatesQuery(c *fiber.Ctx) (coordinatesQuery, error) {
	var q coordinatesQuery

	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, badRequest(CodeBadRequest, "lat and lon are required")
	}

	var err error
	if q.Lat, err = strconv.ParseFloat(latStr, 64); err != nil {
		return q, badRequest(CodeBadRequest, "lat must be a number")
	}
	if q.Lon, err = strconv.ParseFloat(lonStr, 64); err != nil {
		return q, badRequest(CodeBadRequest, "lon must be a number")
	}

	if err := validate.Struct(q); err != nil {
		return q, badRequest(CodeValidation, err.Error())
	}
	return q, nil
}

type identifyBody struct {
	ImageBase64 string `json:"imageBase64" validate:"required"`
}

// decodeImage accepts raw base64 or a data URL.
func decodeImage(s string) ([]byte, error) {
	if i := strings.Index(s, ";base64,"); strings.HasPrefix(s, "data:") && i >= 0 {
		s = s[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}

type locationFields struct {
	Lat     *float64          `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon     *float64          `json:"lon" validate:"omitempty,gte=-180,lte=180"`
	Weather *weather.Snapshot `json:"weather"`
}

type checkBody struct {
	Species string `json:"species" validate:"required"`
	locationFields
}

func (b checkBody) request() suitability.Request {
	return suitability.Request{
		Species:   strings.TrimSpace(b.Species),
		Latitude:  b.Lat,
		Longitude: b.Lon,
		Weather:   b.Weather,
	}
}

// assessBody leaves species and confidence unvalidated; the engine's gate
// rejects them with a precise error kind.
type assessBody struct {
	Species    string   `json:"species"`
	Confidence *float64 `json:"confidence"`
	locationFields
}

func (b assessBody) request() suitability.Request {
	req := suitability.Request{
		Species:   strings.TrimSpace(b.Species),
		Latitude:  b.Lat,
		Longitude: b.Lon,
		Weather:   b.Weather,
	}
	if b.Confidence != nil {
		req.Confidence = *b.Confidence
	}
	return req
}

type requirementResponse struct {
	plant.Requirement
	Source catalog.Source `json:"source"`
}

func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return badRequest(CodeBadRequest, "invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return badRequest(CodeValidation, err.Error())
	}
	return nil
}
