package httpapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/plant-suitability/internal/catalog"
	"github.com/i474232898/plant-suitability/internal/identify"
	"github.com/i474232898/plant-suitability/internal/plant"
	"github.com/i474232898/plant-suitability/internal/suitability"
	"github.com/i474232898/plant-suitability/internal/weather"
)

type fakeWeather struct {
	snap weather.Snapshot
	err  error
	at   weather.Coordinates
}

func (f *fakeWeather) Current(_ context.Context, at weather.Coordinates) (weather.Snapshot, error) {
	f.at = at
	return f.snap, f.err
}

type fakeIdentifier struct {
	res   identify.Result
	err   error
	image []byte
}

func (f *fakeIdentifier) Identify(_ context.Context, image []byte) (identify.Result, error) {
	f.image = image
	return f.res, f.err
}

// testCatalog covers every default candidate; only finger millet and spinach
// suit 25 °C.
func testCatalog() *catalog.Catalog {
	band := func(id, common string, lo, hi float64) plant.Requirement {
		return plant.Requirement{ID: id, CommonName: common, TempMinC: plant.Float(lo), TempMaxC: plant.Float(hi)}
	}
	return catalog.New([]plant.Requirement{
		band("wheat", "Wheat", 5, 15),
		band("pearl_millet", "Pearl millet", 30, 40),
		band("finger_millet", "Finger millet", 20, 30),
		band("sorghum", "Sorghum", 30, 40),
		band("paddy", "Paddy", 30, 40),
		band("tomato", "Tomato", 30, 40),
		band("chili", "Chili", 30, 40),
		band("okra", "Okra", 30, 40),
		band("spinach", "Spinach", 20, 30),
		band("coriander", "Coriander", 30, 40),
	})
}

func newTestApp(t *testing.T, ws *fakeWeather, id *fakeIdentifier) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	cat := testCatalog()
	deps := Deps{Catalog: cat}

	// Nil fakes must stay nil interfaces.
	var source suitability.WeatherSource
	if ws != nil {
		source = ws
		deps.Weather = ws
	}
	if id != nil {
		deps.Identifier = id
	}
	deps.Engine = suitability.NewEngine(cat, source, suitability.WithClock(func() time.Time {
		return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	}))
	RegisterRoutes(app, deps)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestHealthAndRoot(t *testing.T) {
	app := newTestApp(t, nil, nil)

	status, body := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])

	status, body = do(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, ServiceName, body["service"])
	assert.NotEmpty(t, body["endpoints"])
}

func TestWeatherRoute(t *testing.T) {
	ws := &fakeWeather{snap: weather.Snapshot{TempC: weather.Float(31), City: "Chennai"}}
	app := newTestApp(t, ws, nil)

	status, body := do(t, app, http.MethodGet, "/api/v1/weather?lat=13.0827&lon=80.2707", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 31.0, body["tempC"])
	assert.Equal(t, "Chennai", body["city"])
	assert.Equal(t, weather.Coordinates{Lat: 13.0827, Lon: 80.2707}, ws.at)
}

func TestWeatherRouteBadQuery(t *testing.T) {
	app := newTestApp(t, &fakeWeather{}, nil)

	for _, target := range []string{
		"/api/v1/weather",
		"/api/v1/weather?lat=13",
		"/api/v1/weather?lat=north&lon=80",
		"/api/v1/weather?lat=95&lon=80",
	} {
		status, body := do(t, app, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, status, target)
		assert.Equal(t, true, body["error"], target)
	}
}

func TestWeatherRouteUpstreamFailure(t *testing.T) {
	app := newTestApp(t, &fakeWeather{err: weather.ErrNoReadings}, nil)

	status, body := do(t, app, http.MethodGet, "/api/v1/weather?lat=13&lon=80", "")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, CodeWeatherUnavailable, body["code"])
}

func TestIdentifyRoute(t *testing.T) {
	id := &fakeIdentifier{res: identify.Result{Species: "Oryza sativa", CommonName: "Rice", Confidence: 0.8}}
	app := newTestApp(t, nil, id)

	img := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	status, body := do(t, app, http.MethodPost, "/api/v1/identify", `{"imageBase64":"data:image/jpeg;base64,`+img+`"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Oryza sativa", body["species"])
	assert.Equal(t, 0.8, body["confidence"])
	assert.Equal(t, []byte("jpeg-bytes"), id.image)
}

func TestIdentifyRouteErrors(t *testing.T) {
	app := newTestApp(t, nil, &fakeIdentifier{err: identify.ErrUpstream})

	status, _ := do(t, app, http.MethodPost, "/api/v1/identify", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/identify", `{"imageBase64":"%%%"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := do(t, app, http.MethodPost, "/api/v1/identify", `{"imageBase64":"aGVsbG8="}`)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, CodeIdentifyUpstream, body["code"])
}

func TestSuitabilityRoute(t *testing.T) {
	app := newTestApp(t, nil, nil)

	status, body := do(t, app, http.MethodPost, "/api/v1/suitability", `{"species":"wheat","weather":{"tempC":25}}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["suitableNow"])
	assert.Equal(t, []any{suitability.ReasonTempAbove}, body["reasons"])
	assert.Equal(t, "wheat", body["species"])
	assert.NotContains(t, body, "alternatives")
}

func TestSuitabilityRouteRequiresSpecies(t *testing.T) {
	app := newTestApp(t, nil, nil)

	status, body := do(t, app, http.MethodPost, "/api/v1/suitability", `{"lat":13,"lon":80}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeValidation, body["code"])

	status, _ = do(t, app, http.MethodPost, "/api/v1/suitability", `{"species":`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAssessRouteAlternatives(t *testing.T) {
	ws := &fakeWeather{snap: weather.Snapshot{TempC: weather.Float(25)}}
	app := newTestApp(t, ws, nil)

	status, body := do(t, app, http.MethodPost, "/api/v1/assess", `{"species":"wheat","confidence":0.9,"lat":13.08,"lon":80.27}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["suitableNow"])
	assert.Equal(t, []any{"finger millet", "spinach"}, body["alternatives"])
}

func TestAssessRouteGate(t *testing.T) {
	app := newTestApp(t, &fakeWeather{}, nil)

	status, body := do(t, app, http.MethodPost, "/api/v1/assess", `{"species":"","confidence":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, string(suitability.KindNoIdentification), body["code"])
	assert.NotContains(t, body, "confidence")

	status, body = do(t, app, http.MethodPost, "/api/v1/assess", `{"species":"wheat","confidence":0.39}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, string(suitability.KindLowConfidence), body["code"])
	assert.Equal(t, 0.39, body["confidence"])
}

func TestAssessRouteWeatherUnavailable(t *testing.T) {
	app := newTestApp(t, &fakeWeather{err: errors.New("dial tcp: timeout")}, nil)

	status, body := do(t, app, http.MethodPost, "/api/v1/assess", `{"species":"wheat","confidence":0.9,"lat":13,"lon":80}`)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, string(suitability.KindWeatherUnavailable), body["code"])
}

func TestSpeciesRequirementsRoute(t *testing.T) {
	app := newTestApp(t, nil, nil)

	status, body := do(t, app, http.MethodGet, "/api/v1/species/finger%20millet/requirements", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "finger_millet", body["id"])
	assert.Equal(t, string(catalog.SourceCatalog), body["source"])

	status, body = do(t, app, http.MethodGet, "/api/v1/species/Oryza%20glaberrima/requirements", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, catalog.WetlandCerealID, body["id"])
	assert.Equal(t, string(catalog.SourceHeuristic), body["source"])
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	app := newTestApp(t, nil, nil)

	status, body := do(t, app, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, body["code"])
}
