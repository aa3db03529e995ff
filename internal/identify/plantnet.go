// Package identify turns a plant photo into a species name and score.
package identify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/plant-suitability/internal/common"
)

// MinScore is the lowest Pl@ntNet score reported as an identification.
const MinScore = 0.2

// Notes explaining an empty Species.
const (
	NoteLowConfidence = "low_confidence_or_unknown"
	NoteNoAPIKey      = "no_api_key"
)

// ErrUpstream means Pl@ntNet could not be reached or refused the request.
var ErrUpstream = errors.New("identify upstream error")

// Result is an identification. Species is empty when nothing reliable was
// found, and Note says why.
type Result struct {
	Species    string  `json:"species"`
	CommonName string  `json:"commonName,omitempty"`
	Confidence float64 `json:"confidence"`
	Note       string  `json:"note,omitempty"`
}

// PlantNetClient calls the Pl@ntNet identify API.
type PlantNetClient struct {
	apiKey  string
	baseURL string
	httpCfg common.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewPlantNetClient(client *http.Client, apiKey string) *PlantNetClient {
	return &PlantNetClient{
		apiKey:  apiKey,
		baseURL: "https://my-api.plantnet.org/v2/identify/all",
		httpCfg: common.HTTPClientConfig{
			Client:  client,
			Backoff: common.DefaultBackoff,
		},
		circuit: common.NewBreaker("plantnet"),
	}
}

// Configured reports whether an API key is set.
func (c *PlantNetClient) Configured() bool {
	return c.apiKey != ""
}

// Identify uploads image and returns the best match.
func (c *PlantNetClient) Identify(ctx context.Context, image []byte) (Result, error) {
	if c.apiKey == "" {
		return Result{Note: NoteNoAPIKey}, nil
	}

	endpoint := c.baseURL + "?" + url.Values{"api-key": {c.apiKey}}.Encode()
	buildRequest := func() (*http.Request, error) {
		body, contentType, err := imageForm(image)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequest(http.MethodPost, endpoint, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		return req, nil
	}

	resp, err := common.DoRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		slog.Warn("identify: plantnet request failed", "error", err)
		return Result{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	var payload plantNetResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	return payload.best(), nil
}

func imageForm(image []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("images", "image.jpg")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("organs", "auto"); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

type plantNetResponse struct {
	Results []struct {
		Score   *float64 `json:"score"`
		Species struct {
			ScientificName              string   `json:"scientificName"`
			ScientificNameWithoutAuthor string   `json:"scientificNameWithoutAuthor"`
			CommonNames                 []string `json:"commonNames"`
			Genus                       struct {
				ScientificName string `json:"scientificName"`
			} `json:"genus"`
		} `json:"species"`
	} `json:"results"`
}

func (p plantNetResponse) best() Result {
	if len(p.Results) == 0 {
		return Result{Note: NoteLowConfidence}
	}
	top := p.Results[0]

	var score float64
	if top.Score != nil {
		score = *top.Score
	}

	species := top.Species.ScientificNameWithoutAuthor
	if species == "" {
		species = top.Species.ScientificName
	}
	if species == "" {
		species = top.Species.Genus.ScientificName
	}

	if species == "" || score < MinScore {
		return Result{Confidence: score, Note: NoteLowConfidence}
	}

	r := Result{Species: species, Confidence: score}
	if len(top.Species.CommonNames) > 0 {
		r.CommonName = top.Species.CommonNames[0]
	}
	return r
}
