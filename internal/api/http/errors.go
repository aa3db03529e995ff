package httpapi

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/plant-suitability/internal/identify"
	"github.com/i474232898/plant-suitability/internal/suitability"
	"github.com/i474232898/plant-suitability/internal/weather"
)

// Error codes rendered in the "code" field.
const (
	CodeBadRequest         = "bad_request"
	CodeValidation         = "validation"
	CodeNotFound           = "not_found"
	CodeIdentifyUpstream   = "identify_upstream_error"
	CodeWeatherUnavailable = "weather_unavailable"
	CodeInternal           = "internal"
)

// apiError is an error with a fixed HTTP rendering.
type apiError struct {
	status  int
	code    string
	message string
}

func (e *apiError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &apiError{status: fiber.StatusBadRequest, code: code, message: message}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error      bool     `json:"error"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// ErrorHandler renders handler errors as errorBody with a status derived from
// the error's type.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, body := render(err)
	if status >= fiber.StatusInternalServerError {
		slog.Error("http: request failed", "path", c.Path(), "status", status, "error", err)
	}
	return c.Status(status).JSON(body)
}

func render(err error) (int, errorBody) {
	body := errorBody{Error: true, Message: err.Error()}

	var ae *apiError
	if errors.As(err, &ae) {
		body.Code = ae.code
		return ae.status, body
	}

	var se *suitability.Error
	if errors.As(err, &se) {
		body.Code = string(se.Kind)
		switch se.Kind {
		case suitability.KindNoIdentification:
			body.Message = "no plant was identified"
			return fiber.StatusUnprocessableEntity, body
		case suitability.KindLowConfidence:
			c := se.Confidence
			body.Confidence = &c
			return fiber.StatusUnprocessableEntity, body
		case suitability.KindWeatherUnavailable:
			return fiber.StatusBadGateway, body
		}
	}

	switch {
	case errors.Is(err, weather.ErrNoReadings), errors.Is(err, weather.ErrNoProviders):
		body.Code = CodeWeatherUnavailable
		return fiber.StatusBadGateway, body
	case errors.Is(err, identify.ErrUpstream):
		body.Code = CodeIdentifyUpstream
		return fiber.StatusBadGateway, body
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			body.Code = CodeNotFound
		case fiber.StatusBadRequest:
			body.Code = CodeBadRequest
		default:
			body.Code = CodeInternal
		}
		return fe.Code, body
	}

	body.Code = CodeInternal
	body.Message = "internal error"
	return fiber.StatusInternalServerError, body
}
