package httpapi

import (
	"errors"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/adlerOmonte1/AItime/internal/forecast"
	"github.com/adlerOmonte1/AItime/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. When staticDir
// is non-empty the browser UI is served from it as well.
func RegisterRoutes(app *fiber.App, service *weather.Service, staticDir string) {
	app.Post("/api/get_location_data", func(c *fiber.Ctx) error {
		var req locationRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report := service.Lookup(c.UserContext(), req.toQuery())
		return c.JSON(locationResponse{
			Region:     report.Place.Region,
			Country:    report.Place.Country,
			Prediction: report.Prediction(),
			Observed:   report.Observed(),
		})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		req, err := parseForecastQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report := service.Forecast(req.toQuery())
		return c.JSON(newForecastResponse(report))
	})

	v1.Get("/dataset", func(c *fiber.Ctx) error {
		return c.JSON(service.DatasetStatus())
	})

	if staticDir != "" {
		app.Static("/static", filepath.Join(staticDir, "static"))
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(staticDir, "templates", "index.html"))
		})
	}
}

// locationRequest is the body of a forecast lookup. Coordinates are not
// range checked and the date is parsed by the forecaster, so points outside
// the data and malformed dates still get a report.
type locationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
	Date      string   `json:"date"`
}

func (r locationRequest) toQuery() weather.Query {
	return weather.Query{
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
		Date:      r.Date,
	}
}

type locationResponse struct {
	Region     string `json:"region"`
	Country    string `json:"country"`
	Prediction string `json:"prediction"`
	Observed   string `json:"observed"`
}

func parseForecastQuery(c *fiber.Ctx) (locationRequest, error) {
	var req locationRequest

	for name, dst := range map[string]**float64{"lat": &req.Latitude, "lon": &req.Longitude} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.New("invalid " + name + " query parameter")
		}
		*dst = &v
	}
	req.Date = c.Query("date")

	if err := validate.Struct(req); err != nil {
		return req, err
	}
	return req, nil
}

type forecastResponse struct {
	Latitude   float64                `json:"latitude"`
	Longitude  float64                `json:"longitude"`
	Date       string                 `json:"date"`
	Kind       string                 `json:"kind"`
	Method     string                 `json:"method"`
	Value      *float64               `json:"value"`
	Samples    int                    `json:"samples"`
	History    []forecast.TrendSample `json:"history,omitempty"`
	Slope      *float64               `json:"slope,omitempty"`
	Intercept  *float64               `json:"intercept,omitempty"`
	Prediction string                 `json:"prediction"`
}

func newForecastResponse(report weather.Report) forecastResponse {
	res := report.Forecast
	out := forecastResponse{
		Latitude:   report.Query.Latitude,
		Longitude:  report.Query.Longitude,
		Date:       report.Query.Date,
		Kind:       res.Kind.String(),
		Method:     res.Method.String(),
		Samples:    len(res.Samples),
		History:    res.Samples,
		Prediction: res.String(),
	}
	if res.OK() {
		v := res.Value
		out.Value = &v
	}
	if res.Method == forecast.MethodTrend {
		slope, intercept := res.Slope, res.Intercept
		out.Slope = &slope
		out.Intercept = &intercept
	}
	return out
}
