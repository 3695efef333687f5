package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/adlerOmonte1/AItime/internal/weather"
)

// DefaultArchiveURL is the Open-Meteo historical weather endpoint.
const DefaultArchiveURL = "https://archive-api.open-meteo.com/v1/archive"

// OpenMeteoArchive implements weather.GroundTruth with the Open-Meteo
// historical archive.
type OpenMeteoArchive struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoArchive(client *http.Client, baseURL string) *OpenMeteoArchive {
	if baseURL == "" {
		baseURL = DefaultArchiveURL
	}
	return &OpenMeteoArchive{
		name:    "openmeteo-archive",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(2),
		},
		circuit: newCircuitBreaker("openmeteo-archive"),
	}
}

func (p *OpenMeteoArchive) Name() string {
	return p.name
}

// Observed returns the daily mean 2 m temperature on date. Dates the archive
// cannot serve (future dates, empty series) are reported as unavailable
// rather than as errors.
func (p *OpenMeteoArchive) Observed(ctx context.Context, latitude, longitude float64, date string) (weather.Observation, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", latitude))
	values.Set("longitude", fmt.Sprintf("%f", longitude))
	values.Set("start_date", date)
	values.Set("end_date", date)
	values.Set("daily", "temperature_2m_mean")

	var payload struct {
		Daily *struct {
			Time              []string   `json:"time"`
			Temperature2mMean []*float64 `json:"temperature_2m_mean"`
		} `json:"daily"`
	}

	err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"?"+values.Encode(), &payload)
	if err != nil {
		// The archive answers 400 for dates outside its coverage.
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusBadRequest {
			return weather.Observation{Status: weather.ObservationUnavailable}, nil
		}
		return weather.Observation{Status: weather.ObservationError}, err
	}

	if payload.Daily == nil || len(payload.Daily.Temperature2mMean) == 0 || payload.Daily.Temperature2mMean[0] == nil {
		return weather.Observation{Status: weather.ObservationUnavailable}, nil
	}

	return weather.Observation{
		Status:       weather.ObservationOK,
		TemperatureC: *payload.Daily.Temperature2mMean[0],
	}, nil
}
