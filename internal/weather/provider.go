package weather

import (
	"context"

	"github.com/adlerOmonte1/AItime/internal/forecast"
)

// Forecaster produces trend forecasts; satisfied by *forecast.Forecaster and *forecast.Cached.
type Forecaster interface {
	Forecast(latitude, longitude float64, targetDate string) forecast.Result
	Loaded() bool
}

// ReverseGeocoder resolves a coordinate to a region and country
// (e.g. Nominatim, Google).
type ReverseGeocoder interface {
	Name() string
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (Place, error)
}

// GroundTruth looks up the observed daily mean temperature (e.g. Open-Meteo archive).
type GroundTruth interface {
	Name() string
	Observed(ctx context.Context, latitude, longitude float64, date string) (Observation, error)
}
