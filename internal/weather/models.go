package weather

import (
	"github.com/adlerOmonte1/AItime/internal/forecast"
)

// Sentinels reported in place of a region or country name.
const (
	PlaceUnknown  = "unknown"
	PlaceNotFound = "not found"
	PlaceError    = "error"
)

// Query is a forecast request for one point and date.
type Query struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Date      string  `json:"date"`
}

// Place is the administrative region and country of a coordinate.
type Place struct {
	Region  string `json:"region"`
	Country string `json:"country"`
}

// UnknownPlace is reported when the geocoder has no address for a point.
func UnknownPlace() Place {
	return Place{Region: PlaceUnknown, Country: PlaceUnknown}
}

// ObservationStatus describes how an observed temperature lookup ended.
type ObservationStatus int

const (
	// ObservationOK carries a measured daily mean temperature.
	ObservationOK ObservationStatus = iota
	// ObservationUnavailable means the archive has no value, typically for future dates.
	ObservationUnavailable
	// ObservationError means the archive could not be queried.
	ObservationError
)

// Observation is the ground-truth daily mean temperature for a query.
type Observation struct {
	Status       ObservationStatus
	TemperatureC float64
}

// String renders the observation with the same convention as predictions.
func (o Observation) String() string {
	switch o.Status {
	case ObservationOK:
		return forecast.FormatCelsius(o.TemperatureC)
	case ObservationUnavailable:
		return "N/A (possibly a future date)"
	default:
		return "error"
	}
}

// Report is the assembled answer to a Query.
type Report struct {
	Query       Query
	Place       Place
	Forecast    forecast.Result
	Observation Observation
}

// Prediction renders the forecast as surfaced to clients.
func (r Report) Prediction() string {
	return r.Forecast.String()
}

// Observed renders the ground truth as surfaced to clients.
func (r Report) Observed() string {
	return r.Observation.String()
}

// DatasetStatus summarizes the loaded historical dataset.
type DatasetStatus struct {
	Loaded bool   `json:"loaded"`
	Days   int    `json:"days"`
	First  string `json:"first,omitempty"`
	Last   string `json:"last,omitempty"`
}
