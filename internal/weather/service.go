package weather

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/adlerOmonte1/AItime/internal/dataset"
	"github.com/adlerOmonte1/AItime/internal/log"
)

// Service is the request gateway: it runs the forecaster and the outbound
// collaborators for a query and assembles the report.
type Service struct {
	forecaster Forecaster
	geocoder   ReverseGeocoder
	truth      GroundTruth
	data       *dataset.Dataset
	timeout    time.Duration
}

// NewService creates a new Service. geocoder and truth may be nil, in which
// case their fields are reported as unknown / unavailable. data may be nil
// when the dataset failed to load.
func NewService(forecaster Forecaster, geocoder ReverseGeocoder, truth GroundTruth, data *dataset.Dataset) *Service {
	return &Service{
		forecaster: forecaster,
		geocoder:   geocoder,
		truth:      truth,
		data:       data,
		timeout:    15 * time.Second,
	}
}

// Lookup answers q. Collaborator failures are logged and folded into
// sentinel values; Lookup itself never fails.
func (s *Service) Lookup(ctx context.Context, q Query) Report {
	report := Report{
		Query:       q,
		Place:       UnknownPlace(),
		Observation: Observation{Status: ObservationUnavailable},
	}

	// Bounded context for outbound collaborator calls only; the forecast
	// itself runs to completion.
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var g errgroup.Group

	if s.geocoder != nil {
		g.Go(func() error {
			place, err := s.geocoder.ReverseGeocode(callCtx, q.Latitude, q.Longitude)
			if err != nil {
				log.Warnf("geocoder %s failed for %.5f,%.5f: %v", s.geocoder.Name(), q.Latitude, q.Longitude, err)
				place = Place{Region: PlaceError, Country: PlaceError}
			}
			report.Place = place
			return nil
		})
	}

	if s.truth != nil {
		g.Go(func() error {
			obs, err := s.truth.Observed(callCtx, q.Latitude, q.Longitude, q.Date)
			if err != nil {
				log.Warnf("ground truth %s failed for %.5f,%.5f on %s: %v", s.truth.Name(), q.Latitude, q.Longitude, q.Date, err)
				obs = Observation{Status: ObservationError}
			}
			report.Observation = obs
			return nil
		})
	}

	report.Forecast = s.forecaster.Forecast(q.Latitude, q.Longitude, q.Date)
	_ = g.Wait()

	log.Debugf("lookup %.5f,%.5f %s -> %s (%s)", q.Latitude, q.Longitude, q.Date, report.Prediction(), report.Forecast.Method)
	return report
}

// Forecast runs only the forecaster.
func (s *Service) Forecast(q Query) Report {
	return Report{
		Query:    q,
		Forecast: s.forecaster.Forecast(q.Latitude, q.Longitude, q.Date),
	}
}

// DatasetStatus describes the dataset the forecaster runs on.
func (s *Service) DatasetStatus() DatasetStatus {
	if s.data == nil || !s.forecaster.Loaded() {
		return DatasetStatus{}
	}
	st := DatasetStatus{Loaded: true, Days: s.data.Len()}
	st.First, st.Last, _ = s.data.Range()
	return st
}

// SetTimeout overrides the outbound call budget of Lookup.
func (s *Service) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}
