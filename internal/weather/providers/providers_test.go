package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/adlerOmonte1/AItime/internal/weather"
)

func fastBackoff(cfg *HTTPClientConfig) {
	cfg.Backoff = BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
}

func TestNominatimReverseGeocode(t *testing.T) {
	cases := []struct {
		name string
		body string
		want weather.Place
	}{
		{"full address", `{"address": {"state": "Buenos Aires", "country": "Argentina"}}`, weather.Place{Region: "Buenos Aires", Country: "Argentina"}},
		{"missing state", `{"address": {"country": "Uruguay"}}`, weather.Place{Region: weather.PlaceNotFound, Country: "Uruguay"}},
		{"no address", `{"error": "Unable to geocode"}`, weather.UnknownPlace()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotAgent, gotQuery string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAgent = r.Header.Get("User-Agent")
				gotQuery = r.URL.RawQuery
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			p := NewNominatimGeocoder(srv.Client(), srv.URL, "aitime-test/1.0")
			place, err := p.ReverseGeocode(context.Background(), -34.6, -58.4)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if place != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, place)
			}
			if gotAgent != "aitime-test/1.0" {
				t.Errorf("expected custom user agent, got %q", gotAgent)
			}
			if gotQuery != "format=json&lat=-34.600000&lon=-58.400000" {
				t.Errorf("unexpected query %q", gotQuery)
			}
		})
	}
}

func TestNominatimRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"address": {"state": "Lima", "country": "Peru"}}`))
	}))
	defer srv.Close()

	p := NewNominatimGeocoder(srv.Client(), srv.URL, "")
	fastBackoff(&p.httpCfg)

	place, err := p.ReverseGeocode(context.Background(), -12.0, -77.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if place.Region != "Lima" || atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected success on second attempt, got %+v after %d calls", place, calls)
	}
}

func TestNominatimPersistentFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewNominatimGeocoder(srv.Client(), srv.URL, "")
	fastBackoff(&p.httpCfg)

	if _, err := p.ReverseGeocode(context.Background(), 1, 2); !errors.Is(err, errServerError) {
		t.Errorf("expected errServerError, got %v", err)
	}
}

func TestOpenMeteoArchiveObserved(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   weather.Observation
		err    bool
	}{
		{"value", 200, `{"daily": {"time": ["2023-08-14"], "temperature_2m_mean": [12.34]}}`, weather.Observation{Status: weather.ObservationOK, TemperatureC: 12.34}, false},
		{"null value", 200, `{"daily": {"time": ["2030-08-14"], "temperature_2m_mean": [null]}}`, weather.Observation{Status: weather.ObservationUnavailable}, false},
		{"no daily", 200, `{"latitude": 1}`, weather.Observation{Status: weather.ObservationUnavailable}, false},
		{"out of range", 400, `{"error": true, "reason": "end_date out of range"}`, weather.Observation{Status: weather.ObservationUnavailable}, false},
		{"garbage", 200, `not json`, weather.Observation{Status: weather.ObservationError}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotQuery string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query().Get("daily") + "|" + r.URL.Query().Get("start_date") + "|" + r.URL.Query().Get("end_date")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			p := NewOpenMeteoArchive(srv.Client(), srv.URL)
			obs, err := p.Observed(context.Background(), -34.6, -58.4, "2023-08-14")
			if (err != nil) != tc.err {
				t.Fatalf("unexpected error state: %v", err)
			}
			if obs != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, obs)
			}
			if gotQuery != "temperature_2m_mean|2023-08-14|2023-08-14" {
				t.Errorf("unexpected query %q", gotQuery)
			}
		})
	}
}

func TestObservationRendering(t *testing.T) {
	cases := map[weather.Observation]string{
		{Status: weather.ObservationOK, TemperatureC: 12.346}: "12.35°C",
		{Status: weather.ObservationUnavailable}:              "N/A (possibly a future date)",
		{Status: weather.ObservationError}:                    "error",
	}
	for obs, want := range cases {
		if got := obs.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestGoogleReverseGeocode(t *testing.T) {
	p := NewGoogleGeocoder("test-key")
	if geocoder.ApiKey != "test-key" {
		t.Fatalf("expected api key to be configured")
	}

	p.reverse = func(loc geocoder.Location) ([]geocoder.Address, error) {
		if loc.Latitude != -34.6 || loc.Longitude != -58.4 {
			t.Errorf("unexpected location %+v", loc)
		}
		return []geocoder.Address{{State: "Buenos Aires", Country: "Argentina"}}, nil
	}
	place, err := p.ReverseGeocode(context.Background(), -34.6, -58.4)
	if err != nil || place.Region != "Buenos Aires" || place.Country != "Argentina" {
		t.Errorf("unexpected result %+v, %v", place, err)
	}

	p.reverse = func(geocoder.Location) ([]geocoder.Address, error) { return nil, nil }
	if place, _ := p.ReverseGeocode(context.Background(), 0, 0); place != weather.UnknownPlace() {
		t.Errorf("expected unknown place, got %+v", place)
	}

	boom := errors.New("boom")
	p.reverse = func(geocoder.Location) ([]geocoder.Address, error) { return nil, boom }
	if _, err := p.ReverseGeocode(context.Background(), 0, 0); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}
