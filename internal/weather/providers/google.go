package providers

import (
	"context"
	"errors"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/adlerOmonte1/AItime/internal/weather"
)

var errUnexpectedResult = errors.New("unexpected result type from circuit breaker")

// GoogleGeocoder implements weather.ReverseGeocoder with the Google Maps
// Geocoding API.
type GoogleGeocoder struct {
	name    string
	circuit *gobreaker.CircuitBreaker
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

// NewGoogleGeocoder configures the geocoder package with apiKey. The key is
// process-wide, so only one GoogleGeocoder should exist.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{
		name:    "google",
		circuit: newCircuitBreaker("google-geocoder"),
		reverse: geocoder.GeocodingReverse,
	}
}

func (p *GoogleGeocoder) Name() string {
	return p.name
}

// ReverseGeocode returns the state and country of the first address Google
// resolves for the coordinate. The underlying client has no context support,
// so cancellation abandons the call instead of aborting it.
func (p *GoogleGeocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (weather.Place, error) {
	type outcome struct {
		addrs []geocoder.Address
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := p.circuit.Execute(func() (interface{}, error) {
			return p.reverse(geocoder.Location{Latitude: latitude, Longitude: longitude})
		})
		if err != nil {
			done <- outcome{err: err}
			return
		}
		addrs, ok := result.([]geocoder.Address)
		if !ok {
			done <- outcome{err: errUnexpectedResult}
			return
		}
		done <- outcome{addrs: addrs}
	}()

	select {
	case <-ctx.Done():
		return weather.Place{}, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return weather.Place{}, out.err
		}
		if len(out.addrs) == 0 {
			return weather.UnknownPlace(), nil
		}

		return newPlace(out.addrs[0].State, out.addrs[0].Country), nil
	}
}
