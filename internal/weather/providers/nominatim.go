package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/adlerOmonte1/AItime/internal/weather"
)

const (
	// DefaultNominatimURL is the public OpenStreetMap reverse geocoding endpoint.
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/reverse"
	// DefaultUserAgent identifies the service, as Nominatim's usage policy requires.
	DefaultUserAgent = "AItime/1.0"
)

// NominatimGeocoder implements weather.ReverseGeocoder with OpenStreetMap Nominatim.
type NominatimGeocoder struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewNominatimGeocoder(client *http.Client, baseURL, userAgent string) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &NominatimGeocoder{
		name:    "nominatim",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			// Nominatim allows one request per second; retry once at most.
			Backoff:   defaultBackoff(1),
			UserAgent: userAgent,
		},
		circuit: newCircuitBreaker("nominatim"),
	}
}

func (p *NominatimGeocoder) Name() string {
	return p.name
}

// ReverseGeocode returns the state and country of the coordinate.
func (p *NominatimGeocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (weather.Place, error) {
	values := url.Values{}
	values.Set("format", "json")
	values.Set("lat", fmt.Sprintf("%f", latitude))
	values.Set("lon", fmt.Sprintf("%f", longitude))

	var payload struct {
		Address *struct {
			State   string `json:"state"`
			Country string `json:"country"`
		} `json:"address"`
	}

	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return weather.Place{}, err
	}

	if payload.Address == nil {
		return weather.UnknownPlace(), nil
	}

	return newPlace(payload.Address.State, payload.Address.Country), nil
}

// newPlace fills missing address parts with weather.PlaceNotFound.
func newPlace(region, country string) weather.Place {
	if region == "" {
		region = weather.PlaceNotFound
	}
	if country == "" {
		country = weather.PlaceNotFound
	}
	return weather.Place{Region: region, Country: country}
}
