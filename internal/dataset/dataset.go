// Package dataset holds the historical interpolation dataset: one set of
// spatial temperature samples per calendar date.
package dataset

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// KeyLayout is the date layout used for dataset keys.
const KeyLayout = "2006-01-02"

// ErrInvalidDataset is wrapped by every validation failure.
var ErrInvalidDataset = errors.New("invalid dataset")

// Point is a (longitude, latitude) pair, serialized as a two element array.
type Point [2]float64

func (p Point) Lon() float64 { return p[0] }
func (p Point) Lat() float64 { return p[1] }

// DailySamples are the known temperatures of one calendar day.
// Points[i] carries Values[i].
type DailySamples struct {
	Points []Point   `json:"points" msgpack:"points"`
	Values []float64 `json:"values" msgpack:"values"`
}

// Validate checks the parallel-sequence invariant.
func (d DailySamples) Validate() error {
	if len(d.Points) == 0 || len(d.Values) == 0 {
		return fmt.Errorf("%w: empty sample set", ErrInvalidDataset)
	}
	if len(d.Points) != len(d.Values) {
		return fmt.Errorf("%w: %d points but %d values", ErrInvalidDataset, len(d.Points), len(d.Values))
	}
	return nil
}

// Dataset maps YYYY-MM-DD keys to daily samples. It is never mutated after
// construction and may be shared between goroutines.
type Dataset struct {
	days map[string]DailySamples
	keys []string
}

// New validates days and wraps them. The map is copied.
func New(days map[string]DailySamples) (*Dataset, error) {
	ds := &Dataset{
		days: make(map[string]DailySamples, len(days)),
		keys: make([]string, 0, len(days)),
	}
	for key, samples := range days {
		if _, err := time.Parse(KeyLayout, key); err != nil {
			return nil, fmt.Errorf("%w: key %q is not a YYYY-MM-DD date", ErrInvalidDataset, key)
		}
		if err := samples.Validate(); err != nil {
			return nil, fmt.Errorf("day %s: %w", key, err)
		}
		ds.days[key] = samples
		ds.keys = append(ds.keys, key)
	}
	sort.Strings(ds.keys)
	return ds, nil
}

// Get returns the samples recorded for key.
func (d *Dataset) Get(key string) (DailySamples, bool) {
	s, ok := d.days[key]
	return s, ok
}

// Len returns the number of days in the dataset.
func (d *Dataset) Len() int {
	return len(d.keys)
}

// Range returns the first and last date keys. ok is false for an empty dataset.
func (d *Dataset) Range() (first, last string, ok bool) {
	if len(d.keys) == 0 {
		return "", "", false
	}
	return d.keys[0], d.keys[len(d.keys)-1], true
}
