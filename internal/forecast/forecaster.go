// Package forecast estimates the temperature at a point and date by
// interpolating each historical year's samples for the same calendar day
// and extrapolating the yearly trend.
package forecast

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/adlerOmonte1/AItime/internal/dataset"
	"github.com/adlerOmonte1/AItime/internal/interp"
)

// Options configures the historical window and trend policy.
type Options struct {
	// StartYear and EndYear bound the historical window, inclusive.
	StartYear int
	EndYear   int
	// MinTrendSamples is the fewest yearly estimates a linear trend is fitted to.
	MinTrendSamples int
	// Workers bounds how many years are interpolated concurrently.
	Workers int
}

// DefaultOptions returns the 2015-2024 window with a four-year trend minimum.
func DefaultOptions() Options {
	return Options{
		StartYear:       2015,
		EndYear:         2024,
		MinTrendSamples: 4,
		Workers:         1,
	}
}

// Forecaster is the trend forecaster. It never mutates its dataset and is
// safe for concurrent use.
type Forecaster struct {
	data *dataset.Dataset
	opts Options
}

// New creates a Forecaster over data. A nil dataset puts the forecaster in
// degraded mode where every query reports KindModelNotLoaded.
func New(data *dataset.Dataset, opts Options) *Forecaster {
	if opts.MinTrendSamples < 2 {
		opts.MinTrendSamples = 2
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Forecaster{data: data, opts: opts}
}

// Loaded reports whether the forecaster has a dataset.
func (f *Forecaster) Loaded() bool {
	return f.data != nil
}

// Forecast estimates the temperature at (latitude, longitude) on targetDate
// (YYYY-MM-DD). Every failure is reported through the Result kind.
func (f *Forecaster) Forecast(latitude, longitude float64, targetDate string) Result {
	if f.data == nil {
		return Result{Kind: KindModelNotLoaded}
	}

	target, err := time.Parse(dataset.KeyLayout, targetDate)
	if err != nil {
		return Result{Kind: KindInvalidInput}
	}
	month, day := target.Month(), target.Day()

	samples := f.collect(longitude, latitude, month, day)
	if len(samples) == 0 {
		return Result{Kind: KindNoData, Month: month, Day: day}
	}

	years := make([]float64, len(samples))
	values := make([]float64, len(samples))
	for i, s := range samples {
		years[i] = float64(s.Year)
		values[i] = s.Value
	}

	res := Result{
		Kind:    KindForecast,
		Month:   month,
		Day:     day,
		Samples: samples,
	}

	if len(samples) < f.opts.MinTrendSamples {
		res.Method = MethodSimpleAverage
		res.Value = stat.Mean(values, nil)
		return res
	}

	intercept, slope := stat.LinearRegression(years, values, nil, false)
	res.Method = MethodTrend
	res.Slope = slope
	res.Intercept = intercept
	res.Value = slope*float64(target.Year()) + intercept
	return res
}

// collect interpolates every year of the window that has data for the given
// calendar day. Years run concurrently; the result stays in year order.
func (f *Forecaster) collect(x, y float64, month time.Month, day int) []TrendSample {
	if f.opts.EndYear < f.opts.StartYear {
		return nil
	}

	estimates := make([]float64, f.opts.EndYear-f.opts.StartYear+1)

	var g errgroup.Group
	g.SetLimit(f.opts.Workers)
	for i := range estimates {
		estimates[i] = math.NaN()

		key := fmt.Sprintf("%d-%02d-%02d", f.opts.StartYear+i, int(month), day)
		daily, ok := f.data.Get(key)
		if !ok {
			continue
		}

		g.Go(func() error {
			estimates[i] = estimate(daily, x, y)
			return nil
		})
	}
	_ = g.Wait()

	var samples []TrendSample
	for i, v := range estimates {
		if math.IsNaN(v) {
			continue
		}
		samples = append(samples, TrendSample{Year: f.opts.StartYear + i, Value: v})
	}
	return samples
}

// estimate interpolates one day's samples at (x, y) = (longitude, latitude).
func estimate(daily dataset.DailySamples, x, y float64) float64 {
	xs := make([]float64, len(daily.Points))
	ys := make([]float64, len(daily.Points))
	for i, p := range daily.Points {
		xs[i] = p.Lon()
		ys[i] = p.Lat()
	}
	return interp.Cubic(xs, ys, daily.Values, x, y)
}
