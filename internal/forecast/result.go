package forecast

import (
	"fmt"
	"time"
)

// Kind tells which outcome a Result carries.
type Kind int

const (
	// KindForecast carries a temperature in Value.
	KindForecast Kind = iota
	// KindNoData means no historical year covered the requested day.
	KindNoData
	// KindInvalidInput means the target date did not parse as YYYY-MM-DD.
	KindInvalidInput
	// KindModelNotLoaded means the dataset failed to load at startup.
	KindModelNotLoaded
)

func (k Kind) String() string {
	switch k {
	case KindForecast:
		return "forecast"
	case KindNoData:
		return "no_data"
	case KindInvalidInput:
		return "invalid_input"
	case KindModelNotLoaded:
		return "model_not_loaded"
	default:
		return "unknown"
	}
}

// Method is how a forecast value was derived.
type Method int

const (
	MethodNone Method = iota
	// MethodTrend extrapolates a least-squares line through the yearly estimates.
	MethodTrend
	// MethodSimpleAverage averages the yearly estimates when too few exist for a trend.
	MethodSimpleAverage
)

func (m Method) String() string {
	switch m {
	case MethodTrend:
		return "trend"
	case MethodSimpleAverage:
		return "simple_average"
	default:
		return "none"
	}
}

// TrendSample is one year's interpolated estimate for the requested day.
type TrendSample struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Result is the outcome of a forecast query.
type Result struct {
	Kind   Kind
	Method Method
	// Value is the temperature in °C; only meaningful for KindForecast.
	Value float64
	// Month and Day identify the calendar day that was looked up.
	Month time.Month
	Day   int
	// Samples are the yearly estimates in ascending year order.
	Samples []TrendSample
	// Slope and Intercept describe the fitted line for MethodTrend.
	Slope, Intercept float64
}

// OK reports whether r carries a temperature.
func (r Result) OK() bool {
	return r.Kind == KindForecast
}

// String renders r the way it is shown to end users.
func (r Result) String() string {
	switch r.Kind {
	case KindForecast:
		if r.Method == MethodSimpleAverage {
			return fmt.Sprintf("%.2f°C (simple average, insufficient data for trend)", r.Value)
		}
		return FormatCelsius(r.Value)
	case KindNoData:
		return fmt.Sprintf("no historical data found for day %02d-%02d", int(r.Month), r.Day)
	case KindInvalidInput:
		return "invalid date format"
	case KindModelNotLoaded:
		return "model not loaded"
	default:
		return "unknown result"
	}
}

// FormatCelsius formats a temperature with two decimals and a °C suffix.
func FormatCelsius(v float64) string {
	return fmt.Sprintf("%.2f°C", v)
}
