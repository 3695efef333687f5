package forecast

import (
	"time"

	"github.com/adlerOmonte1/AItime/internal/store"
)

type cacheKey struct {
	date      string
	latitude  float64
	longitude float64
}

// Cached memoizes a Forecaster. The dataset is immutable, so a stored
// result is always what the wrapped forecaster would return again.
type Cached struct {
	next  *Forecaster
	cache *store.MemoryStore[cacheKey, Result]
}

// NewCached wraps next with a memo store holding at most maxEntries results
// for at most maxAge. maxEntries <= 0 disables memoization.
func NewCached(next *Forecaster, maxEntries int, maxAge time.Duration) *Cached {
	c := &Cached{next: next}
	if maxEntries > 0 {
		c.cache = store.NewMemoryStore[cacheKey, Result](maxEntries, maxAge)
	}
	return c
}

// Loaded reports whether the wrapped forecaster has a dataset.
func (c *Cached) Loaded() bool {
	return c.next.Loaded()
}

// Forecast returns the memoized result for the query, computing it on a miss.
func (c *Cached) Forecast(latitude, longitude float64, targetDate string) Result {
	if c.cache == nil {
		return c.next.Forecast(latitude, longitude, targetDate)
	}

	key := cacheKey{date: targetDate, latitude: latitude, longitude: longitude}
	if res, err := c.cache.Get(key); err == nil {
		return res
	}

	res := c.next.Forecast(latitude, longitude, targetDate)
	if res.Kind == KindForecast || res.Kind == KindNoData {
		c.cache.Save(key, res)
	}
	return res
}

// Sweep drops expired memo entries and returns how many were removed.
func (c *Cached) Sweep() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Sweep()
}

// Stats reports memo usage.
func (c *Cached) Stats() store.Stats {
	if c.cache == nil {
		return store.Stats{}
	}
	return c.cache.Stats()
}
