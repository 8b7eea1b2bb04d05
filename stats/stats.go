// Package stats fetches per-country pandemic statistics from a third-party REST API
package stats

import (
	"context"
	"math"
	"time"
)

// Fetcher is implemented by any value that has the Fetch method
type Fetcher interface {
	// Fetch returns the latest statistics for the country identified by countryCode
	Fetch(ctx context.Context, countryCode string) (snapshot *Snapshot, err error)
}

// Counts holds case counts
type Counts struct {
	Confirmed int64
	Deaths    int64
	Recovered int64
}

// Snapshot holds the statistics of a country at a given time
type Snapshot struct {
	Code       string
	Name       string
	Population int64
	UpdatedAt  time.Time

	// Today holds the counts reported today. Recovered cases aren't reported daily
	Today Counts

	// Total holds the cumulative counts
	Total Counts
}

// Active returns the number of active cases (confirmed cases that are neither dead nor recovered)
func (s *Snapshot) Active() int64 {
	return s.Total.Confirmed - s.Total.Deaths - s.Total.Recovered
}

// Rate returns count as a percentage of the population rounded to two decimals. A snapshot
// without population has a rate of 0
func (s *Snapshot) Rate(count int64) float64 {
	if s.Population <= 0 {
		return 0
	}

	return math.Round(float64(count)/float64(s.Population)*10000) / 100
}
