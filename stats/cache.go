package stats

import (
	"context"
	"fmt"
	"github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"
	"time"
)

// cachedSnapshot holds a snapshot along with the time it was fetched at
type cachedSnapshot struct {
	snapshot  *Snapshot
	fetchedAt time.Time
}

// CachingFetcher holds a cache and a loading Fetcher to serve snapshots from cache while they're not
// older than maxAge. Concurrent fetches of a country missing from the cache share a single load so a
// fan-out of a country's data to many subscribers costs a single upstream call
type CachingFetcher struct {
	loader   Fetcher
	cache    *lru.ARCCache
	inFlight singleflight.Group
	maxAge   time.Duration
	now      func() time.Time
}

// NewCachingFetcher creates a new CachingFetcher keeping up to size snapshots. A size of 0 disables caching
// and every call goes to the loader
func NewCachingFetcher(loader Fetcher, size int, maxAge time.Duration) (cf *CachingFetcher, err error) {
	cf = new(CachingFetcher)
	cf.loader = loader
	cf.maxAge = maxAge
	cf.now = time.Now

	if size != 0 {
		cf.cache, err = lru.NewARC(size)
		if err != nil {
			return nil, err
		}
	}

	return cf, nil
}

// Fetch returns the cached snapshot of a country if fresh enough or loads (and caches) it otherwise.
// Failures are never cached
func (cf *CachingFetcher) Fetch(ctx context.Context, countryCode string) (snapshot *Snapshot, err error) {
	if cf.cache == nil {
		return cf.loader.Fetch(ctx, countryCode)
	}

	if snapshot, err = cf.fresh(countryCode); snapshot != nil || err != nil {
		return snapshot, err
	}

	v, err, _ := cf.inFlight.Do(countryCode, func() (interface{}, error) {
		// A load that completed while this one was waiting to start already refreshed the entry
		if s, err := cf.fresh(countryCode); s != nil || err != nil {
			return s, err
		}

		s, err := cf.loader.Fetch(ctx, countryCode)
		if err != nil {
			return nil, err
		}

		cf.cache.Add(countryCode, cachedSnapshot{snapshot: s, fetchedAt: cf.now()})
		return s, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Snapshot), nil
}

// fresh returns the cached snapshot of a country if it's not older than maxAge. Expired entries are evicted
func (cf *CachingFetcher) fresh(countryCode string) (snapshot *Snapshot, err error) {
	v, exists := cf.cache.Get(countryCode)
	if !exists {
		return nil, nil
	}

	cached, ok := v.(cachedSnapshot)
	if !ok {
		return nil, fmt.Errorf("Error converting cached value for country [%s]", countryCode)
	}

	if cf.now().Sub(cached.fetchedAt) < cf.maxAge {
		return cached.snapshot, nil
	}

	cf.cache.Remove(countryCode)
	return nil, nil
}
